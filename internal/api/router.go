package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eleclys/Chatroom/internal/gateway"
	"github.com/eleclys/Chatroom/internal/redis"
)

// Dependencies holds all handler instances for route wiring.
type Dependencies struct {
	Admin  *AdminHandler
	Upload *UploadHandler
	Hub    *gateway.Hub
	Redis  *redis.Client
}

// SetupRouter registers all routes on the Echo instance.
func SetupRouter(e *echo.Echo, deps *Dependencies) {
	e.GET("/healthz", func(c echo.Context) error {
		online := int64(deps.Hub.SessionCount())
		if deps.Redis != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if n, err := deps.Redis.OnlineCount(ctx); err == nil {
				online = n
			}
		}
		return c.JSON(http.StatusOK, map[string]any{"status": "ok", "online": online})
	})

	// Real-time channel
	e.GET("/ws", deps.Hub.HandleWebSocket)

	// Upload
	e.POST("/upload", deps.Upload.Upload)

	// Admin surface. Echo matches the static "all" segment ahead of the
	// :id parameter, so the bulk routes and per-record routes coexist.
	admin := e.Group("/admin")
	admin.GET("/messages", deps.Admin.ListMessages)
	admin.GET("/files", deps.Admin.ListFiles)
	admin.DELETE("/messages/all", deps.Admin.DeleteAllMessages)
	admin.DELETE("/files/all", deps.Admin.DeleteAllFiles)
	admin.DELETE("/messages/:id", deps.Admin.DeleteMessage)
	admin.DELETE("/files/:id", deps.Admin.DeleteFile)
}
