package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eleclys/Chatroom/internal/service"
)

// AdminHandler handles the admin record-keeping endpoints.
type AdminHandler struct {
	admin *service.AdminService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListMessages handles GET /admin/messages.
func (h *AdminHandler) ListMessages(c echo.Context) error {
	msgs, err := h.admin.ListMessages(c.Request().Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, msgs)
}

// ListFiles handles GET /admin/files.
func (h *AdminHandler) ListFiles(c echo.Context) error {
	files, err := h.admin.ListFiles(c.Request().Context())
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, files)
}

// DeleteMessage handles DELETE /admin/messages/:id.
func (h *AdminHandler) DeleteMessage(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Error(c, http.StatusBadRequest, "INVALID_ID", "invalid message ID")
	}

	if err := h.admin.DeleteMessage(c.Request().Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Message deleted successfully"})
}

// DeleteFile handles DELETE /admin/files/:id.
func (h *AdminHandler) DeleteFile(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return Error(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
	}

	if err := h.admin.DeleteFile(c.Request().Context(), id); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

// DeleteAllMessages handles DELETE /admin/messages/all.
func (h *AdminHandler) DeleteAllMessages(c echo.Context) error {
	if err := h.admin.DeleteAllMessages(c.Request().Context()); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All messages deleted successfully"})
}

// DeleteAllFiles handles DELETE /admin/files/all.
func (h *AdminHandler) DeleteAllFiles(c echo.Context) error {
	if err := h.admin.DeleteAllFiles(c.Request().Context()); err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "All files deleted successfully"})
}
