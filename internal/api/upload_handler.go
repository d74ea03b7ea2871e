package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eleclys/Chatroom/internal/service"
)

// UploadHandler handles the file upload endpoint.
type UploadHandler struct {
	room *service.RoomService
}

// NewUploadHandler creates an UploadHandler.
func NewUploadHandler(room *service.RoomService) *UploadHandler {
	return &UploadHandler{room: room}
}

// Upload handles POST /upload. The multipart filename arrives
// percent-decoded from the transport, so non-ASCII original names are
// preserved verbatim in the stored name.
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
	}
	owner := c.FormValue("username")

	src, err := file.Open()
	if err != nil {
		return Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")

	stored, err := h.room.SubmitFile(c.Request().Context(), owner, file.Filename, file.Size, contentType, src)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, stored)
}
