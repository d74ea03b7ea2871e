package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eleclys/Chatroom/internal/service"
)

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error sends a JSON error response.
func Error(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message},
	})
}

// mapServiceError translates a service error into an HTTP error response.
func mapServiceError(c echo.Context, err error) error {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(svcErr, service.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(svcErr, service.ErrBadRequest):
			status = http.StatusBadRequest
		}
		return Error(c, status, svcErr.Code, svcErr.Message)
	}
	return Error(c, http.StatusInternalServerError, "INTERNAL", "internal server error")
}
