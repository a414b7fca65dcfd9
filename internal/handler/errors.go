package handler

import (
	"errors"
	"net/http"

	"checklist-service/internal/apperror"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// respondError writes the HTTP form of a service error. conflictMsg is the
// body returned for apperror.ErrConflict. Unexpected errors are logged and
// hidden behind a generic message.
func respondError(c echo.Context, log *zap.Logger, resource, conflictMsg string, err error) error {
	var verr *apperror.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Info("Request failed validation", zap.String("resource", resource), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, apperror.ErrNotFound):
		log.Info(resource+" not found", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": resource + " not found"})
	case errors.Is(err, apperror.ErrConflict):
		log.Warn(conflictMsg, zap.String("resource", resource), zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{"error": conflictMsg})
	case errors.Is(err, apperror.ErrUnauthorized):
		log.Warn("Unauthorized request", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	default:
		log.Error("Request failed", zap.String("resource", resource), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// bindError answers a body that could not be decoded
func bindError(c echo.Context, log *zap.Logger, err error) error {
	log.Warn("Invalid request data", zap.Error(err))
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
}
