package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/aliveland/market-aggregator/internal/api/shared/errors"
	"github.com/aliveland/market-aggregator/internal/api/shared/executor"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondInternalError responds with an internal server error and logs the error
func respondInternalError(c *gin.Context, err error, message string, details ...string) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message, details...).WithNotification(err))
}

// respondError maps an executor error to its status code
func respondError(c *gin.Context, err error, message string) {
	var apiErr *apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
		c.JSON(http.StatusBadRequest, apiErr)
	case executor.IsClientError(err):
		respondBadRequest(c, message, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondNotFound(c, message, err.Error())
	case errors.Is(err, domain.ErrViewerRequired):
		c.JSON(http.StatusUnauthorized, apierrors.NewUnauthorizedError(message, "a viewer address is required"))
	case errors.Is(err, domain.ErrStaleGeneration):
		c.JSON(http.StatusConflict, apierrors.NewConflictError(message, "superseded by a newer request"))
	case errors.Is(err, c.Request.Context().Err()) && c.Request.Context().Err() != nil:
		// client went away
		c.Status(499)
	default:
		switch domain.Classify(err) {
		case domain.ErrorKindNetwork, domain.ErrorKindContractCall, domain.ErrorKindFavorite:
			logger.WarnCtx(c.Request.Context(), "Upstream failure", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.JSON(http.StatusBadGateway, apierrors.NewServiceError(message, err.Error()).WithNotification(err))
		default:
			respondInternalError(c, err, message)
		}
	}
}
