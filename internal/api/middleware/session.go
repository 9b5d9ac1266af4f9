package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/api/shared/constants"
	apierrors "github.com/aliveland/market-aggregator/internal/api/shared/errors"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/readmodel"
)

const READ_MODEL_KEY contextKey = "read_model"

// SessionOpener opens the read model a request is served from
type SessionOpener interface {
	OpenSession(ctx context.Context, sessionID string, viewer string) (*readmodel.ReadModel, error)
}

// Session returns a gin middleware that attaches the session read model to the request.
// The session id comes from the session header or cookie; a missing or unknown id
// starts a new session whose id is echoed in the response header.
func Session(opener SessionOpener) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(constants.SESSION_HEADER)
		if sessionID == "" {
			if cookie, err := c.Cookie(constants.SESSION_COOKIE); err == nil {
				sessionID = cookie
			}
		}
		viewer := c.GetHeader(constants.VIEWER_HEADER)

		rm, err := opener.OpenSession(c.Request.Context(), sessionID, viewer)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidAddress) {
				c.AbortWithStatusJSON(http.StatusBadRequest, apierrors.NewBadRequestError("Invalid viewer address", viewer))
				return
			}
			logger.ErrorCtx(c.Request.Context(), err, zap.String("sessionID", sessionID))
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierrors.NewInternalError("Failed to open session"))
			return
		}

		c.Header(constants.SESSION_HEADER, rm.SessionID)
		c.Set(READ_MODEL_KEY, rm)
		ctx := logger.WithRequestFields(c.Request.Context(), logger.RequestFields{
			SessionID: rm.SessionID,
			Viewer:    rm.Viewer,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ReadModel returns the read model attached by Session
func ReadModel(c *gin.Context) *readmodel.ReadModel {
	value, ok := c.Get(READ_MODEL_KEY)
	if !ok {
		return readmodel.New("", nil, nil, nil)
	}
	return value.(*readmodel.ReadModel)
}
