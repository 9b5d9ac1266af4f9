package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/aliveland/market-aggregator/internal/api/shared/constants"
)

// SetupCORS configures CORS middleware with fully open settings.
// The session and request ids travel in headers, so both are allowed and exposed.
func SetupCORS() gin.HandlerFunc {
	config := cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			constants.SESSION_HEADER, constants.VIEWER_HEADER, constants.REQUEST_ID_HEADER,
		},
		ExposeHeaders:    []string{"Content-Length", constants.SESSION_HEADER, constants.REQUEST_ID_HEADER},
		AllowCredentials: false,
		MaxAge:           time.Hour,
	}
	return cors.New(config)
}
