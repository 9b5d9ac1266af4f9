package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/aliveland/market-aggregator/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, sessions middleware.SessionOpener, authCfg middleware.AuthConfig) {
	// Health check endpoint (no session, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes are served from the session read model
	v1 := router.Group("/api/v1", middleware.Session(sessions))
	{
		v1.GET("/marketplace", handler.GetMarketplace)

		// Static segments are registered before the :address wildcard
		v1.GET("/collections/recommended", handler.GetRecommendedCollections)
		v1.GET("/collections/search", handler.SearchCollections)
		v1.GET("/collections/:address", handler.GetCollection)
		v1.GET("/collections/:address/stats", handler.GetCollectionStats)
		v1.GET("/collections/:address/items", handler.GetCollectionItems)

		v1.GET("/tokens/:collection/:token_id", handler.GetToken)

		v1.GET("/profiles/:address/items", handler.GetProfileItems)
		v1.GET("/profiles/:address/collections", handler.GetProfileCollections)
		v1.GET("/users/:address", handler.GetUser)

		v1.GET("/stats/ranking", handler.GetRanking)
		v1.GET("/activity", handler.GetActivity)

		v1.GET("/launchpads", handler.GetLaunchpads)
		v1.GET("/launchpads/:id", handler.GetLaunchpad)

		v1.GET("/quotes", handler.GetQuotes)

		// Favorites write to the backend (requires authentication)
		v1.POST("/favorites", middleware.Auth(authCfg), handler.ToggleFavorite)

		v1.DELETE("/session", handler.CloseSession)
	}
}
