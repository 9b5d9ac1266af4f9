package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aliveland/market-aggregator/internal/api/middleware"
	"github.com/aliveland/market-aggregator/internal/api/shared/dto"
	apierrors "github.com/aliveland/market-aggregator/internal/api/shared/errors"
	"github.com/aliveland/market-aggregator/internal/api/shared/executor"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/market"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetMarketplace returns one page of a marketplace tab
	// GET /api/v1/marketplace?tab=<all|trending|image|video|audio|...>&page=<page>
	GetMarketplace(c *gin.Context)

	// GetCollection returns the header of a collection page
	// GET /api/v1/collections/:address
	GetCollection(c *gin.Context)

	// GetCollectionStats returns the trading figures of a collection
	// GET /api/v1/collections/:address/stats
	GetCollectionStats(c *gin.Context)

	// GetCollectionItems returns one page of a collection tab
	// GET /api/v1/collections/:address/items?tab=<sale|owned|gallery>&page=<page>
	GetCollectionItems(c *gin.Context)

	// GetRecommendedCollections returns the most traded collections
	// GET /api/v1/collections/recommended
	GetRecommendedCollections(c *gin.Context)

	// SearchCollections returns the collections whose name contains the query
	// GET /api/v1/collections/search?q=<term>
	SearchCollections(c *gin.Context)

	// GetToken returns the detail view of a token
	// GET /api/v1/tokens/:collection/:token_id
	GetToken(c *gin.Context)

	// GetProfileItems returns one page of a profile tab
	// GET /api/v1/profiles/:address/items?tab=<sale|owned|favorite>&page=<page>
	GetProfileItems(c *gin.Context)

	// GetProfileCollections returns the collections created by an address
	// GET /api/v1/profiles/:address/collections
	GetProfileCollections(c *gin.Context)

	// GetUser returns the registered profile of an address
	// GET /api/v1/users/:address
	GetUser(c *gin.Context)

	// GetRanking returns one page of the trade volume ranking
	// GET /api/v1/stats/ranking?days=<0|7|30>&page=<page>
	GetRanking(c *gin.Context)

	// GetActivity returns one page of the trade history
	// GET /api/v1/activity?nft=<address>&page=<page>&size=<size>
	GetActivity(c *gin.Context)

	// GetLaunchpads returns every launchpad
	// GET /api/v1/launchpads
	GetLaunchpads(c *gin.Context)

	// GetLaunchpad returns one launchpad
	// GET /api/v1/launchpads/:id
	GetLaunchpad(c *gin.Context)

	// GetQuotes returns the price quotes of the session
	// GET /api/v1/quotes
	GetQuotes(c *gin.Context)

	// ToggleFavorite flips the favorite state of a token (requires authentication)
	// POST /api/v1/favorites
	ToggleFavorite(c *gin.Context)

	// CloseSession drops the session and its cached pages
	// DELETE /api/v1/session
	CloseSession(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug    bool
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(debug bool, exec executor.Executor) Handler {
	return &handler{
		debug:    debug,
		executor: exec,
	}
}

// GetMarketplace returns one page of a marketplace tab
func (h *handler) GetMarketplace(c *gin.Context) {
	h.browse(c, market.ScopeMarketplace, "")
}

// GetCollectionItems returns one page of a collection tab
func (h *handler) GetCollectionItems(c *gin.Context) {
	h.browse(c, market.ScopeCollection, c.Param("address"))
}

// GetProfileItems returns one page of a profile tab
func (h *handler) GetProfileItems(c *gin.Context) {
	h.browse(c, market.ScopeProfile, c.Param("address"))
}

func (h *handler) browse(c *gin.Context, scope market.Scope, address string) {
	params, err := ParseTabQuery(c)
	if err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid query parameters: %v", err))
		return
	}

	filter := market.Filter{
		Scope:   scope,
		Tab:     market.Tab(params.Tab),
		Address: address,
	}
	page, err := h.executor.Browse(c.Request.Context(), middleware.ReadModel(c), filter, params.Page)
	if err != nil {
		respondError(c, err, "Failed to load items")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetCollection returns the header of a collection page
func (h *handler) GetCollection(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		respondBadRequest(c, "Invalid collection address", address)
		return
	}

	info, err := h.executor.GetCollection(c.Request.Context(), middleware.ReadModel(c), address)
	if err != nil {
		respondError(c, err, "Failed to load collection")
		return
	}

	c.JSON(http.StatusOK, info)
}

// GetCollectionStats returns the trading figures of a collection
func (h *handler) GetCollectionStats(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		respondBadRequest(c, "Invalid collection address", address)
		return
	}

	stats, err := h.executor.GetCollectionStats(c.Request.Context(), middleware.ReadModel(c), address)
	if err != nil {
		respondError(c, err, "Failed to load collection stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRecommendedCollections returns the most traded collections
func (h *handler) GetRecommendedCollections(c *gin.Context) {
	list, err := h.executor.GetRecommendedCollections(c.Request.Context(), middleware.ReadModel(c))
	if err != nil {
		respondError(c, err, "Failed to load recommended collections")
		return
	}

	c.JSON(http.StatusOK, list)
}

// SearchCollections returns the collections whose name contains the query
func (h *handler) SearchCollections(c *gin.Context) {
	params, err := ParseSearchQuery(c)
	if err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid query parameters: %v", err))
		return
	}
	if !dto.ValidSearchTerm(params.Query) {
		respondValidationError(c, "q must be a non-empty term of at most 64 characters")
		return
	}

	list, err := h.executor.SearchCollections(c.Request.Context(), middleware.ReadModel(c), params.Query)
	if err != nil {
		respondError(c, err, "Failed to search collections")
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetToken returns the detail view of a token
func (h *handler) GetToken(c *gin.Context) {
	id, err := domain.ParseTokenIdentity(c.Param("collection"), c.Param("token_id"))
	if err != nil {
		respondBadRequest(c, "Invalid token", err.Error())
		return
	}

	token, err := h.executor.GetToken(c.Request.Context(), middleware.ReadModel(c), id)
	if err != nil {
		respondError(c, err, "Failed to load token")
		return
	}

	c.JSON(http.StatusOK, token)
}

// GetProfileCollections returns the collections created by an address
func (h *handler) GetProfileCollections(c *gin.Context) {
	address := c.Param("address")
	if !domain.IsValidAddress(address) {
		respondBadRequest(c, "Invalid address", address)
		return
	}

	list, err := h.executor.GetCreatedCollections(c.Request.Context(), middleware.ReadModel(c), address)
	if err != nil {
		respondError(c, err, "Failed to load created collections")
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetUser returns the registered profile of an address
func (h *handler) GetUser(c *gin.Context) {
	profile, err := h.executor.GetUser(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetRanking returns one page of the trade volume ranking
func (h *handler) GetRanking(c *gin.Context) {
	params, err := ParseRankingQuery(c)
	if err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid query parameters: %v", err))
		return
	}

	ranking, err := h.executor.GetRanking(c.Request.Context(), middleware.ReadModel(c), params.Days, params.Page)
	if err != nil {
		respondError(c, err, "Failed to load ranking")
		return
	}

	c.JSON(http.StatusOK, ranking)
}

// GetActivity returns one page of the trade history
func (h *handler) GetActivity(c *gin.Context) {
	params, err := ParseActivityQuery(c)
	if err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid query parameters: %v", err))
		return
	}

	activity, err := h.executor.GetActivity(c.Request.Context(), params.Collection, params.Page, params.Size)
	if err != nil {
		respondError(c, err, "Failed to load activity")
		return
	}

	c.JSON(http.StatusOK, activity)
}

// GetLaunchpads returns every launchpad
func (h *handler) GetLaunchpads(c *gin.Context) {
	list, err := h.executor.GetLaunchpads(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load launchpads")
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetLaunchpad returns one launchpad
func (h *handler) GetLaunchpad(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Launchpad id is required")
		return
	}

	launchpad, err := h.executor.GetLaunchpad(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to load launchpad")
		return
	}

	c.JSON(http.StatusOK, launchpad)
}

// GetQuotes returns the price quotes of the session
func (h *handler) GetQuotes(c *gin.Context) {
	c.JSON(http.StatusOK, h.executor.GetQuotes(c.Request.Context(), middleware.ReadModel(c)))
}

// ToggleFavorite flips the favorite state of a token for the session viewer.
// A JWT caller may only toggle for its own address.
func (h *handler) ToggleFavorite(c *gin.Context) {
	var req dto.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	id, err := req.Identity()
	if err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	rm := middleware.ReadModel(c)
	if subject := middleware.AuthSubject(c); subject != "" && !domain.SameAddress(subject, rm.Viewer) {
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError("Viewer does not match the authenticated address"))
		return
	}

	result, err := h.executor.ToggleFavorite(c.Request.Context(), rm, id, req.IsFavor)
	if err != nil {
		respondError(c, err, "Failed to update favorite")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CloseSession drops the session and its cached pages
func (h *handler) CloseSession(c *gin.Context) {
	rm := middleware.ReadModel(c)
	if err := h.executor.CloseSession(c.Request.Context(), rm.SessionID); err != nil {
		respondError(c, err, "Failed to close session")
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "market-aggregator-api",
		"debug":   h.debug,
	})
}
