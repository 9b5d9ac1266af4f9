package rest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aliveland/market-aggregator/internal/api/shared/constants"
	"github.com/aliveland/market-aggregator/internal/domain"
)

// TabQueryParams holds query parameters for the paginated tabs
type TabQueryParams struct {
	Tab  string `form:"tab"`
	Page int    `form:"page,default=1"`
}

// RankingQueryParams holds query parameters for GET /stats/ranking
type RankingQueryParams struct {
	Days int `form:"days,default=7"`
	Page int `form:"page,default=1"`
}

// ActivityQueryParams holds query parameters for GET /activity
type ActivityQueryParams struct {
	Collection string `form:"nft"`
	Page       int    `form:"page,default=1"`
	Size       int    `form:"size,default=20"`
}

// SearchQueryParams holds query parameters for GET /collections/search
type SearchQueryParams struct {
	Query string `form:"q"`
}

// ParseTabQuery parses query parameters of a tab request
func ParseTabQuery(c *gin.Context) (*TabQueryParams, error) {
	var params TabQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.Tab = strings.ToLower(strings.TrimSpace(params.Tab))
	if params.Page < 1 {
		params.Page = 1
	}
	return &params, nil
}

// ParseRankingQuery parses query parameters for GET /stats/ranking
func ParseRankingQuery(c *gin.Context) (*RankingQueryParams, error) {
	params := RankingQueryParams{Days: constants.DEFAULT_RANKING_DAYS}
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if !slices.Contains(constants.RANKING_WINDOWS, params.Days) {
		return nil, fmt.Errorf("days must be one of %v", constants.RANKING_WINDOWS)
	}
	if params.Page < 1 {
		params.Page = 1
	}
	return &params, nil
}

// ParseActivityQuery parses query parameters for GET /activity
func ParseActivityQuery(c *gin.Context) (*ActivityQueryParams, error) {
	var params ActivityQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Collection != "" && !domain.IsValidAddress(params.Collection) {
		return nil, fmt.Errorf("invalid nft address: %s", params.Collection)
	}
	if params.Size > domain.MAX_PAGE_SIZE {
		params.Size = domain.MAX_PAGE_SIZE
	}
	return &params, nil
}

// ParseSearchQuery parses query parameters for GET /collections/search
func ParseSearchQuery(c *gin.Context) (*SearchQueryParams, error) {
	var params SearchQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.Query = strings.TrimSpace(params.Query)
	return &params, nil
}
