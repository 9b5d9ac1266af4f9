package dto

import (
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/market"
	"github.com/aliveland/market-aggregator/internal/pipeline"
	"github.com/aliveland/market-aggregator/internal/providers/backend"
)

// PageResponse represents one page of a tab
type PageResponse struct {
	Items        []domain.ViewRecord  `json:"items"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
	Total        int                  `json:"total"`
	TotalPages   int                  `json:"total_pages"`
	Generation   uint64               `json:"generation"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

// MapPageToDTO maps an enriched page to its response
func MapPageToDTO(page *pipeline.Page) *PageResponse {
	items := page.Records
	if items == nil {
		items = []domain.ViewRecord{}
	}
	return &PageResponse{
		Items:        items,
		Page:         page.Page,
		PageSize:     page.PageSize,
		Total:        page.Total,
		TotalPages:   page.TotalPages,
		Generation:   page.Generation,
		Notification: page.Notice,
	}
}

// TokenResponse represents the detail view of a token
type TokenResponse struct {
	Token        domain.ViewRecord    `json:"token"`
	Market       *domain.MarketState  `json:"market"`
	IsListed     bool                 `json:"is_listed"`
	IsOffered    bool                 `json:"is_offered"`
	IsBidded     bool                 `json:"is_bidded"`
	AuctionState domain.AuctionState  `json:"auction_state"`
	Gallery      []domain.ViewRecord  `json:"gallery"`
	Notification *domain.Notification `json:"notification,omitempty"`
}

// MapTokenToDTO maps a token detail to its response
func MapTokenToDTO(detail *market.TokenDetail) *TokenResponse {
	resp := &TokenResponse{
		Token:        detail.Record,
		Market:       detail.Market,
		Gallery:      detail.Gallery,
		Notification: detail.Notice,
	}
	if detail.Market != nil {
		resp.IsListed = detail.Market.Listed()
		resp.IsOffered = detail.Market.Offered()
		resp.IsBidded = detail.Market.Bidded()
		resp.AuctionState = detail.Market.AuctionState
	}
	return resp
}

// CollectionListResponse represents a list of collection cards
type CollectionListResponse struct {
	Items []domain.CollectionInfo `json:"items"`
	Total int                     `json:"total"`
}

// MapCollectionsToDTO maps collection cards to their response
func MapCollectionsToDTO(cards []domain.CollectionInfo) *CollectionListResponse {
	if cards == nil {
		cards = []domain.CollectionInfo{}
	}
	return &CollectionListResponse{Items: cards, Total: len(cards)}
}

// RankingResponse represents one page of the trade volume ranking
type RankingResponse struct {
	Items      []domain.RankingEntry `json:"items"`
	Days       int                   `json:"days"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	Total      int                   `json:"total"`
	TotalPages int                   `json:"total_pages"`
}

// LaunchpadListResponse represents the list of launchpads
type LaunchpadListResponse struct {
	Items []domain.Launchpad `json:"items"`
}

// LaunchpadResponse represents one launchpad with its sale totals
type LaunchpadResponse = backend.LaunchpadDetail

// QuotesResponse represents the price quotes of the session
type QuotesResponse struct {
	NativeToken string              `json:"native_token"`
	Quotes      []domain.PriceQuote `json:"quotes"`
}

// SessionResponse identifies the session a request was served in
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Viewer    string `json:"viewer,omitempty"`
}
