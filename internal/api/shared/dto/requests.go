package dto

import (
	"github.com/aliveland/market-aggregator/internal/api/shared/constants"
	apierrors "github.com/aliveland/market-aggregator/internal/api/shared/errors"
	"github.com/aliveland/market-aggregator/internal/domain"
)

// ToggleFavoriteRequest represents the request body for flipping the favorite state of a token
type ToggleFavoriteRequest struct {
	Collection string `json:"nft"`
	TokenID    string `json:"token_id"`
	// IsFavor is the state the viewer currently sees
	IsFavor bool `json:"is_favor"`
}

// Identity validates the request body and returns the token it targets
func (r *ToggleFavoriteRequest) Identity() (domain.TokenIdentity, error) {
	if r.Collection == "" || r.TokenID == "" {
		return domain.TokenIdentity{}, apierrors.NewValidationError("nft and token_id are required")
	}

	id, err := domain.ParseTokenIdentity(r.Collection, r.TokenID)
	if err != nil {
		return domain.TokenIdentity{}, apierrors.NewValidationError(err.Error())
	}
	return id, nil
}

// ValidSearchTerm reports whether a collection search term is acceptable
func ValidSearchTerm(term string) bool {
	return term != "" && len(term) <= constants.MAX_SEARCH_TERM_LENGTH
}
