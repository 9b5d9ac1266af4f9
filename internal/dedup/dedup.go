package dedup

import (
	"github.com/aliveland/market-aggregator/internal/domain"
)

// By keeps the first element of each key in iteration order.
// Subgraph queries are ordered newest first, so the first element is the latest state.
func By[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Unique returns one transfer per token, the latest one, preserving input order
func Unique(events []domain.TransferEvent) []domain.TransferEvent {
	return By(events, domain.TransferEvent.Identity)
}

// LatestOwners maps each token to its latest transfer
func LatestOwners(events []domain.TransferEvent) map[domain.TokenIdentity]domain.TransferEvent {
	owners := make(map[domain.TokenIdentity]domain.TransferEvent, len(events))
	for _, e := range events {
		id := e.Identity()
		if _, ok := owners[id]; ok {
			continue
		}
		owners[id] = e
	}
	return owners
}

// OwnedBy returns the tokens whose latest transfer went to owner, preserving input order
func OwnedBy(events []domain.TransferEvent, owner string) []domain.TransferEvent {
	latest := Unique(events)
	out := make([]domain.TransferEvent, 0, len(latest))
	for _, e := range latest {
		if domain.SameAddress(e.To, owner) {
			out = append(out, e)
		}
	}
	return out
}

// Listings returns one listing per token preserving input order
func Listings(listings []domain.Listing) []domain.Listing {
	return By(listings, domain.Listing.Identity)
}

// DistinctOwners counts the distinct current holders among the tokens
func DistinctOwners(events []domain.TransferEvent) int {
	holders := make(map[string]struct{})
	for _, e := range LatestOwners(events) {
		holders[domain.NormalizeAddress(e.To)] = struct{}{}
	}
	return len(holders)
}
