package readmodel

import (
	"sort"
	"sync"

	"github.com/aliveland/market-aggregator/internal/domain"
)

// FavoriteSet is the viewer's favorited tokens
type FavoriteSet struct {
	mu  sync.RWMutex
	ids map[domain.TokenIdentity]struct{}
}

// NewFavoriteSet creates a set from token identities
func NewFavoriteSet(ids []domain.TokenIdentity) *FavoriteSet {
	s := &FavoriteSet{}
	s.Replace(ids)
	return s
}

// FavoriteSetFromRecords creates a set from backend favorite records
func FavoriteSetFromRecords(records []domain.FavoriteRecord) *FavoriteSet {
	ids := make([]domain.TokenIdentity, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.Identity())
	}
	return NewFavoriteSet(ids)
}

// Replace swaps the whole set content
func (s *FavoriteSet) Replace(ids []domain.TokenIdentity) {
	set := make(map[domain.TokenIdentity]struct{}, len(ids))
	for _, id := range ids {
		set[domain.NewTokenIdentity(id.Collection, id.TokenID)] = struct{}{}
	}

	s.mu.Lock()
	s.ids = set
	s.mu.Unlock()
}

// Contains reports whether the token is favorited
func (s *FavoriteSet) Contains(id domain.TokenIdentity) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ids[domain.NewTokenIdentity(id.Collection, id.TokenID)]
	return ok
}

// Set marks or unmarks a token in one locked step and returns the previous state
func (s *FavoriteSet) Set(id domain.TokenIdentity, favorite bool) bool {
	key := domain.NewTokenIdentity(id.Collection, id.TokenID)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, previous := s.ids[key]
	if favorite {
		s.ids[key] = struct{}{}
	} else {
		delete(s.ids, key)
	}
	return previous
}

// Identities returns the favorited tokens in a stable order
func (s *FavoriteSet) Identities() []domain.TokenIdentity {
	s.mu.RLock()
	ids := make([]domain.TokenIdentity, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Collection != ids[j].Collection {
			return ids[i].Collection < ids[j].Collection
		}
		return ids[i].TokenID < ids[j].TokenID
	})
	return ids
}

// Len returns the number of favorited tokens
func (s *FavoriteSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
