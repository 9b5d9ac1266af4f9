package market

import (
	"errors"
	"fmt"

	"github.com/aliveland/market-aggregator/internal/domain"
)

// ErrUnsupportedTab is returned when a tab does not exist in the requested scope
var ErrUnsupportedTab = errors.New("unsupported tab")

// Scope is the page a feed belongs to
type Scope string

const (
	ScopeMarketplace Scope = "marketplace"
	ScopeCollection  Scope = "collection"
	ScopeProfile     Scope = "profile"
)

// Tab selects the raw item list of a scope
type Tab string

const (
	TabAll      Tab = "all"
	TabTrending Tab = "trending"
	TabSale     Tab = "sale"
	TabOwned    Tab = "owned"
	TabGallery  Tab = "gallery"
	TabFavorite Tab = "favorite"
)

// MediaTab returns the marketplace tab listing one media category
func MediaTab(mediaType domain.MediaType) Tab {
	return Tab(mediaType)
}

// Filter identifies the raw list of a feed. Two equal filters share the
// fetched list; any difference re-fetches.
type Filter struct {
	Scope Scope
	Tab   Tab
	// Address is the collection or the profile owner
	Address string
	// Viewer narrows owner scoped tabs of a collection
	Viewer string
}

// Validate checks the tab against its scope and normalizes the addresses
func (f Filter) Validate() (Filter, error) {
	switch f.Scope {
	case ScopeMarketplace:
		if f.Tab == "" {
			f.Tab = TabAll
		}
		if f.Tab != TabAll && f.Tab != TabTrending && !domain.IsValidMediaType(domain.MediaType(f.Tab)) {
			return f, fmt.Errorf("%w: %s/%s", ErrUnsupportedTab, f.Scope, f.Tab)
		}
		f.Address = ""
	case ScopeCollection:
		if f.Tab == "" {
			f.Tab = TabGallery
		}
		if f.Tab != TabSale && f.Tab != TabOwned && f.Tab != TabGallery {
			return f, fmt.Errorf("%w: %s/%s", ErrUnsupportedTab, f.Scope, f.Tab)
		}
		if f.Tab == TabOwned && f.Viewer == "" {
			return f, domain.ErrViewerRequired
		}
	case ScopeProfile:
		if f.Tab == "" {
			f.Tab = TabOwned
		}
		if f.Tab != TabSale && f.Tab != TabOwned && f.Tab != TabFavorite {
			return f, fmt.Errorf("%w: %s/%s", ErrUnsupportedTab, f.Scope, f.Tab)
		}
	default:
		return f, fmt.Errorf("%w: scope %q", ErrUnsupportedTab, f.Scope)
	}

	if f.Scope != ScopeMarketplace {
		if !domain.IsValidAddress(f.Address) {
			return f, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, f.Address)
		}
		f.Address = domain.NormalizeAddress(f.Address)
	}

	// only the collection owned tab depends on who is looking
	if f.Scope == ScopeCollection && f.Tab == TabOwned {
		f.Viewer = domain.NormalizeAddress(f.Viewer)
	} else {
		f.Viewer = ""
	}
	return f, nil
}
