package metadata

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/uri"
)

// TokenMetadata is the off-chain JSON document of a token
type TokenMetadata struct {
	Name        string
	Description string
	Image       string
	MediaType   domain.MediaType
	Royalty     float64
	Raw         map[string]interface{}
}

// CollectionMetadata is the off-chain JSON document of a collection
type CollectionMetadata struct {
	Name        string
	Symbol      string
	Description string
	Banner      string
	Icon        string
}

// Fetcher defines the interface for fetching off-chain metadata documents
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/metadata_fetcher.go -package=mocks -mock_names=Fetcher=MockMetadataFetcher
type Fetcher interface {
	// Token fetches the metadata of a token from its metadata pointer.
	// ERC1155 {id} placeholders are substituted with tokenNumber.
	Token(ctx context.Context, pointer string, tokenNumber string) (*TokenMetadata, error)

	// Collection fetches the metadata of a collection from its metadataUrl
	Collection(ctx context.Context, pointer string) (*CollectionMetadata, error)
}

type fetcher struct {
	httpClient  adapter.HTTPClient
	uriResolver uri.Resolver
	json        adapter.JSON
	cache       *cache.Cache
}

// NewFetcher creates a metadata fetcher. Documents are cached by pointer for ttl.
func NewFetcher(httpClient adapter.HTTPClient, uriResolver uri.Resolver, json adapter.JSON, ttl time.Duration) Fetcher {
	return &fetcher{
		httpClient:  httpClient,
		uriResolver: uriResolver,
		json:        json,
		cache:       cache.New(ttl, 2*ttl),
	}
}

func (f *fetcher) Token(ctx context.Context, pointer string, tokenNumber string) (*TokenMetadata, error) {
	pointer = processPointer(pointer, tokenNumber)
	key := "token|" + pointer
	if cached, ok := f.cache.Get(key); ok {
		return cached.(*TokenMetadata), nil
	}

	raw, err := f.fetch(ctx, pointer)
	if err != nil {
		return nil, err
	}

	meta := &TokenMetadata{
		Name:        stringField(raw, "name"),
		Description: stringField(raw, "description"),
		Image:       stringField(raw, "image"),
		MediaType:   domain.MediaType(stringField(raw, "mediaType")),
		Royalty:     numberField(raw, "royalty"),
		Raw:         raw,
	}

	if !domain.IsValidMediaType(meta.MediaType) {
		meta.MediaType = f.detectMediaType(ctx, meta.Image)
	}

	f.cache.Set(key, meta, cache.DefaultExpiration)
	return meta, nil
}

func (f *fetcher) Collection(ctx context.Context, pointer string) (*CollectionMetadata, error) {
	raw, err := f.fetch(ctx, pointer)
	if err != nil {
		return nil, err
	}

	return &CollectionMetadata{
		Name:        stringField(raw, "name"),
		Symbol:      stringField(raw, "symbol"),
		Description: stringField(raw, "description"),
		Banner:      stringField(raw, "banner"),
		Icon:        stringField(raw, "icon"),
	}, nil
}

// fetch returns the decoded JSON document behind a pointer
func (f *fetcher) fetch(ctx context.Context, pointer string) (map[string]interface{}, error) {
	if cached, ok := f.cache.Get(pointer); ok {
		return cached.(map[string]interface{}), nil
	}

	var content []byte
	if strings.HasPrefix(pointer, "data:") {
		decoded, err := decodeDataURI(pointer)
		if err != nil {
			return nil, err
		}
		content = decoded
	} else {
		url, err := f.uriResolver.Resolve(ctx, pointer)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve metadata pointer: %w", err)
		}

		content, err = f.httpClient.GetBytes(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch metadata: %w", err)
		}
	}

	var raw map[string]interface{}
	if err := f.json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	f.cache.Set(pointer, raw, cache.DefaultExpiration)
	return raw, nil
}

// processPointer substitutes the ERC1155 {id} placeholder
func processPointer(pointer, tokenNumber string) string {
	pointer = strings.TrimSpace(pointer)
	if !strings.Contains(pointer, "{id}") {
		return pointer
	}

	// ERC1155 clients substitute the lowercase hex id padded to 64 characters
	id := tokenNumber
	if n, err := strconv.ParseUint(tokenNumber, 10, 64); err == nil {
		id = fmt.Sprintf("%064x", n)
	}
	return strings.ReplaceAll(pointer, "{id}", id)
}

// decodeDataURI decodes data:application/json[;base64],<payload>
func decodeDataURI(pointer string) ([]byte, error) {
	parts := strings.SplitN(strings.TrimPrefix(pointer, "data:"), ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URI format")
	}

	if strings.Contains(parts[0], "base64") {
		decoded, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64: %w", err)
		}
		return decoded, nil
	}

	return []byte(parts[1]), nil
}

func stringField(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

// numberField accepts both JSON numbers and numeric strings
func numberField(raw map[string]interface{}, key string) float64 {
	switch v := raw[key].(type) {
	case float64:
		return v
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			logger.Debug("ignoring non numeric metadata field", zap.String("key", key), zap.String("value", v))
			return 0
		}
		return f
	default:
		return 0
	}
}
