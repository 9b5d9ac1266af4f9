package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"resty.dev/v3"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
)

// Config holds the backend client configuration
type Config struct {
	Host      string
	Timeout   time.Duration
	RateLimit int // requests per minute, 0 disables limiting
	Retries   int
	UserAgent string
}

// LaunchpadVolumes are the primary sale totals of a launchpad.
// Sum is stored in 1/10000 of the native token.
type LaunchpadVolumes struct {
	Sum   float64 `json:"Sum"`
	Count int64   `json:"Count"`
}

// LaunchpadDetail is a launchpad with its sale totals
type LaunchpadDetail struct {
	Launchpad *domain.Launchpad `json:"launchpad"`
	Volumes   LaunchpadVolumes  `json:"volumes"`
}

// favoriteBody is the payload of the favorite mutations
type favoriteBody struct {
	Collection  string `json:"collection"`
	UserAddress string `json:"user_address"`
	TokenID     string `json:"token_id"`
}

// Client defines the interface for the marketplace backend to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/backend_client.go -package=mocks -mock_names=Client=MockBackendClient
type Client interface {
	// UserList returns every registered user. Any failure yields an empty list.
	UserList(ctx context.Context) []domain.UserProfile

	// User returns the profile of an address, nil when the address is not registered
	User(ctx context.Context, address string) (*domain.UserProfile, error)

	// Favorites returns the favorites of an address
	Favorites(ctx context.Context, address string) ([]domain.FavoriteRecord, error)

	// AddFavorite stores a favorite. The backend confirms with 201.
	AddFavorite(ctx context.Context, viewer string, id domain.TokenIdentity) error

	// RemoveFavorite deletes a favorite. The backend confirms with 200.
	RemoveFavorite(ctx context.Context, viewer string, id domain.TokenIdentity) error

	// Launchpads returns every launchpad
	Launchpads(ctx context.Context) ([]domain.Launchpad, error)

	// Launchpad returns one launchpad with its sale totals, nil when unknown
	Launchpad(ctx context.Context, id string) (*LaunchpadDetail, error)
}

// BackendClient implements Client over resty
type BackendClient struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a new backend client
func NewClient(cfg Config) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(float64(cfg.RateLimit) / 60)
	}
	limiter := rate.NewLimiter(limit, 1)

	restyClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Host, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetAllowMethodDeletePayload(true).
		SetHeader("Accept", "application/json").
		AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
			limiterCtx, cancel := context.WithTimeout(r.Context(), cfg.Timeout)
			defer cancel()

			if err := limiter.Wait(limiterCtx); err != nil {
				logger.WarnCtx(r.Context(), "Backend rate limiter wait failed", zap.Error(err))
				return err
			}
			if cfg.UserAgent != "" {
				r.SetHeader("User-Agent", cfg.UserAgent)
			}
			logger.DebugCtx(r.Context(), "Outgoing backend request", zap.String("method", r.Method), zap.String("url", r.URL))
			return nil
		}).
		AddResponseMiddleware(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				logger.WarnCtx(resp.Request.Context(), "Backend request failed",
					zap.Int("status", resp.StatusCode()),
					zap.String("url", resp.Request.URL),
				)
			}
			return nil
		})

	return &BackendClient{
		client:  restyClient,
		limiter: limiter,
	}
}

// networkError wraps a transport failure or an unusable status
func networkError(method, path string, status int, err error) error {
	return &domain.NetworkError{Op: method, URL: path, Status: status, Err: err}
}

func (c *BackendClient) UserList(ctx context.Context) []domain.UserProfile {
	var users []domain.UserProfile
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&users).
		Get("/api/user_list")
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load user list", zap.Error(err))
		return []domain.UserProfile{}
	}
	if resp.StatusCode() != http.StatusOK || users == nil {
		return []domain.UserProfile{}
	}

	for i := range users {
		users[i].Address = domain.NormalizeAddress(users[i].Address)
	}
	return users
}

func (c *BackendClient) User(ctx context.Context, address string) (*domain.UserProfile, error) {
	path := "/api/user/" + domain.NormalizeAddress(address)

	var user domain.UserProfile
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&user).
		Get(path)
	if err != nil {
		return nil, networkError(http.MethodGet, path, 0, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		if user.Address == "" {
			user.Address = address
		}
		user.Address = domain.NormalizeAddress(user.Address)
		return &user, nil
	case http.StatusNotFound, http.StatusNoContent:
		return nil, nil
	default:
		return nil, networkError(http.MethodGet, path, resp.StatusCode(), nil)
	}
}

func (c *BackendClient) Favorites(ctx context.Context, address string) ([]domain.FavoriteRecord, error) {
	path := "/api/favorite/" + domain.NormalizeAddress(address)

	var favorites []domain.FavoriteRecord
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&favorites).
		Get(path)
	if err != nil {
		return nil, networkError(http.MethodGet, path, 0, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, networkError(http.MethodGet, path, resp.StatusCode(), nil)
	}

	if favorites == nil {
		favorites = []domain.FavoriteRecord{}
	}
	return favorites, nil
}

func (c *BackendClient) AddFavorite(ctx context.Context, viewer string, id domain.TokenIdentity) error {
	return c.mutateFavorite(ctx, domain.FavoriteOpAdd, viewer, id)
}

func (c *BackendClient) RemoveFavorite(ctx context.Context, viewer string, id domain.TokenIdentity) error {
	return c.mutateFavorite(ctx, domain.FavoriteOpRemove, viewer, id)
}

func (c *BackendClient) mutateFavorite(ctx context.Context, op domain.FavoriteOp, viewer string, id domain.TokenIdentity) error {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(favoriteBody{
			Collection:  id.Collection,
			UserAddress: domain.NormalizeAddress(viewer),
			TokenID:     id.TokenID,
		})

	var (
		resp     *resty.Response
		err      error
		method   string
		expected int
	)
	if op == domain.FavoriteOpAdd {
		method, expected = http.MethodPost, http.StatusCreated
		resp, err = req.Post("/api/favorite")
	} else {
		method, expected = http.MethodDelete, http.StatusOK
		resp, err = req.Delete("/api/favorite")
	}

	if err != nil {
		return &domain.FavoriteError{
			Op:       op,
			Identity: id,
			Err:      networkError(method, "/api/favorite", 0, err),
		}
	}
	if resp.StatusCode() != expected {
		return &domain.FavoriteError{Op: op, Identity: id, Status: resp.StatusCode()}
	}

	logger.InfoCtx(ctx, "Favorite updated",
		zap.String("op", string(op)),
		zap.String("token", id.String()))
	return nil
}

func (c *BackendClient) Launchpads(ctx context.Context) ([]domain.Launchpad, error) {
	var launchpads []domain.Launchpad
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&launchpads).
		Get("/api/launchpad")
	if err != nil {
		return nil, networkError(http.MethodGet, "/api/launchpad", 0, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, networkError(http.MethodGet, "/api/launchpad", resp.StatusCode(), nil)
	}

	if launchpads == nil {
		launchpads = []domain.Launchpad{}
	}
	return launchpads, nil
}

func (c *BackendClient) Launchpad(ctx context.Context, id string) (*LaunchpadDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("launchpad id is required")
	}
	path := "/api/launchpad/" + id

	var detail LaunchpadDetail
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&detail).
		Get(path)
	if err != nil {
		return nil, networkError(http.MethodGet, path, 0, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, networkError(http.MethodGet, path, resp.StatusCode(), nil)
	}
	if detail.Launchpad == nil {
		return nil, nil
	}

	detail.Launchpad.VolumeTraded = detail.Volumes.Sum / 10000
	detail.Launchpad.Owners = detail.Volumes.Count
	return &detail, nil
}
