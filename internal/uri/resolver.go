package uri

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/logger"
)

var (
	ErrEmptyPointer      = errors.New("empty metadata pointer")
	ErrUnsupportedScheme = errors.New("unsupported uri scheme")
)

// Resolver defines the interface for resolving metadata pointers
//
//go:generate mockgen -source=resolver.go -destination=../mocks/uri_resolver.go -package=mocks -mock_names=Resolver=MockURIResolver
type Resolver interface {
	// Resolve turns a metadata pointer into a fetchable URL.
	// ipfs:// pointers go through the content gateway; when public fallback
	// gateways are configured every candidate is probed with a HEAD request
	// and the first reachable one wins.
	Resolve(ctx context.Context, pointer string) (string, error)
}

type resolver struct {
	httpClient adapter.HTTPClient
	gateway    *Gateway
	fallbacks  []string
}

func NewResolver(httpClient adapter.HTTPClient, gateway *Gateway, fallbacks []string) Resolver {
	return &resolver{
		httpClient: httpClient,
		gateway:    gateway,
		fallbacks:  fallbacks,
	}
}

func (r *resolver) Resolve(ctx context.Context, pointer string) (string, error) {
	pointer = strings.TrimSpace(pointer)
	if pointer == "" {
		return "", ErrEmptyPointer
	}

	if IsIPFS(pointer) {
		primary := r.gateway.URL(pointer, 0, 0, FitNone)
		if len(r.fallbacks) == 0 {
			return primary, nil
		}

		path := strings.TrimPrefix(pointer, ipfsScheme)
		candidates := []string{primary}
		for _, gw := range r.fallbacks {
			candidates = append(candidates, fmt.Sprintf("%s/ipfs/%s", strings.TrimRight(gw, "/"), path))
		}
		return r.firstReachable(ctx, candidates)
	}

	if strings.HasPrefix(pointer, "https://") || strings.HasPrefix(pointer, "http://") {
		return pointer, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, pointer)
}

// firstReachable probes all candidates in parallel and returns the first one answering 200
func (r *resolver) firstReachable(ctx context.Context, candidates []string) (string, error) {
	type result struct {
		url string
		err error
	}

	resultCh := make(chan result, len(candidates))
	var wg sync.WaitGroup

	for _, candidate := range candidates {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()

			resp, err := r.httpClient.Head(ctx, url)
			if err != nil {
				resultCh <- result{err: err}
				return
			}
			if err := resp.Body.Close(); err != nil {
				logger.WarnCtx(ctx, "failed to close response body", zap.Error(err), zap.String("url", url))
			}

			if resp.StatusCode == http.StatusOK {
				resultCh <- result{url: url}
			} else {
				resultCh <- result{err: fmt.Errorf("gateway returned status %d", resp.StatusCode)}
			}
		}(candidate)
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for res := range resultCh {
		if res.err == nil {
			logger.DebugCtx(ctx, "Found working IPFS gateway", zap.String("url", res.url))
			return res.url, nil
		}
	}

	return "", fmt.Errorf("no working IPFS gateway found among %d candidates", len(candidates))
}
