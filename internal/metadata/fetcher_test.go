package metadata_test

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/metadata"
	"github.com/aliveland/market-aggregator/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testFetcherMocks contains all the mocks needed for testing the fetcher
type testFetcherMocks struct {
	ctrl        *gomock.Controller
	httpClient  *mocks.MockHTTPClient
	uriResolver *mocks.MockURIResolver
	fetcher     metadata.Fetcher
}

func setupTestFetcher(t *testing.T) *testFetcherMocks {
	ctrl := gomock.NewController(t)

	tm := &testFetcherMocks{
		ctrl:        ctrl,
		httpClient:  mocks.NewMockHTTPClient(ctrl),
		uriResolver: mocks.NewMockURIResolver(ctrl),
	}
	tm.fetcher = metadata.NewFetcher(tm.httpClient, tm.uriResolver, adapter.NewJSON(), time.Minute)

	return tm
}

func TestFetcher_Token(t *testing.T) {
	tm := setupTestFetcher(t)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	tm.uriResolver.EXPECT().
		Resolve(gomock.Any(), "ipfs://QmMeta/1.json").
		Return("https://gw/ipfs/QmMeta/1.json?pinataGatewayToken=k", nil).
		Times(1)
	tm.httpClient.EXPECT().
		GetBytes(gomock.Any(), "https://gw/ipfs/QmMeta/1.json?pinataGatewayToken=k").
		Return([]byte(`{"name":"Sunrise","description":"first light","image":"ipfs://QmImg","mediaType":"image","royalty":"2.5"}`), nil).
		Times(1)

	meta, err := tm.fetcher.Token(ctx, "ipfs://QmMeta/1.json", "1")
	require.NoError(t, err)
	assert.Equal(t, "Sunrise", meta.Name)
	assert.Equal(t, "first light", meta.Description)
	assert.Equal(t, "ipfs://QmImg", meta.Image)
	assert.Equal(t, domain.MediaTypeImage, meta.MediaType)
	assert.Equal(t, 2.5, meta.Royalty)

	// served from cache
	again, err := tm.fetcher.Token(ctx, "ipfs://QmMeta/1.json", "1")
	require.NoError(t, err)
	assert.Equal(t, meta, again)
}

func TestFetcher_Token_DetectsMediaType(t *testing.T) {
	tm := setupTestFetcher(t)
	defer tm.ctrl.Finish()

	tm.uriResolver.EXPECT().Resolve(gomock.Any(), "https://meta.example/7").Return("https://meta.example/7", nil)
	tm.httpClient.EXPECT().
		GetBytes(gomock.Any(), "https://meta.example/7").
		Return([]byte(`{"name":"Loop","image":"https://img.example/7","royalty":5}`), nil)
	tm.uriResolver.EXPECT().Resolve(gomock.Any(), "https://img.example/7").Return("https://img.example/7", nil)
	tm.httpClient.EXPECT().
		GetPartialContent(gomock.Any(), "https://img.example/7", gomock.Any()).
		Return([]byte("GIF89a\x01\x00\x01\x00\x00\x00\x00"), nil)

	meta, err := tm.fetcher.Token(context.Background(), "https://meta.example/7", "7")
	require.NoError(t, err)
	assert.Equal(t, domain.MediaTypeGif, meta.MediaType)
	assert.Equal(t, float64(5), meta.Royalty)
}

func TestFetcher_Token_ERC1155Placeholder(t *testing.T) {
	tm := setupTestFetcher(t)
	defer tm.ctrl.Finish()

	expected := "https://meta.example/000000000000000000000000000000000000000000000000000000000000001a.json"
	tm.uriResolver.EXPECT().Resolve(gomock.Any(), expected).Return(expected, nil)
	tm.httpClient.EXPECT().GetBytes(gomock.Any(), expected).Return([]byte(`{"name":"Edition","mediaType":"music"}`), nil)

	meta, err := tm.fetcher.Token(context.Background(), "https://meta.example/{id}.json", "26")
	require.NoError(t, err)
	assert.Equal(t, domain.MediaTypeMusic, meta.MediaType)
}

func TestFetcher_Token_DataURI(t *testing.T) {
	tm := setupTestFetcher(t)
	defer tm.ctrl.Finish()

	payload := base64.StdEncoding.EncodeToString([]byte(`{"name":"On chain","mediaType":"art"}`))
	meta, err := tm.fetcher.Token(context.Background(), "data:application/json;base64,"+payload, "1")
	require.NoError(t, err)
	assert.Equal(t, "On chain", meta.Name)
	assert.Equal(t, domain.MediaTypeArt, meta.MediaType)
}

func TestFetcher_Token_FetchError(t *testing.T) {
	tm := setupTestFetcher(t)
	defer tm.ctrl.Finish()

	netErr := &domain.NetworkError{Op: "GET", URL: "https://gw/x", Status: 504}
	tm.uriResolver.EXPECT().Resolve(gomock.Any(), "ipfs://QmX").Return("https://gw/x", nil)
	tm.httpClient.EXPECT().GetBytes(gomock.Any(), "https://gw/x").Return(nil, netErr)

	_, err := tm.fetcher.Token(context.Background(), "ipfs://QmX", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, netErr))
	assert.Equal(t, domain.ErrorKindNetwork, domain.Classify(err))
}

func TestFetcher_Collection(t *testing.T) {
	tm := setupTestFetcher(t)
	defer tm.ctrl.Finish()

	tm.uriResolver.EXPECT().Resolve(gomock.Any(), "ipfs://QmCol").Return("https://gw/QmCol", nil)
	tm.httpClient.EXPECT().
		GetBytes(gomock.Any(), "https://gw/QmCol").
		Return([]byte(`{"name":"Dawn","symbol":"DWN","description":"d","banner":"ipfs://QmB","icon":"ipfs://QmI"}`), nil)

	meta, err := tm.fetcher.Collection(context.Background(), "ipfs://QmCol")
	require.NoError(t, err)
	assert.Equal(t, &metadata.CollectionMetadata{
		Name:        "Dawn",
		Symbol:      "DWN",
		Description: "d",
		Banner:      "ipfs://QmB",
		Icon:        "ipfs://QmI",
	}, meta)
}

func TestMediaTypeFromMime(t *testing.T) {
	tests := []struct {
		mime     string
		expected domain.MediaType
	}{
		{mime: "image/gif", expected: domain.MediaTypeGif},
		{mime: "image/png", expected: domain.MediaTypeImage},
		{mime: "video/mp4", expected: domain.MediaTypeVideo},
		{mime: "audio/mpeg", expected: domain.MediaTypeMusic},
		{mime: "text/html; charset=utf-8", expected: domain.MediaTypeArt},
		{mime: "", expected: domain.MediaTypeArt},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.expected, metadata.MediaTypeFromMime(tt.mime))
		})
	}
}
