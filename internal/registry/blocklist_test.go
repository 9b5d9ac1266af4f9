package registry_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/mocks"
	"github.com/aliveland/market-aggregator/internal/registry"
)

const (
	blocked = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	allowed = "0x52908400098527886E0F7030069857D2E4169EE7"
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

func realUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func TestBlocklistLoader_Load(t *testing.T) {
	tests := []struct {
		name         string
		setupMocks   func(*mocks.MockFileSystem, *mocks.MockJSON)
		expectedErr  string // Error message to assert, empty means no error expected
		validateFunc func(t *testing.T, bl registry.Blocklist)
	}{
		{
			name: "successful load keeps the configured chain",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return([]byte(`{
					"137": ["`+strings.ToLower(blocked)+`"],
					"80002": ["`+allowed+`"]
				}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(realUnmarshal)
			},
			validateFunc: func(t *testing.T, bl registry.Blocklist) {
				assert.Equal(t, 1, bl.Len())
				assert.True(t, bl.IsBlocked(blocked))
				assert.True(t, bl.IsBlocked(strings.ToUpper(blocked[2:])))
				assert.False(t, bl.IsBlocked(allowed))
				assert.False(t, bl.IsBlocked("not-an-address"))
			},
		},
		{
			name: "invalid entries are skipped",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return([]byte(`{"137": ["0x123", "`+blocked+`"]}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(realUnmarshal)
			},
			validateFunc: func(t *testing.T, bl registry.Blocklist) {
				assert.Equal(t, 1, bl.Len())
				assert.True(t, bl.IsBlocked(blocked))
			},
		},
		{
			name: "empty blocklist",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return([]byte(`{}`), nil)
				mockJSON.
					EXPECT().
					Unmarshal(gomock.Any(), gomock.Any()).
					DoAndReturn(realUnmarshal)
			},
			validateFunc: func(t *testing.T, bl registry.Blocklist) {
				assert.Equal(t, 0, bl.Len())
				assert.False(t, bl.IsBlocked(blocked))
			},
		},
		{
			name: "file read error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return(nil, assert.AnError)
			},
			expectedErr: "failed to read blocklist file",
		},
		{
			name: "JSON parse error",
			setupMocks: func(mockFS *mocks.MockFileSystem, mockJSON *mocks.MockJSON) {
				raw := []byte(`invalid json`)
				mockFS.
					EXPECT().
					ReadFile("blocklist.json").
					Return(raw, nil)
				mockJSON.
					EXPECT().
					Unmarshal(raw, gomock.Any()).
					Return(assert.AnError)
			},
			expectedErr: "failed to parse blocklist JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockFS := mocks.NewMockFileSystem(ctrl)
			mockJSON := mocks.NewMockJSON(ctrl)
			tt.setupMocks(mockFS, mockJSON)

			bl, err := registry.NewBlocklistLoader(mockFS, mockJSON).Load("blocklist.json", domain.ChainPolygonMainnet)
			if tt.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr)
				return
			}
			require.NoError(t, err)
			tt.validateFunc(t, bl)
		})
	}
}

func TestEmptyBlocklist(t *testing.T) {
	bl := registry.EmptyBlocklist()
	assert.Equal(t, 0, bl.Len())
	assert.False(t, bl.IsBlocked(blocked))
}
