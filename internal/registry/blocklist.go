package registry

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
)

// Blocklist hides moderated collections from every listing
//
//go:generate mockgen -source=blocklist.go -destination=../mocks/blocklist.go -package=mocks -mock_names=Blocklist=MockBlocklist
type Blocklist interface {
	// IsBlocked checks if a collection address is blocked on the configured chain
	IsBlocked(collection string) bool

	// Len returns the number of blocked collections
	Len() int
}

// BlocklistData represents the structure of the blocklist.json file
// Key format: "<chain id>" -> list of collection addresses
type BlocklistData map[string][]string

// blocklist is the internal implementation of Blocklist
type blocklist struct {
	// checksummed address -> true
	collections map[string]bool
}

// EmptyBlocklist returns a blocklist that blocks nothing
func EmptyBlocklist() Blocklist {
	return &blocklist{collections: map[string]bool{}}
}

// IsBlocked checks if a collection address is blocked on the configured chain
func (b *blocklist) IsBlocked(collection string) bool {
	if b == nil || len(b.collections) == 0 || !domain.IsValidAddress(collection) {
		return false
	}
	return b.collections[domain.NormalizeAddress(collection)]
}

// Len returns the number of blocked collections
func (b *blocklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.collections)
}

// BlocklistLoader reads a blocklist file
type BlocklistLoader struct {
	fs   adapter.FileSystem
	json adapter.JSON
}

// NewBlocklistLoader creates a new blocklist loader
func NewBlocklistLoader(fs adapter.FileSystem, json adapter.JSON) *BlocklistLoader {
	return &BlocklistLoader{fs: fs, json: json}
}

// Load reads the blocklist file and keeps the entries of chainID.
// Entries that are not addresses are skipped.
func (l *BlocklistLoader) Load(filePath string, chainID domain.Chain) (Blocklist, error) {
	raw, err := l.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read blocklist file: %w", err)
	}

	var data BlocklistData
	if err := l.json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse blocklist JSON: %w", err)
	}

	bl := &blocklist{collections: make(map[string]bool)}
	chainKey := strconv.FormatInt(int64(chainID), 10)
	for key, addresses := range data {
		if strings.TrimSpace(key) != chainKey {
			continue
		}
		for _, addr := range addresses {
			if !domain.IsValidAddress(addr) {
				logger.Warn("Skipping invalid blocklist entry", zap.String("entry", addr))
				continue
			}
			bl.collections[domain.NormalizeAddress(addr)] = true
		}
	}

	return bl, nil
}
