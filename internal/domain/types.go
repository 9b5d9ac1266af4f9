package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Chain represents the EVM chain id the marketplace contracts are deployed on
type Chain int64

const (
	ChainPolygonMainnet Chain = 137
	ChainPolygonAmoy    Chain = 80002
)

// IsValidChain checks if a chain is supported
func IsValidChain(chain Chain) bool {
	return chain == ChainPolygonMainnet || chain == ChainPolygonAmoy
}

// NFTType represents the collection token standard as reported by the subgraph
type NFTType string

const (
	NFTTypeERC721  NFTType = "ERC721"
	NFTTypeERC1155 NFTType = "ERC1155"
)

// MetadataSelector returns the contract function holding the token metadata pointer.
// Anything that is not ERC721 is read through the ERC1155 selector.
func (t NFTType) MetadataSelector() string {
	if t == NFTTypeERC721 {
		return "tokenURI"
	}
	return "uri"
}

// SupplySelector returns the contract function holding the collection item count
func (t NFTType) SupplySelector() string {
	if t == NFTTypeERC721 {
		return "totalSupply"
	}
	return "totalItems"
}

// MediaType represents the media category declared in token metadata
type MediaType string

const (
	MediaTypeArt   MediaType = "art"
	MediaTypeImage MediaType = "image"
	MediaTypeGif   MediaType = "gif"
	MediaTypeVideo MediaType = "video"
	MediaTypeMusic MediaType = "music"
)

// IsValidMediaType checks if a media type is one of the marketplace categories
func IsValidMediaType(mediaType MediaType) bool {
	switch mediaType {
	case MediaTypeArt, MediaTypeImage, MediaTypeGif, MediaTypeVideo, MediaTypeMusic:
		return true
	default:
		return false
	}
}

// NormalizeAddress returns the EIP-55 checksummed form of an address.
// An empty address normalizes to the zero address.
func NormalizeAddress(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ETHEREUM_ZERO_ADDRESS
	}
	return common.HexToAddress(address).Hex()
}

// IsValidAddress checks if the string is a hex encoded 20-byte address
func IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

// SameAddress compares two addresses case-insensitively after checksum normalization
func SameAddress(a, b string) bool {
	return NormalizeAddress(a) == NormalizeAddress(b)
}

// IsZeroAddress checks if the address is empty or the zero address
func IsZeroAddress(address string) bool {
	return NormalizeAddress(address) == ETHEREUM_ZERO_ADDRESS
}

// TruncateAddress shortens a checksummed address to 0x1234...abcd
func TruncateAddress(address string) string {
	addr := NormalizeAddress(address)
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// NormalizeTokenID returns the canonical decimal form of a token id.
// Returns the trimmed input unchanged if it is not a base-10 integer.
func NormalizeTokenID(tokenID string) string {
	tokenID = strings.TrimSpace(tokenID)
	n, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return tokenID
	}
	return n.String()
}

// TokenIdentity is the join key shared by the chain, the subgraph and the backend
type TokenIdentity struct {
	Collection string `json:"collection"`
	TokenID    string `json:"token_id"`
}

// NewTokenIdentity creates a normalized token identity
func NewTokenIdentity(collection, tokenID string) TokenIdentity {
	return TokenIdentity{
		Collection: NormalizeAddress(collection),
		TokenID:    NormalizeTokenID(tokenID),
	}
}

// ParseTokenIdentity parses and validates a collection address and a token id
func ParseTokenIdentity(collection, tokenID string) (TokenIdentity, error) {
	if !IsValidAddress(collection) {
		return TokenIdentity{}, fmt.Errorf("%w: %s", ErrInvalidAddress, collection)
	}
	n, ok := new(big.Int).SetString(strings.TrimSpace(tokenID), 10)
	if !ok || n.Sign() < 0 {
		return TokenIdentity{}, fmt.Errorf("%w: %s", ErrInvalidTokenID, tokenID)
	}
	return TokenIdentity{
		Collection: NormalizeAddress(collection),
		TokenID:    n.String(),
	}, nil
}

// Valid checks the identity carries a usable collection and token id
func (t TokenIdentity) Valid() bool {
	if !IsValidAddress(t.Collection) || IsZeroAddress(t.Collection) {
		return false
	}
	_, ok := new(big.Int).SetString(t.TokenID, 10)
	return ok
}

// TokenNumber returns the token id as a big integer
func (t TokenIdentity) TokenNumber() (*big.Int, bool) {
	return new(big.Int).SetString(t.TokenID, 10)
}

func (t TokenIdentity) String() string {
	return t.Collection + ":" + t.TokenID
}
