package price

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aliveland/market-aggregator/internal/domain"
)

// Normalizer converts raw on-chain amounts into display decimals and back.
// The decimals table is fixed per chain deployment: the configured stablecoins use
// 6 decimals, every other pay token (including unknown or empty ones) uses 18.
type Normalizer struct {
	decimals map[string]int32
}

// NewNormalizer creates a normalizer for the given 6-decimal stablecoin addresses
func NewNormalizer(stablecoins []string) *Normalizer {
	decimals := make(map[string]int32, len(stablecoins))
	for _, token := range stablecoins {
		if strings.TrimSpace(token) == "" {
			continue
		}
		decimals[domain.NormalizeAddress(token)] = domain.STABLECOIN_TOKEN_DECIMALS
	}
	return &Normalizer{decimals: decimals}
}

// Decimals returns the number of decimal places of a pay token
func (n *Normalizer) Decimals(payToken string) int32 {
	if d, ok := n.decimals[domain.NormalizeAddress(payToken)]; ok {
		return d
	}
	return domain.DEFAULT_TOKEN_DECIMALS
}

// ToDisplay converts a raw integer amount into its display decimal.
// A nil amount is treated as zero.
func (n *Normalizer) ToDisplay(raw *big.Int, payToken string) decimal.Decimal {
	if raw == nil || raw.Sign() == 0 {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -n.Decimals(payToken))
}

// ToRaw converts a display decimal into the integer amount expected by the contracts.
// Digits below the token precision are truncated.
func (n *Normalizer) ToRaw(display decimal.Decimal, payToken string) *big.Int {
	if display.IsZero() {
		return big.NewInt(0)
	}
	return display.Shift(n.Decimals(payToken)).Truncate(0).BigInt()
}

// ParseRaw parses a base-10 integer amount as delivered by the subgraph.
// Empty or malformed input yields zero.
func ParseRaw(value string) *big.Int {
	value = strings.TrimSpace(value)
	if value == "" {
		return big.NewInt(0)
	}
	n, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return big.NewInt(0)
	}
	return n
}
