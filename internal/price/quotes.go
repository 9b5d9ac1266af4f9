package price

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/aliveland/market-aggregator/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// QuoteTable holds the USD value of each supported pay token for one session.
// It is written once per load and read by many concurrent enrichment calls.
type QuoteTable struct {
	mu          sync.RWMutex
	nativeToken string
	usd         map[string]decimal.Decimal
}

// NewQuoteTable creates a quote table. nativeToken is the pay token volumes are expressed in.
func NewQuoteTable(nativeToken string, quotes []domain.PriceQuote) *QuoteTable {
	t := &QuoteTable{
		nativeToken: domain.NormalizeAddress(nativeToken),
		usd:         make(map[string]decimal.Decimal),
	}
	t.Set(quotes)
	return t
}

// Set replaces the quotes held by the table
func (t *QuoteTable) Set(quotes []domain.PriceQuote) {
	usd := make(map[string]decimal.Decimal, len(quotes))
	for _, q := range quotes {
		usd[domain.NormalizeAddress(q.PayToken)] = q.USD
	}

	t.mu.Lock()
	t.usd = usd
	t.mu.Unlock()
}

// Loaded reports whether any quote is present
func (t *QuoteTable) Loaded() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.usd) > 0
}

// Quotes returns the quotes sorted by pay token
func (t *QuoteTable) Quotes() []domain.PriceQuote {
	t.mu.RLock()
	defer t.mu.RUnlock()

	quotes := make([]domain.PriceQuote, 0, len(t.usd))
	for token, usd := range t.usd {
		quotes = append(quotes, domain.PriceQuote{PayToken: token, USD: usd})
	}
	sort.Slice(quotes, func(i, j int) bool {
		return quotes[i].PayToken < quotes[j].PayToken
	})
	return quotes
}

// USD returns the USD value of one unit of the pay token, zero if unknown
func (t *QuoteTable) USD(payToken string) decimal.Decimal {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.usd[domain.NormalizeAddress(payToken)]
}

// ToUSD values a display amount of a pay token in USD
func (t *QuoteTable) ToUSD(display decimal.Decimal, payToken string) decimal.Decimal {
	return display.Mul(t.USD(payToken))
}

// ToNative converts a USD value into native token units rounded to 2 decimals.
// Without a native quote the USD value is used as is.
func (t *QuoteTable) ToNative(usd decimal.Decimal) decimal.Decimal {
	native := t.USD(t.nativeToken)
	if native.IsZero() {
		native = decimal.NewFromInt(1)
	}
	return usd.Mul(hundred).Div(native).Round(0).Div(hundred)
}

// NativeToken returns the pay token volumes are expressed in
func (t *QuoteTable) NativeToken() string {
	return t.nativeToken
}
