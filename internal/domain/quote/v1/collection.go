package quotev1

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNilCollection is returned when a matching run is handed a nil collection.
	ErrNilCollection = errors.New("quote collection is nil")
	// ErrQuoteNotFound is returned when no quote matches the given venue, fee rate and price.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrInsufficientVolume is returned when a reduction asks for more volume than a quote holds.
	ErrInsufficientVolume = errors.New("insufficient quote volume")
)

// Collection maps composite quote keys to quotes on one side of the market.
// Exhausted quotes stay in the collection; matching skips them.
type Collection map[string]*Quote

// Keys returns the collection's keys in ascending order.
func (c Collection) Keys() []string {
	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}

// Find returns the quote identified by venue, fee rate and price, or nil
// if no quote matches. Lookup is by content, not by key.
func (c Collection) Find(venue string, feeRate, price float64) *Quote {
	for _, quote := range c {
		if quote.Matches(venue, feeRate, price) {
			return quote
		}
	}

	return nil
}

// Reduce subtracts volume from the quote identified by venue, fee rate and
// price. The quote stays in the collection when it reaches zero; volume can
// never go negative.
func (c Collection) Reduce(venue string, feeRate, price float64, volume int64) error {
	quote := c.Find(venue, feeRate, price)
	if quote == nil {
		return fmt.Errorf("%w: venue %s price %f", ErrQuoteNotFound, venue, price)
	}

	if quote.Volume < volume {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientVolume, quote.Volume, volume)
	}

	quote.Volume -= volume

	return nil
}

// TotalVolume returns the summed remaining volume across all quotes.
func (c Collection) TotalVolume() int64 {
	var total int64
	for _, quote := range c {
		total += quote.Volume
	}

	return total
}

// Snapshot returns copies of the quotes ordered by key for stable display.
func (c Collection) Snapshot() Quotes {
	quotes := make(Quotes, 0, len(c))
	for _, key := range c.Keys() {
		quotes = append(quotes, *c[key])
	}

	return quotes
}
