package quotev1

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// KeyDelimiter separates the venue segment from the fee segment in a
// composite quote key such as "ex1-0.00024".
const KeyDelimiter = "-"

var (
	// ErrMissingDelimiter is returned when a composite quote key has no delimiter.
	ErrMissingDelimiter = errors.New("quote key has no delimiter")
	// ErrInvalidFeeRate is returned when the fee segment of a composite quote key is not numeric.
	ErrInvalidFeeRate = errors.New("quote key fee segment is not numeric")
)

// Quote is one venue's standing offer on a single side of the market.
type Quote struct {
	Venue   string  `json:"venue"`
	FeeRate float64 `json:"fee_rate"`
	Price   float64 `json:"price"`
	Volume  int64   `json:"volume"`
}

// RawQuote is the (price, volume) pair supplied for one composite key.
type RawQuote struct {
	Price  float64 `json:"price" yaml:"price"`
	Volume int64   `json:"volume" yaml:"volume"`
}

// RawBook maps composite quote keys to raw quotes for one side of the market.
type RawBook map[string]RawQuote

// NewQuote creates a new Quote from an already-decomposed key.
func NewQuote(venue string, feeRate, price float64, volume int64) *Quote {
	return &Quote{
		Venue:   venue,
		FeeRate: feeRate,
		Price:   price,
		Volume:  volume,
	}
}

// ParseKey decomposes a composite quote key into its venue and fee rate.
// The key splits on the first delimiter and the remainder must parse as a
// real number; anything else is a construction error, never a skip.
func ParseKey(key string) (string, float64, error) {
	venue, feeSegment, found := strings.Cut(key, KeyDelimiter)
	if !found {
		return "", 0, fmt.Errorf("%w: %q", ErrMissingDelimiter, key)
	}

	feeRate, err := strconv.ParseFloat(feeSegment, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidFeeRate, key)
	}

	return venue, feeRate, nil
}

// IsExhausted returns true if the quote has no remaining volume.
func (q *Quote) IsExhausted() bool {
	return q.Volume <= 0
}

// BuyCost returns what one unit actually costs at this quote, fees included.
func (q *Quote) BuyCost() float64 {
	return q.Price * (1 + q.FeeRate)
}

// SellProceeds returns what one unit actually yields at this quote, fees included.
func (q *Quote) SellProceeds() float64 {
	return q.Price * (1 - q.FeeRate)
}

// Matches returns true if the quote is the one identified by venue, fee rate and price.
func (q *Quote) Matches(venue string, feeRate, price float64) bool {
	return q.Venue == venue && q.FeeRate == feeRate && q.Price == price
}
