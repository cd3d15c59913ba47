package book

import (
	"fmt"
	"sync"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
	reportv1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/report/v1"
	scenariov1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/scenario/v1"
)

// Store holds the bid and ask collections for a single matching run.
type Store struct {
	mu   sync.RWMutex
	bids quotev1.Collection
	asks quotev1.Collection
}

// Build parses one raw side into a quote collection. Every key must
// carry the venue-fee delimiter and a numeric fee segment; one bad key
// fails the whole build.
func Build(raw quotev1.RawBook) (quotev1.Collection, error) {
	collection := make(quotev1.Collection, len(raw))
	for key, entry := range raw {
		venue, feeRate, err := quotev1.ParseKey(key)
		if err != nil {
			return nil, fmt.Errorf("build quote %q: %w", key, err)
		}
		collection[key] = quotev1.NewQuote(venue, feeRate, entry.Price, entry.Volume)
	}
	return collection, nil
}

// NewStore builds both sides of a scenario into a store.
func NewStore(scenario *scenariov1.Scenario) (*Store, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}

	bids, err := Build(scenario.Bids)
	if err != nil {
		return nil, fmt.Errorf("bids: %w", err)
	}

	asks, err := Build(scenario.Asks)
	if err != nil {
		return nil, fmt.Errorf("asks: %w", err)
	}

	return &Store{
		bids: bids,
		asks: asks,
	}, nil
}

// Bids returns the live bid collection. The matcher mutates it in place
// for the duration of a run.
func (s *Store) Bids() quotev1.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bids
}

// Asks returns the live ask collection. The matcher mutates it in place
// for the duration of a run.
func (s *Store) Asks() quotev1.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.asks
}

// BidTotalVolume returns total bid volume.
func (s *Store) BidTotalVolume() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bids.TotalVolume()
}

// AskTotalVolume returns total ask volume.
func (s *Store) AskTotalVolume() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.asks.TotalVolume()
}

// Snapshot captures both sides as key-sorted copies for reporting.
func (s *Store) Snapshot() reportv1.Books {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return reportv1.Books{
		Bids: s.bids.Snapshot(),
		Asks: s.asks.Snapshot(),
	}
}
