package matcher

import (
	"fmt"
	"sync"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
)

// Config controls how the matcher scans the books.
type Config struct {
	// ScanWorkers caps the goroutines used for the read-only scan phase.
	// Values below 2 keep the scan fully sequential.
	ScanWorkers int
}

// Matcher executes greedy cross-venue matching runs over a pair of
// quote collections.
type Matcher struct {
	config Config
}

// NewMatcher creates a new matcher.
func NewMatcher(config Config) *Matcher {
	if config.ScanWorkers < 1 {
		config.ScanWorkers = 1
	}

	return &Matcher{
		config: config,
	}
}

// candidate is one profitable ask/bid pairing found during a scan. The
// volume is fixed at selection time, before either side mutates.
type candidate struct {
	askKey        string
	bidKey        string
	ask           *quotev1.Quote
	bid           *quotev1.Quote
	profitPerUnit float64
	volume        int64
}

// better reports whether c wins against current. Higher profit per unit
// wins; equal profit falls back to the smallest (ask key, bid key), so a
// tie is never taken from the pair that holds it.
func (c candidate) better(current candidate) bool {
	if c.profitPerUnit != current.profitPerUnit {
		return c.profitPerUnit > current.profitPerUnit
	}
	if c.askKey != current.askKey {
		return c.askKey < current.askKey
	}
	return c.bidKey < current.bidKey
}

// Match repeatedly executes the single most profitable cross-venue
// pairing until no pairing yields a positive profit per unit. Both
// collections are mutated in place: each trade subtracts its volume from
// the exact ask and bid involved, located by venue, fee rate and price.
// The returned trades preserve execution order.
func (m *Matcher) Match(asks, bids quotev1.Collection) (quotev1.Trades, error) {
	if asks == nil || bids == nil {
		return nil, quotev1.ErrNilCollection
	}

	trades := quotev1.Trades{}
	for {
		best, found := m.bestPair(asks, bids)
		if !found {
			break
		}

		trade := quotev1.NewTrade(best.ask, best.bid, best.volume, best.profitPerUnit)

		if err := asks.Reduce(best.ask.Venue, best.ask.FeeRate, best.ask.Price, best.volume); err != nil {
			return trades, fmt.Errorf("apply ask leg: %w", err)
		}
		if err := bids.Reduce(best.bid.Venue, best.bid.FeeRate, best.bid.Price, best.volume); err != nil {
			return trades, fmt.Errorf("apply bid leg: %w", err)
		}

		trades = append(trades, trade)
	}

	return trades, nil
}

// bestPair runs one full scan over the books and returns the winning
// pairing, if any pairing is profitable at all.
func (m *Matcher) bestPair(asks, bids quotev1.Collection) (candidate, bool) {
	askKeys := asks.Keys()
	bidKeys := bids.Keys()

	if m.config.ScanWorkers < 2 || len(askKeys) < m.config.ScanWorkers {
		return m.scanPartition(askKeys, asks, bids, bidKeys)
	}

	return m.parallelScan(askKeys, asks, bids, bidKeys)
}

// scanPartition reduces the given ask keys against every bid to a local
// best candidate. The scan is read-only, so disjoint partitions can run
// concurrently.
func (m *Matcher) scanPartition(askKeys []string, asks, bids quotev1.Collection, bidKeys []string) (candidate, bool) {
	var best candidate
	var found bool

	for _, askKey := range askKeys {
		ask := asks[askKey]
		if ask.IsExhausted() {
			continue
		}

		cost := ask.BuyCost()
		for _, bidKey := range bidKeys {
			bid := bids[bidKey]
			if bid.IsExhausted() || bid.Venue == ask.Venue {
				continue
			}

			profitPerUnit := bid.SellProceeds() - cost
			if profitPerUnit <= 0 {
				continue
			}

			next := candidate{
				askKey:        askKey,
				bidKey:        bidKey,
				ask:           ask,
				bid:           bid,
				profitPerUnit: profitPerUnit,
				volume:        min(ask.Volume, bid.Volume),
			}
			if !found || next.better(best) {
				best = next
				found = true
			}
		}
	}

	return best, found
}

// parallelScan partitions the ask keys across the configured workers,
// each reducing a read-only local best, then merges the locals with the
// same total order the sequential scan uses. The winner is identical to
// the sequential scan's; only the search fans out.
func (m *Matcher) parallelScan(askKeys []string, asks, bids quotev1.Collection, bidKeys []string) (candidate, bool) {
	workers := m.config.ScanWorkers
	chunk := (len(askKeys) + workers - 1) / workers

	locals := make([]candidate, workers)
	founds := make([]bool, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, len(askKeys))
		if start >= end {
			break
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			locals[w], founds[w] = m.scanPartition(askKeys[start:end], asks, bids, bidKeys)
		}(w, start, end)
	}
	wg.Wait()

	var best candidate
	var found bool
	for w := 0; w < workers; w++ {
		if !founds[w] {
			continue
		}
		if !found || locals[w].better(best) {
			best = locals[w]
			found = true
		}
	}

	return best, found
}
