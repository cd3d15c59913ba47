package matcher

import (
	"fmt"
	"math/rand"
	"testing"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference books drawn from a five-venue market snapshot. The greedy
// outcome for this data is known in full and pinned by the tests below.
func referenceAsks() quotev1.Collection {
	return quotev1.Collection{
		"ex1-0.00024": quotev1.NewQuote("ex1", 0.00024, 0.96, 50),
		"ex2-0.0005":  quotev1.NewQuote("ex2", 0.0005, 1.03, 8),
		"ex3-0.0002":  quotev1.NewQuote("ex3", 0.0002, 1.01, 2),
		"ex4-0.00025": quotev1.NewQuote("ex4", 0.00025, 1.04, 5),
		"ex5-0":       quotev1.NewQuote("ex5", 0, 0.96, 3),
	}
}

func referenceBids() quotev1.Collection {
	return quotev1.Collection{
		"ex1-0.00024": quotev1.NewQuote("ex1", 0.00024, 0.95, 10),
		"ex2-0.0005":  quotev1.NewQuote("ex2", 0.0005, 0.98, 10),
		"ex3-0.0002":  quotev1.NewQuote("ex3", 0.0002, 1.00, 5),
		"ex4-0.00025": quotev1.NewQuote("ex4", 0.00025, 1.02, 4),
		"ex5-0":       quotev1.NewQuote("ex5", 0, 0.94, 11),
	}
}

// Helper to deep-copy a collection so two runs can share input
func cloneCollection(c quotev1.Collection) quotev1.Collection {
	clone := make(quotev1.Collection, len(c))
	for key, quote := range c {
		copied := *quote
		clone[key] = &copied
	}
	return clone
}

// Helper to drop the random trade IDs before comparing sequences
func stripIDs(trades quotev1.Trades) quotev1.Trades {
	stripped := make(quotev1.Trades, len(trades))
	for i, trade := range trades {
		trade.ID = ""
		stripped[i] = trade
	}
	return stripped
}

// Helper to build deterministic wide books for equivalence tests
func createWideBooks(size int) (quotev1.Collection, quotev1.Collection) {
	rng := rand.New(rand.NewSource(7))

	asks := make(quotev1.Collection, size)
	bids := make(quotev1.Collection, size)
	for i := 0; i < size; i++ {
		venue := fmt.Sprintf("v%02d", i%12)
		feeRate := 0.0001 * float64(i)

		askKey := fmt.Sprintf("%s-%.4f", venue, feeRate)
		asks[askKey] = quotev1.NewQuote(venue, feeRate, 0.9+rng.Float64()*0.2, 1+rng.Int63n(20))

		bidKey := fmt.Sprintf("%s-%.4f", venue, feeRate)
		bids[bidKey] = quotev1.NewQuote(venue, feeRate, 0.9+rng.Float64()*0.2, 1+rng.Int63n(20))
	}
	return asks, bids
}

// Test 1: Constructor clamps the worker count
func TestNewMatcher(t *testing.T) {
	m := NewMatcher(Config{})
	assert.Equal(t, 1, m.config.ScanWorkers)

	m = NewMatcher(Config{ScanWorkers: -3})
	assert.Equal(t, 1, m.config.ScanWorkers)

	m = NewMatcher(Config{ScanWorkers: 4})
	assert.Equal(t, 4, m.config.ScanWorkers)
}

// Test 2: A single profitable pair drains both sides
func TestMatcher_SingleProfitablePair(t *testing.T) {
	asks := quotev1.Collection{
		"venueX-0": quotev1.NewQuote("venueX", 0, 1.00, 5),
	}
	bids := quotev1.Collection{
		"venueY-0": quotev1.NewQuote("venueY", 0, 1.10, 5),
	}

	trades, err := NewMatcher(Config{}).Match(asks, bids)

	require.NoError(t, err)
	require.Equal(t, 1, len(trades))

	trade := trades[0]
	assert.Equal(t, "venueX", trade.BuyVenue)
	assert.Equal(t, "venueY", trade.SellVenue)
	assert.Equal(t, int64(5), trade.Volume)
	assert.InDelta(t, 0.10, trade.ProfitPerUnit, 1e-9)
	assert.InDelta(t, 0.50, trade.NetProfit, 1e-9)
	assert.NotEmpty(t, trade.ID)

	// Both quotes stay in their collections, exhausted
	require.Contains(t, asks, "venueX-0")
	require.Contains(t, bids, "venueY-0")
	assert.Equal(t, int64(0), asks["venueX-0"].Volume)
	assert.Equal(t, int64(0), bids["venueY-0"].Volume)
}

// Test 3: The same venue never trades with itself
func TestMatcher_SameVenueExcluded(t *testing.T) {
	asks := quotev1.Collection{
		"alpha-0.001": quotev1.NewQuote("alpha", 0.001, 1.00, 5),
	}
	bids := quotev1.Collection{
		"alpha-0.002": quotev1.NewQuote("alpha", 0.002, 1.10, 5),
	}

	trades, err := NewMatcher(Config{}).Match(asks, bids)

	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.Equal(t, int64(5), asks["alpha-0.001"].Volume)
	assert.Equal(t, int64(5), bids["alpha-0.002"].Volume)
}

// Test 4: Partial fill leaves the larger side standing
func TestMatcher_PartialFill(t *testing.T) {
	asks := quotev1.Collection{
		"venueX-0": quotev1.NewQuote("venueX", 0, 1.00, 10),
	}
	bids := quotev1.Collection{
		"venueY-0": quotev1.NewQuote("venueY", 0, 1.10, 3),
	}

	trades, err := NewMatcher(Config{}).Match(asks, bids)

	require.NoError(t, err)
	require.Equal(t, 1, len(trades))
	assert.Equal(t, int64(3), trades[0].Volume)

	assert.Equal(t, int64(7), asks["venueX-0"].Volume)
	assert.Equal(t, int64(0), bids["venueY-0"].Volume)
}

// Test 5: Fees can erase an otherwise profitable spread
func TestMatcher_FeesEraseSpread(t *testing.T) {
	asks := quotev1.Collection{
		"venueX-0.05": quotev1.NewQuote("venueX", 0.05, 1.00, 5), // effective cost 1.05
	}
	bids := quotev1.Collection{
		"venueY-0.02": quotev1.NewQuote("venueY", 0.02, 1.04, 5), // effective proceeds 1.0192
	}

	trades, err := NewMatcher(Config{}).Match(asks, bids)

	require.NoError(t, err)
	assert.Empty(t, trades)
	assert.Equal(t, int64(5), asks["venueX-0.05"].Volume)
	assert.Equal(t, int64(5), bids["venueY-0.02"].Volume)
}

// Test 6: Degenerate input yields an empty run, not an error
func TestMatcher_DegenerateInput(t *testing.T) {
	m := NewMatcher(Config{})

	t.Run("Empty books", func(t *testing.T) {
		trades, err := m.Match(quotev1.Collection{}, quotev1.Collection{})

		require.NoError(t, err)
		assert.NotNil(t, trades)
		assert.Empty(t, trades)
	})

	t.Run("One side empty", func(t *testing.T) {
		asks := quotev1.Collection{
			"venueX-0": quotev1.NewQuote("venueX", 0, 1.00, 5),
		}

		trades, err := m.Match(asks, quotev1.Collection{})

		require.NoError(t, err)
		assert.Empty(t, trades)
		assert.Equal(t, int64(5), asks["venueX-0"].Volume)
	})

	t.Run("Only exhausted volume", func(t *testing.T) {
		asks := quotev1.Collection{
			"venueX-0": quotev1.NewQuote("venueX", 0, 1.00, 0),
		}
		bids := quotev1.Collection{
			"venueY-0": quotev1.NewQuote("venueY", 0, 1.10, 0),
		}

		trades, err := m.Match(asks, bids)

		require.NoError(t, err)
		assert.Empty(t, trades)
	})
}

// Test 7: Nil collections are rejected
func TestMatcher_NilCollections(t *testing.T) {
	m := NewMatcher(Config{})
	bids := quotev1.Collection{}

	_, err := m.Match(nil, bids)
	assert.ErrorIs(t, err, quotev1.ErrNilCollection)

	_, err = m.Match(bids, nil)
	assert.ErrorIs(t, err, quotev1.ErrNilCollection)
}

// Test 8: Full greedy run over the reference books
func TestMatcher_ReferenceBooks(t *testing.T) {
	asks := referenceAsks()
	bids := referenceBids()

	trades, err := NewMatcher(Config{}).Match(asks, bids)

	require.NoError(t, err)
	require.Equal(t, 4, len(trades))

	// Trade 1: the cheapest real cost (ex5 ask) sells into the richest bid (ex4)
	assert.Equal(t, "ex5", trades[0].BuyVenue)
	assert.Equal(t, "ex4", trades[0].SellVenue)
	assert.Equal(t, int64(3), trades[0].Volume)
	assert.InDelta(t, 0.059745, trades[0].ProfitPerUnit, 1e-9)
	assert.InDelta(t, 0.179235, trades[0].NetProfit, 1e-9)

	// Trade 2: ex1 takes the last unit of the ex4 bid
	assert.Equal(t, "ex1", trades[1].BuyVenue)
	assert.Equal(t, "ex4", trades[1].SellVenue)
	assert.Equal(t, int64(1), trades[1].Volume)
	assert.InDelta(t, 0.0595146, trades[1].ProfitPerUnit, 1e-9)

	// Trade 3: ex1 drains the ex3 bid
	assert.Equal(t, "ex1", trades[2].BuyVenue)
	assert.Equal(t, "ex3", trades[2].SellVenue)
	assert.Equal(t, int64(5), trades[2].Volume)
	assert.InDelta(t, 0.0395696, trades[2].ProfitPerUnit, 1e-9)
	assert.InDelta(t, 0.197848, trades[2].NetProfit, 1e-9)

	// Trade 4: ex1 drains the ex2 bid
	assert.Equal(t, "ex1", trades[3].BuyVenue)
	assert.Equal(t, "ex2", trades[3].SellVenue)
	assert.Equal(t, int64(10), trades[3].Volume)
	assert.InDelta(t, 0.0192796, trades[3].ProfitPerUnit, 1e-9)
	assert.InDelta(t, 0.192796, trades[3].NetProfit, 1e-9)

	assert.InDelta(t, 0.6293936, trades.TotalNetProfit(), 1e-9)
	assert.Equal(t, int64(19), trades.TotalVolume())

	// Remaining asks
	assert.Equal(t, int64(34), asks["ex1-0.00024"].Volume)
	assert.Equal(t, int64(8), asks["ex2-0.0005"].Volume)
	assert.Equal(t, int64(2), asks["ex3-0.0002"].Volume)
	assert.Equal(t, int64(5), asks["ex4-0.00025"].Volume)
	assert.Equal(t, int64(0), asks["ex5-0"].Volume)

	// Remaining bids
	assert.Equal(t, int64(10), bids["ex1-0.00024"].Volume)
	assert.Equal(t, int64(0), bids["ex2-0.0005"].Volume)
	assert.Equal(t, int64(0), bids["ex3-0.0002"].Volume)
	assert.Equal(t, int64(0), bids["ex4-0.00025"].Volume)
	assert.Equal(t, int64(11), bids["ex5-0"].Volume)
}

// Test 9: Equal profits resolve to the smallest (ask key, bid key) pair
func TestMatcher_TieBreak(t *testing.T) {
	asks := quotev1.Collection{
		"alpha-0": quotev1.NewQuote("alpha", 0, 1.00, 5),
		"beta-0":  quotev1.NewQuote("beta", 0, 1.00, 5),
	}
	bids := quotev1.Collection{
		"yankee-0": quotev1.NewQuote("yankee", 0, 1.10, 4),
		"zulu-0":   quotev1.NewQuote("zulu", 0, 1.10, 9),
	}

	trades, err := NewMatcher(Config{}).Match(asks, bids)

	require.NoError(t, err)
	require.Equal(t, 3, len(trades))

	// All four pairings tie at 0.10 per unit; alpha/yankee holds the
	// smallest keys and must win the first round.
	assert.Equal(t, "alpha", trades[0].BuyVenue)
	assert.Equal(t, "yankee", trades[0].SellVenue)
	assert.Equal(t, int64(4), trades[0].Volume)

	assert.Equal(t, "alpha", trades[1].BuyVenue)
	assert.Equal(t, "zulu", trades[1].SellVenue)
	assert.Equal(t, int64(1), trades[1].Volume)

	assert.Equal(t, "beta", trades[2].BuyVenue)
	assert.Equal(t, "zulu", trades[2].SellVenue)
	assert.Equal(t, int64(5), trades[2].Volume)

	assert.Equal(t, int64(3), bids["zulu-0"].Volume)
	assert.Equal(t, int64(0), asks["alpha-0"].Volume)
	assert.Equal(t, int64(0), asks["beta-0"].Volume)
}

// Test 10: A second run over the mutated books trades nothing
func TestMatcher_SecondRunFindsNothing(t *testing.T) {
	asks := referenceAsks()
	bids := referenceBids()
	m := NewMatcher(Config{})

	first, err := m.Match(asks, bids)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	askVolume := asks.TotalVolume()
	bidVolume := bids.TotalVolume()

	second, err := m.Match(asks, bids)

	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Equal(t, askVolume, asks.TotalVolume())
	assert.Equal(t, bidVolume, bids.TotalVolume())
}

// Test 11: Profit per unit never increases across a run
func TestMatcher_ProfitSequenceNonIncreasing(t *testing.T) {
	trades, err := NewMatcher(Config{}).Match(referenceAsks(), referenceBids())

	require.NoError(t, err)
	require.NotEmpty(t, trades)

	for i := 1; i < len(trades); i++ {
		assert.GreaterOrEqual(t, trades[i-1].ProfitPerUnit, trades[i].ProfitPerUnit)
	}
	for _, trade := range trades {
		assert.Greater(t, trade.ProfitPerUnit, 0.0)
		assert.Greater(t, trade.Volume, int64(0))
	}
}

// Test 12: Every scan fan-out reproduces the sequential sequence
func TestMatcher_ParallelMatchesSequential(t *testing.T) {
	asks, bids := createWideBooks(40)

	sequential, err := NewMatcher(Config{ScanWorkers: 1}).Match(cloneCollection(asks), cloneCollection(bids))
	require.NoError(t, err)
	require.NotEmpty(t, sequential)

	for _, workers := range []int{2, 4, 7, 64} {
		t.Run(fmt.Sprintf("%d workers", workers), func(t *testing.T) {
			parallel, err := NewMatcher(Config{ScanWorkers: workers}).Match(cloneCollection(asks), cloneCollection(bids))

			require.NoError(t, err)
			assert.Equal(t, stripIDs(sequential), stripIDs(parallel))
		})
	}
}

// Test 13: Matched volume is conserved quote by quote
func TestMatcher_VolumeConservation(t *testing.T) {
	asks := referenceAsks()
	bids := referenceBids()
	initialAsks := asks.Snapshot()
	initialBids := bids.Snapshot()

	trades, err := NewMatcher(Config{}).Match(asks, bids)
	require.NoError(t, err)

	boughtPerVenue := make(map[string]int64)
	soldPerVenue := make(map[string]int64)
	for _, trade := range trades {
		boughtPerVenue[trade.BuyVenue] += trade.Volume
		soldPerVenue[trade.SellVenue] += trade.Volume
	}

	for _, initial := range initialAsks {
		remaining := asks.Find(initial.Venue, initial.FeeRate, initial.Price)
		require.NotNil(t, remaining)
		assert.Equal(t, initial.Volume-boughtPerVenue[initial.Venue], remaining.Volume)
		assert.GreaterOrEqual(t, remaining.Volume, int64(0))
	}
	for _, initial := range initialBids {
		remaining := bids.Find(initial.Venue, initial.FeeRate, initial.Price)
		require.NotNil(t, remaining)
		assert.Equal(t, initial.Volume-soldPerVenue[initial.Venue], remaining.Volume)
		assert.GreaterOrEqual(t, remaining.Volume, int64(0))
	}

	assert.Equal(t, initialAsks.TotalVolume()-trades.TotalVolume(), asks.TotalVolume())
	assert.Equal(t, initialBids.TotalVolume()-trades.TotalVolume(), bids.TotalVolume())
}

func BenchmarkMatcher_Match(b *testing.B) {
	benchmarks := []struct {
		name    string
		size    int
		workers int
	}{
		{name: "20x20_sequential", size: 20, workers: 1},
		{name: "60x60_sequential", size: 60, workers: 1},
		{name: "60x60_4_workers", size: 60, workers: 4},
		{name: "200x200_sequential", size: 200, workers: 1},
		{name: "200x200_8_workers", size: 200, workers: 8},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			asks, bids := createWideBooks(bm.size)
			m := NewMatcher(Config{ScanWorkers: bm.workers})

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				b.StopTimer()
				runAsks := cloneCollection(asks)
				runBids := cloneCollection(bids)
				b.StartTimer()

				if _, err := m.Match(runAsks, runBids); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
