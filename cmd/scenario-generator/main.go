package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
	scenariov1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/scenario/v1"
)

// generateScenario creates a random multi-venue scenario. Bid and ask prices
// are drawn from the same band around the base price, so some pairs cross and
// give the matcher something to do.
func generateScenario(rng *rand.Rand, label string, venues int, basePrice, priceSpread, maxFee float64, minVolume, maxVolume int64) *scenariov1.Scenario {
	scenario := &scenariov1.Scenario{
		Label: label,
		Bids:  make(quotev1.RawBook, venues),
		Asks:  make(quotev1.RawBook, venues),
	}

	for i := 0; i < venues; i++ {
		venue := fmt.Sprintf("ex%d", i+1)

		// Fee rate between 0 and maxFee, rounded to 5 decimal places
		fee := rng.Float64() * maxFee
		fee = float64(int(fee*100000)) / 100000

		key := venue + "-" + strconv.FormatFloat(fee, 'g', -1, 64)

		scenario.Bids[key] = quotev1.RawQuote{
			Price:  randomPrice(rng, basePrice, priceSpread),
			Volume: randomVolume(rng, minVolume, maxVolume),
		}
		scenario.Asks[key] = quotev1.RawQuote{
			Price:  randomPrice(rng, basePrice, priceSpread),
			Volume: randomVolume(rng, minVolume, maxVolume),
		}
	}

	return scenario
}

func randomPrice(rng *rand.Rand, basePrice, priceSpread float64) float64 {
	price := basePrice + (rng.Float64()-0.5)*priceSpread
	price = float64(int(price*10000)) / 10000 // Round to 4 decimal places

	// Ensure price is positive
	if price <= 0 {
		price = basePrice
	}

	return price
}

func randomVolume(rng *rand.Rand, minVolume, maxVolume int64) int64 {
	if maxVolume <= minVolume {
		return minVolume
	}

	return minVolume + rng.Int63n(maxVolume-minVolume+1)
}

func main() {
	var (
		output      = flag.String("output", "scenario.yaml", "Output file for the generated scenario")
		label       = flag.String("label", "generated", "Scenario label")
		venues      = flag.Int("venues", 5, "Number of venues to generate")
		basePrice   = flag.Float64("base-price", 1.0, "Base price for quotes")
		priceSpread = flag.Float64("price-spread", 0.2, "Price spread range around the base price")
		maxFee      = flag.Float64("max-fee", 0.001, "Upper bound for per-venue fee rates")
		minVolume   = flag.Int64("min-volume", 1, "Minimum quote volume")
		maxVolume   = flag.Int64("max-volume", 50, "Maximum quote volume")
		seed        = flag.Int64("seed", 0, "Random seed (0 uses the current time)")
	)
	flag.Parse()

	if *venues <= 0 {
		log.Fatalf("Venue count must be positive, got %d", *venues)
	}

	// Initialize random source
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	log.Printf("Generating scenario with %d venues (seed %d)...", *venues, *seed)
	scenario := generateScenario(rng, *label, *venues, *basePrice, *priceSpread, *maxFee, *minVolume, *maxVolume)

	if err := scenario.Validate(); err != nil {
		log.Fatalf("Generated scenario failed validation: %v", err)
	}

	data, err := yaml.Marshal(scenario)
	if err != nil {
		log.Fatalf("Failed to encode scenario: %v", err)
	}

	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}

	log.Printf("Wrote scenario to %s", *output)

	// Print summary
	var bidVolume, askVolume int64
	for _, quote := range scenario.Bids {
		bidVolume += quote.Volume
	}
	for _, quote := range scenario.Asks {
		askVolume += quote.Volume
	}

	log.Printf("--- Summary ---")
	log.Printf("Label: %s", scenario.Label)
	log.Printf("Venues: %d", *venues)
	log.Printf("Total Bid Volume: %d", bidVolume)
	log.Printf("Total Ask Volume: %d", askVolume)
}
