package scenario

import (
	"context"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
	scenariov1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/scenario/v1"
)

// SampleLabel is the label the built-in scenario reports under.
const SampleLabel = "five-venue-sample"

// SampleLoader serves the built-in five-venue scenario. It backs runs
// configured without a scenario path, so the binary always has something
// to simulate.
type SampleLoader struct{}

// NewSampleLoader creates a new sample loader.
func NewSampleLoader() *SampleLoader {
	return &SampleLoader{}
}

// Load returns a fresh copy of the sample scenario.
func (l *SampleLoader) Load(_ context.Context) (*scenariov1.Scenario, error) {
	return &scenariov1.Scenario{
		Label: SampleLabel,
		Bids: quotev1.RawBook{
			"ex1-0.00024": {Price: 0.95, Volume: 10},
			"ex2-0.0005":  {Price: 0.98, Volume: 10},
			"ex3-0.0002":  {Price: 1.00, Volume: 5},
			"ex4-0.00025": {Price: 1.02, Volume: 4},
			"ex5-0":       {Price: 0.94, Volume: 11},
		},
		Asks: quotev1.RawBook{
			"ex1-0.00024": {Price: 0.96, Volume: 50},
			"ex2-0.0005":  {Price: 1.03, Volume: 8},
			"ex3-0.0002":  {Price: 1.01, Volume: 2},
			"ex4-0.00025": {Price: 1.04, Volume: 5},
			"ex5-0":       {Price: 0.96, Volume: 3},
		},
	}, nil
}
