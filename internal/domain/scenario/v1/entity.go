package scenariov1

import (
	"errors"
	"fmt"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
)

var (
	// ErrEmptyKey is returned when a scenario carries a quote under an empty key.
	ErrEmptyKey = errors.New("scenario quote key is empty")
	// ErrInvalidPrice is returned when a scenario quote has a non-positive price.
	ErrInvalidPrice = errors.New("scenario quote price must be positive")
	// ErrNegativeVolume is returned when a scenario quote has a negative volume.
	ErrNegativeVolume = errors.New("scenario quote volume must not be negative")
)

// Scenario is one named raw input set for a simulation run. Empty sides are
// valid: the run simply finds nothing to match.
type Scenario struct {
	Label string          `json:"label" yaml:"label"`
	Bids  quotev1.RawBook `json:"bids" yaml:"bids"`
	Asks  quotev1.RawBook `json:"asks" yaml:"asks"`
}

// Validate checks both raw books for values the simulator cannot price.
// Key decomposition is not checked here; that stays a construction-time
// concern of the quote store.
func (s *Scenario) Validate() error {
	if err := validateSide("bids", s.Bids); err != nil {
		return err
	}

	return validateSide("asks", s.Asks)
}

func validateSide(side string, book quotev1.RawBook) error {
	for key, quote := range book {
		if key == "" {
			return fmt.Errorf("%w: side %s", ErrEmptyKey, side)
		}
		if quote.Price <= 0 {
			return fmt.Errorf("%w: %s %q has price %v", ErrInvalidPrice, side, key, quote.Price)
		}
		if quote.Volume < 0 {
			return fmt.Errorf("%w: %s %q has volume %d", ErrNegativeVolume, side, key, quote.Volume)
		}
	}

	return nil
}
