package matcherv1

import (
	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
)

// Matcher defines the interface for running one greedy matching pass.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=matcherv1_mock
type Matcher interface {
	// Match repeatedly pairs the most profitable ask/bid combination across
	// venues, mutating both collections in place, and returns the executed
	// trades in execution order.
	Match(asks, bids quotev1.Collection) (quotev1.Trades, error)
}
