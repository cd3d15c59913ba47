package scenariov1

import (
	"context"
)

// Loader defines the interface for supplying the raw scenario a run is built from.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=scenariov1_mock
type Loader interface {
	// Load returns a validated scenario ready for store construction.
	Load(ctx context.Context) (*Scenario, error)
}

// Watcher defines the interface for observing the scenario source for changes.
type Watcher interface {
	// Start begins watching and fires the callback on every accepted change.
	Start(onChange func()) error
	// Stop ends the watch and releases any underlying resources.
	Stop() error
}
