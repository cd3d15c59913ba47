package reportv1

import (
	"context"
)

// Writer defines the interface for rendering finished run reports to a sink.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=reportv1_mock
type Writer interface {
	// Write renders the report. A failed write surfaces as the run's error.
	Write(ctx context.Context, report *Report) error
}
