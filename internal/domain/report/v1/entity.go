package reportv1

import (
	"encoding/json"
	"time"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
)

// Books is a point-in-time view of both sides of the market.
type Books struct {
	Bids quotev1.Quotes `json:"bids"`
	Asks quotev1.Quotes `json:"asks"`
}

// Report aggregates the outcome of one simulation run: the executed trades
// in order, the book state before and after, and the run totals.
type Report struct {
	RunID          string         `json:"run_id"`
	Scenario       string         `json:"scenario"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Initial        Books          `json:"initial"`
	Remaining      Books          `json:"remaining"`
	Trades         quotev1.Trades `json:"trades"`
	TotalNetProfit float64        `json:"total_net_profit"`
	TotalVolume    int64          `json:"total_volume"`
}

// NewReport assembles the report for one finished run, deriving the totals
// from the trade list.
func NewReport(runID, scenario string, trades quotev1.Trades, initial, remaining Books) *Report {
	return &Report{
		RunID:          runID,
		Scenario:       scenario,
		GeneratedAt:    time.Now().UTC(),
		Initial:        initial,
		Remaining:      remaining,
		Trades:         trades,
		TotalNetProfit: trades.TotalNetProfit(),
		TotalVolume:    trades.TotalVolume(),
	}
}

// ToBytes converts the report to its JSON document.
func (r *Report) ToBytes() ([]byte, error) {
	return json.Marshal(r)
}

// FromBytes converts a JSON document back into a report.
func FromBytes(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	return &report, nil
}
