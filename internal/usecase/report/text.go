package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
	reportv1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/report/v1"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/errors"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/logger"
)

// TextConfig controls the text rendering.
type TextConfig struct {
	// Precision is the number of fractional digits used for prices, fees
	// and profits. Volumes are whole units and print as integers.
	Precision int
}

// DefaultTextConfig returns the default text rendering configuration.
func DefaultTextConfig() TextConfig {
	return TextConfig{
		Precision: 8,
	}
}

// TextWriter renders a run report as a human-readable listing: both
// initial books, one line per executed trade, the running total, then
// both remaining books.
type TextWriter struct {
	config TextConfig
	out    io.Writer
	logger *logger.Logger
}

// NewTextWriter creates a text writer over the given sink.
func NewTextWriter(out io.Writer, config TextConfig, logger *logger.Logger) *TextWriter {
	if config.Precision <= 0 {
		config.Precision = DefaultTextConfig().Precision
	}

	return &TextWriter{
		config: config,
		out:    out,
		logger: logger,
	}
}

// Write renders the report to the sink in one call.
func (w *TextWriter) Write(ctx context.Context, report *reportv1.Report) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	var sb strings.Builder
	w.writeBook(&sb, "Initial Bids", report.Initial.Bids)
	w.writeBook(&sb, "Initial Asks", report.Initial.Asks)
	w.writeTrades(&sb, report)
	w.writeBook(&sb, "Remaining Bids", report.Remaining.Bids)
	w.writeBook(&sb, "Remaining Asks", report.Remaining.Asks)

	if _, err := io.WriteString(w.out, sb.String()); err != nil {
		w.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "run_id",
			Value: report.RunID,
		})
		return errors.NewTracerCode(errors.ReportWriteError).Wrap(err)
	}

	return nil
}

func (w *TextWriter) writeBook(sb *strings.Builder, label string, quotes quotev1.Quotes) {
	p := w.config.Precision

	fmt.Fprintf(sb, "\n%s:\n", label)
	for _, quote := range quotes {
		fmt.Fprintf(sb, "  %s -> price: %.*f, fee: %.*f, volume: %d\n",
			quote.Venue, p, quote.Price, p, quote.FeeRate, quote.Volume)
	}
}

func (w *TextWriter) writeTrades(sb *strings.Builder, report *reportv1.Report) {
	p := w.config.Precision

	fmt.Fprintf(sb, "\nExecuted Arbitrage Trades:\n")
	for _, trade := range report.Trades {
		fmt.Fprintf(sb, " Buy from %s @ %.*f (fee=%.*f), sell to %s @ %.*f (fee=%.*f), vol=%d, ppu=%.*f, net=%.*f\n",
			trade.BuyVenue, p, trade.BuyPrice, p, trade.BuyFeeRate,
			trade.SellVenue, p, trade.SellPrice, p, trade.SellFeeRate,
			trade.Volume, p, trade.ProfitPerUnit, p, trade.NetProfit)
	}
	fmt.Fprintf(sb, "\nTotal Net Profit: %.*f\n", p, report.TotalNetProfit)
}
