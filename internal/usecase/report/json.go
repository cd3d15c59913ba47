package report

import (
	"context"
	"fmt"
	"io"

	reportv1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/report/v1"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/errors"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/logger"
)

// JSONWriter renders a run report as one JSON document per run, newline
// terminated so watch mode emits a clean document stream.
type JSONWriter struct {
	out    io.Writer
	logger *logger.Logger
}

// NewJSONWriter creates a JSON writer over the given sink.
func NewJSONWriter(out io.Writer, logger *logger.Logger) *JSONWriter {
	return &JSONWriter{
		out:    out,
		logger: logger,
	}
}

// Write encodes the report and writes it to the sink.
func (w *JSONWriter) Write(ctx context.Context, report *reportv1.Report) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	data, err := report.ToBytes()
	if err != nil {
		w.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "run_id",
			Value: report.RunID,
		})
		return errors.NewTracerCode(errors.ReportEncodeError).Wrap(err)
	}

	data = append(data, '\n')
	if _, err := w.out.Write(data); err != nil {
		w.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "run_id",
			Value: report.RunID,
		})
		return errors.NewTracerCode(errors.ReportWriteError).Wrap(err)
	}

	return nil
}
