package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Changyue-Tan/Order-Matching-Engine/internal/app/engine"
	reportv1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/report/v1"
	scenariov1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/scenario/v1"
	"github.com/Changyue-Tan/Order-Matching-Engine/internal/usecase/matcher"
	"github.com/Changyue-Tan/Order-Matching-Engine/internal/usecase/report"
	"github.com/Changyue-Tan/Order-Matching-Engine/internal/usecase/scenario"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/config"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.LogLevel)))
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, err := openOutput(cfg.ReportConfig.Output)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "open_report_output",
		})
		os.Exit(1)
	}

	if cfg.ScenarioConfig.Watch && cfg.ScenarioConfig.Path == "" {
		log.Warn("Watch mode requires a scenario file, running once over the built-in sample")
	}

	// Initialize components
	var watcher scenariov1.Watcher
	if cfg.ScenarioConfig.Watch && cfg.ScenarioConfig.Path != "" {
		w, err := scenario.NewWatcher(cfg.ScenarioConfig.Path, scenario.WatchConfig{
			Cooldown: cfg.ScenarioConfig.Cooldown,
		}, log)
		if err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "create_scenario_watcher",
			})
			os.Exit(1)
		}
		watcher = w
	}

	eng := engine.NewEngine(
		newLoader(),
		watcher,
		matcher.NewMatcher(matcher.Config{ScanWorkers: cfg.MatcherConfig.ScanWorkers}),
		newWriter(out),
		log,
		cfg,
	)

	// Without a watcher this is a one-shot simulation run
	if watcher == nil {
		if err := eng.Run(ctx); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "run_simulation",
			})
			closeOutput(out)
			os.Exit(1)
		}

		closeOutput(out)
		return
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the engine
	if err := eng.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		closeOutput(out)
		os.Exit(1)
	}

	log.Info("Arbitrage simulator started", logger.Field{
		Key:   "scenario",
		Value: cfg.ScenarioConfig.Path,
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	// Cancel the main context to signal shutdown
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the engine gracefully
	if err := eng.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	closeOutput(out)
	log.Info("Arbitrage simulator shutdown complete")
}

func newLoader() scenariov1.Loader {
	if cfg.ScenarioConfig.Path != "" {
		return scenario.NewFileLoader(cfg.ScenarioConfig.Path, log)
	}

	return scenario.NewSampleLoader()
}

func newWriter(out io.Writer) reportv1.Writer {
	switch cfg.ReportConfig.Format {
	case "json":
		return report.NewJSONWriter(out, log)
	case "text", "":
		return report.NewTextWriter(out, report.TextConfig{Precision: cfg.ReportConfig.Precision}, log)
	default:
		log.Warn("Unknown report format, using text", logger.Field{
			Key:   "format",
			Value: cfg.ReportConfig.Format,
		})
		return report.NewTextWriter(out, report.TextConfig{Precision: cfg.ReportConfig.Precision}, log)
	}
}

func openOutput(target string) (io.Writer, error) {
	switch target {
	case "", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	default:
		return os.Create(target)
	}
}

// closeOutput closes the report sink if a file was opened for it.
func closeOutput(out io.Writer) {
	if out == os.Stdout || out == os.Stderr {
		return
	}

	if closer, ok := out.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "close_report_output",
			})
		}
	}
}
