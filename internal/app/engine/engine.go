package engine

import (
	"context"
	"sync"

	matcherv1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/matcher/v1"
	quotev1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/quote/v1"
	reportv1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/report/v1"
	scenariov1 "github.com/Changyue-Tan/Order-Matching-Engine/internal/domain/scenario/v1"
	"github.com/Changyue-Tan/Order-Matching-Engine/internal/usecase/book"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/config"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/errors"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/logger"
	"github.com/Changyue-Tan/Order-Matching-Engine/pkg/util"
)

// Engine wires scenario loading, matching and reporting into simulation
// runs. One-shot use calls Run directly; watch mode uses Start/Stop and
// re-runs whenever the scenario source changes.
type Engine struct {
	// Core components
	loader  scenariov1.Loader
	watcher scenariov1.Watcher
	matcher matcherv1.Matcher
	writer  reportv1.Writer
	logger  *logger.Logger
	config  *config.Config

	// Run statistics guarded by a mutex
	mu             sync.RWMutex
	runsCompleted  int64
	tradesExecuted int64
	totalNetProfit float64
	lastReport     *reportv1.Report

	// Watch-mode coordination
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	runRequests chan struct{}
}

// NewEngine creates a new instance of Engine with the provided
// dependencies. The watcher may be nil for one-shot use.
func NewEngine(
	loader scenariov1.Loader,
	watcher scenariov1.Watcher,
	matcher matcherv1.Matcher,
	writer reportv1.Writer,
	logger *logger.Logger,
	config *config.Config,
) *Engine {
	return NewEngineWithOptions(loader, watcher, matcher, writer, logger, config, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(
	loader scenariov1.Loader,
	watcher scenariov1.Watcher,
	matcher matcherv1.Matcher,
	writer reportv1.Writer,
	logger *logger.Logger,
	config *config.Config,
	options *Options,
) *Engine {
	return &Engine{
		loader:  loader,
		watcher: watcher,
		matcher: matcher,
		writer:  writer,
		logger:  logger,
		config:  config,

		runRequests: make(chan struct{}, options.RunQueueSize),
	}
}

// Run executes one full simulation: load the scenario, build the store,
// match until no profitable pairing remains, then write the report.
// Statistics update only after the report is written.
func (e *Engine) Run(ctx context.Context) error {
	ctx = util.WithRequestID(ctx, "")
	runID := util.GetRequestID(ctx)

	scenario, err := e.loader.Load(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "load_scenario",
		})
		return err
	}

	store, err := book.NewStore(scenario)
	if err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "build_store",
		}, logger.Field{
			Key:   "scenario",
			Value: scenario.Label,
		})
		return errors.NewTracerCode(errors.BookBuildError).Wrap(err)
	}

	e.logger.InfoContext(ctx, "Starting simulation run",
		logger.Field{Key: "scenario", Value: scenario.Label},
		logger.Field{Key: "bidVolume", Value: store.BidTotalVolume()},
		logger.Field{Key: "askVolume", Value: store.AskTotalVolume()},
	)

	initial := store.Snapshot()

	trades, err := e.matcher.Match(store.Asks(), store.Bids())
	if err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "match",
		}, logger.Field{
			Key:   "scenario",
			Value: scenario.Label,
		})
		return err
	}

	e.logTrades(ctx, trades)

	report := reportv1.NewReport(runID, scenario.Label, trades, initial, store.Snapshot())
	if err := e.writer.Write(ctx, report); err != nil {
		e.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "write_report",
		}, logger.Field{
			Key:   "scenario",
			Value: scenario.Label,
		})
		return err
	}

	e.recordRun(report)

	e.logger.InfoContext(ctx, "Simulation run finished",
		logger.Field{Key: "scenario", Value: scenario.Label},
		logger.Field{Key: "trades", Value: len(trades)},
		logger.Field{Key: "totalNetProfit", Value: report.TotalNetProfit},
		logger.Field{Key: "totalVolume", Value: report.TotalVolume},
	)

	return nil
}

// Start runs once immediately, then keeps re-running on scenario changes
// until stopped.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	// Seed the first run before the worker starts
	e.requestRun()

	e.wg.Add(1)
	go e.runWorker()

	if e.watcher != nil {
		if err := e.watcher.Start(e.requestRun); err != nil {
			return err
		}
	}

	e.logger.Info("Engine started", logger.Field{
		Key:   "scenario",
		Value: e.config.ScenarioConfig.Path,
	}, logger.Field{
		Key:   "watch",
		Value: e.config.ScenarioConfig.Watch,
	})

	return nil
}

// Stop gracefully shuts down the engine
func (e *Engine) Stop(ctx context.Context) error {
	if e.watcher != nil {
		if err := e.watcher.Stop(); err != nil {
			e.logger.Error(err, logger.Field{
				Key:   "action",
				Value: "stop_watcher",
			})
		}
	}

	if e.cancel != nil {
		e.cancel()
	}

	// Wait for the run worker to finish with timeout
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// requestRun queues a run, collapsing bursts that arrive while one is
// already pending.
func (e *Engine) requestRun() {
	select {
	case e.runRequests <- struct{}{}:
	default:
	}
}

// runWorker serializes simulation runs until the engine stops.
func (e *Engine) runWorker() {
	defer e.wg.Done()

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Run worker shutting down")
			return
		case <-e.runRequests:
			if err := e.Run(e.ctx); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "simulation_run",
				})
			}
		}
	}
}

// logTrades logs each executed trade in order
func (e *Engine) logTrades(ctx context.Context, trades quotev1.Trades) {
	for i, trade := range trades {
		e.logger.InfoContext(ctx, "Trade executed",
			logger.Field{Key: "tradeIndex", Value: i + 1},
			logger.Field{Key: "tradeID", Value: trade.ID},
			logger.Field{Key: "buyVenue", Value: trade.BuyVenue},
			logger.Field{Key: "sellVenue", Value: trade.SellVenue},
			logger.Field{Key: "volume", Value: trade.Volume},
			logger.Field{Key: "profitPerUnit", Value: trade.ProfitPerUnit},
			logger.Field{Key: "netProfit", Value: trade.NetProfit},
		)
	}
}

// recordRun folds a finished run into the statistics
func (e *Engine) recordRun(report *reportv1.Report) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.runsCompleted++
	e.tradesExecuted += int64(len(report.Trades))
	e.totalNetProfit += report.TotalNetProfit
	e.lastReport = report
}

// GetRunsCompleted returns the number of completed runs
func (e *Engine) GetRunsCompleted() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.runsCompleted
}

// GetTradesExecuted returns the total number of trades across all runs
func (e *Engine) GetTradesExecuted() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tradesExecuted
}

// GetTotalNetProfit returns the cumulative net profit across all runs
func (e *Engine) GetTotalNetProfit() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalNetProfit
}

// GetLastReport returns the report of the most recent completed run
func (e *Engine) GetLastReport() *reportv1.Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastReport
}
