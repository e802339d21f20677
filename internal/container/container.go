package container

import (
	"context"
	"fmt"
	"time"

	"stock-image-tagger/internal/analysis"
	"stock-image-tagger/internal/config"
	"stock-image-tagger/internal/logger"
	"stock-image-tagger/internal/observer"
	"stock-image-tagger/internal/pipeline"
	"stock-image-tagger/internal/report"
	"stock-image-tagger/internal/storage"
)

// Options selects the per-run knobs the CLI controls.
type Options struct {
	TablesPath string
	ReportDir  string
	DryRun     bool
}

// Container holds all application dependencies
type Container struct {
	config       *config.Config
	tables       *config.Tables
	analyzer     analysis.Analyzer
	store        *storage.LocalStorage
	reportWriter *report.Writer
	metrics      *observer.MetricsObserver
	orchestrator *pipeline.Orchestrator
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, opts Options) (*Container, error) {
	tables, err := config.LoadTables(opts.TablesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	if err := logger.Configure(tables.Logging); err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyAPISection(tables.API)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Build dependency graph
	analyzer, err := analysis.NewGeminiAnalyzer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := storage.NewLocalStorage()
	reportWriter, err := report.NewWriter(opts.ReportDir)
	if err != nil {
		return nil, err
	}

	events := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	analyzer.OnRetry = func(attempt int, delay time.Duration, cause error) {
		events.NotifyObservers(ctx, observer.ProcessingEvent{
			EventType:    observer.AnalysisRetried,
			Timestamp:    time.Now(),
			Attempt:      attempt,
			Delay:        delay,
			ErrorMessage: cause.Error(),
		})
	}

	orchestrator := pipeline.NewOrchestrator(
		analyzer, tables, store, store, reportWriter, events,
		pipeline.WithDryRun(opts.DryRun),
	)

	return &Container{
		config:       cfg,
		tables:       tables,
		analyzer:     analyzer,
		store:        store,
		reportWriter: reportWriter,
		metrics:      metrics,
		orchestrator: orchestrator,
	}, nil
}

// Orchestrator returns the wired pipeline
func (c *Container) Orchestrator() *pipeline.Orchestrator {
	return c.orchestrator
}

// Tables returns the loaded lookup tables
func (c *Container) Tables() *config.Tables {
	return c.tables
}

// Metrics returns the run metrics observer
func (c *Container) Metrics() *observer.MetricsObserver {
	return c.metrics
}

// ReportPath returns the location of the report file
func (c *Container) ReportPath() string {
	return c.reportWriter.Path()
}

// Close flushes and closes the report
func (c *Container) Close() error {
	return c.reportWriter.Close()
}
