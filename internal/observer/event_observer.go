package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ProcessingEvent represents one step of the per-image pipeline.
type ProcessingEvent struct {
	EventType    EventType     `json:"event_type"`
	Timestamp    time.Time     `json:"timestamp"`
	ImagePath    string        `json:"image_path"`
	Field        string        `json:"field,omitempty"`
	Attempt      int           `json:"attempt,omitempty"`
	Delay        time.Duration `json:"delay,omitempty"`
	Success      bool          `json:"success"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// EventType represents the type of processing event
type EventType string

const (
	// ProcessingStarted when an image enters the pipeline
	ProcessingStarted EventType = "processing_started"
	// AnalysisRetried when a transient analysis failure triggers backoff
	AnalysisRetried EventType = "analysis_retried"
	// FallbackUsed when a builder reverted to its default generator
	FallbackUsed EventType = "fallback_used"
	// ImageRenamed when the file was renamed on disk
	ImageRenamed EventType = "image_renamed"
	// ProcessingCompleted when the record was produced without errors
	ProcessingCompleted EventType = "processing_completed"
	// ProcessingFailed when the record carries an error
	ProcessingFailed EventType = "processing_failed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event ProcessingEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	NotifyObservers(ctx context.Context, event ProcessingEvent)
}

// LoggingObserver logs processing events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

// OnEvent handles processing events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event ProcessingEvent) {
	fields := logrus.Fields{
		"event_type": event.EventType,
		"image":      event.ImagePath,
	}
	if event.Field != "" {
		fields["field"] = event.Field
	}
	if event.Attempt > 0 {
		fields["attempt"] = event.Attempt
	}
	if event.Delay > 0 {
		fields["delay"] = event.Delay.String()
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	switch event.EventType {
	case ProcessingStarted:
		o.logger.WithFields(fields).Debug("Image processing started")
	case AnalysisRetried:
		o.logger.WithFields(fields).Info("Analysis retried after transient failure")
	case FallbackUsed:
		o.logger.WithFields(fields).Warn("Builder fell back to default generator")
	case ImageRenamed:
		o.logger.WithFields(fields).Info("Image renamed")
	case ProcessingCompleted:
		o.logger.WithFields(fields).Info("Image processing completed")
	case ProcessingFailed:
		o.logger.WithFields(fields).Error("Image processing failed")
	default:
		o.logger.WithFields(fields).Info("Processing event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects run totals from processing events
type MetricsObserver struct {
	mu        sync.RWMutex
	processed int64
	failed    int64
	retries   int64
	fallbacks int64
	renamed   int64
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent handles processing events by updating totals
func (o *MetricsObserver) OnEvent(ctx context.Context, event ProcessingEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case ProcessingCompleted:
		o.processed++
	case ProcessingFailed:
		o.processed++
		o.failed++
	case AnalysisRetried:
		o.retries++
	case FallbackUsed:
		o.fallbacks++
	case ImageRenamed:
		o.renamed++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// Summary returns the collected totals for the end-of-run report.
func (o *MetricsObserver) Summary() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return map[string]interface{}{
		"processed": o.processed,
		"failed":    o.failed,
		"retries":   o.retries,
		"fallbacks": o.fallbacks,
		"renamed":   o.renamed,
	}
}

// EventPublisher implements the Subject interface. Notification is
// synchronous: the pipeline is sequential and observers are cheap, so there
// is no reason to race the metrics read at end of run.
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{observers: make([]Observer, 0)}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event ProcessingEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	for _, observer := range observers {
		func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
