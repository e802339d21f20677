package observer

import (
	"context"
	"testing"
	"time"
)

type panickyObserver struct{}

func (o *panickyObserver) OnEvent(ctx context.Context, event ProcessingEvent) {
	panic("observer bug")
}

func (o *panickyObserver) GetObserverName() string { return "panicky_observer" }

func event(eventType EventType) ProcessingEvent {
	return ProcessingEvent{
		EventType: eventType,
		Timestamp: time.Now(),
		ImagePath: "/images/a.jpg",
	}
}

func TestMetricsObserver_CountsEvents(t *testing.T) {
	m := NewMetricsObserver()
	ctx := context.Background()

	m.OnEvent(ctx, event(ProcessingCompleted))
	m.OnEvent(ctx, event(ProcessingCompleted))
	m.OnEvent(ctx, event(ProcessingFailed))
	m.OnEvent(ctx, event(AnalysisRetried))
	m.OnEvent(ctx, event(FallbackUsed))
	m.OnEvent(ctx, event(ImageRenamed))

	summary := m.Summary()
	if summary["processed"] != int64(3) {
		t.Errorf("Expected 3 processed, got %v", summary["processed"])
	}
	if summary["failed"] != int64(1) {
		t.Errorf("Expected 1 failed, got %v", summary["failed"])
	}
	if summary["retries"] != int64(1) {
		t.Errorf("Expected 1 retry, got %v", summary["retries"])
	}
	if summary["fallbacks"] != int64(1) {
		t.Errorf("Expected 1 fallback, got %v", summary["fallbacks"])
	}
	if summary["renamed"] != int64(1) {
		t.Errorf("Expected 1 rename, got %v", summary["renamed"])
	}
}

func TestEventPublisher_NotifiesAllObservers(t *testing.T) {
	publisher := NewEventPublisher()
	first := NewMetricsObserver()
	second := NewMetricsObserver()
	publisher.Subscribe(first)
	publisher.Subscribe(second)

	publisher.NotifyObservers(context.Background(), event(ProcessingCompleted))

	if first.Summary()["processed"] != int64(1) {
		t.Error("Expected the first observer to be notified")
	}
	if second.Summary()["processed"] != int64(1) {
		t.Error("Expected the second observer to be notified")
	}
}

func TestEventPublisher_ContainsObserverPanics(t *testing.T) {
	publisher := NewEventPublisher()
	metrics := NewMetricsObserver()
	publisher.Subscribe(&panickyObserver{})
	publisher.Subscribe(metrics)

	publisher.NotifyObservers(context.Background(), event(ProcessingCompleted))

	if metrics.Summary()["processed"] != int64(1) {
		t.Error("Expected later observers to run despite an earlier panic")
	}
}
