package observer

import (
	"context"
	"testing"
	"time"
)

func TestMetricsObserver_CountsEvents(t *testing.T) {
	obs := NewMetricsObserver()
	ctx := context.Background()

	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisStarted})
	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisStarted})
	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisCompleted, ProcessingTime: 100 * time.Millisecond})
	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisFailed})

	metrics := obs.GetMetrics()
	if metrics["total_analyses"].(int64) != 2 {
		t.Errorf("Expected 2 total analyses, got %v", metrics["total_analyses"])
	}
	if metrics["successful_analyses"].(int64) != 1 {
		t.Errorf("Expected 1 successful analysis, got %v", metrics["successful_analyses"])
	}
	if metrics["failed_analyses"].(int64) != 1 {
		t.Errorf("Expected 1 failed analysis, got %v", metrics["failed_analyses"])
	}
	if metrics["avg_processing_time"].(time.Duration) != 100*time.Millisecond {
		t.Errorf("Expected 100ms average, got %v", metrics["avg_processing_time"])
	}
}

func TestEventPublisher_SubscribeAndNotify(t *testing.T) {
	publisher := NewEventPublisher()
	obs := NewMetricsObserver()
	publisher.Subscribe(obs)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisStarted})

	// Notification is asynchronous.
	deadline := time.After(2 * time.Second)
	for {
		if obs.GetMetrics()["total_analyses"].(int64) == 1 {
			return
		}
		select {
		case <-deadline:
			t.Fatal("Expected the subscribed observer to receive the event")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestEventPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher()
	obs := NewMetricsObserver()
	publisher.Subscribe(obs)
	publisher.Unsubscribe(obs)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisStarted})

	time.Sleep(50 * time.Millisecond)
	if obs.GetMetrics()["total_analyses"].(int64) != 0 {
		t.Error("Expected no events after unsubscribe")
	}
}
