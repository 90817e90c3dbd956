package events

import (
	"context"
	"log/slog"
	"os"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventSessionBooked, SessionBookedEvent{
		SessionID: "session-1",
		StudentID: "student-1",
		TutorID:   "tutor-1",
	})

	if event.ID == "" {
		t.Error("Event ID should not be empty")
	}
	if event.Type != EventSessionBooked {
		t.Errorf("Expected type %s, got %s", EventSessionBooked, event.Type)
	}
	if event.Source != "tutorpal-service" {
		t.Errorf("Expected source 'tutorpal-service', got %s", event.Source)
	}
	if event.Version != "1.0" {
		t.Errorf("Expected version '1.0', got %s", event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("Event timestamp should be set")
	}

	other := NewEvent(EventSessionBooked, nil)
	if other.ID == event.ID {
		t.Error("Event IDs must be unique")
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := NewMockEventPublisher(logger)
	ctx := context.Background()

	for _, eventType := range []string{EventUserRegistered, EventTutorListed, EventSessionRated} {
		if err := publisher.Publish(ctx, NewEvent(eventType, nil)); err != nil {
			t.Fatalf("Publish failed: %v", err)
		}
	}

	published := publisher.GetPublishedEvents()
	if len(published) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(published))
	}
	if published[1].Type != EventTutorListed {
		t.Errorf("Expected %s in publish order, got %s", EventTutorListed, published[1].Type)
	}

	// The returned slice is a snapshot.
	published = published[:0]
	if len(publisher.GetPublishedEvents()) != 3 {
		t.Error("Mutating the snapshot must not affect stored events")
	}

	publisher.ClearEvents()
	if len(publisher.GetPublishedEvents()) != 0 {
		t.Error("Expected no events after ClearEvents")
	}

	if err := publisher.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
