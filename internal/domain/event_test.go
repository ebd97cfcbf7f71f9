package domain

import (
	"errors"
	"testing"
)

func TestEvent_Validate(t *testing.T) {
	negative := int32(-1)

	if err := (&Event{Title: "Hike"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := (&Event{Title: ""}).Validate(); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}

	if err := (&Event{Title: "Hike", Capacity: &negative}).Validate(); !errors.Is(err, ErrInvalidCapacity) {
		t.Fatalf("expected ErrInvalidCapacity, got %v", err)
	}
}
