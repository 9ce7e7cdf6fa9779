package clock

import (
	"testing"
	"time"
)

func TestManual_Advance(t *testing.T) {
	// Arrange
	start := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	c := NewManual(start)

	// Act
	c.Advance(10 * time.Minute)

	// Assert
	if got := c.Now(); !got.Equal(start.Add(10 * time.Minute)) {
		t.Fatalf("Now() = %v, want %v", got, start.Add(10*time.Minute))
	}
}

func TestManual_Set(t *testing.T) {
	// Arrange
	c := NewManual(time.Unix(0, 0))
	target := time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC)

	// Act
	c.Set(target)

	// Assert
	if got := c.Now(); !got.Equal(target) {
		t.Fatalf("Now() = %v, want %v", got, target)
	}
}

func TestTimeClocker_Now(t *testing.T) {
	before := time.Now()
	got := New().Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Fatalf("Now() = %v, want between %v and %v", got, before, after)
	}
}
