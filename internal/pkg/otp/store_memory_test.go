package otp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_UpdateGetDelete(t *testing.T) {
	// Arrange
	s := NewMemoryStore[pending](8)
	ctx := context.Background()
	now := time.Now()

	// Act
	err := s.Update(ctx, phone, func(cur *Entry[pending]) (*Entry[pending], error) {
		if cur != nil {
			t.Fatalf("expected nil current entry, got %+v", cur)
		}
		return &Entry[pending]{Subject: phone, Code: "123456", ExpiresAt: now.Add(time.Minute)}, nil
	})

	// Assert
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	e, err := s.Get(ctx, phone)
	if err != nil || e.Code != "123456" {
		t.Fatalf("Get() = %+v, %v", e, err)
	}

	if err := s.Delete(ctx, phone); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, phone); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("Get() error = %v, want %v", err, ErrEntryNotFound)
	}
}

func TestMemoryStore_UpdateErrorLeavesEntry(t *testing.T) {
	s := NewMemoryStore[pending](1)
	ctx := context.Background()
	_ = s.Update(ctx, phone, func(*Entry[pending]) (*Entry[pending], error) {
		return &Entry[pending]{Subject: phone, Attempts: 1}, nil
	})

	errStop := errors.New("stop")
	err := s.Update(ctx, phone, func(cur *Entry[pending]) (*Entry[pending], error) {
		cur.Attempts = 99
		return cur, errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("Update() error = %v, want %v", err, errStop)
	}

	e, _ := s.Get(ctx, phone)
	if e.Attempts != 1 {
		t.Fatalf("Attempts = %d, want 1", e.Attempts)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore[pending](1)
	ctx := context.Background()
	_ = s.Update(ctx, phone, func(*Entry[pending]) (*Entry[pending], error) {
		return &Entry[pending]{Subject: phone}, nil
	})

	e, _ := s.Get(ctx, phone)
	e.Attempts = 5

	again, _ := s.Get(ctx, phone)
	if again.Attempts != 0 {
		t.Fatalf("stored entry mutated through Get result")
	}
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	s := NewMemoryStore[pending](4)
	ctx := context.Background()
	now := time.Now()

	for i := range 10 {
		exp := now.Add(time.Minute)
		if i%2 == 0 {
			exp = now.Add(-time.Second)
		}
		subject := fmt.Sprintf("+1555000%04d", i)
		_ = s.Update(ctx, subject, func(*Entry[pending]) (*Entry[pending], error) {
			return &Entry[pending]{Subject: subject, ExpiresAt: exp}, nil
		})
	}

	n, err := s.DeleteExpired(ctx, now)
	if err != nil || n != 5 || s.Len() != 5 {
		t.Fatalf("DeleteExpired() = %d, %v; Len() = %d", n, err, s.Len())
	}
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryStore[pending](1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Update(ctx, phone, func(*Entry[pending]) (*Entry[pending], error) {
		t.Fatalf("fn must not run with a canceled context")
		return nil, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Update() error = %v", err)
	}
}

func TestMemoryStore_SerializesSameSubject(t *testing.T) {
	s := NewMemoryStore[pending](2)
	ctx := context.Background()
	_ = s.Update(ctx, phone, func(*Entry[pending]) (*Entry[pending], error) {
		return &Entry[pending]{Subject: phone}, nil
	})

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			_ = s.Update(ctx, phone, func(cur *Entry[pending]) (*Entry[pending], error) {
				cur.Attempts++
				return cur, nil
			})
		})
	}
	wg.Wait()

	e, _ := s.Get(ctx, phone)
	if e.Attempts != 100 {
		t.Fatalf("Attempts = %d, want 100", e.Attempts)
	}
}
