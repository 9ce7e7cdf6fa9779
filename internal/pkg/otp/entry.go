package otp

import "time"

// Entry is the pending verification for one subject.
type Entry[P any] struct {
	Subject     string    `json:"subject"`
	Code        string    `json:"code"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	Resends     int       `json:"resends"`
	Payload     P         `json:"payload"`
}

// Expired reports whether the entry is past its expiry at now.
func (e *Entry[P]) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Exhausted reports whether no verify attempts are left.
func (e *Entry[P]) Exhausted() bool {
	return e.Attempts >= e.MaxAttempts
}

func (e *Entry[P]) clone() *Entry[P] {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

// Result describes an issued code without revealing it.
type Result struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Resends   int
}

// Delivery is what a Sender needs to notify a subject of a new code.
type Delivery struct {
	Subject   string
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TTL returns the validity window of the delivered code.
func (d Delivery) TTL() time.Duration {
	return d.ExpiresAt.Sub(d.IssuedAt)
}
