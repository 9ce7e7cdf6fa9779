// Package uid generates identifiers: snowflake numbers for primary keys and
// UUIDv7 strings for correlation and token IDs.
package uid

// NumberID generates unique, roughly time-ordered int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
