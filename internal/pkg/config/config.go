package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of various types.
//
// Missing keys resolve to the zero value of the requested type; callers that
// need to tell "unset" from "zero" use IsSet.
type Config interface {
	io.Closer

	// IsSet reports whether the key has a value in any configuration source.
	IsSet(key string) bool

	// GetBool retrieves the value associated with the given key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value associated with the given key as a string.
	GetString(key string) string

	// GetInt retrieves the value associated with the given key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value associated with the given key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the value associated with the given key as an int64.
	GetInt64(key string) int64

	// GetFloat64 retrieves the value associated with the given key as a float64.
	GetFloat64(key string) float64

	// GetSecond interprets the integer value of key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetMinute interprets the integer value of key as a number of minutes.
	GetMinute(key string) time.Duration

	// GetBinary decodes the base64 value of key.
	GetBinary(key string) []byte

	// GetArray splits the value of key with format <element1>,<element2>,...
	// Elements are trimmed and empty elements are dropped.
	GetArray(key string) []string
}
