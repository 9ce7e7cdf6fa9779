package otp

import (
	"bytes"
	"strconv"
	"testing"
)

func TestRandomCode_Range(t *testing.T) {
	g := NewRandomCode()

	for range 1000 {
		code, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil || n < 100000 || n > 999999 {
			t.Fatalf("code %q out of range", code)
		}
	}
}

func TestRandomCode_Bounds(t *testing.T) {
	low := &RandomCode{reader: bytes.NewReader(make([]byte, 64))}
	code, err := low.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if code != "100000" {
		t.Fatalf("Generate() = %q, want 100000", code)
	}
}

func TestRandomCode_ReaderError(t *testing.T) {
	g := &RandomCode{reader: bytes.NewReader(nil)}
	if _, err := g.Generate(); err == nil {
		t.Fatalf("expected error from exhausted reader")
	}
}
