// Package clock provides a tiny time abstraction.
//
// Production code depends on the Clocker interface instead of calling
// time.Now() directly. Tests swap in a Manual clock and move it forward
// explicitly, which keeps expiry checks deterministic.
package clock
