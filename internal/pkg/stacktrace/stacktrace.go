// Package stacktrace trims raw goroutine dumps down to the frames that belong
// to this module.
package stacktrace

import (
	"bufio"
	"bytes"
	"strings"
)

const marker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a runtime/debug.Stack dump, in call order.
func InternalPaths(stack []byte) []string {
	var paths []string

	sc := bufio.NewScanner(bytes.NewReader(stack))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "\t") {
			continue
		}

		loc, _, _ := strings.Cut(strings.TrimSpace(line), " ")
		idx := strings.Index(loc, marker)
		if idx == -1 || !strings.Contains(loc[idx:], ".go:") {
			continue
		}
		paths = append(paths, loc[idx+1:])
	}

	return paths
}
