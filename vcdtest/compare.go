// Package vcdtest provides utility functions for testing VCD output.
package vcdtest

import (
	"strings"
	"testing"
)

// CompareLines compares a rendered trace against the expected one line by
// line and reports every differing line, which reads much better than a
// single failed string comparison over a whole file.
func CompareLines(t *testing.T, got, want string) {
	t.Helper()
	gl := strings.Split(got, "\n")
	wl := strings.Split(want, "\n")
	n := len(gl)
	if len(wl) > n {
		n = len(wl)
	}
	for i := 0; i < n; i++ {
		var g, w string
		if i < len(gl) {
			g = gl[i]
		}
		if i < len(wl) {
			w = wl[i]
		}
		if g != w {
			t.Errorf("line %d: got %q, want %q", i+1, g, w)
		}
	}
}

// CountLines returns how many lines of the trace equal line exactly.
func CountLines(trace, line string) int {
	n := 0
	for _, l := range strings.Split(trace, "\n") {
		if l == line {
			n++
		}
	}
	return n
}
