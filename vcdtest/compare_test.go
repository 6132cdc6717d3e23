package vcdtest_test

import (
	"testing"

	"github.com/hwtrace/vcd/vcdtest"
)

func Test_compare_lines(t *testing.T) {
	// identical traces must not report any difference
	vcdtest.CompareLines(t, "#0\n10\n$end\n", "#0\n10\n$end\n")
}

func Test_count_lines(t *testing.T) {
	trace := "#0\n10\n#1\n10\n00\n"
	if n := vcdtest.CountLines(trace, "10"); n != 2 {
		t.Errorf("got %d, want 2", n)
	}
	if n := vcdtest.CountLines(trace, "1"); n != 0 {
		t.Errorf("got %d, want 0", n)
	}
}
