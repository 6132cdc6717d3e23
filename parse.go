package vcd

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseVarType returns the VarType named by its VCD keyword ("wire", "reg",
// "integer", ...).
func ParseVarType(s string) (VarType, error) {
	for i, n := range varTypes {
		if n == s {
			return VarType(i), nil
		}
	}
	return 0, errors.Errorf("unknown variable type %q", s)
}

// ParseScopeType returns the ScopeType named by its VCD keyword ("begin",
// "fork", "function", "module" or "task").
func ParseScopeType(s string) (ScopeType, error) {
	for i, n := range scopeTypes {
		if n == s {
			return ScopeType(i), nil
		}
	}
	return 0, errors.Errorf("unknown scope type %q", s)
}

// ParseTimescaleUnit returns the TimescaleUnit named by its VCD keyword
// ("s", "ms", "us", "ns", "ps" or "fs").
func ParseTimescaleUnit(s string) (TimescaleUnit, error) {
	for i, n := range timescaleUnits {
		if n == s {
			return TimescaleUnit(i), nil
		}
	}
	return 0, errors.Errorf("unknown timescale unit %q", s)
}

// ParseTimescale splits a timescale specification like "1ns" or "10 us"
// into its quantity and unit. It accepts the same quantities and units as
// NewHeader.
func ParseTimescale(s string) (int, TimescaleUnit, error) {
	t := strings.TrimSpace(s)
	i := 0
	for i < len(t) && '0' <= t[i] && t[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0, errors.Errorf("missing quantity in timescale %q", s)
	}
	q, err := strconv.Atoi(t[:i])
	if err != nil {
		return 0, 0, errors.Wrap(err, "timescale "+s)
	}
	switch q {
	case 1, 10, 100:
	default:
		return 0, 0, errors.Errorf("invalid timescale quantity %d in %q", q, s)
	}
	u, err := ParseTimescaleUnit(strings.TrimSpace(t[i:]))
	if err != nil {
		return 0, 0, errors.Wrap(err, "timescale "+s)
	}
	return q, u, nil
}
