package vcd

import (
	"strconv"
	"strings"
	"time"
)

// TimescaleUnit is the unit of the $timescale header field.
type TimescaleUnit int

// Timescale units, from seconds down to femtoseconds.
const (
	TimescaleS TimescaleUnit = iota
	TimescaleMS
	TimescaleUS
	TimescaleNS
	TimescalePS
	TimescaleFS
)

var timescaleUnits = [...]string{"s", "ms", "us", "ns", "ps", "fs"}

func (u TimescaleUnit) String() string {
	if u < TimescaleS || u > TimescaleFS {
		return "TimescaleUnit(" + strconv.Itoa(int(u)) + ")"
	}
	return timescaleUnits[u]
}

// A Header holds the metadata rendered at the top of a VCD file: the
// timescale plus the optional free-text date, comment and version fields.
// A Header is validated on construction and immutable afterwards.
type Header struct {
	timescale string
	date      string
	comment   string
	version   string
}

// NewHeader builds a Header. quantity must be 1, 10 or 100 and unit one of
// the TimescaleUnit constants. date must be empty or formatted like
// time.ANSIC ("Mon Jan _2 15:04:05 2006"). comment and version are free
// text. Empty fields are omitted from the output.
func NewHeader(quantity int, unit TimescaleUnit, date, comment, version string) (*Header, error) {
	switch quantity {
	case 1, 10, 100:
	default:
		return nil, validationErrorf("invalid timescale quantity %d", quantity)
	}
	if unit < TimescaleS || unit > TimescaleFS {
		return nil, validationErrorf("invalid timescale unit %d", int(unit))
	}
	if date != "" {
		if _, err := time.Parse(time.ANSIC, date); err != nil {
			return nil, validationErrorf("invalid date %q format", date)
		}
	}
	return &Header{
		timescale: strconv.Itoa(quantity) + " " + unit.String(),
		date:      date,
		comment:   comment,
		version:   version,
	}, nil
}

// NewHeaderNow builds a Header with the date field set to the current time.
func NewHeaderNow(quantity int, unit TimescaleUnit, comment, version string) (*Header, error) {
	return NewHeader(quantity, unit, time.Now().Format(time.ANSIC), comment, version)
}

// keywords returns the header keyword/value pairs in declaration order.
func (h *Header) keywords() [4]struct{ name, value string } {
	return [4]struct{ name, value string }{
		{"$timescale", h.timescale},
		{"$date", h.date},
		{"$comment", h.comment},
		{"$version", h.version},
	}
}

// foldNewLines indents continuation lines of multi-line header values.
func foldNewLines(s string) string {
	return strings.ReplaceAll(s, "\n", "\n\t")
}
