// Package vcdio provides ready-made byte sinks for VCD output.
//
// The vcd.Writer itself only borrows an io.Writer; this package covers the
// common cases of tracing to a plain file or, since traces grow large, to a
// gzip-compressed one (GTKWave reads .vcd.gz directly).
package vcdio

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// A Sink is a file-backed byte sink, optionally gzip-compressed. Unlike the
// sink borrowed by a vcd.Writer, a Sink is owned by its creator and must be
// closed.
type Sink struct {
	f  *os.File
	gz *gzip.Writer
}

var _ io.WriteCloser = (*Sink)(nil)

// Create creates or truncates the file at path and returns a Sink writing
// to it. If path ends in ".gz" the output is gzip-compressed.
func Create(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "create sink")
	}
	s := &Sink{f: f}
	if strings.HasSuffix(path, ".gz") {
		s.gz = gzip.NewWriter(f)
	}
	return s, nil
}

// Write writes p to the file, through the compressor if there is one.
func (s *Sink) Write(p []byte) (int, error) {
	if s.gz != nil {
		return s.gz.Write(p)
	}
	return s.f.Write(p)
}

// Close flushes the compressor, if any, and closes the file.
func (s *Sink) Close() error {
	var err error
	if s.gz != nil {
		err = s.gz.Close()
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, "close sink")
}
