package report

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"
)

// OutputFilePermissions is the mode for report files created by the
// file sink.
const OutputFilePermissions = 0o644

// Sink writes a rendered report to its destination.
type Sink interface {
	// Emit writes one report line, preceded by a single blank line.
	Emit(line string) error
}

// WriterSink emits to an io.Writer, conventionally the caller's error
// stream so the child's stdout stays untouched.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a WriterSink.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Emit writes the report to the writer.
func (s *WriterSink) Emit(line string) error {
	if _, err := fmt.Fprintf(s.w, "\n%s\n", line); err != nil {
		return errors.Wrap(err, "writing report")
	}

	return nil
}

// FileSink appends reports to a file, creating it if absent. The file
// is never truncated.
type FileSink struct {
	path string
}

// NewFileSink creates a FileSink for the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Emit appends the report to the file.
func (s *FileSink) Emit(line string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, OutputFilePermissions)
	if err != nil {
		return errors.Wrapf(err, "opening report file %s", s.path)
	}

	if _, err := fmt.Fprintf(f, "\n%s\n", line); err != nil {
		_ = f.Close()

		return errors.Wrapf(err, "writing report file %s", s.path)
	}

	return errors.Wrapf(f.Close(), "closing report file %s", s.path)
}
