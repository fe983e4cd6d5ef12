package logging

import (
	"bytes"
	"io"
)

// PrefixWriter decorates an io.Writer so that every complete line is
// prepended with a fixed prefix. Partial lines are held back until the
// terminating newline arrives.
type PrefixWriter struct {
	prefix  []byte
	writer  io.Writer
	pending bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: w,
	}
}

// Write implements io.Writer. Data is buffered until a newline is seen,
// then each prefixed line is flushed to the underlying writer.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	if _, err := pw.pending.Write(p); err != nil {
		return 0, err
	}

	for {
		line, err := pw.pending.ReadBytes('\n')
		if err != nil {
			// Incomplete line: put it back and wait for more data.
			if len(line) > 0 {
				pw.pending.Write(line)
			}
			break
		}

		if _, err := pw.writer.Write(pw.prefix); err != nil {
			return 0, err
		}
		if _, err := pw.writer.Write(line); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}
