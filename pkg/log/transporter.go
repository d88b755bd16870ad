package log

import (
	"encoding/json"
	"io"
	"os"
)

// Transporter defines the interface for log output destinations.
type Transporter interface {
	// Name returns the identifier for this transporter.
	Name() string

	// Write sends a log entry to the destination.
	Write(entry Entry) error

	// Close releases any resources held by the transporter.
	Close() error
}

// Stdout writes JSON log entries to stdout (or any io.Writer).
type Stdout struct {
	writer io.Writer
}

// NewStdout creates a transporter that writes to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

// NewStdoutWithWriter creates a stdout transporter with a custom writer.
// Useful for testing.
func NewStdoutWithWriter(w io.Writer) *Stdout {
	return &Stdout{writer: w}
}

// Name returns the transporter identifier.
func (s *Stdout) Name() string { return "stdout" }

// Write marshals the entry to JSON and writes it as one line.
func (s *Stdout) Write(entry Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = s.writer.Write(data)
	return err
}

// Close is a no-op for stdout.
func (s *Stdout) Close() error { return nil }
