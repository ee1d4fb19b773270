// Package fs provides the file-backed audit sink: a flat, append-only,
// UTF-8 text file, one line per append, newline-terminated, no header.
// The format is intentionally minimal and is not re-parsed by this system.
package fs

import (
	"context"
	"fmt"
	"os"
	"sync"
)

type Sink struct {
	mu sync.Mutex
	f  *os.File
}

// OpenSink opens (creating if needed) the audit file for appending.
func OpenSink(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open audit sink: %w", err)
	}
	return &Sink{f: f}, nil
}

func (s *Sink) AppendLine(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("append audit line: %w", err)
	}
	return nil
}

// Close flushes and releases the underlying file.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
