package memory

import (
	"context"
	"sync"
)

// Sink is an in-memory audit sink. Each AppendLine is atomic under the
// mutex; keeping multi-line records contiguous is the transaction logger's
// job, not the sink's.
type Sink struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func NewSink() *Sink {
	return &Sink{}
}

func (s *Sink) AppendLine(_ context.Context, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, line)
	return nil
}

// SetErr makes every subsequent append fail with err (nil restores writes).
func (s *Sink) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Lines returns a copy of the appended lines in order.
func (s *Sink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
