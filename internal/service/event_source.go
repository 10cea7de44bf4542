package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

type lineSource struct {
	scanner *bufio.Scanner
}

// NewLineSource treats every input line as one toggle signal. Next blocks
// on the reader with no timeout.
func NewLineSource(r io.Reader) EventSource {
	return &lineSource{scanner: bufio.NewScanner(r)}
}

func (s *lineSource) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.scanner.Scan() {
		return nil
	}
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("reading toggle input: %w", err)
	}
	return io.EOF
}

type sliceSource struct {
	remaining int
}

// NewSliceSource yields n toggle signals without blocking, then io.EOF.
func NewSliceSource(n int) EventSource {
	return &sliceSource{remaining: n}
}

func (s *sliceSource) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.remaining <= 0 {
		return io.EOF
	}
	s.remaining--
	return nil
}
