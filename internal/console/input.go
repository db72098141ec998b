// Package console reads player input from a terminal or pipe.
package console

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

type result struct {
	line string
	err  error
}

// Input reads one line per request from an io.Reader. Reads happen on a
// background goroutine so a pending ReadLine returns as soon as its context
// is cancelled. Input is meant for a single consumer.
type Input struct {
	scanner  *bufio.Scanner
	requests chan struct{}
	results  chan result
	start    sync.Once

	pending bool
	err     error
}

// NewInput creates an Input reading from r.
func NewInput(r io.Reader) *Input {
	return &Input{
		scanner:  bufio.NewScanner(r),
		requests: make(chan struct{}, 1),
		results:  make(chan result, 1),
	}
}

// ReadLine returns the next line without its line ending. It returns io.EOF
// once the reader is exhausted and ctx.Err() if ctx ends first; a line
// requested before cancellation is delivered by the next call.
func (in *Input) ReadLine(ctx context.Context) (string, error) {
	if in.err != nil {
		return "", in.err
	}
	in.start.Do(func() { go in.pump() })

	if !in.pending {
		in.requests <- struct{}{}
		in.pending = true
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-in.results:
		in.pending = false
		if res.err != nil {
			in.err = res.err
			return "", res.err
		}
		return res.line, nil
	}
}

func (in *Input) pump() {
	for range in.requests {
		if !in.scanner.Scan() {
			err := in.scanner.Err()
			if err == nil {
				err = io.EOF
			}
			in.results <- result{err: err}
			return
		}
		in.results <- result{line: strings.TrimRight(in.scanner.Text(), "\r")}
	}
}
