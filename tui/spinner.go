package tui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinner struct {
	out      tableWriter
	interval time.Duration
	color    *Colorizer
}

// SpinnerOption configures RunWithSpinner.
type SpinnerOption func(*spinner)

// WithWriter sets the spinner destination. Defaults to stderr.
func WithWriter(w io.Writer) SpinnerOption {
	return func(s *spinner) {
		s.out.w = w
	}
}

// WithInterval sets the frame interval.
func WithInterval(d time.Duration) SpinnerOption {
	return func(s *spinner) {
		s.interval = d
	}
}

// RunWithSpinner runs fn while animating a spinner next to message.
// Nothing is drawn when the destination is not a terminal.
func RunWithSpinner[T any](message string, fn func() (T, error), opts ...SpinnerOption) (T, error) {
	s := spinner{
		out:      tableWriter{w: os.Stderr},
		interval: 100 * time.Millisecond,
		color:    NewColorizer(true),
	}

	for _, opt := range opts {
		opt(&s)
	}

	if !isTerminal(s.out.w) {
		return fn()
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			frame := spinnerFrames[i%len(spinnerFrames)]
			s.out.printf("\033[2K\r%s %s", s.color.Cyan(frame), message)

			select {
			case <-stop:
				s.out.printf("\033[2K\r")
				return
			case <-ticker.C:
			}
		}
	}()

	result, err := fn()

	close(stop)
	wg.Wait()

	if err != nil {
		return result, err
	}
	if s.out.Err() != nil {
		return result, fmt.Errorf("spinner output: %w", s.out.Err())
	}
	return result, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
