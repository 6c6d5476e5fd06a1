package tui

import (
	"fmt"
	"io"
)

// tableWriter wraps an io.Writer and keeps the first write error.
// Writes after a failure are skipped.
type tableWriter struct {
	w   io.Writer
	err error
}

func (tw *tableWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *tableWriter) println(args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintln(tw.w, args...)
}

// line writes a horizontal rule of the given width.
func (tw *tableWriter) line(width int) {
	tw.println(HorizontalLine(width))
}

// Err returns the first error encountered during any write, or nil.
func (tw *tableWriter) Err() error {
	return tw.err
}
