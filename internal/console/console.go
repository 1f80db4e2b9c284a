//go:generate mockgen -source=console.go -destination=mocks/mock_console.go -package=mocks

// Package console abstracts the cursor-addressable terminal that progress
// bars draw on.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/agbru/hprogress/internal/textutil"
)

// DefaultWindowWidth is used when the terminal size cannot be determined.
const DefaultWindowWidth = 80

// Console is a terminal with an addressable cursor.
type Console interface {
	CursorTop() int
	CursorLeft() int
	SetCursorPosition(left, top int) error
	Write(s string) error
	WriteLine(s string) error
	WindowWidth() int
}

// Terminal implements Console with ANSI cursor movement sequences. The
// cursor position is tracked locally relative to the row the Terminal
// started on; row 0 is that first row.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	fd    int
	tty   bool
	width int

	row, col int
	// bottom is the lowest row that has been reached so far.
	bottom int
}

// NewTerminal creates a Terminal writing to f. The window width is queried
// from f on every call when f is a terminal.
func NewTerminal(f *os.File) *Terminal {
	fd := int(f.Fd())
	return &Terminal{out: f, fd: fd, tty: term.IsTerminal(fd)}
}

// NewWriterTerminal creates a Terminal on an arbitrary writer with a fixed
// window width. A non-positive width selects DefaultWindowWidth.
func NewWriterTerminal(w io.Writer, width int) *Terminal {
	if width <= 0 {
		width = DefaultWindowWidth
	}
	return &Terminal{out: w, fd: -1, width: width}
}

// IsTerminal reports whether the output is an interactive terminal.
func (t *Terminal) IsTerminal() bool { return t.tty }

// CursorTop returns the cursor row.
func (t *Terminal) CursorTop() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.row
}

// CursorLeft returns the cursor column.
func (t *Terminal) CursorLeft() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.col
}

// SetCursorPosition moves the cursor. Rows below anything written so far are
// created with newlines.
func (t *Terminal) SetCursorPosition(left, top int) error {
	if left < 0 || top < 0 {
		return fmt.Errorf("cursor position (%d, %d) out of range", left, top)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	bottom := t.bottom
	if top > t.bottom {
		if t.row < t.bottom {
			fmt.Fprintf(&b, "\x1b[%dB", t.bottom-t.row)
		}
		b.WriteString(strings.Repeat("\n", top-t.bottom))
		bottom = top
	} else if top < t.row {
		fmt.Fprintf(&b, "\x1b[%dA", t.row-top)
	} else if top > t.row {
		fmt.Fprintf(&b, "\x1b[%dB", top-t.row)
	}
	b.WriteByte('\r')
	if left > 0 {
		fmt.Fprintf(&b, "\x1b[%dC", left)
	}
	if _, err := io.WriteString(t.out, b.String()); err != nil {
		return err
	}
	t.row, t.col, t.bottom = top, left, bottom
	return nil
}

// Write writes s at the cursor.
func (t *Terminal) Write(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.out, s); err != nil {
		return err
	}
	t.col += textutil.Width(s)
	return nil
}

// WriteLine writes s followed by a line break.
func (t *Terminal) WriteLine(s string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.out, s+"\n"); err != nil {
		return err
	}
	t.row++
	t.col = 0
	if t.row > t.bottom {
		t.bottom = t.row
	}
	return nil
}

// WindowWidth returns the terminal width in columns.
func (t *Terminal) WindowWidth() int {
	if t.width > 0 {
		return t.width
	}
	if t.tty {
		if w, _, err := term.GetSize(t.fd); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWindowWidth
}

var _ Console = (*Terminal)(nil)
