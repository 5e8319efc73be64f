// Package terminal owns the keyboard/display device for a picker session.
//
// The controller enters raw mode through golang.org/x/term and restores the
// captured attributes exactly once per entry, no matter how many exit paths
// ask for it. When standard input carries the entry list, the controlling
// terminal is opened directly.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrNoTerminal is returned when no terminal device can be found for the session
var ErrNoTerminal = errors.New("no terminal available")

// TTYPath is the controlling terminal device
const TTYPath = "/dev/tty"

// Fallback size when the device does not report one
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Controller provides raw-mode control over a terminal device
type Controller struct {
	in  *os.File
	out *os.File
	tty *os.File // opened by Open, closed by Close

	mu    sync.Mutex
	saved *term.State
	raw   bool
}

// Open picks the keyboard and display for a session. Streams that are not
// terminals (piped entries, redirected output) are replaced by the controlling
// terminal device.
func Open(stdin, stdout *os.File) (*Controller, error) {
	c := &Controller{in: stdin, out: stdout}

	inTTY := isatty.IsTerminal(stdin.Fd())
	outTTY := isatty.IsTerminal(stdout.Fd())
	if inTTY && outTTY {
		return c, nil
	}

	tty, err := os.OpenFile(TTYPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTerminal, err)
	}
	c.tty = tty
	if !inTTY {
		c.in = tty
	}
	if !outTTY {
		c.out = tty
	}

	return c, nil
}

// NewController wraps already opened terminal files
func NewController(in, out *os.File) *Controller {
	return &Controller{in: in, out: out}
}

// Input returns the keyboard device
func (c *Controller) Input() *os.File {
	return c.in
}

// Output returns the display device
func (c *Controller) Output() *os.File {
	return c.out
}

// EnterRaw captures the current attributes and switches the keyboard to raw
// mode: no line buffering, no echo, no signal characters. Entering twice is a no-op.
func (c *Controller) EnterRaw() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.raw {
		return nil
	}

	fd := int(c.in.Fd())
	if !term.IsTerminal(fd) {
		return ErrNoTerminal
	}

	saved, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	c.saved = saved
	c.raw = true
	return nil
}

// Restore reapplies the attributes captured by EnterRaw.
// Safe to call multiple times and from any exit path.
func (c *Controller) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.raw {
		return nil
	}
	c.raw = false

	if err := term.Restore(int(c.in.Fd()), c.saved); err != nil {
		return fmt.Errorf("failed to restore terminal: %w", err)
	}
	return nil
}

// IsRaw reports whether the keyboard is currently in raw mode
func (c *Controller) IsRaw() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw
}

// Size returns the display dimensions, falling back to 80x24
func (c *Controller) Size() (int, int) {
	for _, f := range []*os.File{c.out, c.in} {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return DefaultWidth, DefaultHeight
}

// Read blocks until the keyboard delivers bytes
func (c *Controller) Read(p []byte) (int, error) {
	return c.in.Read(p)
}

// Write sends bytes to the display
func (c *Controller) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// Close restores the terminal and releases a device opened by Open
func (c *Controller) Close() error {
	err := c.Restore()
	if c.tty != nil {
		if cerr := c.tty.Close(); cerr != nil && err == nil {
			err = cerr
		}
		c.tty = nil
	}
	return err
}
