//go:build e2e && unix

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/term"
)

const ringSize = 1 << 20   // 1 MiB of scrollback
var binPath = "cmenu_e2e" // unified binary path

// Key constants for better readability
const (
	KeyEnter     = "\r"
	KeyCtrlC     = "\x03"
	KeyBackspace = "\x7f"
	KeyUp        = "\x1b[A"
	KeyDown      = "\x1b[B"
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// PickerTest drives the cmenu binary with entries on a pipe and the keyboard
// on a pseudo terminal, the way a shell pipeline runs it
type PickerTest struct {
	t         *testing.T
	pty       *os.File
	tty       *os.File
	cmd       *exec.Cmd
	workspace string
	before    *term.State
	stderr    bytes.Buffer

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
	cond *sync.Cond

	waitErr error
	done    chan struct{}
}

// NewPickerTest creates a new test driver with its own workspace
func NewPickerTest(t *testing.T) *PickerTest {
	tf := &PickerTest{
		t:         t,
		buf:       make([]byte, ringSize),
		workspace: t.TempDir(),
		done:      make(chan struct{}),
	}
	tf.cond = sync.NewCond(&tf.mu)
	return tf
}

// Path returns a path inside the test workspace
func (tf *PickerTest) Path(name string) string {
	return filepath.Join(tf.workspace, name)
}

func (tf *PickerTest) env() []string {
	return append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,            // isolate $HOME
		"XDG_CONFIG_HOME="+tf.workspace, // ignore the user's cmenu config
		"CMENU_DEBUG_FILE="+tf.Path("debug.log"),
		"CMENU_DEBUG_LEVEL=debug",
	)
}

// StartPicker launches cmenu with entries on stdin and a pty as the
// controlling terminal
func (tf *PickerTest) StartPicker(entries string, args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = tf.env()

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	tf.pty = ptyFile
	tf.tty = tty

	if err := pty.Setsize(ptyFile, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		return fmt.Errorf("failed to set pty size: %w", err)
	}

	tf.before, err = term.GetState(int(tty.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read terminal state: %w", err)
	}

	tf.cmd.Stdin = strings.NewReader(entries)
	tf.cmd.Stdout = tty
	tf.cmd.Stderr = &tf.stderr
	tf.cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    1, // the child's stdout is the pty
	}

	if err := tf.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}

	tf.startReader()
	go func() {
		tf.waitErr = tf.cmd.Wait()
		close(tf.done)
	}()

	return nil
}

// RunOnce runs cmenu without a terminal and returns its stdout, stderr and exit code
func (tf *PickerTest) RunOnce(stdin string, args ...string) (string, string, int) {
	tf.t.Helper()
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(binPath, args...)
	cmd.Env = tf.env()
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), exitCode(err)
}

// startReader starts the continuous reader goroutine
func (tf *PickerTest) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := tf.pty.Read(buf)
			if n > 0 {
				tf.mu.Lock()
				for i := 0; i < n; i++ {
					tf.buf[tf.head] = buf[i]
					tf.head = (tf.head + 1) % ringSize
					if tf.head == 0 {
						tf.full = true
					}
				}
				tf.cond.Broadcast()
				tf.mu.Unlock()
			}
			if err != nil {
				tf.mu.Lock()
				tf.cond.Broadcast()
				tf.mu.Unlock()
				return
			}
		}
	}()
}

// SendKeys sends keystrokes to the application one key per write, so that each
// lands in its own read on the other side
func (tf *PickerTest) SendKeys(keys ...string) error {
	tf.t.Helper()
	for _, k := range keys {
		if _, err := tf.pty.Write([]byte(k)); err != nil {
			return err
		}
		time.Sleep(30 * time.Millisecond)
	}
	return nil
}

// Type sends each byte of text as its own key
func (tf *PickerTest) Type(text string) error {
	tf.t.Helper()
	keys := make([]string, 0, len(text))
	for i := 0; i < len(text); i++ {
		keys = append(keys, text[i:i+1])
	}
	return tf.SendKeys(keys...)
}

// Signal delivers sig to the running picker
func (tf *PickerTest) Signal(sig os.Signal) error {
	return tf.cmd.Process.Signal(sig)
}

// WaitExit waits for the picker to exit and returns its exit code, or -1 on timeout
func (tf *PickerTest) WaitExit(timeout time.Duration) int {
	tf.t.Helper()
	select {
	case <-tf.done:
		return exitCode(tf.waitErr)
	case <-time.After(timeout):
		return -1
	}
}

// Stderr returns what the picker wrote to its standard error
func (tf *PickerTest) Stderr() string {
	<-tf.done
	return tf.stderr.String()
}

// TerminalRestored reports whether the pty attributes match those captured
// before the picker started
func (tf *PickerTest) TerminalRestored() bool {
	tf.t.Helper()
	after, err := term.GetState(int(tf.tty.Fd()))
	if err != nil {
		tf.t.Logf("failed to read terminal state: %v", err)
		return false
	}
	return reflect.DeepEqual(tf.before, after)
}

// SeePlain waits for specific plain text to appear (normalized output)
func (tf *PickerTest) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// OutputContainsPlain checks if the normalized output contains specific text within a timeout
func (tf *PickerTest) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, timeout)
}

// WaitFor waits for a predicate to be true in the output
func (tf *PickerTest) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond) // simple, reliable polling; tests only
	}
}

// Snapshot returns the current contents of the ring buffer (thread-safe)
func (tf *PickerTest) Snapshot() string {
	tf.t.Helper()
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return tf.snapshot()
}

// snapshot returns the current contents of the ring buffer
// NOTE: This assumes the mutex is already locked by the caller
func (tf *PickerTest) snapshot() string {
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	out := make([]byte, ringSize)
	copy(out, tf.buf[tf.head:])
	copy(out[ringSize-tf.head:], tf.buf[:tf.head])
	return string(out)
}

// SnapshotPlain returns the current contents of the ring buffer with ANSI sequences removed
func (tf *PickerTest) SnapshotPlain() string {
	tf.t.Helper()
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTailOnFail logs the last n bytes of normalized output when the test failed
func (tf *PickerTest) DumpTailOnFail(n int) {
	if !tf.t.Failed() {
		return
	}
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	tf.t.Logf("--- tail ---\n%s", s)
}

// Cleanup closes the PTY and terminates the application
func (tf *PickerTest) Cleanup() {
	tf.DumpTailOnFail(4096)
	if tf.cmd != nil && tf.cmd.Process != nil {
		select {
		case <-tf.done:
		default:
			_ = tf.cmd.Process.Kill()
			<-tf.done
		}
	}
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
