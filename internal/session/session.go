// Package session drives the raw-mode picker: read a chunk from the keyboard,
// decode it, apply it to the state machine, redraw. One goroutine, blocking reads.
package session

import (
	"errors"
	"fmt"
	"io"

	"cmenu/internal/config"
	"cmenu/internal/logging"
	"cmenu/internal/ui/input"
	"cmenu/internal/ui/input/types"
	"cmenu/internal/ui/state"
	"cmenu/internal/ui/views"
)

// Terminal is the device a session runs on
type Terminal interface {
	io.ReadWriter
	EnterRaw() error
	Restore() error
	Size() (width, height int)
}

// Session is a single interactive pick over a loaded entry list
type Session struct {
	term     Terminal
	state    *state.AppState
	renderer *views.Renderer
	ui       config.UISettings
	logger   logging.Logger

	width  int
	height int
}

// New creates a session. The state must still be in its init phase.
func New(term Terminal, st *state.AppState, renderer *views.Renderer, ui config.UISettings, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewDisabledLogger()
	}
	return &Session{
		term:     term,
		state:    st,
		renderer: renderer,
		ui:       ui,
		logger:   logger,
	}
}

// Run blocks until the user confirms or cancels. The terminal is in raw mode
// only for the duration of the call and is restored on every return path,
// including a panic.
func (s *Session) Run() (state.Result, error) {
	s.width, s.height = s.term.Size()
	s.logger.Debug("session starting", "width", s.width, "height", s.height, "entries", s.state.TotalEntries())

	err := withRaw(s.term, s.loop)
	s.state.Terminate()
	if err != nil {
		return state.Result{}, err
	}

	result := s.state.Result()
	s.logger.Debug("session finished", "ok", result.OK)
	return result, nil
}

func (s *Session) loop() error {
	s.state.Start()
	if err := s.draw(); err != nil {
		return err
	}

	buf := make([]byte, input.ChunkSize)
	for !s.state.Done() {
		n, err := s.term.Read(buf)
		if n > 0 {
			if derr := s.handle(buf[:n]); derr != nil {
				return derr
			}
		}
		if errors.Is(err, io.EOF) {
			// keyboard gone, nothing more can be confirmed
			s.logger.Debug("keyboard closed")
			if _, aerr := s.state.Apply(types.Key(types.EventCancel)); aerr != nil {
				return aerr
			}
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read keyboard: %w", err)
		}
	}

	// leave a clean screen behind
	if _, err := io.WriteString(s.term, views.ClearScreen); err != nil {
		return fmt.Errorf("failed to clear screen: %w", err)
	}
	return nil
}

func (s *Session) handle(chunk []byte) error {
	ev := input.Decode(chunk)
	s.logger.Debug("key", "bytes", len(chunk), "event", ev.Type.String())

	redraw, err := s.state.Apply(ev)
	if err != nil {
		return err
	}
	if redraw {
		return s.draw()
	}
	return nil
}

func (s *Session) draw() error {
	frame := s.renderer.RenderRaw(views.NewViewState(s.state, s.ui, s.width, s.height))
	if _, err := io.WriteString(s.term, frame); err != nil {
		return fmt.Errorf("failed to draw: %w", err)
	}
	return nil
}

// withRaw runs fn with the terminal in raw mode and restores it afterwards.
// A restore failure is reported only when fn itself succeeded.
func withRaw(t Terminal, fn func() error) (err error) {
	if err := t.EnterRaw(); err != nil {
		return err
	}
	defer func() {
		if rerr := t.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn()
}
