package state

import (
	"cmenu/internal/ui/input/types"
	"cmenu/internal/ui/logic"
)

// Phase is the picker session's position in its lifecycle
type Phase int

const (
	PhaseInit Phase = iota
	PhaseBrowsing
	PhaseConfirmed
	PhaseCancelled
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseBrowsing:
		return "browsing"
	case PhaseConfirmed:
		return "confirmed"
	case PhaseCancelled:
		return "cancelled"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Result is what a finished session hands to the output collaborator.
// OK is false after a cancel or a confirm on an empty match list.
type Result struct {
	Value string
	OK    bool
}

// AppState contains all the picker state. Nothing here is shared between
// goroutines: the session loop is the only caller.
type AppState struct {
	entries   []string
	filter    *logic.Filter
	matches   []string
	navigator *logic.Navigator

	phase  Phase
	result Result
}

// NewAppState creates the session state over the loaded entries. The initial
// match list is every entry, since the empty filter matches all.
func NewAppState(entries []string, maxPatternLength int) *AppState {
	s := &AppState{
		entries:   entries,
		filter:    logic.NewFilter(maxPatternLength),
		navigator: logic.NewNavigator(0),
		phase:     PhaseInit,
	}
	s.updateMatches()
	return s
}

// Start moves the session from init to browsing
func (s *AppState) Start() {
	if s.phase == PhaseInit {
		s.phase = PhaseBrowsing
	}
}

// Apply feeds one logical event to the state machine and reports whether the
// view needs redrawing. Events outside the browsing phase are ignored.
func (s *AppState) Apply(ev types.Event) (bool, error) {
	if s.phase != PhaseBrowsing {
		return false, nil
	}

	switch ev.Type {
	case types.EventChar:
		if err := s.filter.Append(ev.Char); err != nil {
			return false, err
		}
		s.updateMatches()
		return true, nil

	case types.EventErase:
		if !s.filter.Erase() {
			return false, nil
		}
		s.updateMatches()
		return true, nil

	case types.EventUp:
		return s.move(-1), nil

	case types.EventDown:
		return s.move(1), nil

	case types.EventConfirm:
		if s.navigator.HasSelection() {
			s.result = Result{Value: s.matches[s.navigator.SelectedIndex()], OK: true}
		}
		s.phase = PhaseConfirmed
		return false, nil

	case types.EventCancel:
		s.phase = PhaseCancelled
		return false, nil
	}

	return false, nil
}

// Terminate closes a confirmed or cancelled session
func (s *AppState) Terminate() {
	if s.Done() {
		s.phase = PhaseTerminated
	}
}

func (s *AppState) move(delta int) bool {
	before := s.navigator.SelectedIndex()
	s.navigator.Move(delta)
	return s.navigator.SelectedIndex() != before
}

// updateMatches recomputes the match list from the filter and re-clamps the selection
func (s *AppState) updateMatches() {
	s.matches = logic.FilterEntries(s.entries, s.filter.Text())
	s.navigator.SetTotal(len(s.matches))
}

// Done reports whether the session has left the browsing phase
func (s *AppState) Done() bool {
	return s.phase == PhaseConfirmed || s.phase == PhaseCancelled || s.phase == PhaseTerminated
}

// Phase returns the current lifecycle phase
func (s *AppState) Phase() Phase {
	return s.phase
}

// Result returns the captured selection, if any
func (s *AppState) Result() Result {
	return s.result
}

// FilterText returns the current query
func (s *AppState) FilterText() string {
	return s.filter.Text()
}

// Matches returns the current match list in entry order
func (s *AppState) Matches() []string {
	return s.matches
}

// SelectedIndex returns the selection index into Matches
func (s *AppState) SelectedIndex() int {
	return s.navigator.SelectedIndex()
}

// HasSelection reports whether there is a match to select
func (s *AppState) HasSelection() bool {
	return s.navigator.HasSelection()
}

// TotalEntries returns the size of the entry store
func (s *AppState) TotalEntries() int {
	return len(s.entries)
}
