package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cmenu/internal/config"
	"cmenu/internal/ui/logic"
	"cmenu/internal/ui/state"
)

// Screen control written before every raw-mode frame: cursor home, clear screen
const ClearScreen = "\x1b[H\x1b[2J"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Prompt        string
	FilterText    string
	Matches       []string
	SelectedIndex int
	HasSelection  bool
	TotalEntries  int
	Marker        string
	ShowStatus    bool
	Footer        string
}

// NewViewState snapshots the picker state for one frame
func NewViewState(st *state.AppState, ui config.UISettings, width, height int) ViewState {
	return ViewState{
		Width:         width,
		Height:        height,
		Prompt:        ui.Prompt,
		FilterText:    st.FilterText(),
		Matches:       st.Matches(),
		SelectedIndex: st.SelectedIndex(),
		HasSelection:  st.HasSelection(),
		TotalEntries:  st.TotalEntries(),
		Marker:        ui.Marker,
		ShowStatus:    ui.ShowStatus,
	}
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a renderer whose styles are bound to r
func NewRenderer(r *lipgloss.Renderer, color bool) *Renderer {
	return &Renderer{styles: NewStyles(r, color)}
}

// Lines produces the frame line by line: the prompt, a window of matches sized
// to the terminal height minus two, then the status line.
func (r *Renderer) Lines(state ViewState) []string {
	lines := make([]string, 0, state.Height)

	prompt := r.styles.Prompt.Render(truncate(state.Prompt, state.Width))
	filter := state.FilterText
	if state.Width > 0 {
		filter = runewidth.Truncate(filter, max(state.Width-runewidth.StringWidth(state.Prompt), 0), "")
	}
	lines = append(lines, prompt+r.styles.Filter.Render(filter))

	start := logic.WindowStart(state.SelectedIndex, state.Height)
	end := start + logic.VisibleRows(state.Height)
	if end > len(state.Matches) {
		end = len(state.Matches)
	}

	for i := start; i < end; i++ {
		entry := state.Matches[i]
		if state.HasSelection && i == state.SelectedIndex {
			markerWidth := runewidth.StringWidth(state.Marker)
			row := truncate(entry, state.Width-markerWidth) + state.Marker
			lines = append(lines, r.styles.Selected.Render(row))
			continue
		}
		lines = append(lines, truncate(entry, state.Width))
	}

	if state.ShowStatus {
		status := fmt.Sprintf("%d/%d", len(state.Matches), state.TotalEntries)
		if state.Footer != "" {
			status += "  " + state.Footer
		}
		lines = append(lines, r.styles.Status.Render(truncate(status, state.Width)))
	}

	return lines
}

// Render produces the frame as newline separated text
func (r *Renderer) Render(state ViewState) string {
	return strings.Join(r.Lines(state), "\n")
}

// RenderRaw produces a full-screen frame for a terminal in raw mode, where a
// bare newline does not return the cursor to column zero.
func (r *Renderer) RenderRaw(state ViewState) string {
	return ClearScreen + strings.Join(r.Lines(state), "\r\n")
}

// truncate cuts s to width display cells. A non-positive width means unknown.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "")
}
