package ui

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cmenu/internal/ui/state"
)

// Run drives the model on the given terminal until the user confirms or
// cancels. Bubbletea puts the terminal into raw mode itself and restores it
// on every exit, including a cancelled ctx.
func Run(ctx context.Context, m *Model, in, out *os.File) (state.Result, error) {
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	)

	_, err := p.Run()
	m.state.Terminate()
	if err != nil {
		return state.Result{}, fmt.Errorf("failed to run picker: %w", err)
	}
	if m.Err() != nil {
		return state.Result{}, m.Err()
	}

	return m.Result(), nil
}
