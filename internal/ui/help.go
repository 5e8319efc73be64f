package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// footer renders the short key help shown after the status counter. It is
// dropped when the line would not fit the terminal width.
func (m *Model) footer() string {
	text := m.help.ShortHelpView(m.keys.ShortHelp())
	status := fmt.Sprintf("%d/%d  ", len(m.state.Matches()), m.state.TotalEntries())
	if m.width > 0 && runewidth.StringWidth(status+text) > m.width {
		return ""
	}
	return text
}
