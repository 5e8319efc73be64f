package logic

// Navigator holds the selection index over a list whose length changes on
// every keystroke. The index is kept in [0, max(1, total)).
type Navigator struct {
	selectedIndex int
	total         int
}

// NewNavigator creates a navigator over total items
func NewNavigator(total int) *Navigator {
	n := &Navigator{}
	n.SetTotal(total)
	return n
}

// SelectedIndex returns the current selected index
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// Total returns the number of selectable items
func (n *Navigator) Total() int {
	return n.total
}

// HasSelection reports whether the selected index points at a real item
func (n *Navigator) HasSelection() bool {
	return n.total > 0
}

// SetTotal updates the item count and re-clamps the selection
func (n *Navigator) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	n.total = total
	n.clamp()
}

// Move shifts the selection by delta, clamped to the list bounds
func (n *Navigator) Move(delta int) {
	n.selectedIndex += delta
	n.clamp()
}

func (n *Navigator) clamp() {
	if n.selectedIndex >= n.total {
		n.selectedIndex = n.total - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

// VisibleRows returns how many list rows fit on a terminal of the given height,
// leaving one line for the prompt and one for the status line.
func VisibleRows(height int) int {
	rows := height - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

// WindowStart returns the first list row to draw so that the selected row is
// visible. When the selection is past the window it becomes the last visible row.
func WindowStart(selected, height int) int {
	start := selected - (VisibleRows(height) - 1)
	if start < 0 {
		start = 0
	}
	return start
}
