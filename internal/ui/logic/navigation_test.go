package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorClampsMoves(t *testing.T) {
	n := NewNavigator(3)
	assert.Equal(t, 0, n.SelectedIndex())

	n.Move(-1)
	assert.Equal(t, 0, n.SelectedIndex())

	n.Move(1)
	n.Move(1)
	n.Move(1)
	assert.Equal(t, 2, n.SelectedIndex())
}

func TestNavigatorReclampsWhenListShrinks(t *testing.T) {
	n := NewNavigator(10)
	n.Move(7)

	n.SetTotal(4)
	assert.Equal(t, 3, n.SelectedIndex())

	n.SetTotal(0)
	assert.Equal(t, 0, n.SelectedIndex())
	assert.False(t, n.HasSelection())

	n.Move(1)
	assert.Equal(t, 0, n.SelectedIndex())

	n.SetTotal(5)
	assert.Equal(t, 0, n.SelectedIndex())
	assert.True(t, n.HasSelection())
}

func TestVisibleRows(t *testing.T) {
	assert.Equal(t, 22, VisibleRows(24))
	assert.Equal(t, 1, VisibleRows(3))
	assert.Equal(t, 1, VisibleRows(1))
	assert.Equal(t, 1, VisibleRows(0))
}

func TestWindowStart(t *testing.T) {
	// 10 rows: 8 list rows visible
	assert.Equal(t, 0, WindowStart(0, 10))
	assert.Equal(t, 0, WindowStart(7, 10))
	assert.Equal(t, 1, WindowStart(8, 10))
	assert.Equal(t, 12, WindowStart(19, 10))

	// degenerate terminals still show the selected row
	assert.Equal(t, 5, WindowStart(5, 2))
}
