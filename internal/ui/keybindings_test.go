package ui

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestActionFor(t *testing.T) {
	tests := map[string]Action{
		"up":          ActionPrev,
		"k":           ActionPrev,
		"j":           ActionNext,
		"-":           ActionNarrow,
		"+":           ActionWiden,
		"shift+left":  ActionMoveLeft,
		"L":           ActionMoveRight,
		"tab":         ActionCycleMode,
		"b":           ActionToggleBleed,
		"r":           ActionReset,
		"y":           ActionCopy,
		"f1":          ActionHelp,
		"ctrl+c":      ActionQuit,
		"x":           ActionNone,
		"shift+right": ActionMoveRight,
	}
	for key, want := range tests {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, ActionFor(key))
		})
	}
}

func TestEveryActionIsDocumented(t *testing.T) {
	help := renderHelp(true, 0)
	for _, h := range longHelp {
		assert.Contains(t, help, h.label)
	}

	for key := range KeyBindings {
		if len(key) == 1 && key != "-" && key != "+" && key != "=" && key != "<" && key != ">" {
			assert.Contains(t, help, key, "key %q is missing from the help", key)
		}
	}
}

func TestRenderFooter(t *testing.T) {
	t.Run("everything fits on a wide terminal", func(t *testing.T) {
		footer := renderFooter(true, 0)
		for _, h := range shortHelp {
			assert.Contains(t, footer, h.label)
		}
		assert.NotContains(t, footer, "\n")
	})

	t.Run("entries that do not fit are dropped", func(t *testing.T) {
		footer := renderFooter(true, 30)
		assert.LessOrEqual(t, lipgloss.Width(footer), 30)
		assert.Contains(t, footer, "select")
		assert.NotContains(t, footer, "resize")
		assert.Contains(t, footer, "quit")
	})

	t.Run("quit survives every width", func(t *testing.T) {
		for _, width := range []int{60, 40, 20, 10} {
			footer := renderFooter(true, width)
			assert.LessOrEqual(t, lipgloss.Width(footer), width)
			assert.Contains(t, footer, "quit", "width %d", width)
		}
	})

	t.Run("very narrow terminal truncates quit", func(t *testing.T) {
		footer := renderFooter(true, 4)
		assert.LessOrEqual(t, lipgloss.Width(footer), 4)
		assert.Contains(t, footer, "q")
	})
}

func TestRenderHelpTruncates(t *testing.T) {
	for _, line := range strings.Split(strings.TrimRight(renderHelp(false, 20), "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}
