package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// renderFooter lays out the short key help on one line, dropping entries
// that do not fit in width. The last entry, quit, is always kept.
func renderFooter(noColor bool, width int) string {
	keyStyle := lipgloss.NewStyle()
	labelStyle := lipgloss.NewStyle()
	if !noColor {
		keyStyle = keyStyle.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240")).Bold(true)
		labelStyle = labelStyle.Foreground(lipgloss.Color("248"))
	} else {
		keyStyle = keyStyle.Reverse(true)
	}
	render := func(h keyHelp) string {
		return keyStyle.Render(" "+h.keys+" ") + " " + labelStyle.Render(h.label)
	}

	if len(shortHelp) == 0 {
		return ""
	}
	last := render(shortHelp[len(shortHelp)-1])
	if width > 0 && lipgloss.Width(last) >= width {
		return ansi.Truncate(last, width, "")
	}

	budget := width - lipgloss.Width(last) - 2
	parts := make([]string, 0, len(shortHelp))
	used := 0
	for _, h := range shortHelp[:len(shortHelp)-1] {
		part := render(h)
		w := lipgloss.Width(part)
		if width > 0 && used+w > budget {
			break
		}
		parts = append(parts, part)
		used += w + 2
	}
	return strings.Join(append(parts, last), "  ")
}

// renderHelp is the full key reference.
func renderHelp(noColor bool, width int) string {
	keyStyle := lipgloss.NewStyle().Bold(true)
	if !noColor {
		keyStyle = keyStyle.Foreground(lipgloss.Color("12"))
	}
	keyWidth := 0
	for _, h := range longHelp {
		keyWidth = max(keyWidth, lipgloss.Width(h.keys))
	}
	var b strings.Builder
	for _, h := range longHelp {
		line := keyStyle.Render(h.keys+strings.Repeat(" ", keyWidth-lipgloss.Width(h.keys))) + "  " + h.label
		if width > 0 {
			line = ansi.Truncate(line, width, "")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
