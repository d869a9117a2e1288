package ui

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/gridfit/internal/config"
	"github.com/oakwood-commons/gridfit/pkg/columns"
)

// copyToClipboardFn is swapped in tests.
var copyToClipboardFn = copyToClipboard

func copyToClipboard(text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "pbcopy")
	case "linux":
		// xclip, then xsel, then wl-copy (Wayland)
		if _, err := exec.LookPath("xclip"); err == nil {
			cmd = exec.CommandContext(ctx, "xclip", "-selection", "clipboard")
		} else if _, err := exec.LookPath("xsel"); err == nil {
			cmd = exec.CommandContext(ctx, "xsel", "--clipboard", "--input")
		} else if _, err := exec.LookPath("wl-copy"); err == nil {
			cmd = exec.CommandContext(ctx, "wl-copy")
		} else {
			return fmt.Errorf("no clipboard command found (install xclip, xsel, or wl-clipboard)")
		}
	case "windows":
		cmd = exec.CommandContext(ctx, "clip")
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	cmd.Stdin = bytes.NewReader([]byte(text))
	return cmd.Run()
}

// Snapshot is the current layout as a configuration document, in display
// order, with the resolved widths. Columns hidden by their visibleWhen rule
// keep the rule rather than visible: false.
func (m *Model) Snapshot() ([]byte, error) {
	doc := config.Document{
		LayoutSettings: config.LayoutConfig{
			Mode:               m.layout.Mode.String(),
			ScrollbarWidth:     m.layout.ScrollbarWidth,
			DefaultColumnWidth: m.layout.DefaultColumnWidth,
			AllowBleed:         m.layout.AllowBleed,
		},
		ColumnSettings: make([]config.ColumnConfig, 0, len(m.cols)),
	}
	if m.fixedWidth {
		doc.LayoutSettings.Width = m.layout.Width
	}
	no := false
	for i, c := range m.cols {
		cc := config.ColumnConfig{
			Prop:        c.Prop,
			Name:        c.Name,
			Width:       math.Round(c.Width*100) / 100,
			MinWidth:    c.MinWidth,
			MaxWidth:    c.MaxWidth,
			FlexGrow:    c.FlexGrow,
			VisibleWhen: m.rules.Source(m.order[i]),
		}
		if c.Pinned != "" && c.Pinned != columns.PinCenter {
			cc.Pinned = string(c.Pinned)
		}
		if !c.CanAutoResize {
			cc.CanAutoResize = &no
		}
		if !m.base[m.order[i]].Visible {
			cc.Visible = &no
		}
		doc.ColumnSettings = append(doc.ColumnSettings, cc)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

func (m *Model) copySnapshot() {
	data, err := m.Snapshot()
	if err == nil {
		err = copyToClipboardFn(string(data))
	}
	if err != nil {
		m.notice, m.noticeErr = "copy failed: "+err.Error(), true
		return
	}
	m.notice, m.noticeErr = fmt.Sprintf("copied %d columns to the clipboard", len(m.cols)), false
}
