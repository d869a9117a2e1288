// Package dimensions measures the terminal the grid is drawn in.
package dimensions

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Dimensions is the client area of a terminal, in cells.
type Dimensions struct {
	ClientWidth  int
	ClientHeight int
}

// getSize is swapped in tests.
var getSize = term.GetSize

// Query returns the size of the terminal behind fd.
func Query(fd uintptr) (Dimensions, error) {
	w, h, err := getSize(int(fd))
	if err != nil {
		return Dimensions{}, fmt.Errorf("query terminal size: %w", err)
	}
	return Dimensions{ClientWidth: w, ClientHeight: h}, nil
}

// Detect probes stdout, stderr and stdin, then $COLUMNS and $LINES, and
// finally falls back to the given size. A zero fallback leaves that side 0.
func Detect(fallbackWidth, fallbackHeight int) Dimensions {
	for _, fd := range []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()} {
		if d, err := Query(fd); err == nil && (d.ClientWidth > 0 || d.ClientHeight > 0) {
			return d
		}
	}
	d := Dimensions{ClientWidth: fallbackWidth, ClientHeight: fallbackHeight}
	if w, ok := envInt("COLUMNS"); ok {
		d.ClientWidth = w
	}
	if h, ok := envInt("LINES"); ok {
		d.ClientHeight = h
	}
	return d
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
