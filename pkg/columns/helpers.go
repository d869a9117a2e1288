package columns

// PinGroups holds the indexes of visible columns per pin side, in column order.
type PinGroups struct {
	Left   []int
	Center []int
	Right  []int
}

// Each calls fn for every index, left group first, then center, then right.
func (g PinGroups) Each(fn func(idx int)) {
	for _, group := range [][]int{g.Left, g.Center, g.Right} {
		for _, idx := range group {
			fn(idx)
		}
	}
}

// Len is the number of grouped columns.
func (g PinGroups) Len() int {
	return len(g.Left) + len(g.Center) + len(g.Right)
}

// ByPin groups the visible columns by pin side. Unknown pins count as center.
func ByPin(cols []Column) PinGroups {
	var g PinGroups
	for i, c := range cols {
		if !c.Visible {
			continue
		}
		switch c.Pinned {
		case PinLeft:
			g.Left = append(g.Left, i)
		case PinRight:
			g.Right = append(g.Right, i)
		default:
			g.Center = append(g.Center, i)
		}
	}
	return g
}

// GroupWidths is the summed width of the visible columns per pin side.
type GroupWidths struct {
	Left   float64 `json:"left" yaml:"left" toml:"left"`
	Center float64 `json:"center" yaml:"center" toml:"center"`
	Right  float64 `json:"right" yaml:"right" toml:"right"`
	Total  float64 `json:"total" yaml:"total" toml:"total"`
}

// PinWidths sums visible widths per pin side.
func PinWidths(cols []Column) GroupWidths {
	var gw GroupWidths
	g := ByPin(cols)
	for _, idx := range g.Left {
		gw.Left += cols[idx].Width
	}
	for _, idx := range g.Center {
		gw.Center += cols[idx].Width
	}
	for _, idx := range g.Right {
		gw.Right += cols[idx].Width
	}
	gw.Total = gw.Left + gw.Center + gw.Right
	return gw
}

// TotalFlexGrow sums FlexGrow over the visible columns.
func TotalFlexGrow(cols []Column) float64 {
	total := 0.0
	for _, c := range cols {
		if c.Visible && c.FlexGrow > 0 {
			total += c.FlexGrow
		}
	}
	return total
}

// TotalWidth sums Width over the visible columns.
func TotalWidth(cols []Column) float64 {
	total := 0.0
	for _, c := range cols {
		if c.Visible {
			total += c.Width
		}
	}
	return total
}

// ContentWidth sums the visible widths, counting an unset width as
// defaultColWidth.
func ContentWidth(cols []Column, defaultColWidth float64) float64 {
	total := 0.0
	for _, c := range cols {
		if !c.Visible {
			continue
		}
		if c.Width == 0 {
			total += defaultColWidth
			continue
		}
		total += c.Width
	}
	return total
}
