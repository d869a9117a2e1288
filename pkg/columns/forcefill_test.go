package columns

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeColumns() []Column {
	return []Column{
		New("id", WithWidth(250)),
		New("name", WithWidth(400)),
		New("email", WithWidth(250)),
	}
}

func TestForceFillColumnWidths(t *testing.T) {
	t.Run("expanding resizes only columns right of the resized one", func(t *testing.T) {
		result := ForceFillColumnWidths(threeColumns(), 1000, 1)

		assert.Equal(t, []float64{250, 400, 350}, widthsOf(result))
	})

	t.Run("compressing resizes only columns right of the resized one", func(t *testing.T) {
		result := ForceFillColumnWidths(threeColumns(), 750, 1)

		assert.Equal(t, []float64{250, 400, 100}, widthsOf(result))
	})

	t.Run("zero width returns the input unchanged", func(t *testing.T) {
		cols := []Column{New("id"), New("name", WithWidth(10), WithMinWidth(50))}

		result, report := ForceFillWithReport(cols, 0, 0)

		assert.Equal(t, cols, result)
		assert.Equal(t, 0, report.Iterations)
	})

	t.Run("splits in proportion to the original widths", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100)),
			New("name", WithWidth(100)),
			New("email", WithWidth(300)),
		}

		result := ForceFillColumnWidths(cols, 900, 0)

		assert.Equal(t, []float64{100, 200, 600}, widthsOf(result))
	})

	t.Run("columns reaching their maximum drop out", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100)),
			New("name", WithWidth(100), WithMaxWidth(150)),
			New("email", WithWidth(300)),
		}

		result, report := ForceFillWithReport(cols, 900, 0)

		assert.Equal(t, []float64{100, 150, 650}, widthsOf(result))
		assert.Equal(t, 2, report.Iterations)
		assert.Equal(t, 1, report.Frozen)
		assert.True(t, report.Converged())
	})

	t.Run("columns reaching their minimum drop out", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(200)),
			New("name", WithWidth(200), WithMinWidth(150)),
			New("email", WithWidth(200)),
		}

		result := ForceFillColumnWidths(cols, 400, 0)

		assert.Equal(t, []float64{200, 150, 50}, widthsOf(result))
	})

	t.Run("resized column takes what the others cannot", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100)),
			New("name", WithWidth(200)),
			New("email", WithWidth(100), WithMaxWidth(120)),
		}

		result, report := ForceFillWithReport(cols, 600, 1)

		assert.Equal(t, []float64{100, 380, 120}, widthsOf(result))
		assert.True(t, report.Converged())
	})

	t.Run("without a resized column the remainder is reported", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100), WithMaxWidth(120)),
			New("name", WithWidth(100), WithMaxWidth(120)),
		}

		result, report := ForceFillWithReport(cols, 400, -1)

		assert.Equal(t, []float64{120, 120}, widthsOf(result))
		assert.InDelta(t, 160, report.Residual, 1e-9)
	})

	t.Run("unset widths use the default within bounds", func(t *testing.T) {
		cols := []Column{
			New("id"),
			New("name", WithMaxWidth(200)),
			New("email", WithMinWidth(350)),
		}

		result, report := ForceFillWithReport(cols, 2000, 2)

		assert.Equal(t, []float64{300, 200, 350}, widthsOf(result))
		assert.InDelta(t, 1150, report.Residual, 1e-9)
	})

	t.Run("custom default width", func(t *testing.T) {
		cols := []Column{New("id"), New("name")}

		result := ForceFillColumnWidths(cols, 300, 0, WithDefaultColumnWidth(100))

		assert.Equal(t, []float64{100, 200}, widthsOf(result))
	})

	t.Run("allow bleed keeps original widths when content overflows", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(300)),
			New("name", WithWidth(300)),
			New("email", WithWidth(300)),
		}

		bled, report := ForceFillWithReport(cols, 600, 0, WithAllowBleed(true))
		squeezed := ForceFillColumnWidths(cols, 600, 0)

		assert.Equal(t, []float64{300, 300, 300}, widthsOf(bled))
		assert.InDelta(t, -300, report.Residual, 1e-9)
		assert.Equal(t, []float64{300, 150, 150}, widthsOf(squeezed))
	})

	t.Run("allow bleed still grows columns", func(t *testing.T) {
		result := ForceFillColumnWidths(threeColumns(), 1000, 1, WithAllowBleed(true))

		assert.Equal(t, []float64{250, 400, 350}, widthsOf(result))
	})

	t.Run("hidden and fixed columns are skipped", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100)),
			New("secret", WithWidth(500), WithVisible(false)),
			New("name", WithWidth(100), WithAutoResize(false)),
			New("email", WithWidth(100)),
		}

		result := ForceFillColumnWidths(cols, 500, 0)

		assert.Equal(t, []float64{100, 500, 100, 300}, widthsOf(result))
	})

	t.Run("sub-pixel leftovers go to the last eligible column", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100)),
			New("name", WithWidth(100)),
			New("email", WithWidth(100)),
		}

		result, report := ForceFillWithReport(cols, 300.5, 0)

		assert.Equal(t, []float64{100, 100, 100.5}, widthsOf(result))
		assert.Equal(t, 0, report.Iterations)
		assert.True(t, report.Converged())
	})

	t.Run("leftover skips bound columns on its way left", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(263), WithMinWidth(47)),
			New("name", WithWidth(329), WithMaxWidth(94)),
			New("email", WithWidth(295), WithMinWidth(75), WithMaxWidth(148)),
		}

		result, report := ForceFillWithReport(cols, 506, -1)

		assert.Equal(t, []float64{264, 94, 148}, widthsOf(result))
		assert.True(t, report.Converged())
	})

	t.Run("negative width is a zero budget and never yields negative widths", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100)),
			New("name", WithWidth(100), WithMinWidth(30)),
		}

		result := ForceFillColumnWidths(cols, -10, 0)

		assert.Equal(t, []float64{0, 30}, widthsOf(result))
	})

	t.Run("does not modify the input", func(t *testing.T) {
		cols := threeColumns()
		before := append([]Column(nil), cols...)

		_ = ForceFillColumnWidths(cols, 2000, 0)

		require.Equal(t, before, cols)
	})
}

// randomColumns builds a reproducible column set, a positive target width
// and a start index for property checks.
func randomColumns(seed uint64) ([]Column, float64, int) {
	r := rand.New(rand.NewPCG(seed, seed*7919))
	n := 1 + r.IntN(8)
	cols := make([]Column, n)
	pins := []Pin{PinLeft, PinCenter, PinRight}
	for i := range cols {
		c := New("c", WithPin(pins[r.IntN(len(pins))]))
		if r.IntN(4) > 0 {
			c.MinWidth = float64(r.IntN(100))
		}
		if r.IntN(3) == 0 {
			c.MaxWidth = c.MinWidth + float64(1+r.IntN(300))
		}
		if r.IntN(20) == 0 {
			c.MaxWidth = c.MinWidth / 2
		}
		c.FlexGrow = float64(r.IntN(4))
		c.CanAutoResize = r.IntN(5) > 0
		c.Visible = r.IntN(7) > 0
		if r.IntN(6) > 0 {
			c.Width = c.Clamp(float64(20 + r.IntN(400)))
		}
		cols[i] = c
	}
	return cols, 1 + r.Float64()*2000, r.IntN(n+1) - 1
}

func TestForceFillColumnWidths_Properties(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		cols, expected, startIdx := randomColumns(seed)

		result, report := ForceFillWithReport(cols, expected, startIdx)

		require.Len(t, result, len(cols), "seed %d", seed)
		assert.LessOrEqual(t, report.Iterations, len(cols), "seed %d", seed)
		assert.InDelta(t, expected-TotalWidth(result), report.Residual, 1e-6, "seed %d", seed)
		for i, c := range result {
			if !c.Visible {
				assert.Equal(t, cols[i], c, "seed %d col %d", seed, i)
				continue
			}
			assert.GreaterOrEqual(t, c.Width, c.lowerBound(), "seed %d col %d", seed, i)
			assert.LessOrEqual(t, c.Width, c.upperBound(), "seed %d col %d", seed, i)
			if i < startIdx && cols[i].Width != 0 {
				assert.Equal(t, cols[i].Width, c.Width, "seed %d col %d left of resize", seed, i)
			}
		}

		// width may stay unplaced only when every column that could take it
		// sits on a bound
		for i := max(startIdx+1, 0); i < len(result); i++ {
			c := result[i]
			if !c.eligible() || c.lowerBound() >= c.upperBound() {
				continue
			}
			if c.Width > c.lowerBound()+1e-6 && c.Width < c.upperBound()-1e-6 {
				assert.InDelta(t, 0, report.Residual, 1e-6, "seed %d: col %d has room", seed, i)
				break
			}
		}
	}
}
