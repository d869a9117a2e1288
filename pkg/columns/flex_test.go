package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func widthsOf(cols []Column) []float64 {
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = c.Width
	}
	return out
}

func TestAdjustColumnWidths(t *testing.T) {
	t.Run("returns unchanged columns when the width already matches", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100), WithFlexGrow(1)),
			New("name", WithWidth(200), WithFlexGrow(1), WithAutoResize(false)),
		}

		result, report := AdjustColumnWidthsWithReport(cols, 300)

		assert.Equal(t, cols, result)
		assert.Equal(t, 0, report.Iterations)
		assert.True(t, report.Converged())
	})

	t.Run("matching width skips clamping too", func(t *testing.T) {
		cols := []Column{New("id", WithWidth(40), WithMinWidth(41), WithFlexGrow(1))}

		result := AdjustColumnWidths(cols, 40)
		assert.Equal(t, 40.0, result[0].Width)

		cols[0].Width = 0
		result = AdjustColumnWidths(cols, 40)
		assert.Equal(t, 41.0, result[0].Width)
	})

	t.Run("distributes by flex grow", func(t *testing.T) {
		cols := []Column{
			New("id", WithFlexGrow(1)),
			New("name", WithFlexGrow(2)),
			New("email", WithFlexGrow(1)),
		}

		result, report := AdjustColumnWidthsWithReport(cols, 400)

		assert.Equal(t, []float64{100, 200, 100}, widthsOf(result))
		assert.Equal(t, 1, report.Iterations)
		assert.Zero(t, report.Residual)
	})

	t.Run("fixed columns keep their width and consume space", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(100), WithFlexGrow(1), WithAutoResize(false)),
			New("name", WithWidth(50), WithFlexGrow(1)),
			New("email", WithWidth(50), WithFlexGrow(1)),
		}

		result := AdjustColumnWidths(cols, 500)

		assert.Equal(t, []float64{100, 200, 200}, widthsOf(result))
	})

	t.Run("redistributes the deficit of columns clamped to their minimum", func(t *testing.T) {
		cols := []Column{
			New("id", WithFlexGrow(1)),
			New("name", WithFlexGrow(1), WithMinWidth(300)),
		}

		result, report := AdjustColumnWidthsWithReport(cols, 400)

		assert.Equal(t, []float64{100, 300}, widthsOf(result))
		assert.Equal(t, 2, report.Iterations)
		assert.Equal(t, 1, report.Frozen)
		assert.True(t, report.Converged())
	})

	t.Run("redistributes the surplus of columns clamped to their maximum", func(t *testing.T) {
		cols := []Column{
			New("id", WithFlexGrow(1), WithMaxWidth(100)),
			New("name", WithFlexGrow(1)),
		}

		result := AdjustColumnWidths(cols, 500)

		assert.Equal(t, []float64{100, 400}, widthsOf(result))
	})

	t.Run("stops when every column is clamped and reports the rest", func(t *testing.T) {
		cols := []Column{
			New("id", WithFlexGrow(1), WithMaxWidth(100)),
			New("name", WithFlexGrow(1), WithMaxWidth(100)),
		}

		result, report := AdjustColumnWidthsWithReport(cols, 500)

		assert.Equal(t, []float64{100, 100}, widthsOf(result))
		assert.Equal(t, 2, report.Frozen)
		assert.InDelta(t, 300, report.Residual, 1e-9)
		assert.False(t, report.Converged())
	})

	t.Run("zero flex total leaves the width undistributed", func(t *testing.T) {
		cols := []Column{
			New("id"),
			New("name", WithMinWidth(20)),
		}

		result, report := AdjustColumnWidthsWithReport(cols, 300)

		assert.Equal(t, []float64{0, 20}, widthsOf(result))
		assert.Equal(t, 0, report.Iterations)
		assert.InDelta(t, 280, report.Residual, 1e-9)
	})

	t.Run("hidden columns are neither counted nor resized", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(50), WithFlexGrow(1), WithVisible(false)),
			New("name", WithFlexGrow(1)),
		}

		result := AdjustColumnWidths(cols, 200)

		assert.Equal(t, []float64{50, 200}, widthsOf(result))
	})

	t.Run("negative width is a zero budget", func(t *testing.T) {
		cols := []Column{
			New("id", WithFlexGrow(1), WithMinWidth(10)),
			New("name", WithFlexGrow(1)),
		}

		result, report := AdjustColumnWidthsWithReport(cols, -50)

		assert.Equal(t, []float64{10, 0}, widthsOf(result))
		assert.InDelta(t, -10, report.Residual, 1e-9)
	})

	t.Run("pinned groups share one budget", func(t *testing.T) {
		cols := []Column{
			New("actions", WithFlexGrow(1), WithPin(PinRight)),
			New("id", WithFlexGrow(1), WithPin(PinLeft)),
			New("name", WithFlexGrow(2)),
		}

		result := AdjustColumnWidths(cols, 800)

		assert.Equal(t, []float64{200, 200, 400}, widthsOf(result))
	})

	t.Run("does not modify the input", func(t *testing.T) {
		cols := []Column{
			New("id", WithWidth(10), WithFlexGrow(1)),
			New("name", WithWidth(10), WithFlexGrow(1)),
		}
		before := append([]Column(nil), cols...)

		_ = AdjustColumnWidths(cols, 1000)

		require.Equal(t, before, cols)
	})
}

func TestAdjustColumnWidths_Properties(t *testing.T) {
	for seed := uint64(1); seed <= 200; seed++ {
		cols, expected, _ := randomColumns(seed)

		result, report := AdjustColumnWidthsWithReport(cols, expected)

		require.Len(t, result, len(cols), "seed %d", seed)
		assert.LessOrEqual(t, report.Iterations, len(cols)+1, "seed %d", seed)
		if TotalWidth(cols) == expected {
			continue
		}
		assert.InDelta(t, expected-TotalWidth(result), report.Residual, 1e-6, "seed %d", seed)
		for i, c := range result {
			if !cols[i].Visible || !cols[i].CanAutoResize {
				assert.Equal(t, cols[i].Width, c.Width, "seed %d col %d", seed, i)
				continue
			}
			assert.GreaterOrEqual(t, c.Width, c.lowerBound(), "seed %d col %d", seed, i)
			assert.LessOrEqual(t, c.Width, c.upperBound(), "seed %d col %d", seed, i)
		}
	}
}
