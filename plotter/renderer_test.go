package plotter

import (
	"bytes"
	"testing"
	"time"

	"biorhythms-server/biorhythm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 400.0
	testHeight = 236.0
)

func testFrame(span int) Frame {
	center := biorhythm.NewDate(2024, time.March, 15)
	return Frame{
		Series:    biorhythm.GenerateSeries(biorhythm.NewDate(1990, time.July, 4), center, span, span),
		LeftDays:  span,
		RightDays: span,
		Center:    center,
	}
}

func TestLayout_MapX(t *testing.T) {
	l := NewLayout(testWidth, testHeight)

	for _, total := range []int{1, 2, 30, 365} {
		assert.Equal(t, l.Plot.Left, l.MapX(0, total))
		assert.Equal(t, l.Plot.Right, l.MapX(total, total))
	}
	assert.Equal(t, 16.0, l.Plot.Left)
	assert.Equal(t, 392.0, l.Plot.Right)
}

func TestLayout_MapXGuardsZeroTotal(t *testing.T) {
	l := NewLayout(testWidth, testHeight)

	assert.Equal(t, l.Plot.Left, l.MapX(0, 0))
	assert.Equal(t, l.Plot.Left, l.MapX(0, -1))
}

func TestLayout_MapY(t *testing.T) {
	l := NewLayout(testWidth, testHeight)

	assert.Equal(t, l.Plot.Top, l.MapY(1))
	assert.Equal(t, l.Plot.Bottom, l.MapY(-1))
	assert.Equal(t, (l.Plot.Top+l.Plot.Bottom)/2, l.MapY(0))
	assert.Less(t, l.MapY(0.5), l.MapY(0), "higher values sit nearer the top")
}

func TestRenderer_OperationOrder(t *testing.T) {
	rec := NewRecorder(testWidth, testHeight)
	f := testFrame(15)

	NewRenderer(DefaultTheme()).Render(rec, f)

	days := len(f.Series)
	require.Len(t, rec.Ops, 1+len(GRID_VALUES)+days+3+3)

	kinds := make([]string, len(rec.Ops))
	for i, op := range rec.Ops {
		kinds[i] = op.Kind
	}
	assert.Equal(t, OP_RECT, kinds[0])
	for i := 1; i <= len(GRID_VALUES)+days; i++ {
		assert.Equal(t, OP_LINE, kinds[i], "op %d", i)
	}
	textStart := 1 + len(GRID_VALUES) + days
	assert.Equal(t, []string{OP_TEXT, OP_TEXT, OP_TEXT}, kinds[textStart:textStart+3])
	assert.Equal(t, []string{OP_POLYLINE, OP_POLYLINE, OP_POLYLINE}, kinds[textStart+3:])
}

func TestRenderer_HorizontalGridWeights(t *testing.T) {
	rec := NewRecorder(testWidth, testHeight)
	theme := DefaultTheme()

	NewRenderer(theme).Render(rec, testFrame(3))

	grid := rec.Ops[1 : 1+len(GRID_VALUES)]
	l := NewLayout(testWidth, testHeight)
	for i, v := range GRID_VALUES {
		assert.Equal(t, l.MapY(v), grid[i].Points[0].Y)
		assert.Equal(t, l.Plot.Left, grid[i].Points[0].X)
		assert.Equal(t, l.Plot.Right, grid[i].Points[1].X)
	}

	zero, half, edge := grid[2], grid[3], grid[4]
	assert.Equal(t, ZERO_LINE_WIDTH, zero.Width)
	assert.Equal(t, hexColor(theme.ZeroLine), zero.Color)
	assert.Equal(t, hexColor(theme.GridHalf), half.Color)
	assert.Equal(t, hexColor(theme.GridDay), edge.Color)
	assert.Greater(t, theme.ZeroLine.A, theme.GridHalf.A)
	assert.Greater(t, theme.GridHalf.A, theme.GridDay.A)
}

func TestRenderer_TodayLineHighlighted(t *testing.T) {
	rec := NewRecorder(testWidth, testHeight)
	theme := DefaultTheme()
	f := testFrame(15)

	NewRenderer(theme).Render(rec, f)

	vertical := rec.Ops[1+len(GRID_VALUES) : 1+len(GRID_VALUES)+len(f.Series)]
	l := NewLayout(testWidth, testHeight)
	for i, op := range vertical {
		assert.Equal(t, l.MapX(i, len(f.Series)-1), op.Points[0].X)
		if i == f.LeftDays {
			assert.Equal(t, TODAY_WIDTH, op.Width)
			assert.Equal(t, hexColor(theme.Today), op.Color)
		} else {
			assert.Equal(t, GRID_WIDTH, op.Width)
			assert.Equal(t, hexColor(theme.GridDay), op.Color)
		}
	}
	assert.Equal(t, (l.Plot.Left+l.Plot.Right)/2, vertical[f.LeftDays].Points[0].X)
}

func TestRenderer_Labels(t *testing.T) {
	rec := NewRecorder(testWidth, testHeight)
	f := testFrame(15)
	theme := DefaultTheme()

	NewRenderer(theme).Render(rec, f)

	texts := rec.OfKind(OP_TEXT)
	require.Len(t, texts, 3)
	assert.Equal(t, "29 Feb", texts[0].Text)
	assert.Equal(t, "15 Mar", texts[1].Text)
	assert.Equal(t, "30 Mar", texts[2].Text)

	l := NewLayout(testWidth, testHeight)
	assert.Equal(t, l.Plot.Left, texts[0].Points[0].X)
	assert.Equal(t, l.LabelBaseline(), texts[0].Points[0].Y)

	centreWidth := rec.MeasureText("15 Mar", theme.Label)
	assert.InDelta(t, l.MapX(15, 30), texts[1].Points[0].X+centreWidth/2, 1e-9)

	rightWidth := rec.MeasureText("30 Mar", theme.Label)
	assert.InDelta(t, l.Plot.Right, texts[2].Points[0].X+rightWidth, 1e-9)
}

func TestRenderer_Curves(t *testing.T) {
	rec := NewRecorder(testWidth, testHeight)
	f := testFrame(10)

	NewRenderer(DefaultTheme()).Render(rec, f)

	curves := rec.OfKind(OP_POLYLINE)
	require.Len(t, curves, 3)

	l := NewLayout(testWidth, testHeight)
	for ci, c := range biorhythm.Cycles() {
		op := curves[ci]
		assert.Equal(t, hexColor(c.Color), op.Color)
		assert.Equal(t, CURVE_WIDTH, op.Width)
		assert.Equal(t, "round", op.Cap)
		require.Len(t, op.Points, len(f.Series))
		for i, p := range f.Series {
			assert.Equal(t, l.MapX(i, len(f.Series)-1), op.Points[i].X)
			assert.Equal(t, l.MapY(c.Pick(p)), op.Points[i].Y)
		}
		for i := 1; i < len(op.Points); i++ {
			assert.Greater(t, op.Points[i].X, op.Points[i-1].X, "curves run left to right")
		}
	}
}

func TestRenderer_EmptySeries(t *testing.T) {
	rec := NewRecorder(testWidth, testHeight)
	f := Frame{Center: biorhythm.NewDate(2024, time.January, 1), LeftDays: 15, RightDays: 15}

	assert.NotPanics(t, func() { NewRenderer(DefaultTheme()).Render(rec, f) })

	assert.Len(t, rec.OfKind(OP_RECT), 1)
	assert.Len(t, rec.OfKind(OP_LINE), len(GRID_VALUES))
	assert.Len(t, rec.OfKind(OP_TEXT), 3)
	assert.Empty(t, rec.OfKind(OP_POLYLINE))
}

func TestRenderer_SinglePoint(t *testing.T) {
	rec := NewRecorder(testWidth, testHeight)
	f := testFrame(0)

	NewRenderer(DefaultTheme()).Render(rec, f)

	lines := rec.OfKind(OP_LINE)
	require.Len(t, lines, len(GRID_VALUES)+1)
	today := lines[len(lines)-1]
	assert.Equal(t, MARGIN_LEFT, today.Points[0].X)
	assert.Equal(t, TODAY_WIDTH, today.Width)

	for _, c := range rec.OfKind(OP_POLYLINE) {
		assert.Len(t, c.Points, 1)
	}
}

func TestRenderer_Deterministic(t *testing.T) {
	r := NewRenderer(DefaultTheme())
	a, b := NewRecorder(testWidth, testHeight), NewRecorder(testWidth, testHeight)

	r.Render(a, testFrame(15))
	r.Render(b, testFrame(15))

	assert.Equal(t, a.Ops, b.Ops)
}

func TestRenderImage(t *testing.T) {
	for _, format := range []Format{FORMAT_PNG, FORMAT_SVG} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer

			err := RenderImage(&buf, format, 640, 320, NewRenderer(DefaultTheme()), testFrame(15))

			require.NoError(t, err)
			assert.NotZero(t, buf.Len())
			if format == FORMAT_PNG {
				assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
			} else {
				assert.Contains(t, buf.String(), "<svg")
			}
		})
	}
}

func TestNewGoChartCanvas_Invalid(t *testing.T) {
	_, err := NewGoChartCanvas(FORMAT_PNG, 0, 100)
	assert.Error(t, err)

	_, err = NewGoChartCanvas(Format("gif"), 100, 100)
	assert.Error(t, err)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, RenderHTML(&buf, testFrame(5), 800, 400))

	html := buf.String()
	assert.Contains(t, html, "Biorhythms")
	for _, c := range biorhythm.Cycles() {
		assert.Contains(t, html, c.Name)
	}
	assert.Contains(t, html, cssColor(biorhythm.Physical.Color))
}
