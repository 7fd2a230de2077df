package sink

import (
	"math"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/flowboard/pkg/render/canvas"
	"github.com/matzehuels/flowboard/pkg/workflow"
)

type border struct{ tl, tr, bl, br, h, v rune }

var (
	borderRounded = border{'╭', '╮', '╰', '╯', '─', '│'}
	borderHovered = border{'╔', '╗', '╚', '╝', '═', '║'}
	borderHeavy   = border{'┏', '┓', '┗', '┛', '━', '┃'}
)

type cell struct {
	r    rune
	cont bool // right half of a wide rune
}

// Terminal is a fixed-size character grid implementing [canvas.Surface].
// The diagram frame is scaled to fit the grid. Selected nodes get a heavy
// border and hovered nodes a double one.
type Terminal struct {
	cols, rows int
	sx, sy     float64
	cells      [][]cell
	border     border
	box        canvas.Rect
}

// NewTerminal returns a surface of cols × rows cells. Sizes below 1 are
// clamped to 1.
func NewTerminal(cols, rows int) *Terminal {
	t := &Terminal{cols: max(cols, 1), rows: max(rows, 1), border: borderRounded}
	t.reset()
	return t
}

func (t *Terminal) reset() {
	t.cells = make([][]cell, t.rows)
	for y := range t.cells {
		t.cells[y] = make([]cell, t.cols)
		for x := range t.cells[y] {
			t.cells[y][x] = cell{r: ' '}
		}
	}
}

func (t *Terminal) Begin(width, height float64, _ canvas.Theme) {
	t.reset()
	t.sx = float64(t.cols) / width
	t.sy = float64(t.rows) / height
}

// Pattern dots every second grid line. The stride is measured in cells, so
// the work is bounded by the grid size however large the frame is.
func (t *Terminal) Pattern(g canvas.Grid) {
	step := g.Size * 2
	strideX := max(cellStride(step*t.sx), 2)
	strideY := max(cellStride(step*t.sy), 1)
	for cy := strideY; cy < t.rows; cy += strideY {
		for cx := strideX; cx < t.cols; cx += strideX {
			t.put(cx, cy, '·')
		}
	}
}

func cellStride(cells float64) int {
	if math.IsNaN(cells) || cells < 1 {
		return 1
	}
	return int(math.Min(math.Round(cells), math.MaxInt32))
}

func (t *Terminal) Path(from, to workflow.Point, _ canvas.Paint) {
	x0, y0 := t.cell(from)
	x1, y1 := t.cell(to)
	ch := '·'
	switch {
	case y0 == y1:
		ch = '─'
	case x0 == x1:
		ch = '│'
	}
	steps := max(abs(x1-x0), abs(y1-y0))
	for i := 0; i <= steps; i++ {
		f := 0.0
		if steps > 0 {
			f = float64(i) / float64(steps)
		}
		x := x0 + int(math.Round(f*float64(x1-x0)))
		y := y0 + int(math.Round(f*float64(y1-y0)))
		t.put(x, y, ch)
	}
}

func (t *Terminal) Circle(c workflow.Point, _ float64, _ canvas.Paint) {
	x, y := t.cell(c)
	t.put(x, y, '●')
}

func (t *Terminal) Group(_ workflow.NodeID, classes []string) {
	switch {
	case slices.Contains(classes, canvas.ClassSelected):
		t.border = borderHeavy
	case slices.Contains(classes, canvas.ClassHovered):
		t.border = borderHovered
	default:
		t.border = borderRounded
	}
}

func (t *Terminal) RoundedRect(b canvas.Rect, _ float64, _ canvas.Paint) {
	t.box = b
	x0, y0 := t.cell(workflow.Point{X: b.X, Y: b.Y})
	x1, y1 := t.cell(workflow.Point{X: b.X + b.W, Y: b.Y + b.H})
	x1 = max(x1, x0+4)
	y1 = max(y1, y0+3)

	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			t.put(x, y, ' ')
		}
		t.put(x, y0, t.border.h)
		t.put(x, y1, t.border.h)
	}
	for y := y0; y <= y1; y++ {
		t.put(x0, y, t.border.v)
		t.put(x1, y, t.border.v)
	}
	t.put(x0, y0, t.border.tl)
	t.put(x1, y0, t.border.tr)
	t.put(x0, y1, t.border.bl)
	t.put(x1, y1, t.border.br)
}

func (t *Terminal) Text(at workflow.Point, s string, _ canvas.Font) {
	x0, _ := t.cell(workflow.Point{X: t.box.X, Y: t.box.Y})
	x1, _ := t.cell(workflow.Point{X: t.box.X + t.box.W, Y: t.box.Y})
	inner := max(max(x1, x0+4)-x0-1, 1)

	cx, y := t.cell(at)
	_, top := t.cell(workflow.Point{Y: t.box.Y})
	_, bottom := t.cell(workflow.Point{Y: t.box.Y + t.box.H})
	y = min(max(y, top+1), max(bottom, top+3)-1)

	s = runewidth.Truncate(s, inner, "…")
	x := cx - runewidth.StringWidth(s)/2
	for _, r := range s {
		t.put(x, y, r)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

func (t *Terminal) Ungroup() {
	t.border = borderRounded
	t.box = canvas.Rect{}
}

func (t *Terminal) End() {}

// Lines returns the grid rows with trailing spaces removed.
func (t *Terminal) Lines() []string {
	lines := make([]string, t.rows)
	for y, row := range t.cells {
		var sb strings.Builder
		for _, c := range row {
			if c.cont {
				continue
			}
			sb.WriteRune(c.r)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// String returns the grid as newline-separated rows.
func (t *Terminal) String() string { return strings.Join(t.Lines(), "\n") }

// Size returns the grid dimensions in cells.
func (t *Terminal) Size() (cols, rows int) { return t.cols, t.rows }

// CellAt maps a cell back to canvas coordinates, at the cell's center.
func (t *Terminal) CellAt(col, row int) workflow.Point {
	return workflow.Point{X: (float64(col) + 0.5) / t.sx, Y: (float64(row) + 0.5) / t.sy}
}

// cell maps p to a cell. Far off-grid points are clamped to within one grid
// width of the edges, which keeps the drawing loops bounded.
func (t *Terminal) cell(p workflow.Point) (int, int) {
	return clampCell(p.X*t.sx, t.cols), clampCell(p.Y*t.sy, t.rows)
}

func clampCell(v float64, n int) int {
	if math.IsNaN(v) {
		return -1
	}
	return int(math.Floor(math.Min(math.Max(v, float64(-n)), float64(2*n))))
}

func (t *Terminal) put(x, y int, r rune) {
	if y < 0 || y >= t.rows || x < 0 || x >= t.cols {
		return
	}
	row := t.cells[y]
	w := runewidth.RuneWidth(r)
	if w == 2 && x+1 >= t.cols {
		return
	}
	if row[x].cont && x > 0 {
		row[x-1] = cell{r: ' '}
	}
	if x+1 < t.cols && row[x+1].cont {
		row[x+1] = cell{r: ' '}
	}
	row[x] = cell{r: r}
	if w == 2 {
		if x+2 < t.cols && row[x+2].cont {
			row[x+2] = cell{r: ' '}
		}
		row[x+1] = cell{cont: true}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
