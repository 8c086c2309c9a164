package maze

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrEmptyLayout     = errors.New("maze: empty or ragged layout")
	ErrNoWalkableCells = errors.New("maze: grid has no walkable cells")
	ErrBadCellSize     = errors.New("maze: cell size must be positive")
	ErrDisconnected    = errors.New("maze: walkable cells are not connected")
	ErrNoSpawnCell     = errors.New("maze: no free walkable cell for spawn")
	ErrOpenBorder      = errors.New("maze: open border cell outside a tunnel")
)

// Cell addresses a grid square. Col may lie one step outside the grid while
// an agent travels through a tunnel.
type Cell struct {
	Row, Col int
}

func (c Cell) Step(d Direction) Cell {
	dx, dy := DirDelta(d)
	return Cell{Row: c.Row + dy, Col: c.Col + dx}
}

// Dist returns the straight-line distance between two cells in cell units.
func (c Cell) Dist(o Cell) float64 {
	return math.Hypot(float64(c.Col-o.Col), float64(c.Row-o.Row))
}

// Grid is the walkable/blocked lookup of a maze. The topology never changes
// after NewGrid; only CellSize follows window resizes.
type Grid struct {
	Rows     int
	Cols     int
	CellSize int
	walkable [][]bool
}

// NewGrid copies walkable into a new Grid.
func NewGrid(walkable [][]bool, cellSize int) (*Grid, error) {
	if cellSize <= 0 {
		return nil, errors.Wrapf(ErrBadCellSize, "got %d", cellSize)
	}
	if len(walkable) == 0 || len(walkable[0]) == 0 {
		return nil, ErrEmptyLayout
	}
	rows, cols := len(walkable), len(walkable[0])
	cells := make([][]bool, rows)
	open := 0
	for r := range walkable {
		if len(walkable[r]) != cols {
			return nil, errors.Wrapf(ErrEmptyLayout, "row %d has %d columns, want %d", r, len(walkable[r]), cols)
		}
		cells[r] = make([]bool, cols)
		copy(cells[r], walkable[r])
		for _, w := range walkable[r] {
			if w {
				open++
			}
		}
	}
	if open == 0 {
		return nil, errors.Wrapf(ErrNoWalkableCells, "%dx%d grid", cols, rows)
	}
	return &Grid{Rows: rows, Cols: cols, CellSize: cellSize, walkable: cells}, nil
}

func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// CanEnter reports whether an entity may occupy c.
func (g *Grid) CanEnter(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.walkable[c.Row][c.Col]
}

// IsTunnelRow reports whether both horizontal edges of row are open.
func (g *Grid) IsTunnelRow(row int) bool {
	if row < 0 || row >= g.Rows {
		return false
	}
	return g.walkable[row][0] && g.walkable[row][g.Cols-1]
}

// CanStep reports whether an agent in c may move one cell along d.
// Leaving the grid horizontally is allowed on tunnel rows only.
func (g *Grid) CanStep(c Cell, d Direction) bool {
	if d == DirNone {
		return false
	}
	next := c.Step(d)
	if next.Row < 0 || next.Row >= g.Rows {
		return false
	}
	if next.Col < 0 || next.Col >= g.Cols {
		return d.Horizontal() && g.IsTunnelRow(next.Row)
	}
	return g.walkable[next.Row][next.Col]
}

// CellAt maps a pixel position to its cell using floor division.
func (g *Grid) CellAt(x, y float64) Cell {
	cs := float64(g.CellSize)
	return Cell{Row: int(math.Floor(y / cs)), Col: int(math.Floor(x / cs))}
}

// Center returns the pixel center of c.
func (g *Grid) Center(c Cell) (float64, float64) {
	cs := float64(g.CellSize)
	return float64(c.Col)*cs + cs/2, float64(c.Row)*cs + cs/2
}

func (g *Grid) PixelWidth() float64 {
	return float64(g.Cols * g.CellSize)
}

func (g *Grid) PixelHeight() float64 {
	return float64(g.Rows * g.CellSize)
}

// WalkableCells lists the open cells in row-major order.
func (g *Grid) WalkableCells() []Cell {
	var out []Cell
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if g.walkable[r][c] {
				out = append(out, Cell{Row: r, Col: c})
			}
		}
	}
	return out
}

// Reachable flood-fills from start through cardinal moves, following
// tunnels across the horizontal edges.
func (g *Grid) Reachable(start Cell) map[Cell]bool {
	seen := map[Cell]bool{}
	if !g.CanEnter(start) {
		return seen
	}
	queue := []Cell{start}
	seen[start] = true
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Cardinals {
			if !g.CanStep(cur, d) {
				continue
			}
			next := g.wrap(cur.Step(d))
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return seen
}

// Connected reports whether every walkable cell can reach every other.
func (g *Grid) Connected() bool {
	open := g.WalkableCells()
	if len(open) == 0 {
		return false
	}
	return len(g.Reachable(open[0])) == len(open)
}

// Validate checks the border rule and connectivity. Top and bottom rows
// must be walls, and a row may open its edge cells only as a tunnel, with
// both ends open.
func (g *Grid) Validate() error {
	for c := 0; c < g.Cols; c++ {
		if g.walkable[0][c] || g.walkable[g.Rows-1][c] {
			return errors.Wrapf(ErrOpenBorder, "column %d", c)
		}
	}
	for r := 0; r < g.Rows; r++ {
		if (g.walkable[r][0] || g.walkable[r][g.Cols-1]) && !g.IsTunnelRow(r) {
			return errors.Wrapf(ErrOpenBorder, "row %d", r)
		}
	}
	if !g.Connected() {
		return errors.Wrapf(ErrDisconnected, "%dx%d grid", g.Cols, g.Rows)
	}
	return nil
}

// NearestWalkable searches square rings around c up to maxR for an open
// cell.
func (g *Grid) NearestWalkable(c Cell, maxR int) (Cell, bool) {
	if g.CanEnter(c) {
		return c, true
	}
	for r := 1; r <= maxR; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				n := Cell{Row: c.Row + dy, Col: c.Col + dx}
				if g.CanEnter(n) {
					return n, true
				}
			}
		}
	}
	return c, false
}

func (g *Grid) wrap(c Cell) Cell {
	if c.Col < 0 {
		c.Col += g.Cols
	} else if c.Col >= g.Cols {
		c.Col -= g.Cols
	}
	return c
}
