package nav

import (
	"testing"

	"github.com/stretchr/testify/require"

	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
)

const cell = 16

// grid builds a maze from text where '#' is a wall.
func grid(t *testing.T, lines ...string) *maze.Grid {
	t.Helper()
	w := make([][]bool, len(lines))
	for r, l := range lines {
		w[r] = make([]bool, len(l))
		for c := range l {
			w[r][c] = l[c] != '#'
		}
	}
	g, err := maze.NewGrid(w, cell)
	require.NoError(t, err)
	return g
}

func agentAt(g *maze.Grid, row, col int, speed float64) *entities.Agent {
	a := &entities.Agent{Speed: speed}
	a.PlaceAt(g, maze.Cell{Row: row, Col: col})
	return a
}

// fixedRand returns the same index every time, clamped to the range.
type fixedRand int

func (f fixedRand) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

var looped = []string{
	"###########",
	"#.........#",
	"#.###.###.#",
	"#.#.....#.#",
	"...#.#.#...",
	"#.#.....#.#",
	"#.###.###.#",
	"#.........#",
	"###########",
}
