package tilemap

import (
	"github.com/pkg/errors"

	"retroarcade/internal/entities"
	"retroarcade/internal/maze"
)

type Tile int

const (
	TileEmpty Tile = iota
	TileWall
	TilePellet
	TilePower
)

// Layout is a decoded maze: the walkable grid, goal placements and the
// optional spawn hints marked in the source text.
type Layout struct {
	Grid        *maze.Grid
	Goals       []entities.Goal
	PlayerStart *maze.Cell
	GhostHomes  []maze.Cell
}

// DefaultMaze is the built-in board. '#' wall, '.' dot, 'o' power pellet,
// 'P' player start, 'G' ghost home, anything else open floor. Row 14 is a
// tunnel.
var DefaultMaze = []string{
	"############################",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#o####.#####.##.#####.####o#",
	"#.####.#####.##.#####.####.#",
	"#..........................#",
	"#.####.##.########.##.####.#",
	"#.####.##.########.##.####.#",
	"#......##....##....##......#",
	"######.##### ## #####.######",
	"######.##### ## #####.######",
	"######.##          ##.######",
	"######.## ###  ### ##.######",
	"######.## #GG  GG# ##.######",
	"      .   #      #   .      ",
	"######.## ######## ##.######",
	"######.##          ##.######",
	"######.## ######## ##.######",
	"######.## ######## ##.######",
	"#............##............#",
	"#.####.#####.##.#####.####.#",
	"#.####.#####.##.#####.####.#",
	"#o..##.......P .......##..o#",
	"###.##.##.########.##.##.###",
	"###.##.##.########.##.##.###",
	"#......##....##....##......#",
	"#.##########.##.##########.#",
	"#.##########.##.##########.#",
	"#..........................#",
	"############################",
}

// Decode turns layout text into a Layout. The grid is validated for
// connectivity.
func Decode(lines []string, cellSize int) (*Layout, error) {
	if len(lines) == 0 {
		return nil, maze.ErrEmptyLayout
	}
	tiles := parseMaze(lines)
	walkable := make([][]bool, len(tiles))
	out := &Layout{}
	for y, row := range tiles {
		walkable[y] = make([]bool, len(row))
		for x, t := range row {
			walkable[y][x] = t != TileWall
			c := maze.Cell{Row: y, Col: x}
			switch t {
			case TilePellet:
				out.Goals = append(out.Goals, entities.Goal{Cell: c})
			case TilePower:
				out.Goals = append(out.Goals, entities.Goal{Cell: c, Power: true})
			}
			if x >= len(lines[y]) {
				continue
			}
			switch lines[y][x] {
			case 'P':
				pc := c
				out.PlayerStart = &pc
			case 'G':
				out.GhostHomes = append(out.GhostHomes, c)
			}
		}
	}
	g, err := maze.NewGrid(walkable, cellSize)
	if err != nil {
		return nil, errors.Wrap(err, "decode layout")
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(err, "decode layout")
	}
	out.Grid = g
	return out, nil
}

func parseMaze(lines []string) [][]Tile {
	h := len(lines)
	w := 0
	for _, l := range lines {
		if len(l) > w {
			w = len(l)
		}
	}
	grid := make([][]Tile, h)
	for y := 0; y < h; y++ {
		grid[y] = make([]Tile, w)
		for x := 0; x < w; x++ {
			if x >= len(lines[y]) {
				grid[y][x] = TileWall
				continue
			}
			switch lines[y][x] {
			case '#':
				grid[y][x] = TileWall
			case '.':
				grid[y][x] = TilePellet
			case 'o':
				grid[y][x] = TilePower
			default:
				grid[y][x] = TileEmpty
			}
		}
	}
	return grid
}
