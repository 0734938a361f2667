package sokoban

import (
	"fmt"
	"strings"
)

// Position is a board coordinate: X is the column, Y the row.
type Position struct {
	X, Y int
}

// Add returns the position shifted by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Board is the typed grid derived from a level.
type Board struct {
	cells     [][]Cell
	width     int
	height    int
	goals     int
	treasures int
	start     Position
	hasStart  bool
}

// BuildBoard parses level rows into a board.
// Short rows are padded with Outside and floor reachable from the border in
// a straight line is trimmed to Outside.
func BuildBoard(rows []string) *Board {
	lvl := Level{Rows: rows}
	b := &Board{
		width:  lvl.Width(),
		height: lvl.Height(),
	}

	b.cells = make([][]Cell, b.height)
	for y, row := range rows {
		line := make([]Cell, b.width)
		x := 0
		for _, r := range row {
			c := ParseCell(r)
			switch r {
			case RuneGoal, RuneCrateOnGoal, RuneCharacterOnGoal:
				b.goals++
			}
			if r == RuneCrateOnGoal {
				b.treasures++
			}
			if c.HasCharacter() {
				b.start = Position{X: x, Y: y}
				b.hasStart = true
			}
			line[x] = c
			x++
		}
		// Remaining cells stay Outside (zero value).
		b.cells[y] = line
	}

	b.trimExterior()
	return b
}

// trimExterior converts floor reachable from each edge in a straight line
// into Outside. Row scans stop at the first cell that is not Floor; column
// scans also pass over Outside.
func (b *Board) trimExterior() {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width && b.cells[y][x] == Floor; x++ {
			b.cells[y][x] = Outside
		}
		for x := b.width - 1; x >= 0 && b.cells[y][x] == Floor; x-- {
			b.cells[y][x] = Outside
		}
	}
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height && b.cells[y][x].exterior(); y++ {
			b.cells[y][x] = Outside
		}
		for y := b.height - 1; y >= 0 && b.cells[y][x].exterior(); y-- {
			b.cells[y][x] = Outside
		}
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Goals returns the number of goal squares.
func (b *Board) Goals() int { return b.goals }

// Treasures returns the number of crates resting on goals.
func (b *Board) Treasures() int { return b.treasures }

// Start returns the character start position and whether the level has one.
// When several starts exist the last one in reading order wins.
func (b *Board) Start() (Position, bool) { return b.start, b.hasStart }

// InBounds reports whether p lies on the grid.
func (b *Board) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.width && p.Y < b.height
}

// At returns the cell at p. Positions off the grid are Outside.
func (b *Board) At(p Position) Cell {
	if !b.InBounds(p) {
		return Outside
	}
	return b.cells[p.Y][p.X]
}

// Rows returns a copy of the grid.
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, len(b.cells))
	for y, row := range b.cells {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// String re-encodes the board with the level legend, one line per row.
func (b *Board) String() string {
	var sb strings.Builder
	for y, row := range b.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			sb.WriteRune(c.Rune())
		}
	}
	return sb.String()
}

func (b *Board) set(p Position, c Cell) {
	b.cells[p.Y][p.X] = c
}

// moveCharacter relocates the character from one square to another.
func (b *Board) moveCharacter(from, to Position) {
	b.set(to, withCharacter(b.At(to)))
	b.set(from, withoutCharacter(b.At(from)))
}

// moveCrate slides a crate and keeps the treasure count in step.
func (b *Board) moveCrate(from, to Position) {
	if b.At(from) == CrateOnGoal {
		b.treasures--
	}
	b.set(from, withoutCrate(b.At(from)))
	b.set(to, withCrate(b.At(to)))
	if b.At(to) == CrateOnGoal {
		b.treasures++
	}
}

