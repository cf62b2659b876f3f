package hexagon

import "fmt"

// MaxDimension is the largest column or row count a grid may have.
const MaxDimension = 20

// Position is a tile location in odd-q offset coordinates.
// Odd columns sit half a tile lower than even columns.
type Position struct {
	Column int
	Row    int
}

// P is a convenience constructor for Position.
func P(column, row int) Position {
	return Position{Column: column, Row: row}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Column, p.Row)
}

// Odd reports whether the position lies in an odd column.
func (p Position) Odd() bool {
	return p.Column&1 == 1
}

// InBounds reports whether p lies inside a columns x rows grid.
func (p Position) InBounds(columns, rows int) bool {
	return p.Column >= 0 && p.Row >= 0 && p.Column < columns && p.Row < rows
}

// TileIndex converts a position to its row-major index in a grid with the
// given column count.
func TileIndex(p Position, columns int) int {
	return p.Row*columns + p.Column
}

// PositionOf converts a row-major tile index back to a position.
func PositionOf(index, columns int) Position {
	return Position{Column: index % columns, Row: index / columns}
}

// Advance returns the neighbor of p in direction o.
// The boolean is false when the neighbor falls outside the grid.
func Advance(o Orientation, p Position, columns, rows int) (Position, bool) {
	next := p
	even := !p.Odd()

	switch o {
	case UpperRight:
		next.Column++
		if even {
			next.Row--
		}
	case UpperMiddle:
		next.Row--
	case UpperLeft:
		next.Column--
		if even {
			next.Row--
		}
	case LowerLeft:
		next.Column--
		if !even {
			next.Row++
		}
	case LowerMiddle:
		next.Row++
	case LowerRight:
		next.Column++
		if !even {
			next.Row++
		}
	default:
		return p, false
	}

	if !next.InBounds(columns, rows) {
		return p, false
	}
	return next, true
}

// Neighbor names one of the six adjacent tiles independently of orientation.
type Neighbor uint8

const (
	NeighborTop Neighbor = iota
	NeighborBottom
	NeighborTopLeft
	NeighborTopRight
	NeighborBottomLeft
	NeighborBottomRight
)

// NeighborCount is the number of neighbors of an interior tile.
const NeighborCount = 6

type offset struct{ column, row int }

var evenNeighborOffsets = [NeighborCount]offset{
	{0, -1}, {0, +1}, {-1, -1}, {+1, -1}, {-1, 0}, {+1, 0},
}

var oddNeighborOffsets = [NeighborCount]offset{
	{0, -1}, {0, +1}, {-1, 0}, {+1, 0}, {-1, +1}, {+1, +1},
}

// NeighborOf returns the tile adjacent to p on side n.
// The boolean is false when that tile lies outside a columns x rows grid.
func NeighborOf(p Position, n Neighbor, columns, rows int) (Position, bool) {
	if n >= NeighborCount {
		return p, false
	}
	offsets := &evenNeighborOffsets
	if p.Odd() {
		offsets = &oddNeighborOffsets
	}
	next := Position{Column: p.Column + offsets[n].column, Row: p.Row + offsets[n].row}
	if !next.InBounds(columns, rows) {
		return p, false
	}
	return next, true
}

// Neighbors returns every in-bounds neighbor of p.
func Neighbors(p Position, columns, rows int) []Position {
	result := make([]Position, 0, NeighborCount)
	for n := Neighbor(0); n < NeighborCount; n++ {
		if next, ok := NeighborOf(p, n, columns, rows); ok {
			result = append(result, next)
		}
	}
	return result
}

// Adjacent reports whether a and b share an edge.
func Adjacent(a, b Position) bool {
	offsets := &evenNeighborOffsets
	if a.Odd() {
		offsets = &oddNeighborOffsets
	}
	for _, d := range offsets {
		if a.Column+d.column == b.Column && a.Row+d.row == b.Row {
			return true
		}
	}
	return false
}
