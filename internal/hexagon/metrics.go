package hexagon

import "math"

var sqrt3 = math.Sqrt(3)

// Metrics describes how a grid of flat-top hexagons is laid out in a 2D
// surface. Units are arbitrary: pixels for a window, cells for a terminal.
type Metrics struct {
	Columns int
	Rows    int

	Radius    float64 // Center to corner distance
	DistanceX float64 // Horizontal distance between adjacent column centers
	DistanceY float64 // Vertical distance between adjacent row centers

	GridX, GridY          float64 // Top-left corner of the grid bounding box
	GridWidth, GridHeight float64
}

// FitMetrics computes the largest hexagon radius for which a columns x rows
// grid fits the bounding box, and centers the grid inside it.
func FitMetrics(columns, rows int, boundX, boundY, boundW, boundH float64) Metrics {
	fromWidth := boundW / (1.5*float64(columns) + 0.5)
	fromHeight := boundH / (sqrt3 * (float64(rows) + 0.5))

	m := newMetrics(columns, rows, math.Min(fromWidth, fromHeight))
	m.GridX = boundX + (boundW-m.GridWidth)/2
	m.GridY = boundY + (boundH-m.GridHeight)/2
	return m
}

// MetricsFromRadius lays out a columns x rows grid with a fixed radius whose
// bounding box starts at (x, y).
func MetricsFromRadius(columns, rows int, radius, x, y float64) Metrics {
	m := newMetrics(columns, rows, radius)
	m.GridX = x
	m.GridY = y
	return m
}

func newMetrics(columns, rows int, radius float64) Metrics {
	m := Metrics{
		Columns:   columns,
		Rows:      rows,
		Radius:    radius,
		DistanceX: radius * 1.5,
		DistanceY: radius * sqrt3,
	}
	m.GridWidth = radius*2 + m.DistanceX*float64(columns-1)
	m.GridHeight = m.DistanceY * float64(rows)
	if columns > 1 {
		m.GridHeight += m.DistanceY / 2
	}
	return m
}

// Center returns the center of the tile at p.
// The boolean is false when p lies outside the grid.
func (m Metrics) Center(p Position) (x, y float64, ok bool) {
	if !p.InBounds(m.Columns, m.Rows) {
		return 0, 0, false
	}
	x = m.GridX + m.Radius + float64(p.Column)*m.DistanceX
	y = m.GridY + m.DistanceY/2 + float64(p.Row)*m.DistanceY
	if p.Odd() {
		y += m.DistanceY / 2
	}
	return x, y, true
}

// TileAt returns the tile whose hexagon contains the point (x, y).
// The column and row pitch give a first guess; the tile is then the guess or
// the neighbor whose center is nearest. Points in the gaps between the grid
// edge and its bounding box map to no tile.
func (m Metrics) TileAt(x, y float64) (Position, bool) {
	if m.Columns <= 0 || m.Rows <= 0 || m.DistanceX <= 0 || m.DistanceY <= 0 {
		return Position{}, false
	}

	column := clamp(int(math.Floor((x-m.GridX)/m.DistanceX)), m.Columns)
	top := m.GridY
	if column&1 == 1 {
		top += m.DistanceY / 2
	}
	row := clamp(int(math.Floor((y-top)/m.DistanceY)), m.Rows)

	best := Position{Column: column, Row: row}
	bestDist := m.distance2(best, x, y)
	for _, n := range Neighbors(best, m.Columns, m.Rows) {
		if d := m.distance2(n, x, y); d < bestDist {
			best, bestDist = n, d
		}
	}

	if !m.Contains(best, x, y) {
		return Position{}, false
	}
	return best, true
}

// Contains reports whether the point (x, y) lies inside the hexagon of p.
func (m Metrics) Contains(p Position, x, y float64) bool {
	cx, cy, ok := m.Center(p)
	if !ok {
		return false
	}
	dx, dy := math.Abs(x-cx), math.Abs(y-cy)
	const eps = 1e-9
	return dx <= m.Radius+eps &&
		dy <= m.DistanceY/2+eps &&
		sqrt3*dx+dy <= sqrt3*m.Radius+eps
}

func (m Metrics) distance2(p Position, x, y float64) float64 {
	cx, cy, _ := m.Center(p)
	return (x-cx)*(x-cx) + (y-cy)*(y-cy)
}

func clamp(v, n int) int {
	return max(0, min(v, n-1))
}
