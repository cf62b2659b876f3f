package hive

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-hive/internal/core"
	"github.com/vovakirdan/tui-hive/internal/hexagon"
	"github.com/vovakirdan/tui-hive/internal/level"
)

const (
	// cellAspect is the height of a terminal cell in units of its width.
	cellAspect = 2.0

	hudHeight    = 2
	footerHeight = 1

	minRadius = 2.0 // smallest hexagon that still fits a 3-cell glyph
	maxRadius = 6.0
)

// layout maps the board between screen cells and hexagon metrics.
// Metric units are cell widths on both axes.
type layout struct {
	metrics  hexagon.Metrics
	board    core.Rect
	tooSmall bool
}

func newLayout(columns, rows, screenW, screenH int) layout {
	board := core.NewRect(0, hudHeight, screenW, screenH-hudHeight-footerHeight)
	l := layout{board: board}
	if board.W <= 0 || board.H <= 0 {
		l.tooSmall = true
		return l
	}

	bx, by := float64(board.X), float64(board.Y)*cellAspect
	bw, bh := float64(board.W), float64(board.H)*cellAspect

	fit := hexagon.FitMetrics(columns, rows, bx, by, bw, bh)
	if fit.Radius < minRadius {
		l.tooSmall = true
		return l
	}

	m := hexagon.MetricsFromRadius(columns, rows, math.Min(fit.Radius, maxRadius), 0, 0)
	m.GridX = bx + (bw-m.GridWidth)/2
	m.GridY = by + (bh-m.GridHeight)/2
	l.metrics = m
	return l
}

// point returns the metric point at the center of screen cell (x, y).
func (l layout) point(x, y int) (float64, float64) {
	return float64(x) + 0.5, (float64(y) + 0.5) * cellAspect
}

// cell returns the screen cell containing metric point (x, y).
func (l layout) cell(x, y float64) (int, int) {
	return int(math.Floor(x)), int(math.Floor(y / cellAspect))
}

// tileAt returns the tile whose hexagon covers screen cell (x, y).
func (l layout) tileAt(x, y int) (hexagon.Position, bool) {
	if l.tooSmall || !l.board.Contains(x, y) {
		return hexagon.Position{}, false
	}
	px, py := l.point(x, y)
	return l.metrics.TileAt(px, py)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.lvl == nil {
		g.renderError(dst)
		return
	}
	if g.layout.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderTiles(dst)
	g.renderLinks(dst)
	g.renderEntities(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderError(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCenteredColor(y, "Cannot start hive", core.ColorRed)
	if g.loadErr != nil {
		dst.DrawTextCentered(y+1, g.loadErr.Error())
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the level title and counters.
func (g *Game) renderHUD(dst *core.Screen) {
	entry, index := g.Entry()
	title := fmt.Sprintf("HIVE  %d/%d  %s", index+1, len(g.entries), entry.Title)
	dst.DrawTextColor(1, 0, title, core.ColorAmber)

	stats := fmt.Sprintf("moves %d  undo %d  redo %d  %s",
		g.lvl.Moves(), g.lvl.Undoable(), g.lvl.Redoable(), formatElapsed(g.elapsed))
	dst.DrawTextColor(dst.Width()-len(stats)-1, 0, stats, core.ColorGray)

	if g.lvl.Players() > 1 {
		focus := fmt.Sprintf("bee %d of %d", g.focusedOrdinal(), g.lvl.Players())
		dst.DrawTextColor(1, 1, focus, core.ColorYellow)
	}
}

// focusedOrdinal returns the 1-based rank of the focused player among players.
func (g *Game) focusedOrdinal() int {
	n := 0
	for _, e := range g.lvl.Entities() {
		if e.Type() != level.EntityPlayer {
			continue
		}
		n++
		if e.Focused() {
			return n
		}
	}
	return 0
}

func (g *Game) renderFooter(dst *core.Screen) {
	help := "w/s move  a/d turn  u undo  y redo  tab switch  r restart  p pause  q quit"
	dst.DrawTextCenteredColor(dst.Height()-1, help, core.ColorDarkGray)
}

// tileStyle returns the edge and fill glyphs of a tile type.
func tileStyle(t level.TileType) (edge, fill rune, c core.Color) {
	switch t {
	case level.TileSpot:
		return '·', '∙', core.ColorAmber
	case level.TileSlab:
		return '·', '▒', core.ColorWhite
	default:
		return '·', ' ', core.ColorGray
	}
}

// renderTiles draws every walkable hexagon: a dotted outline and a fill.
func (g *Game) renderTiles(dst *core.Screen) {
	b := g.layout.board
	for y := b.Y; y < b.Bottom(); y++ {
		for x := b.X; x < b.Right(); x++ {
			p, ok := g.layout.tileAt(x, y)
			if !ok {
				continue
			}
			t := g.lvl.Tile(p)
			if t == level.TileEmpty {
				continue
			}

			edge, fill, c := tileStyle(t)
			if g.isEdge(x, y, p) {
				dst.SetColor(x, y, edge, c)
			} else {
				dst.SetColor(x, y, fill, c)
			}
		}
	}
}

// isEdge reports whether a neighbouring cell belongs to another tile.
func (g *Game) isEdge(x, y int, p hexagon.Position) bool {
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		q, ok := g.layout.tileAt(x+d[0], y+d[1])
		if !ok || q != p {
			return true
		}
	}
	return false
}

// renderLinks draws the adjacency links between blocks of a cluster.
func (g *Game) renderLinks(dst *core.Screen) {
	for _, cl := range g.lvl.Clusters() {
		c := core.ClusterColor(cl.Index)
		for _, link := range cl.Links {
			ax, ay, aok := g.anim.Point(g.lvl, g.layout.metrics, link[0])
			bx, by, bok := g.anim.Point(g.lvl, g.layout.metrics, link[1])
			if !aok || !bok {
				continue
			}
			x0, y0 := g.layout.cell(ax, ay)
			x1, y1 := g.layout.cell(bx, by)
			dst.DrawLine(x0, y0, x1, y1, '~', c)
		}
	}
}

// orientationGlyphs points the way each orientation faces on screen.
var orientationGlyphs = [hexagon.OrientationCount]rune{
	hexagon.UpperRight:  '↗',
	hexagon.UpperMiddle: '↑',
	hexagon.UpperLeft:   '↖',
	hexagon.LowerLeft:   '↙',
	hexagon.LowerMiddle: '↓',
	hexagon.LowerRight:  '↘',
}

// renderEntities draws blocks first, then players on top.
func (g *Game) renderEntities(dst *core.Screen) {
	for _, kind := range []level.EntityType{level.EntityBlock, level.EntityPlayer} {
		for _, e := range g.lvl.Entities() {
			if e.Type() != kind {
				continue
			}
			x, y, ok := g.anim.Point(g.lvl, g.layout.metrics, e)
			if !ok {
				continue
			}
			cx, cy := g.layout.cell(x, y)
			left, mid, right, c := g.entityGlyph(e)
			dst.SetColor(cx-1, cy, left, c)
			dst.SetColor(cx, cy, mid, c)
			dst.SetColor(cx+1, cy, right, c)
		}
	}
}

func (g *Game) entityGlyph(e *level.Entity) (left, mid, right rune, c core.Color) {
	if e.Type() == level.EntityPlayer {
		arrow := orientationGlyphs[e.Orientation()]
		if e.Focused() {
			return '[', arrow, ']', core.ColorBrightYellow
		}
		return '(', arrow, ')', core.ColorYellow
	}

	c = core.ClusterColor(e.Cluster())
	if g.lvl.Tile(e.Position()) == level.TileSpot && e.CanChange() {
		c = core.ColorBrightGreen
	}
	return '<', '#', '>', c
}

// renderOverlays draws pause, win and campaign-complete banners.
func (g *Game) renderOverlays(dst *core.Screen) {
	var lines []string
	color := core.ColorBrightWhite

	switch {
	case g.paused:
		lines = []string{"PAUSED", "p to resume"}
	case g.gameOver:
		color = core.ColorBrightGreen
		lines = []string{"ALL LEVELS SOLVED", fmt.Sprintf("last level in %d moves", g.lvl.Moves()), "r replay level  q quit"}
	case g.won:
		color = core.ColorBrightGreen
		lines = []string{fmt.Sprintf("SOLVED IN %d MOVES", g.lvl.Moves()), "enter / n next level"}
	default:
		return
	}

	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	box := core.NewRect((dst.Width()-w-4)/2, (dst.Height()-len(lines)-2)/2, w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	for i, l := range lines {
		dst.DrawTextCenteredColor(box.Y+1+i, l, color)
	}
}

func formatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
