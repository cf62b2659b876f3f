package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-hive/internal/core"
)

// swatch is one screen color on light and dark terminal backgrounds.
type swatch struct {
	light, dark string
	bold        bool
}

// hiveSwatches colors the board. Honey, blocks and grid lines are darker on
// light backgrounds so the hexagon outlines stay visible.
var hiveSwatches = map[core.Color]swatch{
	core.ColorRed:           {"1", "1", false},
	core.ColorGreen:         {"2", "2", false},
	core.ColorYellow:        {"3", "3", false},
	core.ColorBlue:          {"4", "4", false},
	core.ColorMagenta:       {"5", "5", false},
	core.ColorCyan:          {"6", "6", false},
	core.ColorWhite:         {"0", "7", false},
	core.ColorBrightRed:     {"9", "9", false},
	core.ColorBrightGreen:   {"28", "10", false},
	core.ColorBrightYellow:  {"136", "11", false},
	core.ColorBrightBlue:    {"12", "12", false},
	core.ColorBrightMagenta: {"127", "13", false},
	core.ColorBrightCyan:    {"30", "14", false},
	core.ColorBrightWhite:   {"0", "15", true},
	core.ColorOrange:        {"166", "208", false},
	core.ColorGray:          {"242", "245", false},
	core.ColorAmber:         {"130", "214", true},
	core.ColorDarkGray:      {"250", "238", false},
}

// Palette turns screen colors into terminal styles for one renderer.
type Palette struct {
	base   lipgloss.Style
	styles map[core.Color]lipgloss.Style
}

// NewPalette builds the hive palette for r. A nil renderer uses the
// process's standard output; SSH sessions pass their own so color depth and
// background follow the remote terminal.
func NewPalette(r *lipgloss.Renderer) Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}

	p := Palette{
		base:   r.NewStyle(),
		styles: make(map[core.Color]lipgloss.Style, len(hiveSwatches)),
	}
	for c, sw := range hiveSwatches {
		p.styles[c] = r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: sw.light, Dark: sw.dark}).
			Bold(sw.bold)
	}
	return p
}

func (p Palette) style(c core.Color) lipgloss.Style {
	if st, ok := p.styles[c]; ok {
		return st
	}
	return p.base
}

// Render converts a screen to a styled string. Adjacent cells with the same
// color share one styled run.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

var defaultPalette = NewPalette(nil)

// RenderScreen renders s with the palette of the local terminal.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}
