package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorAmber    // honey
	ColorDarkGray // empty space, grid lines
)

// ClusterColors is the palette cycled through for block clusters.
var ClusterColors = []Color{
	ColorBrightCyan,
	ColorBrightMagenta,
	ColorBrightGreen,
	ColorBrightBlue,
	ColorBrightRed,
}

// ClusterColor returns the color of a 1-based cluster index; 0 means none.
func ClusterColor(cluster int) Color {
	if cluster <= 0 {
		return ColorOrange
	}
	return ClusterColors[(cluster-1)%len(ClusterColors)]
}
