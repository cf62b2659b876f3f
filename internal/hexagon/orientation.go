// Package hexagon implements the odd-q offset hexagonal grid used by hive levels.
// Every function here is pure: orientation arithmetic, neighbor lookup and the
// mapping between grid positions and pixel (or terminal cell) coordinates.
package hexagon

import "math"

// Orientation is one of the six directions a hexagon edge faces.
// Values are ordered counter-clockwise starting at 30 degrees.
type Orientation uint8

const (
	UpperRight  Orientation = iota // 30°
	UpperMiddle                    // 90°
	UpperLeft                      // 150°
	LowerLeft                      // 210°
	LowerMiddle                    // 270°
	LowerRight                     // 330°
)

// OrientationCount is the number of distinct orientations.
const OrientationCount = 6

// Orientations lists every orientation in counter-clockwise order.
var Orientations = [OrientationCount]Orientation{
	UpperRight, UpperMiddle, UpperLeft, LowerLeft, LowerMiddle, LowerRight,
}

var orientationNames = [OrientationCount]string{
	"upper-right", "upper-middle", "upper-left", "lower-left", "lower-middle", "lower-right",
}

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	if !o.Valid() {
		return "unknown"
	}
	return orientationNames[o]
}

// Valid reports whether o is one of the six defined orientations.
func (o Orientation) Valid() bool {
	return o < OrientationCount
}

// Angle returns the orientation angle in radians, measured counter-clockwise
// from the positive x axis with y pointing up.
func (o Orientation) Angle() float64 {
	return math.Pi * float64(2*int(o%OrientationCount)+1) / 6
}

// TurnLeft rotates the orientation 60° counter-clockwise.
func (o Orientation) TurnLeft() Orientation {
	return (o + 1) % OrientationCount
}

// TurnRight rotates the orientation 60° clockwise.
func (o Orientation) TurnRight() Orientation {
	return (o + OrientationCount - 1) % OrientationCount
}

// Reverse returns the opposite orientation.
func (o Orientation) Reverse() Orientation {
	return (o + OrientationCount/2) % OrientationCount
}
