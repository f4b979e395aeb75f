package shared

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// TileLabel is a symbol of the tile alphabet. The zero value denotes an absent label.
type TileLabel string

// TileLabels is the fixed alphabet produced by the tiling engine, in index order.
var TileLabels = [...]TileLabel{"A", "B", "C", "D", "E", "F"}

// Point is a coordinate on the tiling plane. Points compare, and hash as map keys, on the exact
// values of both components.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", formatCoord(p.X), formatCoord(p.Y))
}

// DistanceTo returns the Euclidean distance between p and other.
func (p Point) DistanceTo(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Less orders points lexicographically by (x, y).
func (p Point) Less(other Point) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SortPoints sorts points in place by (x, y).
func SortPoints(points []Point) {
	sort.Slice(points, func(i, j int) bool { return points[i].Less(points[j]) })
}

// Step is a single position of a path together with the label of the tile at that position.
type Step struct {
	Point Point
	Label TileLabel
}
