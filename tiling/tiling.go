// Package tiling generates the deterministic, locally constrained tile patterns that protocol
// instances are built from.
package tiling

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"

	"github.com/Danielskry/SpectralZK/shared"
)

// DefaultNeighborRadius keeps all 8 grid-adjacent points, diagonals included (√2 < 1.5).
const DefaultNeighborRadius = 1.5

type (
	Point     = shared.Point
	TileLabel = shared.TileLabel
	Step      = shared.Step
)

// Tiler derives tile labels from a seed and a position.
type Tiler struct {
	seed int64
}

func New(seed int64) *Tiler {
	return &Tiler{seed: seed}
}

func (t *Tiler) Seed() int64 {
	return t.seed
}

// positionBase truncates the position hash to its leading 32 bits.
// Coordinates are rendered with 3 decimals, so positions closer than 0.001 may share a base.
func (t *Tiler) positionBase(x, y float64) uint64 {
	sum := md5.Sum([]byte(fmt.Sprintf("%d:%.3f,%.3f", t.seed, x, y)))
	return uint64(binary.BigEndian.Uint32(sum[:4]))
}

// TileType returns the label at pos given the labels of its already placed neighbors.
//
// Two local rules adjust the position hash, each checked against the same neighbor labels:
// a uniform neighborhood of at least 3 tiles bumps the base by one, and a neighborhood holding
// both A and B forces the result into {C, D}. The second rule overwrites the first.
func (t *Tiler) TileType(pos Point, neighbors []TileLabel) TileLabel {
	base := t.positionBase(pos.X, pos.Y)

	if len(neighbors) >= 3 && uniform(neighbors) {
		base++
	}
	if contains(neighbors, "A") && contains(neighbors, "B") {
		base = base%2 + 2
	}

	return shared.TileLabels[base%uint64(len(shared.TileLabels))]
}

// Neighbors returns the points adjacent to center within DefaultNeighborRadius.
func Neighbors(center Point) []Point {
	return NeighborsWithin(center, DefaultNeighborRadius)
}

// NeighborsWithin returns the 8 grid-adjacent points of center whose Euclidean distance
// from it is at most radius.
func NeighborsWithin(center Point, radius float64) []Point {
	neighbors := make([]Point, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := center.Add(float64(dx), float64(dy))
			if center.DistanceTo(n) <= radius {
				neighbors = append(neighbors, n)
			}
		}
	}
	return neighbors
}

// GenerateRegion fills the width x height grid anchored at (0, 0).
func (t *Tiler) GenerateRegion(width, height int) map[Point]TileLabel {
	return t.GenerateRegionAt(shared.NewPoint(0, 0), width, height)
}

// GenerateRegionAt fills the width x height grid anchored at origin in row-major order.
// Each cell only sees the neighbors placed before it; missing neighbors are left out.
func (t *Tiler) GenerateRegionAt(origin Point, width, height int) map[Point]TileLabel {
	tiles := make(map[Point]TileLabel, max(width*height, 0))
	placed := make([]TileLabel, 0, 8)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos := origin.Add(float64(x), float64(y))

			placed = placed[:0]
			for _, n := range Neighbors(pos) {
				if l, ok := tiles[n]; ok {
					placed = append(placed, l)
				}
			}
			tiles[pos] = t.TileType(pos, placed)
		}
	}
	return tiles
}

func uniform(labels []TileLabel) bool {
	for _, l := range labels[1:] {
		if l != labels[0] {
			return false
		}
	}
	return true
}

func contains(labels []TileLabel, label TileLabel) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
