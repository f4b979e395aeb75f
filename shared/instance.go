package shared

// Instance is the public tiling artifact shared by the prover and the verifier.
// The tile map is copied on construction and never handed out, so an Instance is immutable.
type Instance struct {
	tiles map[Point]TileLabel

	Size int
	Seed int64
}

func NewInstance(tiles map[Point]TileLabel, size int, seed int64) *Instance {
	copied := make(map[Point]TileLabel, len(tiles))
	for p, l := range tiles {
		copied[p] = l
	}
	return &Instance{
		tiles: copied,
		Size:  size,
		Seed:  seed,
	}
}

// Tile returns the label stored at p.
func (inst *Instance) Tile(p Point) (TileLabel, bool) {
	l, ok := inst.tiles[p]
	return l, ok
}

func (inst *Instance) Contains(p Point) bool {
	_, ok := inst.tiles[p]
	return ok
}

// Len returns the number of tiles.
func (inst *Instance) Len() int {
	return len(inst.tiles)
}

// Points returns all tile positions sorted by (x, y).
func (inst *Instance) Points() []Point {
	points := make([]Point, 0, len(inst.tiles))
	for p := range inst.tiles {
		points = append(points, p)
	}
	SortPoints(points)
	return points
}

// Tiles returns a copy of the tile map.
func (inst *Instance) Tiles() map[Point]TileLabel {
	copied := make(map[Point]TileLabel, len(inst.tiles))
	for p, l := range inst.tiles {
		copied[p] = l
	}
	return copied
}
