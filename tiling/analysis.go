package tiling

import (
	"io"

	"github.com/Danielskry/SpectralZK/internal/random"
)

// Period is a diagonal shift (X, Y), both components at least 1.
type Period struct {
	X int
	Y int
}

// CheckPeriodicity reports, for every shift up to maxPeriod in each axis, the fraction of tiles
// whose shifted position carries the same label. Shifts with no overlapping tiles are omitted.
func CheckPeriodicity(tiles map[Point]TileLabel, maxPeriod int) map[Period]float64 {
	results := make(map[Period]float64)

	for px := 1; px <= maxPeriod; px++ {
		for py := 1; py <= maxPeriod; py++ {
			var matches, total int
			for pos, label := range tiles {
				shifted, ok := tiles[pos.Add(float64(px), float64(py))]
				if !ok {
					continue
				}
				total++
				if shifted == label {
					matches++
				}
			}
			if total > 0 {
				results[Period{X: px, Y: py}] = float64(matches) / float64(total)
			}
		}
	}
	return results
}

// Distribution counts the tiles carrying each label.
func Distribution(tiles map[Point]TileLabel) map[TileLabel]int {
	counts := make(map[TileLabel]int)
	for _, l := range tiles {
		counts[l]++
	}
	return counts
}

// FindPath walks up to length steps from start, moving to a uniformly random neighbor present in
// tiles. Visited positions are not tracked, so the walk may revisit tiles.
// The path is empty when start is not in tiles.
func FindPath(tiles map[Point]TileLabel, start Point, length int, rnd io.Reader) ([]Step, error) {
	var path []Step

	current := start
	if _, ok := tiles[current]; !ok {
		return path, nil
	}

	for i := 0; i < length; i++ {
		path = append(path, Step{Point: current, Label: tiles[current]})

		var next []Point
		for _, n := range Neighbors(current) {
			if _, ok := tiles[n]; ok {
				next = append(next, n)
			}
		}
		if len(next) == 0 {
			break
		}

		idx, err := random.Intn(rnd, len(next))
		if err != nil {
			return nil, err
		}
		current = next[idx]
	}
	return path, nil
}
