package tiling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Danielskry/SpectralZK/shared"
)

func labelIndex(l TileLabel) int {
	for i, candidate := range shared.TileLabels {
		if candidate == l {
			return i
		}
	}
	return -1
}

func TestTileType_Deterministic(t *testing.T) {
	r := require.New(t)

	tiler := New(123)
	pos := shared.NewPoint(5, 7)
	r.Equal(tiler.TileType(pos, nil), tiler.TileType(pos, nil))
	r.Equal(tiler.TileType(pos, nil), New(123).TileType(pos, []TileLabel{}))
	r.NotEqual(-1, labelIndex(tiler.TileType(pos, nil)))
}

func TestTileType_CoordinateGranularity(t *testing.T) {
	tiler := New(7)
	for x := 0; x < 10; x++ {
		a := tiler.TileType(shared.NewPoint(float64(x), 2), nil)
		b := tiler.TileType(shared.NewPoint(float64(x)+0.0004, 2.0003), nil)
		require.Equal(t, a, b, "x=%d", x)
	}
}

func TestTileType_UniformNeighborhood(t *testing.T) {
	r := require.New(t)

	tiler := New(42)
	for x := 0; x < 20; x++ {
		pos := shared.NewPoint(float64(x), 3)
		base := labelIndex(tiler.TileType(pos, nil))

		got := tiler.TileType(pos, []TileLabel{"C", "C", "C"})
		r.Equal(shared.TileLabels[(base+1)%len(shared.TileLabels)], got)

		// Fewer than 3 identical neighbors leave the base untouched.
		r.Equal(shared.TileLabels[base], tiler.TileType(pos, []TileLabel{"C", "C"}))
		// A mixed neighborhood leaves it untouched as well.
		r.Equal(shared.TileLabels[base], tiler.TileType(pos, []TileLabel{"C", "C", "E"}))
	}
}

func TestTileType_ABNeighborhood(t *testing.T) {
	r := require.New(t)

	tiler := New(42)
	for x := 0; x < 20; x++ {
		pos := shared.NewPoint(float64(x), 4)
		base := labelIndex(tiler.TileType(pos, nil))

		want := TileLabel("C")
		if base%2 == 1 {
			want = "D"
		}
		r.Equal(want, tiler.TileType(pos, []TileLabel{"A", "B"}))
		r.Equal(want, tiler.TileType(pos, []TileLabel{"B", "E", "A", "F"}))
	}
}

func TestNeighbors(t *testing.T) {
	r := require.New(t)

	center := shared.NewPoint(3, 3)
	neighbors := Neighbors(center)
	r.Len(neighbors, 8)
	r.NotContains(neighbors, center)
	for _, n := range neighbors {
		r.LessOrEqual(center.DistanceTo(n), DefaultNeighborRadius)
	}
	r.Equal(shared.NewPoint(2, 2), neighbors[0])
	r.Equal(shared.NewPoint(4, 4), neighbors[7])

	orthogonal := NeighborsWithin(center, 1.0)
	r.ElementsMatch([]Point{
		shared.NewPoint(2, 3),
		shared.NewPoint(3, 2),
		shared.NewPoint(3, 4),
		shared.NewPoint(4, 3),
	}, orthogonal)

	r.Empty(NeighborsWithin(center, 0.5))
}

func TestGenerateRegion(t *testing.T) {
	r := require.New(t)

	tiler := New(123)
	for _, dims := range [][2]int{{10, 10}, {3, 7}, {1, 1}, {0, 4}} {
		w, h := dims[0], dims[1]
		t.Run(fmt.Sprintf("%dx%d", w, h), func(t *testing.T) {
			region := tiler.GenerateRegion(w, h)
			require.Len(t, region, w*h)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					_, ok := region[shared.NewPoint(float64(x), float64(y))]
					require.True(t, ok, "missing (%d, %d)", x, y)
				}
			}
		})
	}

	r.Equal(tiler.GenerateRegion(6, 6), New(123).GenerateRegion(6, 6))
}

func TestGenerateRegionAt(t *testing.T) {
	r := require.New(t)

	tiler := New(9)
	origin := shared.NewPoint(-2, 5)
	region := tiler.GenerateRegionAt(origin, 4, 3)
	r.Len(region, 12)
	r.Contains(region, shared.NewPoint(-2, 5))
	r.Contains(region, shared.NewPoint(1, 7))
	r.NotContains(region, shared.NewPoint(0, 0))
}

func TestGenerateRegion_CausalNeighbors(t *testing.T) {
	r := require.New(t)

	tiler := New(55)
	region := tiler.GenerateRegion(5, 5)

	// Recompute every cell from the neighbors placed before it in row-major order.
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			pos := shared.NewPoint(float64(x), float64(y))
			var placed []TileLabel
			for _, n := range Neighbors(pos) {
				before := n.Y < pos.Y || (n.Y == pos.Y && n.X < pos.X)
				if l, ok := region[n]; ok && before {
					placed = append(placed, l)
				}
			}
			r.Equal(tiler.TileType(pos, placed), region[pos], "pos %v", pos)
		}
	}
}
