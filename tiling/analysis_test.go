package tiling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Danielskry/SpectralZK/shared"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("not enough entropy")
}

func uniformRegion(w, h int, label TileLabel) map[Point]TileLabel {
	tiles := make(map[Point]TileLabel)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tiles[shared.NewPoint(float64(x), float64(y))] = label
		}
	}
	return tiles
}

func TestCheckPeriodicity_Uniform(t *testing.T) {
	r := require.New(t)

	periods := CheckPeriodicity(uniformRegion(3, 3, "A"), 3)
	r.Equal(map[Period]float64{
		{X: 1, Y: 1}: 1,
		{X: 1, Y: 2}: 1,
		{X: 2, Y: 1}: 1,
		{X: 2, Y: 2}: 1,
	}, periods)
}

func TestCheckPeriodicity_Checkerboard(t *testing.T) {
	r := require.New(t)

	tiles := make(map[Point]TileLabel)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			label := TileLabel("A")
			if (x+y)%2 == 1 {
				label = "B"
			}
			tiles[shared.NewPoint(float64(x), float64(y))] = label
		}
	}

	periods := CheckPeriodicity(tiles, 2)
	r.Equal(1.0, periods[Period{X: 1, Y: 1}])
	r.Equal(0.0, periods[Period{X: 1, Y: 2}])
	r.Equal(0.0, periods[Period{X: 2, Y: 1}])
	r.Equal(1.0, periods[Period{X: 2, Y: 2}])
}

func TestGeneratedRegionProperties(t *testing.T) {
	r := require.New(t)

	region := New(123).GenerateRegion(10, 10)

	periods := CheckPeriodicity(region, 5)
	r.Len(periods, 25)
	for p, ratio := range periods {
		r.GreaterOrEqual(ratio, 0.0, "period %v", p)
		r.Less(ratio, 0.5, "period %v", p)
	}

	dist := Distribution(region)
	r.GreaterOrEqual(len(dist), 4)
	total := 0
	for _, n := range dist {
		total += n
	}
	r.Equal(100, total)
}

func TestDistribution(t *testing.T) {
	tiles := uniformRegion(2, 2, "B")
	tiles[shared.NewPoint(5, 5)] = "F"
	require.Equal(t, map[TileLabel]int{"B": 4, "F": 1}, Distribution(tiles))
}

func TestFindPath(t *testing.T) {
	r := require.New(t)

	region := New(3).GenerateRegion(5, 5)
	start := shared.NewPoint(2, 2)

	path, err := FindPath(region, start, 12, nil)
	r.NoError(err)
	r.Len(path, 12)
	r.Equal(start, path[0].Point)
	for i, step := range path {
		r.Equal(region[step.Point], step.Label, "step %d", i)
		if i > 0 {
			r.Contains(Neighbors(path[i-1].Point), step.Point, "step %d", i)
		}
	}
}

func TestFindPath_EdgeCases(t *testing.T) {
	r := require.New(t)

	region := New(3).GenerateRegion(3, 3)

	path, err := FindPath(region, shared.NewPoint(-1, -1), 5, nil)
	r.NoError(err)
	r.Empty(path)

	single := map[Point]TileLabel{shared.NewPoint(0, 0): "E"}
	path, err = FindPath(single, shared.NewPoint(0, 0), 5, nil)
	r.NoError(err)
	r.Equal([]Step{{Point: shared.NewPoint(0, 0), Label: "E"}}, path)

	path, err = FindPath(region, shared.NewPoint(0, 0), 0, nil)
	r.NoError(err)
	r.Empty(path)

	_, err = FindPath(region, shared.NewPoint(1, 1), 4, errReader{})
	r.Error(err)
}

func BenchmarkGenerateRegion(b *testing.B) {
	tiler := New(999)
	for i := 0; i < b.N; i++ {
		tiler.GenerateRegion(32, 32)
	}
}
