package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/Danielskry/SpectralZK/shared"
	"github.com/Danielskry/SpectralZK/tiling"
)

const sampleSide = 5

func report(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

// printTilingSample prints the top-left corner of the instance, one row per y.
func printTilingSample(w io.Writer, inst *shared.Instance) {
	fmt.Fprintln(w, "\nTiling sample (top-left corner):")
	side := min(inst.Size, sampleSide)
	for y := 0; y < side; y++ {
		row := "  "
		for x := 0; x < side; x++ {
			if label, ok := inst.Tile(shared.NewPoint(float64(x), float64(y))); ok {
				row += string(label) + " "
			} else {
				row += ". "
			}
		}
		fmt.Fprintln(w, row)
	}
	if inst.Size > sampleSide {
		fmt.Fprintln(w, "  ...")
	}
}

// reportPeriods prints the repetition rate per period and returns the largest rate.
func reportPeriods(w io.Writer, periods map[tiling.Period]float64) float64 {
	keys := make([]tiling.Period, 0, len(periods))
	for p := range periods {
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Y < keys[j].Y
	})

	var worst float64
	data := make([][]string, 0, len(keys))
	for _, p := range keys {
		rate := periods[p]
		worst = max(worst, rate)
		data = append(data, []string{fmt.Sprintf("(%d,%d)", p.X, p.Y), percent(rate)})
	}
	report(w, []string{"period", "repetition"}, data)
	return worst
}

func reportDistribution(w io.Writer, tiles map[shared.Point]shared.TileLabel) map[shared.TileLabel]int {
	dist := tiling.Distribution(tiles)
	data := make([][]string, 0, len(shared.TileLabels))
	for _, label := range shared.TileLabels {
		count, ok := dist[label]
		if !ok {
			continue
		}
		data = append(data, []string{
			string(label),
			strconv.Itoa(count),
			percent(float64(count) / float64(len(tiles))),
		})
	}
	report(w, []string{"label", "tiles", "share"}, data)
	return dist
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", 100*f)
}

func round(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
