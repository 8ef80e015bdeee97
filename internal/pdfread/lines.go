package pdfread

import (
	"cmp"
	"math"
	"slices"
)

// baselineTolerance is how far apart two baselines may be, in points,
// and still count as one line.
const baselineTolerance = 1.0

// Lines groups the runs of c by baseline. Lines are ordered top to bottom
// and runs within a line left to right.
func (c *Content) Lines() [][]Run {
	runs := slices.Clone(c.Runs)
	slices.SortStableFunc(runs, func(a, b Run) int {
		return cmp.Compare(a.Y, b.Y)
	})

	var lines [][]Run
	for _, r := range runs {
		if n := len(lines); n > 0 && math.Abs(lines[n-1][0].Y-r.Y) <= baselineTolerance {
			lines[n-1] = append(lines[n-1], r)
			continue
		}
		lines = append(lines, []Run{r})
	}
	for _, l := range lines {
		slices.SortStableFunc(l, func(a, b Run) int {
			return cmp.Compare(a.X, b.X)
		})
	}
	return lines
}

// FillsAt returns the fills that contain the point (x, y).
func (c *Content) FillsAt(x, y float64) []Fill {
	var out []Fill
	for _, f := range c.Fills {
		if x >= f.X && x <= f.X+f.W && y >= f.Y && y <= f.Y+f.H {
			out = append(out, f)
		}
	}
	return out
}
