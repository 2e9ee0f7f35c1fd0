package utils

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// StdDev returns the sample standard deviation (n-1 denominator), which is
// what the per-category and daily-series statistics use. Returns 0 when
// fewer than two values exist.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// PopStdDev returns the population standard deviation (n denominator),
// used for feature standardization.
func PopStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return math.Sqrt(stat.PopVariance(xs, nil))
}

// Quantile returns the q-quantile (0..1) of xs with linear interpolation
// between order statistics, matching the convention the rest of the
// scoring rules were calibrated against.
func Quantile(xs []float64, q float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// EMA returns the exponentially-weighted moving average of xs with the
// given span: alpha = 2/(span+1), seeded with the first value.
func EMA(xs []float64, span int) []float64 {
	if len(xs) == 0 {
		return nil
	}
	if span < 1 {
		span = 1
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(xs))
	out[0] = xs[0]
	for i := 1; i < len(xs); i++ {
		out[i] = alpha*xs[i] + (1-alpha)*out[i-1]
	}
	return out
}

// Slope returns the least-squares slope of ys against its indices.
func Slope(ys []float64) float64 {
	if len(ys) < 2 {
		return 0
	}
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) {
		return 0
	}
	return slope
}

// StandardizeColumns scales each column of rows to zero mean and unit
// (population) variance. Zero-variance columns collapse to zero instead of
// dividing by zero. The input is not modified.
func StandardizeColumns(rows [][]float64) [][]float64 {
	if len(rows) == 0 {
		return nil
	}
	cols := len(rows[0])
	means := make([]float64, cols)
	stds := make([]float64, cols)
	column := make([]float64, len(rows))
	for j := 0; j < cols; j++ {
		for i := range rows {
			column[i] = rows[i][j]
		}
		means[j] = Mean(column)
		stds[j] = PopStdDev(column)
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		scaled := make([]float64, cols)
		for j, v := range row {
			scaled[j] = (v - means[j]) / stds[j]
		}
		out[i] = scaled
	}
	return out
}

// WeekdayIndex maps a date onto a Monday=0..Sunday=6 index.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekdayLabels are the short names indexed by WeekdayIndex.
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
