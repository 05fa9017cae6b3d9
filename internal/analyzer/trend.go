package analyzer

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/repostat/repostat/pkg/models"
)

// ComputeGrowthTrend fits a least-squares line through the timeline's
// cumulative line totals, one observation per bucket. Fewer than two
// points carry no trend.
func ComputeGrowthTrend(points []models.TimeBucketPoint) models.GrowthTrend {
	if len(points) < 2 {
		return models.GrowthTrend{}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, pt := range points {
		xs[i] = float64(i)
		ys[i] = float64(pt.CumulativeLines.Total)
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	trend := models.GrowthTrend{
		Slope:       sanitize(slope),
		Intercept:   sanitize(intercept),
		RSquared:    sanitize(stat.RSquared(xs, ys, nil, intercept, slope)),
		Correlation: sanitize(stat.Correlation(xs, ys, nil)),
	}
	return trend
}

// sanitize zeroes the NaN and Inf values a constant series produces.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
