package analyzer

import "math"

// PriceStatistics holds summary statistics for one price segment.
// All values are rounded to two decimal places; a segment with no prices
// has nil statistics.
type PriceStatistics struct {
	Average *float64 `json:"average"`
	Max     *float64 `json:"max"`
	Min     *float64 `json:"min"`
	Stdev   *float64 `json:"stdev"`
}

// CalculateStatistics computes average/max/min/stdev for a price list.
// Stdev is the sample standard deviation, 0.0 for a single price.
func CalculateStatistics(prices []float64) PriceStatistics {
	if len(prices) == 0 {
		return PriceStatistics{}
	}

	sum := 0.0
	maxPrice := prices[0]
	minPrice := prices[0]
	for _, p := range prices {
		sum += p
		if p > maxPrice {
			maxPrice = p
		}
		if p < minPrice {
			minPrice = p
		}
	}
	mean := sum / float64(len(prices))

	stdev := 0.0
	if len(prices) > 1 {
		sumSquares := 0.0
		for _, p := range prices {
			diff := p - mean
			sumSquares += diff * diff
		}
		stdev = math.Sqrt(sumSquares / float64(len(prices)-1))
	}

	return PriceStatistics{
		Average: round2(mean),
		Max:     round2(maxPrice),
		Min:     round2(minPrice),
		Stdev:   round2(stdev),
	}
}

func round2(value float64) *float64 {
	rounded := math.Round(value*100) / 100
	return &rounded
}
