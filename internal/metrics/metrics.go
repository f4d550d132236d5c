package metrics

import "math"

// Description holds descriptive statistics over a series of ratings.
type Description struct {
	Count int     `json:"count"`
	Total int     `json:"total"`
	Mean  float64 `json:"mean"`
	SD    float64 `json:"sd"`
}

// Describe computes the total, mean and sample standard deviation of
// values. The deviation divides by count-1 and is 0 for fewer than two
// values, where it is undefined.
func Describe(values []int) Description {
	d := Description{Count: len(values)}
	if d.Count == 0 {
		return d
	}

	for _, v := range values {
		d.Total += v
	}
	d.Mean = float64(d.Total) / float64(d.Count)

	if d.Count <= 1 {
		return d
	}

	var sumSquaredDiff float64
	for _, v := range values {
		diff := float64(v) - d.Mean
		sumSquaredDiff += diff * diff
	}
	d.SD = math.Sqrt(sumSquaredDiff / float64(d.Count-1))
	return d
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
