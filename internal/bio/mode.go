package bio

import "math"

// Mode returns the most frequent value in values. Ties go to the value seen
// first. ok is false for an empty slice.
func Mode[T comparable](values []T) (mode T, ok bool) {
	counts := make(map[T]int, len(values))
	order := make([]T, 0, len(values))
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best := 0
	for _, v := range order {
		if c := counts[v]; c > best {
			best = c
			mode = v
			ok = true
		}
	}
	return mode, ok
}

// RoundTo rounds v to the given number of decimal places. Exact halves go
// to the even neighbour, so 1.25 becomes 1.2 and 1.35 becomes 1.4.
func RoundTo(v float64, places int) float64 {
	if places < 0 {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.RoundToEven(v*p) / p
}
