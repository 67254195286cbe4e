package charts

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one equal-width histogram bucket [Lower, Upper)
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Label renders the bucket's lower edge for the x axis
func (b Bin) Label() string {
	return fmt.Sprintf("%.2f", b.Lower)
}

// Histogram splits values into n equal-width bins spanning [min, max].
// The maximum lands in the last bin. A constant series is centred in a
// unit-wide span.
func Histogram(values []float64, n int) ([]Bin, error) {
	if n < 1 {
		return nil, fmt.Errorf("histogram needs at least one bin, got %d", n)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("histogram needs at least one value")
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers := floats.Span(make([]float64, n+1), lo, hi)
	// stat.Histogram buckets are half-open; nudge the top edge so max counts.
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)

	bins := make([]Bin, n)
	for i := range bins {
		bins[i] = Bin{
			Lower: dividers[i],
			Upper: dividers[i+1],
			Count: int(counts[i]),
		}
	}
	bins[n-1].Upper = hi
	return bins, nil
}
