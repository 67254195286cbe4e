package analysis

import (
	"fmt"
	"sort"

	"salesreport/domain/sales"

	"github.com/montanaflynn/stats"
)

// Aggregator computes the per-category tables. It holds no state; every
// method is a pure function of the dataset.
type Aggregator struct{}

// NewAggregator creates a new aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes statistics and both count tables
func (a *Aggregator) Aggregate(ds *sales.Dataset) (sales.Tables, error) {
	st, err := a.Statistics(ds)
	if err != nil {
		return sales.Tables{}, err
	}
	mainCounts, subCounts := a.CategoryCounts(ds)
	return sales.Tables{
		Stats:      st,
		MainCounts: mainCounts,
		SubCounts:  subCounts,
	}, nil
}

// Statistics groups by main category and computes mean, median and sample
// standard deviation of ratings plus mean number of ratings, sorted by
// category name.
func (a *Aggregator) Statistics(ds *sales.Dataset) ([]sales.CategoryStats, error) {
	ratings := make(map[string][]float64)
	counts := make(map[string][]float64)
	for _, r := range ds.Records {
		ratings[r.MainCategory] = append(ratings[r.MainCategory], r.Ratings)
		counts[r.MainCategory] = append(counts[r.MainCategory], float64(r.NoOfRatings))
	}

	out := make([]sales.CategoryStats, 0, len(ratings))
	for _, category := range sortedKeys(ratings) {
		row, err := describe(category, ratings[category], counts[category])
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func describe(category string, ratings, noOfRatings []float64) (sales.CategoryStats, error) {
	mean, err := stats.Mean(ratings)
	if err != nil {
		return sales.CategoryStats{}, fmt.Errorf("mean ratings for %q: %w", category, err)
	}
	median, err := stats.Median(ratings)
	if err != nil {
		return sales.CategoryStats{}, fmt.Errorf("median ratings for %q: %w", category, err)
	}
	meanCount, err := stats.Mean(noOfRatings)
	if err != nil {
		return sales.CategoryStats{}, fmt.Errorf("mean no_of_ratings for %q: %w", category, err)
	}

	row := sales.CategoryStats{
		MainCategory:    category,
		MeanRatings:     mean,
		MedianRatings:   median,
		MeanNoOfRatings: meanCount,
	}

	// Sample std needs two observations; one-record groups stay null.
	if len(ratings) > 1 {
		std, err := stats.StandardDeviationSample(ratings)
		if err != nil {
			return sales.CategoryStats{}, fmt.Errorf("std ratings for %q: %w", category, err)
		}
		row.StdRatings = &std
	}
	return row, nil
}

// CategoryCounts counts records per main category and per sub category,
// each sorted by value.
func (a *Aggregator) CategoryCounts(ds *sales.Dataset) (mainCounts, subCounts []sales.CategoryCount) {
	mainTally := make(map[string]int)
	subTally := make(map[string]int)
	for _, r := range ds.Records {
		mainTally[r.MainCategory]++
		subTally[r.SubCategory]++
	}
	return toCounts(mainTally), toCounts(subTally)
}

func toCounts(tally map[string]int) []sales.CategoryCount {
	out := make([]sales.CategoryCount, 0, len(tally))
	for _, v := range sortedKeys(tally) {
		out = append(out, sales.CategoryCount{Value: v, Count: tally[v]})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
