package analysis

import (
	"sort"

	"salesreport/domain/core"
	"salesreport/domain/sales"
	"salesreport/internal/config"
)

// SelectHistogramCategory picks the one category whose ratings get a
// histogram.
//
//	first        - first category in cleaned file order
//	alphabetical - smallest category name
//	largest      - most records, ties broken alphabetically
func SelectHistogramCategory(ds *sales.Dataset, rule string) (string, error) {
	if ds.IsEmpty() {
		return "", core.ErrEmptyDataset
	}

	switch rule {
	case config.SelectFirst, "":
		return ds.Records[0].MainCategory, nil
	case config.SelectAlphabetical:
		smallest := ds.Records[0].MainCategory
		for _, r := range ds.Records[1:] {
			if r.MainCategory < smallest {
				smallest = r.MainCategory
			}
		}
		return smallest, nil
	case config.SelectLargest:
		mainCounts, _ := NewAggregator().CategoryCounts(ds)
		sort.SliceStable(mainCounts, func(i, j int) bool {
			return mainCounts[i].Count > mainCounts[j].Count
		})
		return mainCounts[0].Value, nil
	}
	return "", core.ErrUnknownSelection
}

// RatingsFor returns the ratings of one category in file order
func RatingsFor(ds *sales.Dataset, category string) []float64 {
	var out []float64
	for _, r := range ds.Records {
		if r.MainCategory == category {
			out = append(out, r.Ratings)
		}
	}
	return out
}
