package analysis

import (
	"testing"

	"salesreport/domain/sales"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(main, sub string, rating float64, n int64) sales.Record {
	return sales.Record{MainCategory: main, SubCategory: sub, Ratings: rating, NoOfRatings: n}
}

func TestStatistics_Scenario(t *testing.T) {
	ds := &sales.Dataset{Records: []sales.Record{
		rec("A", "x", 4.0, 10),
		rec("A", "x", 5.0, 20),
		rec("B", "y", 3.0, 5),
	}}

	st, err := NewAggregator().Statistics(ds)
	require.NoError(t, err)
	require.Len(t, st, 2)

	assert.Equal(t, "A", st[0].MainCategory)
	assert.InDelta(t, 4.5, st[0].MeanRatings, 1e-9)
	assert.InDelta(t, 4.5, st[0].MedianRatings, 1e-9)
	require.NotNil(t, st[0].StdRatings)
	assert.InDelta(t, 0.7071067811865476, *st[0].StdRatings, 1e-9)
	assert.InDelta(t, 15.0, st[0].MeanNoOfRatings, 1e-9)

	assert.Equal(t, "B", st[1].MainCategory)
	assert.InDelta(t, 3.0, st[1].MeanRatings, 1e-9)
	assert.Nil(t, st[1].StdRatings, "single-record group has no sample std")
	assert.InDelta(t, 5.0, st[1].MeanNoOfRatings, 1e-9)
}

func TestStatistics_SortedAndOnePerCategory(t *testing.T) {
	ds := &sales.Dataset{Records: []sales.Record{
		rec("tv", "a", 1, 1),
		rec("appliances", "b", 2, 1),
		rec("men's shoes", "c", 3, 1),
		rec("appliances", "b", 4, 1),
	}}

	st, err := NewAggregator().Statistics(ds)
	require.NoError(t, err)

	names := make([]string, 0, len(st))
	for _, s := range st {
		names = append(names, s.MainCategory)
	}
	assert.Equal(t, []string{"appliances", "men's shoes", "tv"}, names)
}

func TestStatistics_OddMedian(t *testing.T) {
	ds := &sales.Dataset{Records: []sales.Record{
		rec("A", "x", 1.0, 1),
		rec("A", "x", 5.0, 1),
		rec("A", "x", 3.5, 1),
	}}

	st, err := NewAggregator().Statistics(ds)
	require.NoError(t, err)
	require.Len(t, st, 1)
	assert.InDelta(t, 3.5, st[0].MedianRatings, 1e-9)
}

func TestCategoryCounts(t *testing.T) {
	ds := &sales.Dataset{Records: []sales.Record{
		rec("B", "z", 1, 1),
		rec("A", "x", 1, 1),
		rec("A", "y", 1, 1),
		rec("A", "x", 1, 1),
	}}

	mainCounts, subCounts := NewAggregator().CategoryCounts(ds)
	assert.Equal(t, []sales.CategoryCount{{Value: "A", Count: 3}, {Value: "B", Count: 1}}, mainCounts)
	assert.Equal(t, []sales.CategoryCount{{Value: "x", Count: 2}, {Value: "y", Count: 1}, {Value: "z", Count: 1}}, subCounts)

	total := 0
	for _, c := range mainCounts {
		total += c.Count
	}
	assert.Equal(t, ds.Len(), total)
}

func TestAggregate_IsPure(t *testing.T) {
	ds := &sales.Dataset{Records: []sales.Record{
		rec("A", "x", 4.0, 10),
		rec("B", "y", 3.0, 5),
		rec("A", "y", 2.0, 7),
	}}
	before := append([]sales.Record(nil), ds.Records...)

	agg := NewAggregator()
	first, err := agg.Aggregate(ds)
	require.NoError(t, err)
	second, err := agg.Aggregate(ds)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, ds.Records)
	assert.Equal(t, first.Fingerprint(), second.Fingerprint())
	assert.Equal(t, []string{"A", "B"}, first.Categories())
}

func TestAggregate_EmptyDataset(t *testing.T) {
	tables, err := NewAggregator().Aggregate(&sales.Dataset{})
	require.NoError(t, err)
	assert.Empty(t, tables.Stats)
	assert.Empty(t, tables.MainCounts)
	assert.Empty(t, tables.SubCounts)
}
