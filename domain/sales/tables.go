package sales

import (
	"bytes"
	"strconv"
	"text/tabwriter"

	"salesreport/domain/core"
)

// NullText is how an undefined statistic is printed
const NullText = "null"

// FormatStats renders the statistics table as right-aligned plain text
// without an index column.
func FormatStats(stats []CategoryStats) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	w.Write([]byte("main_category\tmean_ratings\tmedian_ratings\tstd_ratings\tmean_no_of_ratings\t\n"))
	for _, s := range stats {
		std := NullText
		if s.StdRatings != nil {
			std = formatFloat(*s.StdRatings)
		}
		w.Write([]byte(s.MainCategory + "\t" +
			formatFloat(s.MeanRatings) + "\t" +
			formatFloat(s.MedianRatings) + "\t" +
			std + "\t" +
			formatFloat(s.MeanNoOfRatings) + "\t\n"))
	}
	w.Flush()
	return buf.String()
}

// FormatCounts renders a count table with the given key column header
func FormatCounts(keyColumn string, counts []CategoryCount) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	w.Write([]byte(keyColumn + "\tcounts\t\n"))
	for _, c := range counts {
		w.Write([]byte(c.Value + "\t" + strconv.Itoa(c.Count) + "\t\n"))
	}
	w.Flush()
	return buf.String()
}

// Fingerprint hashes the rendered tables. Two runs over the same input
// produce the same fingerprint.
func (t Tables) Fingerprint() core.Hash {
	return core.ComputeTableHash(
		FormatCounts(ColMainCategory, t.MainCounts),
		FormatCounts(ColSubCategory, t.SubCounts),
		FormatStats(t.Stats),
	)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
