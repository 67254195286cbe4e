package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"salesreport/app"
	"salesreport/domain/core"
	"salesreport/domain/sales"
	"salesreport/internal"
	"salesreport/internal/config"
	"salesreport/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "salesreport-cli",
		Short:         "Clean a sales export and build the charts and PDF report",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newStatsCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage tells bad input apart from pipeline failures
func errorMessage(err error) string {
	switch {
	case core.IsInputError(err):
		return fmt.Sprintf("input error: %v", err)
	case errors.IsAppError(err):
		return fmt.Sprintf("[%s] %v", errors.GetCode(err), err)
	}
	return err.Error()
}

// loadConfig reads the environment and applies flag overrides on top
func loadConfig(apply func(*config.Config)) (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, ok := internal.ParseLogLevel(cfg.Logging.Level)
	if !ok {
		level = internal.LogLevelInfo
	}
	return cfg, internal.NewLoggerTo(os.Stderr, level), nil
}

func newRunCmd() *cobra.Command {
	var (
		input, images, output, rule, title string
		bins                               int
		asJSON                             bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline and write charts and the PDF report",
		Long: `Load and clean the input file, compute the category tables, render the
charts and assemble the report. Flags override the environment.

Example: salesreport-cli run --input Amazon-Products-100k.csv --histogram-category largest`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(func(c *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("input") {
					c.Paths.InputFile = input
				}
				if flags.Changed("images") {
					c.Paths.ImageDir = images
				}
				if flags.Changed("output") {
					c.Paths.ReportFile = output
				}
				if flags.Changed("bins") {
					c.Charts.HistogramBins = bins
				}
				if flags.Changed("histogram-category") {
					c.Charts.HistogramCategory = strings.ToLower(rule)
				}
				if flags.Changed("title") {
					c.Report.Title = title
				}
			})
			if err != nil {
				return err
			}

			summary, err := app.NewReportService(cfg, logger).Run(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input CSV/XLSX file (default $SALES_INPUT_FILE)")
	cmd.Flags().StringVar(&images, "images", "", "Chart image directory (default $IMAGE_DIR)")
	cmd.Flags().StringVar(&output, "output", "", "Report PDF path (default $REPORT_FILE)")
	cmd.Flags().IntVar(&bins, "bins", 0, "Histogram bin count (default $HISTOGRAM_BINS)")
	cmd.Flags().StringVar(&rule, "histogram-category", "", "Histogram category rule: first, alphabetical or largest")
	cmd.Flags().StringVar(&title, "title", "", "Report title (default $REPORT_TITLE)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the run summary as JSON")

	return cmd
}

func newStatsCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the category tables and cleaning summary without writing files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(func(c *config.Config) {
				if cmd.Flags().Changed("input") {
					c.Paths.InputFile = input
				}
			})
			if err != nil {
				return err
			}

			result, err := app.NewReportService(cfg, logger).ComputeTables(cmd.Context())
			if err != nil {
				return err
			}
			printTables(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input CSV/XLSX file (default $SALES_INPUT_FILE)")
	return cmd
}

func printSummary(w io.Writer, s *app.RunSummary) {
	fmt.Fprintf(w, "Run:         %s\n", s.RunID)
	fmt.Fprintf(w, "Input:       %s\n", s.InputPath)
	fmt.Fprintf(w, "Rows:        %d read, %d kept, %d dropped\n", s.RowsRead, s.RowsKept, s.RowsDropped)
	printDropReasons(w, s.DropReasons)
	fmt.Fprintf(w, "Categories:  %d\n", s.Categories)
	fmt.Fprintf(w, "Fingerprint: %s\n", s.Fingerprint.Short())
	for _, c := range s.Charts {
		fmt.Fprintf(w, "Chart:       %s\n", c.Path)
	}
	fmt.Fprintf(w, "Report:      %s\n", s.ReportPath)
	fmt.Fprintf(w, "Duration:    %s\n", s.Duration)
}

func printTables(w io.Writer, r *app.TablesResult) {
	ds := r.Dataset
	fmt.Fprintf(w, "%s: %d rows read, %d kept, %d dropped\n", ds.Source, ds.RowsRead, ds.Len(), ds.RowsDropped)
	printDropReasons(w, ds.DropReasons)

	fmt.Fprintln(w)
	fmt.Fprint(w, sales.FormatStats(r.Tables.Stats))
	fmt.Fprintln(w)
	fmt.Fprint(w, sales.FormatCounts(sales.ColMainCategory, r.Tables.MainCounts))
	fmt.Fprintln(w)
	fmt.Fprint(w, sales.FormatCounts(sales.ColSubCategory, r.Tables.SubCounts))
	fmt.Fprintf(w, "\nfingerprint %s\n", r.Fingerprint)
}

func printDropReasons(w io.Writer, reasons map[string]int) {
	keys := make([]string, 0, len(reasons))
	for k := range reasons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  dropped %-28s %d\n", k, reasons[k])
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

