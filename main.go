package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"salesreport/app"
	"salesreport/internal"
	"salesreport/internal/config"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, ok := internal.ParseLogLevel(appConfig.Logging.Level)
	if !ok {
		level = internal.LogLevelInfo
	}
	logger := internal.NewLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := app.NewReportService(appConfig, logger).Run(ctx)
	if err != nil {
		log.Fatalf("Report generation failed: %v", err)
	}

	log.Printf("Report written to %s (%d of %d rows kept, %d charts)",
		summary.ReportPath, summary.RowsKept, summary.RowsRead, len(summary.Charts))
}
