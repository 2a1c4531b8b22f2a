package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cli/browser"
	"github.com/pulsefit/analysis"
	"github.com/pulsefit/config"
	"github.com/pulsefit/data"
	"github.com/pulsefit/models"
	"github.com/pulsefit/server"
	"github.com/pulsefit/store"
)

func main() {
	analyzePath := flag.String("analyze", "", "analyze a heart rate export and print the latest window instead of serving")
	formatName := flag.String("format", "", "export format (csv, json or xlsx); detected from the extension when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	if *analyzePath != "" {
		os.Exit(runAnalyze(cfg, *analyzePath, *formatName))
	}

	logFile, err := server.SetupLogging(cfg.LogDir, cfg.LogStdout)
	if err != nil {
		log.Fatal("Failed to set up logging: ", err)
	}
	defer logFile.Close()

	uploads, err := store.NewUploadStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to open upload store: ", err)
	}

	srv := server.New(cfg, uploads)

	if cfg.OpenBrowser {
		go func() {
			// give the listener a moment before the browser hits it
			time.Sleep(500 * time.Millisecond)
			url := "http://localhost:" + cfg.Port
			if err := browser.OpenURL(url); err != nil {
				log.Printf("Failed to open browser, visit %s manually: %v", url, err)
			}
		}()
	}

	if err := srv.Serve(); err != nil {
		log.Fatal("Server failed to start: ", err)
	}
}

// runAnalyze prints the latest dense window of a single file and returns the
// process exit code.
func runAnalyze(cfg *config.Config, path, formatName string) int {
	var (
		format data.Format
		err    error
	)
	if formatName != "" {
		format, err = data.ParseFormat(formatName)
	} else {
		format, err = data.DetectFormat(path)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	opts := analysis.Options{
		BucketWidth: cfg.BucketWidth,
		Window:      cfg.Window,
		Step:        cfg.WindowStep,
	}
	report, err := analysis.AnalyzeFile(path, format, opts)
	var noData *models.NoDataError
	if errors.As(err, &noData) {
		fmt.Println(noData.Reason)
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	stats := report.Latest
	fmt.Printf("File:      %s\n", report.Upload.Filename)
	fmt.Printf("Intervals: %d\n", len(report.Intervals))
	fmt.Printf("Latest:    %s - %s\n", stats.Interval.Start.Format(time.RFC3339), stats.Interval.End.Format(time.RFC3339))
	fmt.Printf("Min HR:    %.1f\n", stats.Min)
	fmt.Printf("Max HR:    %.1f\n", stats.Max)
	fmt.Printf("Avg HR:    %.1f\n", stats.Mean)
	for _, z := range stats.Zones {
		fmt.Printf("  %-13s %4.0f min\n", z.Name, z.Minutes)
	}
	return 0
}
