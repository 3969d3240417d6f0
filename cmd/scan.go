package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cs278/uk-online-banking-audit/internal/fetch"
	"github.com/cs278/uk-online-banking-audit/internal/report"
	"github.com/cs278/uk-online-banking-audit/internal/scanner"
	"github.com/cs278/uk-online-banking-audit/internal/sites"
)

type scanMetadata struct {
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	TotalSites  int       `json:"total_sites"`
	Unreachable int       `json:"unreachable"`
}

type scanOutput struct {
	Metadata scanMetadata  `json:"metadata"`
	Rows     []scanner.Row `json:"rows"`
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch each listed site and grade it against the security checklist",
	Long: `Fetch every site from the configured list, evaluate its response
headers and rendered document against the checklist (HSTS, frame
options, XSS filter, MIME sniffing, CSP, mixed content), and print a
per-site verdict table. Sites that cannot be fetched are marked E and
never abort the rest of the scan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := resolveScanSettings(cmd.Flags())

		list, err := sites.Load(settings.SitesFile)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := &scanner.Runner{
			Concurrency: settings.Concurrency,
			RateLimit:   settings.RateLimit,
			Timeout:     time.Duration(settings.TimeoutSecs) * time.Second,
			Fetcher:     fetch.NewClient(time.Duration(settings.TimeoutSecs)*time.Second, uint64(settings.Retries)),
			Logger:      logger,
		}

		var progress *progressPrinter
		if settings.Progress {
			progress = newProgressPrinter(len(list))
			runner.OnResult = func(row scanner.Row) {
				progress.Increment(!row.Unreachable())
			}
			progress.Start()
		}

		started := time.Now().UTC()
		rows := runner.Run(ctx, list)
		completed := time.Now().UTC()

		if progress != nil {
			progress.Stop()
		}

		if err := report.WriteTable(os.Stdout, rows); err != nil {
			return err
		}
		fmt.Println()
		report.WriteFindings(os.Stdout, rows)

		unreachable := 0
		for _, row := range rows {
			if row.Unreachable() {
				unreachable++
			}
		}

		resultsPath, err := writeResults(resultsDir, scanOutput{
			Metadata: scanMetadata{
				StartedAt:   started,
				CompletedAt: completed,
				TotalSites:  len(list),
				Unreachable: unreachable,
			},
			Rows: rows,
		})
		if err != nil {
			return err
		}

		fmt.Println(colorSuccess("Scan complete."))
		fmt.Printf("%s %s\n", colorInfo("Results:"), resultsPath)
		if unreachable > 0 {
			fmt.Println(colorWarn(fmt.Sprintf("%d of %d sites unreachable", unreachable, len(list))))
		}
		logger.Infow("scan finished", "sites", len(list), "unreachable", unreachable, "duration", completed.Sub(started))

		return nil
	},
}

// writeResults persists the run as a JSON artifact next to previous
// runs, named by start-of-scan timestamp.
func writeResults(dir string, output scanOutput) (string, error) {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("scan-%s.json", output.Metadata.StartedAt.Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write results: %w", err)
	}
	return path, nil
}

func init() {
	scanCmd.Flags().StringP("sites", "s", defaultSitesFile, "JSON file listing sites as {name, url} objects")
	scanCmd.Flags().IntP("concurrency", "c", defaultConcurrency, "maximum sites fetched at once")
	scanCmd.Flags().Int("rate-limit", defaultRateLimit, "maximum requests per second")
	scanCmd.Flags().IntP("timeout", "t", defaultTimeoutSeconds, "per-site fetch timeout in seconds")
	scanCmd.Flags().Int("retries", defaultRetries, "retries for transient transport failures")
	scanCmd.Flags().Bool("no-progress", false, "disable the live progress line")
}
