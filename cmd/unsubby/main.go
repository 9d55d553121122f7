package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/unsubby/backend/internal/engine"
	"github.com/unsubby/backend/internal/links"
	"github.com/unsubby/backend/internal/logger"
	"github.com/unsubby/backend/internal/store"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "unsubby",
		Short:   "Unsubby - find recurring charges and how to cancel them",
		Version: Version,
	}

	rootCmd.AddCommand(analyzeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [records.csv]",
		Short: "Analyze parsed transaction records for recurring charges",
		Long: `Analyze reads already-parsed transaction records (CSV columns:
date,merchant,amount with dates as YYYY-MM-DD) and prints the detected
recurring charges with estimated monthly cost and a cancellation link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cachePath, _ := cmd.Flags().GetString("cache")
			merchantsPath, _ := cmd.Flags().GetString("merchants")
			threshold, _ := cmd.Flags().GetInt("threshold")
			offline, _ := cmd.Flags().GetBool("offline")
			exclude, _ := cmd.Flags().GetStringSlice("exclude")
			return runAnalyze(args[0], cachePath, merchantsPath, threshold, offline, exclude)
		},
	}

	cmd.Flags().String("cache", "./data/link_cache.json", "Path to the link resolution cache file")
	cmd.Flags().String("merchants", "", "Extra known-merchants JSON file merged over the builtin table")
	cmd.Flags().Int("threshold", engine.DefaultSimilarityThreshold, "Merchant similarity threshold (0-100)")
	cmd.Flags().Bool("offline", false, "Skip external link lookups, use table/cache/generic links only")
	cmd.Flags().StringSlice("exclude", nil, "Merchants to exclude from the report and the savings total")

	return cmd
}

func runAnalyze(path, cachePath, merchantsPath string, threshold int, offline bool, exclude []string) error {
	log := logger.WithLevel(logger.New(), "warn")

	records, err := readRecords(path)
	if err != nil {
		return err
	}

	cache, err := store.NewFileCache(cachePath)
	if err != nil {
		log.Warn().Err(err).Msg("link cache unreadable, starting empty")
	}

	table, err := links.LoadKnownMerchants(merchantsPath)
	if err != nil {
		log.Warn().Err(err).Msg("known merchants file unreadable, using builtin table")
	}

	resolver := links.NewResolver(links.Config{
		Table:         table,
		Cache:         cache,
		Threshold:     threshold,
		DisableLookup: offline,
		Logger:        log,
	})

	analyzer := engine.NewAnalyzer(resolver, log)
	analyzer.SetThreshold(threshold)

	ctx := context.Background()
	result := analyzer.Analyze(ctx, records).Excluding(exclude...)

	fmt.Printf("Found %d recurring charge(s) across %d record(s)\n\n", len(result.Groups), len(records))
	for _, g := range result.Groups {
		fmt.Printf("%s\n", engine.FormatMerchantName(g.DisplayMerchant))
		fmt.Printf("  monthly cost: $%s (%s, %d charges)\n", g.MonthlyCost.StringFixed(2), g.Frequency, g.MemberCount)
		fmt.Printf("  cancel: %s\n\n", g.CancellationLink)
	}
	fmt.Printf("Estimated monthly savings if cancelled: $%s\n", result.TotalMonthlySavings.StringFixed(2))

	if err := resolver.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("link cache flush failed")
	}
	return nil
}

// readRecords parses a canonical records CSV: date,merchant,amount.
// A header row is skipped when the first cell is not a date. Malformed
// rows are rejected here, before the engine ever sees them.
func readRecords(path string) ([]engine.TransactionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	var records []engine.TransactionRecord
	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read records file: %w", err)
		}
		line++

		date, err := time.Parse("2006-01-02", row[0])
		if err != nil {
			if line == 1 {
				continue // header row
			}
			return nil, fmt.Errorf("line %d: invalid date %q, want YYYY-MM-DD", line, row[0])
		}
		amount, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, row[2], err)
		}

		records = append(records, engine.TransactionRecord{
			Date:     date,
			Merchant: row[1],
			Amount:   amount,
		})
	}
	return records, nil
}
