package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/contract-cli/internal/contract"
	"github.com/sells-group/contract-cli/internal/export"
	"github.com/sells-group/contract-cli/internal/report"
	"github.com/sells-group/contract-cli/internal/store"
)

var (
	analyzeInput       string
	analyzeLimit       int
	analyzeOutput      string
	analyzeFormat      string
	analyzeConcurrency int
	analyzeNoFewShot   bool
	analyzeIndex       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a directory of contract PDFs",
	Long:  "Extracts clauses and summaries from every contract PDF in the input directory, records the run, and exports the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		applyAnalyzeFlags(cmd)
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		files, err := listPDFs(cfg.Batch.InputDir, cfg.Batch.MaxContracts)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "No PDF files found.")
			return nil
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		proc, err := initProcessor(!analyzeNoFewShot)
		if err != nil {
			return err
		}

		run, err := st.CreateRun(ctx)
		if err != nil {
			return eris.Wrap(err, "analyze: create run")
		}

		records := processContracts(ctx, proc, files, cfg.Batch.Concurrency)

		if err := persistRun(ctx, st, run.ID, records, analyzeIndex); err != nil {
			return err
		}

		outPath := analyzeOutput
		if outPath == "" {
			outPath = filepath.Join(cfg.Export.OutputDir, "contract_analysis_results.csv")
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return eris.Wrap(err, "analyze: create output dir")
		}

		format, err := export.ParseFormat(cfg.Export.Format)
		if err != nil {
			return err
		}
		paths, err := export.Results(records, outPath, format)
		if err != nil {
			return err
		}

		fmt.Printf("Run %s: %d contracts processed, results written to %s\n",
			run.ID, len(records), strings.Join(paths, ", "))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "directory of contract PDFs (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeLimit, "limit", 0, "max number of contracts to process (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "output file base path")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "output format: csv, json, or both")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "contracts processed in parallel")
	analyzeCmd.Flags().BoolVar(&analyzeNoFewShot, "no-few-shot", false, "disable few-shot examples in extraction prompts")
	analyzeCmd.Flags().BoolVar(&analyzeIndex, "index", false, "index extracted clauses for semantic search")
	rootCmd.AddCommand(analyzeCmd)
}

// applyAnalyzeFlags overlays set flags onto the loaded config so validation
// sees the effective values.
func applyAnalyzeFlags(cmd *cobra.Command) {
	if analyzeInput != "" {
		cfg.Batch.InputDir = analyzeInput
	}
	if cmd.Flags().Changed("limit") {
		cfg.Batch.MaxContracts = analyzeLimit
	}
	if analyzeFormat != "" {
		cfg.Export.Format = analyzeFormat
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Batch.Concurrency = analyzeConcurrency
	}
}

// listPDFs returns up to limit PDF paths from dir in name order.
func listPDFs(dir string, limit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "analyze: read input dir %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, nil
}

// contractProcessor is the per-file processing callback.
type contractProcessor interface {
	ProcessFile(ctx context.Context, pdfPath string) *contract.Record
}

// processContracts runs the pipeline over files with bounded concurrency.
// Results keep input order; individual failures become error records and
// never abort the batch.
func processContracts(ctx context.Context, proc contractProcessor, files []string, concurrency int) []contract.Record {
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("contracts", len(files)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]contract.Record, len(files))
	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range files {
		g.Go(func() error {
			rec := proc.ProcessFile(gctx, path)
			results[i] = *rec
			if rec.Status == contract.StatusSuccess {
				succeeded.Add(1)
			} else {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return results
}

// persistRun saves the records, optionally indexes their clauses, and
// completes the run with its aggregate stats.
func persistRun(ctx context.Context, st store.Store, runID string, records []contract.Record, index bool) error {
	var indexed int
	for i := range records {
		if err := st.SaveRecord(ctx, runID, &records[i]); err != nil {
			return eris.Wrapf(err, "analyze: save record %s", records[i].ContractID)
		}
		if index {
			n, err := st.IndexClauses(ctx, runID, &records[i])
			if err != nil {
				return eris.Wrapf(err, "analyze: index clauses %s", records[i].ContractID)
			}
			indexed += n
		}
	}
	if index {
		zap.L().Info("clauses indexed", zap.Int("clauses", indexed))
	}

	stats := report.Compute(records)
	report.Log(runID, stats)

	status := contract.RunStatusComplete
	if stats.Total > 0 && stats.Succeeded == 0 {
		status = contract.RunStatusFailed
	}
	return eris.Wrap(st.CompleteRun(ctx, runID, status, stats), "analyze: complete run")
}
