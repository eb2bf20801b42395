package operations

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/bizcurrency/bizcli/client"
	"github.com/bizcurrency/bizcli/pkg/hasher"
	"github.com/bizcurrency/bizcli/pkg/pool"
	"github.com/bizcurrency/bizcli/pkg/validation"
)

// StatementFetcher is the slice of the API client the export needs.
type StatementFetcher interface {
	FetchStatement(ctx context.Context, accountID string, from, to time.Time) ([]client.StatementEntry, error)
}

// ExportParams holds all parameters for a statement export run.
type ExportParams struct {
	AccountIDs []string
	From       time.Time
	To         time.Time
	OutputDir  string

	// ChecksumAlgo, when non-empty, writes a checksum sidecar file next to
	// each exported CSV.
	ChecksumAlgo string

	Workers      int
	ShowProgress bool
}

// ExportResult describes one account's exported statement file.
type ExportResult struct {
	AccountID string
	Path      string
	Checksum  string
	Entries   int
}

// csvHeader is the column layout of exported statement files.
var csvHeader = []string{"booking_date", "value_date", "description", "reference", "amount", "currency", "balance"}

// ExportStatements fetches the statement of every requested account and
// writes one CSV file per account into params.OutputDir. Accounts are
// processed concurrently. Results are returned for the accounts that
// succeeded even when others failed; the error aggregates all failures.
func ExportStatements(ctx context.Context, fetcher StatementFetcher, params ExportParams) ([]ExportResult, error) {
	if len(params.AccountIDs) == 0 {
		return nil, fmt.Errorf("no accounts to export")
	}
	if err := validation.ValidateWorkerCount(params.Workers); err != nil {
		return nil, err
	}
	if err := validation.ValidateDateRange(params.From, params.To); err != nil {
		return nil, err
	}
	if params.ChecksumAlgo != "" && !hasher.IsValidHashAlgo(params.ChecksumAlgo) {
		return nil, fmt.Errorf("unsupported checksum algorithm: %s (supported: %v)", params.ChecksumAlgo, hasher.HashAlgorithms)
	}
	if err := os.MkdirAll(params.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", params.OutputDir, err)
	}

	var bar *progressbar.ProgressBar
	if params.ShowProgress {
		bar = progressbar.NewOptions(len(params.AccountIDs),
			progressbar.OptionSetDescription("Exporting statements..."),
			progressbar.OptionSetWidth(20),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var mu sync.Mutex
	var results []ExportResult

	errs := pool.Run(ctx, params.AccountIDs, params.Workers, func(ctx context.Context, accountID string) error {
		defer func() {
			if bar != nil {
				_ = bar.Add(1)
			}
		}()

		result, err := exportOne(ctx, fetcher, accountID, params)
		if err != nil {
			log.Error().Err(err).Str("account_id", accountID).Msg("Statement export failed")
			return fmt.Errorf("account %s: %w", accountID, err)
		}

		mu.Lock()
		results = append(results, result)
		mu.Unlock()
		log.Info().Str("account_id", accountID).Str("path", result.Path).Int("entries", result.Entries).Msg("Statement exported")
		return nil
	})

	sort.Slice(results, func(i, j int) bool { return results[i].AccountID < results[j].AccountID })
	return results, errors.Join(errs...)
}

func exportOne(ctx context.Context, fetcher StatementFetcher, accountID string, params ExportParams) (ExportResult, error) {
	entries, err := fetcher.FetchStatement(ctx, accountID, params.From, params.To)
	if err != nil {
		return ExportResult{}, err
	}

	fileName := fmt.Sprintf("statement_%s_%s_%s.csv",
		accountID, params.From.Format("20060102"), params.To.Format("20060102"))
	path := filepath.Join(params.OutputDir, fileName)

	if err := writeStatementCSV(path, entries); err != nil {
		return ExportResult{}, err
	}

	result := ExportResult{AccountID: accountID, Path: path, Entries: len(entries)}
	if params.ChecksumAlgo != "" {
		checksum, err := hasher.GenerateHash(path, params.ChecksumAlgo)
		if err != nil {
			return ExportResult{}, fmt.Errorf("failed to checksum %s: %w", path, err)
		}
		sidecar := path + "." + params.ChecksumAlgo
		if err := os.WriteFile(sidecar, []byte(checksum+"  "+fileName+"\n"), 0o644); err != nil {
			return ExportResult{}, fmt.Errorf("failed to write checksum file %s: %w", sidecar, err)
		}
		result.Checksum = checksum
	}
	return result, nil
}

func writeStatementCSV(path string, entries []client.StatementEntry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.BookingDate,
			e.ValueDate,
			e.Description,
			e.Reference,
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.CurrencyCode,
			strconv.FormatFloat(e.Balance, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}
