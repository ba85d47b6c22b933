// Package ingest reads bank export CSV files from disk, detects each file's
// schema and hands rows to the normalizer.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/mjzilver/BankOverview/internal/bank"
	"github.com/mjzilver/BankOverview/internal/core"
	"github.com/mjzilver/BankOverview/internal/normalize"
)

const csvGlob = "*.csv"

// FileResult reports what happened to a single loaded file.
type FileResult struct {
	Path    string        `json:"path"`
	Schema  bank.SchemaID `json:"schema"`
	Rows    int           `json:"rows"`
	Dropped int           `json:"dropped"`
}

// Load reads every CSV file in dir, detects its schema and normalizes its
// rows into one concatenated canonical set. Files are processed in sorted
// path order so repeated loads are deterministic. A file whose header
// matches no schema aborts the whole load: the pipeline never guesses at an
// unknown format.
func Load(ctx context.Context, dir string) ([]core.Transaction, []FileResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, csvGlob))
	if err != nil {
		return nil, nil, fmt.Errorf("scan data directory %s: %w", dir, err)
	}
	sort.Strings(paths)

	var (
		all     []core.Transaction
		results []FileResult
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		txs, result, err := loadFile(path)
		if err != nil {
			return nil, nil, err
		}
		all = append(all, txs...)
		results = append(results, result)

		slog.Info("Loaded bank export",
			"path", path,
			"schema", result.Schema,
			"rows", result.Rows,
			"dropped", result.Dropped)
	}
	return all, results, nil
}

// loadFile reads a single export file. Bank exports in scope are Latin-1
// encoded, comma separated, with a possibly padded header row.
func loadFile(path string) ([]core.Transaction, FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, FileResult{}, fmt.Errorf("open export file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, FileResult{}, fmt.Errorf("read header from %s: %w", path, err)
	}
	columns := make([]string, len(header))
	for i, c := range header {
		columns[i] = strings.TrimSpace(c)
	}

	schema, err := bank.Detect(columns)
	if err != nil {
		return nil, FileResult{}, fmt.Errorf("%s: %w", path, err)
	}

	var rows []core.RawRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, FileResult{}, fmt.Errorf("read record from %s: %w", path, err)
		}

		row := make(core.RawRecord, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	txs, stats := normalize.Normalize(rows, schema)
	return txs, FileResult{
		Path:    path,
		Schema:  schema.ID,
		Rows:    stats.Rows,
		Dropped: stats.Dropped(),
	}, nil
}
