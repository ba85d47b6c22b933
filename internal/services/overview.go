// Package services wires the load-normalize-filter-aggregate pipeline into
// one synchronous operation and holds its latest result.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mjzilver/BankOverview/internal/analysis"
	"github.com/mjzilver/BankOverview/internal/core"
	"github.com/mjzilver/BankOverview/internal/filter"
	"github.com/mjzilver/BankOverview/internal/ingest"
)

// LabelStore is the subset of the label store the pipeline needs.
type LabelStore interface {
	Upsert(ctx context.Context, counterparty, label string, isBusiness bool) error
	GetAll(ctx context.Context) ([]core.LabelRecord, error)
}

// Snapshot is the complete result of one pipeline run. It is immutable once
// published; a failed run never replaces the previous snapshot.
type Snapshot struct {
	Transactions []core.Transaction
	Summary      []core.SummaryRow
	Months       []core.Month
	Files        []ingest.FileResult
	LoadedAt     time.Time
}

// Overview runs the transaction pipeline and answers summary queries against
// its latest snapshot. Label summaries re-join against the current label
// store on every call, so label edits show up without a reload from disk.
type Overview struct {
	dataDir        string
	ignorePatterns []string
	store          LabelStore

	mu   sync.RWMutex
	snap *Snapshot
}

func NewOverview(dataDir string, ignorePatterns []string, store LabelStore) *Overview {
	return &Overview{
		dataDir:        dataDir,
		ignorePatterns: ignorePatterns,
		store:          store,
	}
}

// Refresh runs the full pipeline: load and normalize every export file,
// collect own accounts across the whole batch, filter, summarize. It either
// completes and publishes a new snapshot or fails and leaves the old one.
func (o *Overview) Refresh(ctx context.Context) (*Snapshot, error) {
	txs, files, err := ingest.Load(ctx, o.dataDir)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	own := filter.CollectOwnAccounts(txs)
	txs = filter.Apply(txs, own, o.ignorePatterns)

	summary := analysis.ByMonthCounterparty(txs)
	snap := &Snapshot{
		Transactions: txs,
		Summary:      summary,
		Months:       analysis.Months(summary),
		Files:        files,
		LoadedAt:     time.Now(),
	}

	o.mu.Lock()
	o.snap = snap
	o.mu.Unlock()

	slog.InfoContext(ctx, "Pipeline refreshed",
		"files", len(files),
		"transactions", len(txs),
		"months", len(snap.Months))
	return snap, nil
}

// Snapshot returns the latest published snapshot, or nil before the first
// successful Refresh.
func (o *Overview) Snapshot() *Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.snap
}

// LabelSummary joins the current snapshot with the current labels. When the
// label store cannot be read the join degrades to an empty label set rather
// than failing the whole view.
func (o *Overview) LabelSummary(ctx context.Context, f core.BusinessFilter) ([]core.LabelSummaryRow, error) {
	snap := o.Snapshot()
	if snap == nil {
		return nil, fmt.Errorf("no data loaded yet")
	}

	records, err := o.Labels(ctx)
	if err != nil {
		return nil, err
	}
	return analysis.ByLabel(snap.Summary, records, f), nil
}

// MonthlyTotals rolls the current snapshot up to per-month totals.
func (o *Overview) MonthlyTotals() ([]core.MonthTotal, error) {
	snap := o.Snapshot()
	if snap == nil {
		return nil, fmt.Errorf("no data loaded yet")
	}
	return analysis.MonthlyTotals(snap.Summary), nil
}

// Labels reads all label records. A read failure degrades to an empty set
// with a warning; only writes treat an unavailable store as fatal.
func (o *Overview) Labels(ctx context.Context) ([]core.LabelRecord, error) {
	if o.store == nil {
		return nil, nil
	}
	records, err := o.store.GetAll(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Label store unreadable, continuing with empty label set", "error", err)
		return nil, nil
	}
	return records, nil
}

// SetLabel upserts a label for a counterparty. Unlike reads, a write against
// an unavailable store is an error the caller must see.
func (o *Overview) SetLabel(ctx context.Context, counterparty, label string, isBusiness bool) error {
	if o.store == nil {
		return fmt.Errorf("label store unavailable")
	}
	return o.store.Upsert(ctx, counterparty, label, isBusiness)
}
