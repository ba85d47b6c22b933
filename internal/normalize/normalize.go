// Package normalize turns raw bank export rows into canonical transactions
// by applying a schema's rename, date and amount rules.
package normalize

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mjzilver/BankOverview/internal/bank"
	"github.com/mjzilver/BankOverview/internal/core"
)

// dateLayouts are tried in order for schemas that declare no exact layout.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"02/01/2006",
	"20060102",
}

// Stats counts what happened to a batch of rows. Rejected rows are dropped
// silently from the canonical set; the counts exist for diagnosis.
type Stats struct {
	Rows       int
	BadDates   int
	BadAmounts int
}

// Dropped is the total number of rejected rows.
func (s Stats) Dropped() int {
	return s.BadDates + s.BadAmounts
}

// Normalize converts raw rows to canonical transactions under the given
// schema. Rows with an unparseable date or amount are counted and dropped,
// never defaulted; a missing counterparty becomes the Unknown sentinel.
func Normalize(rows []core.RawRecord, schema bank.Schema) ([]core.Transaction, Stats) {
	stats := Stats{Rows: len(rows)}
	txs := make([]core.Transaction, 0, len(rows))

	for _, row := range rows {
		fields := rename(row, schema.Rename)

		date, ok := parseDate(fields[bank.FieldDate], schema.DateLayout)
		if !ok {
			stats.BadDates++
			continue
		}

		amount, ok := parseAmount(fields[bank.FieldAmount])
		if !ok {
			stats.BadAmounts++
			continue
		}
		if schema.Sign != nil && schema.Sign(row) < 0 {
			amount = amount.Neg()
		}

		counterparty := strings.TrimSpace(fields[bank.FieldCounterparty])
		if counterparty == "" {
			counterparty = core.UnknownCounterparty
		}

		txs = append(txs, core.Transaction{
			Date:                date,
			Amount:              amount,
			Counterparty:        counterparty,
			CounterpartyAccount: strings.TrimSpace(fields[bank.FieldCounterpartyAccount]),
			OwnAccount:          strings.TrimSpace(fields[bank.FieldOwnAccount]),
			Month:               core.MonthOf(date),
		})
	}

	if stats.Dropped() > 0 {
		slog.Warn("Dropped rows during normalization",
			"schema", schema.ID,
			"bad_dates", stats.BadDates,
			"bad_amounts", stats.BadAmounts,
			"rows", stats.Rows)
	}
	return txs, stats
}

// rename maps source columns onto canonical field names. Columns absent from
// the rename map (vendor extras, consumed indicator columns) are dropped.
func rename(row core.RawRecord, renames map[string]string) map[string]string {
	fields := make(map[string]string, len(renames))
	for src, dst := range renames {
		if v, ok := row[src]; ok {
			fields[dst] = v
		}
	}
	return fields
}

func parseDate(s, layout string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if layout != "" {
		t, err := time.Parse(layout, s)
		return t, err == nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseAmount parses a bank export amount in either locale. A decimal comma
// marks the string as Dutch-style, so dots before it are thousands
// separators and are stripped; otherwise the dot is the decimal separator.
// Failures become a missing value, the row is rejected by the caller.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
