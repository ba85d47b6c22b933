// Package analysis aggregates canonical transactions into the summary views
// the presentation layer consumes. All functions are pure: they read their
// inputs, return fresh slices, and can be re-run against the current label
// snapshot at any time.
package analysis

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mjzilver/BankOverview/internal/core"
)

// ByMonthCounterparty groups transactions by (month, counterparty) and sums
// their amounts. Rows are ordered by month ascending, then net descending
// within a month, then counterparty ascending so equal nets still order
// deterministically.
func ByMonthCounterparty(txs []core.Transaction) []core.SummaryRow {
	type key struct {
		month        core.Month
		counterparty string
	}
	nets := make(map[key]decimal.Decimal)
	for _, tx := range txs {
		k := key{month: tx.Month, counterparty: tx.Counterparty}
		nets[k] = nets[k].Add(tx.Amount)
	}

	rows := make([]core.SummaryRow, 0, len(nets))
	for k, net := range nets {
		rows = append(rows, core.SummaryRow{
			Month:        k.month,
			Counterparty: k.counterparty,
			Net:          net,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month.Before(rows[j].Month)
		}
		if !rows[i].Net.Equal(rows[j].Net) {
			return rows[i].Net.GreaterThan(rows[j].Net)
		}
		return rows[i].Counterparty < rows[j].Counterparty
	})
	return rows
}

// ByLabel joins summary rows with label records on the exact counterparty
// name and regroups by (month, label). Unlabeled counterparties get the
// NoLabel sentinel and count as non-business. The filter is applied to the
// joined rows before grouping.
func ByLabel(summary []core.SummaryRow, labels []core.LabelRecord, f core.BusinessFilter) []core.LabelSummaryRow {
	byCounterparty := make(map[string]core.LabelRecord, len(labels))
	for _, l := range labels {
		byCounterparty[l.Counterparty] = l
	}

	type key struct {
		month core.Month
		label string
	}
	totals := make(map[key]*core.LabelSummaryRow)

	for _, row := range summary {
		label := core.NoLabel
		isBusiness := false
		if rec, ok := byCounterparty[row.Counterparty]; ok {
			isBusiness = rec.IsBusiness
			if trimmed := strings.TrimSpace(rec.Label); trimmed != "" {
				label = trimmed
			}
		}
		if !f.Matches(isBusiness) {
			continue
		}

		k := key{month: row.Month, label: label}
		t, ok := totals[k]
		if !ok {
			t = &core.LabelSummaryRow{Month: row.Month, Label: label}
			totals[k] = t
		}
		if row.Net.IsPositive() {
			t.Income = t.Income.Add(row.Net)
		} else if row.Net.IsNegative() {
			t.Expense = t.Expense.Add(row.Net)
		}
		t.Net = t.Net.Add(row.Net)
	}

	rows := make([]core.LabelSummaryRow, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month.Before(rows[j].Month)
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}

// MonthlyTotals rolls summary rows up to whole-month income, expense and net
// figures, month ascending.
func MonthlyTotals(summary []core.SummaryRow) []core.MonthTotal {
	totals := make(map[core.Month]*core.MonthTotal)
	for _, row := range summary {
		t, ok := totals[row.Month]
		if !ok {
			t = &core.MonthTotal{Month: row.Month}
			totals[row.Month] = t
		}
		if row.Net.IsPositive() {
			t.Income = t.Income.Add(row.Net)
		} else if row.Net.IsNegative() {
			t.Expense = t.Expense.Add(row.Net)
		}
		t.Net = t.Net.Add(row.Net)
	}

	rows := make([]core.MonthTotal, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, *t)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Month.Before(rows[j].Month)
	})
	return rows
}

// Months returns the distinct months present in the summary, ascending.
func Months(summary []core.SummaryRow) []core.Month {
	seen := make(map[core.Month]struct{})
	var months []core.Month
	for _, row := range summary {
		if _, ok := seen[row.Month]; !ok {
			seen[row.Month] = struct{}{}
			months = append(months, row.Month)
		}
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})
	return months
}
