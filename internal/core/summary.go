package core

import "github.com/shopspring/decimal"

// SummaryRow is the net amount for one counterparty in one month. Derived,
// recomputed on every pipeline run, never persisted.
type SummaryRow struct {
	Month        Month           `json:"month"`
	Counterparty string          `json:"counterparty"`
	Net          decimal.Decimal `json:"net"`
}

// LabelSummaryRow aggregates counterparty summaries per label and month.
type LabelSummaryRow struct {
	Month   Month           `json:"month"`
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// MonthTotal is the income/expense/net rollup for a whole month.
type MonthTotal struct {
	Month   Month           `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}
