// Package bank enumerates the known bank export schemas and detects which
// one a file's header row belongs to.
package bank

import (
	"errors"
	"strings"

	"github.com/mjzilver/BankOverview/internal/core"
)

// SchemaID identifies a registered bank export format.
type SchemaID string

const (
	Rabobank SchemaID = "rabobank"
	ING      SchemaID = "ing"
)

// Canonical field names produced by the rename step.
const (
	FieldDate                = "date"
	FieldAmount              = "amount"
	FieldCounterparty        = "counterparty"
	FieldCounterpartyAccount = "counterparty_account"
	FieldOwnAccount          = "own_account"
)

// SignFunc returns +1 or -1 for a raw row, letting a schema fold a separate
// debit/credit indicator column into the amount's sign. The indicator column
// itself is discarded by the rename step.
type SignFunc func(row core.RawRecord) int

// Schema describes one bank export format: the columns that must be present
// for a file to be treated as this format, how its columns map onto the
// canonical fields, and its date and amount quirks. Schemas are immutable at
// runtime.
type Schema struct {
	ID       SchemaID
	Required []string
	Rename   map[string]string
	// DateLayout is the exact time layout for the date column. Empty means
	// the layout is inferred per row from a fixed candidate list.
	DateLayout string
	// Sign is nil when amounts already carry their own sign.
	Sign SignFunc
}

// ErrUnrecognizedFormat is returned when no registered schema matches a
// file's header set. Callers must treat it as fatal for that file's batch.
var ErrUnrecognizedFormat = errors.New("unrecognized bank export format")

// schemas is the registry, in declaration order. Detection returns the first
// schema whose required set is a subset of the observed columns, so when two
// required sets would both match, the earlier entry wins. That precedence is
// part of the contract: reorder only deliberately.
var schemas = []Schema{
	{
		ID:       Rabobank,
		Required: []string{"Datum", "Bedrag", "Naam tegenpartij", "Tegenrekening IBAN/BBAN", "IBAN/BBAN"},
		Rename: map[string]string{
			"Datum":                   FieldDate,
			"Bedrag":                  FieldAmount,
			"Naam tegenpartij":        FieldCounterparty,
			"Tegenrekening IBAN/BBAN": FieldCounterpartyAccount,
			"IBAN/BBAN":               FieldOwnAccount,
		},
	},
	{
		ID:       ING,
		Required: []string{"Date", "Amount (EUR)", "Name/Description", "Counterparty", "Debit/credit", "Account"},
		Rename: map[string]string{
			"Date":             FieldDate,
			"Amount (EUR)":     FieldAmount,
			"Name/Description": FieldCounterparty,
			"Counterparty":     FieldCounterpartyAccount,
			"Account":          FieldOwnAccount,
		},
		DateLayout: "20060102",
		Sign:       ingSign,
	},
}

// ingSign flips the sign for debit rows. ING exports unsigned amounts with a
// separate direction column, either "Debit"/"Credit" or the Dutch "Af"/"Bij".
func ingSign(row core.RawRecord) int {
	switch strings.ToLower(strings.TrimSpace(row["Debit/credit"])) {
	case "debit", "af":
		return -1
	default:
		return 1
	}
}

// Detect returns the first registered schema whose required column set is a
// subset of the observed columns. Column names are compared after trimming,
// so padded export headers match. Detection is deterministic: same columns,
// same result.
func Detect(columns []string) (Schema, error) {
	observed := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		observed[strings.TrimSpace(c)] = struct{}{}
	}

	for _, s := range schemas {
		if hasAll(observed, s.Required) {
			return s, nil
		}
	}
	return Schema{}, ErrUnrecognizedFormat
}

// All returns the registered schemas in declaration order.
func All() []Schema {
	out := make([]Schema, len(schemas))
	copy(out, schemas)
	return out
}

func hasAll(observed map[string]struct{}, required []string) bool {
	for _, col := range required {
		if _, ok := observed[col]; !ok {
			return false
		}
	}
	return true
}
