package bank

import (
	"errors"
	"testing"

	"github.com/mjzilver/BankOverview/internal/core"
)

var rabobankColumns = []string{"Datum", "Bedrag", "Naam tegenpartij", "Tegenrekening IBAN/BBAN", "IBAN/BBAN"}

var ingColumns = []string{"Date", "Amount (EUR)", "Name/Description", "Counterparty", "Debit/credit", "Account"}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    SchemaID
		wantErr bool
	}{
		{
			name:    "rabobank exact",
			columns: rabobankColumns,
			want:    Rabobank,
		},
		{
			name:    "ing exact",
			columns: ingColumns,
			want:    ING,
		},
		{
			name:    "rabobank with vendor extras",
			columns: append([]string{"Volgnr", "Munt", "Saldo na trn"}, rabobankColumns...),
			want:    Rabobank,
		},
		{
			name:    "padded headers are trimmed",
			columns: []string{" Datum ", "Bedrag  ", "Naam tegenpartij", "  Tegenrekening IBAN/BBAN", "IBAN/BBAN "},
			want:    Rabobank,
		},
		{
			name:    "near miss is not coerced",
			columns: []string{"Datum", "Bedrag", "Naam tegenpartij"},
			wantErr: true,
		},
		{
			name:    "unknown export",
			columns: []string{"Transaction ID", "Value", "Payee"},
			wantErr: true,
		},
		{
			name:    "empty header",
			columns: nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.columns)
			if tt.wantErr {
				if !errors.Is(err, ErrUnrecognizedFormat) {
					t.Fatalf("Detect(%v) error = %v, want ErrUnrecognizedFormat", tt.columns, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect(%v) unexpected error: %v", tt.columns, err)
			}
			if got.ID != tt.want {
				t.Errorf("Detect(%v) = %s, want %s", tt.columns, got.ID, tt.want)
			}
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	// Both required sets present at once: declaration order decides, and
	// repeated calls agree.
	columns := append(append([]string{}, rabobankColumns...), ingColumns...)

	first, err := Detect(columns)
	if err != nil {
		t.Fatalf("Detect unexpected error: %v", err)
	}
	if first.ID != Rabobank {
		t.Errorf("overlapping header set resolved to %s, want declaration-order winner %s", first.ID, Rabobank)
	}

	for i := 0; i < 10; i++ {
		again, err := Detect(columns)
		if err != nil {
			t.Fatalf("Detect unexpected error on repeat: %v", err)
		}
		if again.ID != first.ID {
			t.Fatalf("Detect not deterministic: got %s then %s", first.ID, again.ID)
		}
	}
}

func TestIngSign(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "debit flips", value: "Debit", want: -1},
		{name: "lowercase debit flips", value: "debit", want: -1},
		{name: "dutch af flips", value: "Af", want: -1},
		{name: "credit keeps", value: "Credit", want: 1},
		{name: "dutch bij keeps", value: "Bij", want: 1},
		{name: "missing column keeps", value: "", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := core.RawRecord{"Debit/credit": tt.value}
			if got := ingSign(row); got != tt.want {
				t.Errorf("ingSign(%q) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestAll_CopiesRegistry(t *testing.T) {
	all := All()
	if len(all) != len(schemas) {
		t.Fatalf("All() returned %d schemas, want %d", len(all), len(schemas))
	}
	all[0].ID = "mutated"
	if schemas[0].ID == "mutated" {
		t.Error("All() must return a copy, not the registry itself")
	}
}
