package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mjzilver/BankOverview/internal/bank"
)

const rabobankHeader = "Datum,Bedrag,Naam tegenpartij,Tegenrekening IBAN/BBAN,IBAN/BBAN\n"

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

func TestLoad_Rabobank(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "export.csv", []byte(rabobankHeader+
		`2024-01-15,"100,00",Acme,NL11BANK0123456789,NL99OWNA0000000001`+"\n"+
		`2024-01-20,"-40,50",Acme,NL11BANK0123456789,NL99OWNA0000000001`+"\n"))

	txs, files, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if len(files) != 1 {
		t.Fatalf("got %d file results, want 1", len(files))
	}
	if files[0].Schema != bank.Rabobank {
		t.Errorf("schema = %s, want %s", files[0].Schema, bank.Rabobank)
	}
	if files[0].Rows != 2 || files[0].Dropped != 0 {
		t.Errorf("file result = %+v, want 2 rows, 0 dropped", files[0])
	}
	if !txs[0].Amount.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("amount = %s, want 100.00", txs[0].Amount)
	}
}

func TestLoad_Latin1Encoding(t *testing.T) {
	dir := t.TempDir()
	// "Café Zeeër" in Latin-1: é = 0xE9, ë = 0xEB.
	row := append([]byte(`2024-01-15,"12,50",`), []byte{'C', 'a', 'f', 0xE9, ' ', 'Z', 'e', 'e', 0xEB, 'r'}...)
	row = append(row, []byte(",NL11BANK0123456789,NL99OWNA0000000001\n")...)
	writeFile(t, dir, "latin1.csv", append([]byte(rabobankHeader), row...))

	txs, _, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if txs[0].Counterparty != "Café Zeeër" {
		t.Errorf("counterparty = %q, want %q", txs[0].Counterparty, "Café Zeeër")
	}
}

func TestLoad_PaddedHeaders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "padded.csv", []byte(
		"Datum ,Bedrag , Naam tegenpartij,Tegenrekening IBAN/BBAN , IBAN/BBAN\n"+
			`2024-01-15,"10,00",Acme,NL11BANK0123456789,NL99OWNA0000000001`+"\n"))

	txs, _, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if txs[0].Counterparty != "Acme" {
		t.Errorf("counterparty = %q, want Acme", txs[0].Counterparty)
	}
}

func TestLoad_MultipleFilesConcatenated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", []byte(rabobankHeader+
		`2024-01-15,"100,00",Acme,NL11BANK0123456789,NL99OWNA0000000001`+"\n"))
	writeFile(t, dir, "b.csv", []byte(
		"Date,Amount (EUR),Name/Description,Counterparty,Debit/credit,Account\n"+
			`20240116,"40,50",Coffee Corner,NL22SHOP0000000002,Debit,NL99OWNA0000000001`+"\n"))

	txs, files, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if len(files) != 2 {
		t.Fatalf("got %d file results, want 2", len(files))
	}
	// Sorted path order: a.csv before b.csv.
	if files[0].Schema != bank.Rabobank || files[1].Schema != bank.ING {
		t.Errorf("schemas = [%s, %s], want [rabobank, ing]", files[0].Schema, files[1].Schema)
	}
	if !txs[1].Amount.Equal(decimal.RequireFromString("-40.50")) {
		t.Errorf("ING debit amount = %s, want -40.50", txs[1].Amount)
	}
}

func TestLoad_UnrecognizedFormatIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.csv", []byte(rabobankHeader+
		`2024-01-15,"10,00",Acme,NL11BANK0123456789,NL99OWNA0000000001`+"\n"))
	writeFile(t, dir, "mystery.csv", []byte("Transaction ID,Value,Payee\n1,10,Acme\n"))

	_, _, err := Load(context.Background(), dir)
	if !errors.Is(err, bank.ErrUnrecognizedFormat) {
		t.Fatalf("error = %v, want ErrUnrecognizedFormat", err)
	}
}

func TestLoad_BadRowsDroppedNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "export.csv", []byte(rabobankHeader+
		`not-a-date,"10,00",Acme,NL11BANK0123456789,NL99OWNA0000000001`+"\n"+
		`2024-01-15,"10,00",Acme,NL11BANK0123456789,NL99OWNA0000000001`+"\n"))

	txs, files, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1 (bad row dropped)", len(txs))
	}
	if files[0].Dropped != 1 {
		t.Errorf("dropped = %d, want 1", files[0].Dropped)
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	txs, files, err := Load(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(txs) != 0 || len(files) != 0 {
		t.Errorf("expected empty result, got %d transactions, %d files", len(txs), len(files))
	}
}
