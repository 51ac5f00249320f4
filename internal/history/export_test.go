package history

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
)

func sampleRecords() []Record {
	return []Record{
		{
			Round: 1211,
			Batch: 1,
			Block: lotto.Block{
				lotto.MustGame(41, 3, 22, 8, 15, 5),
				lotto.MustGame(1, 2, 3, 4, 5, 6),
			},
			Payload: "MSG_ESLIP{1211}{(2,M:03 05 08 15 22 41,M:01 02 03 04 05 06)}",
		},
		{
			Round:   1211,
			Batch:   2,
			Block:   lotto.Block{lotto.MustGame(7, 8, 9, 10, 11, 12)},
			Payload: "MSG_ESLIP{1211}{(1,M:07 08 09 10 11 12)}",
		},
	}
}

func TestGenerate(t *testing.T) {
	opts := ExportOptions{
		Headers:    Headers{Round: "회차", Batch: "묶음", Numbers: "번호", Payload: "QR URL"},
		IncludeBOM: true,
	}

	data, err := Generate(sampleRecords(), opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	bom := []byte{0xEF, 0xBB, 0xBF}
	if !bytes.HasPrefix(data, bom) {
		t.Fatalf("output does not start with a UTF-8 BOM: % x", data[:3])
	}

	rows, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, bom))).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	want := [][]string{
		{"회차", "묶음", "번호", "QR URL"},
		{"1211", "1", "[3, 5, 8, 15, 22, 41] / [1, 2, 3, 4, 5, 6]", "MSG_ESLIP{1211}{(2,M:03 05 08 15 22 41,M:01 02 03 04 05 06)}"},
		{"1211", "2", "[7, 8, 9, 10, 11, 12]", "MSG_ESLIP{1211}{(1,M:07 08 09 10 11 12)}"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if rows[i][j] != want[i][j] {
				t.Errorf("row %d col %d = %q, want %q", i, j, rows[i][j], want[i][j])
			}
		}
	}
}

func TestGenerate_NoBOM(t *testing.T) {
	opts := DefaultExportOptions()
	opts.IncludeBOM = false
	opts.Comma = ';'

	data, err := Generate(nil, opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got, want := string(data), "Round;Batch;Numbers;QR URL\n"; got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", "history.csv")
	if err := WriteFile(path, sampleRecords(), DefaultExportOptions()); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("history file missing: %v", err)
	}
}
