package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/matzehuels/stackbar/pkg/errors"
)

// checkScenario verifies the two-month fixture every format encodes.
func checkScenario(t *testing.T, records []Record) {
	t.Helper()
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	ds := New(records, Key{Dimension: "month", Metrics: Metrics{"a", "b"}})
	jan, ok := ds.Find("Jan")
	if !ok || jan.Values[0] != 2 || jan.Values[1] != 3 {
		t.Errorf("Jan = %+v, want values [2 3]", jan)
	}
	feb, ok := ds.Find("Feb")
	if !ok || feb.Values[0] != 1 || feb.Values[1] != 4 {
		t.Errorf("Feb = %+v, want values [1 4]", feb)
	}
}

func TestReadFormats(t *testing.T) {
	tests := []struct {
		format string
		input  string
	}{
		{FormatJSON, `[{"month":"Jan","a":2,"b":3},{"month":"Feb","a":1,"b":4}]`},
		{FormatJSON, `{"records":[{"month":"Jan","a":2,"b":3},{"month":"Feb","a":1,"b":4}]}`},
		{FormatCSV, "month,a,b\nJan,2,3\nFeb,1,4\n"},
		{FormatCSV, "month, a, b\nJan, 2, 3\n\nFeb, 1, 4\n"},
		{FormatTSV, "month\ta\tb\nJan\t2\t3\nFeb\t1\t4\n"},
		{FormatYAML, "- {month: Jan, a: 2, b: 3}\n- {month: Feb, a: 1, b: 4}\n"},
		{FormatYAML, "records:\n  - {month: Jan, a: 2, b: 3}\n  - {month: Feb, a: 1.0, b: 4}\n"},
		{FormatTOML, "[[records]]\nmonth = \"Jan\"\na = 2\nb = 3\n\n[[records]]\nmonth = \"Feb\"\na = 1.0\nb = 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			records, err := Read(strings.NewReader(tt.input), tt.format, LoadOptions{})
			if err != nil {
				t.Fatalf("Read(%s): %v", tt.format, err)
			}
			checkScenario(t, records)
		})
	}
}

func TestReadInvalid(t *testing.T) {
	_, err := Read(strings.NewReader(`{"month":`), FormatJSON, LoadOptions{})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidDataset) {
		t.Errorf("malformed JSON error = %v, want %s", err, apperrors.ErrCodeInvalidDataset)
	}

	_, err = Read(strings.NewReader(""), "parquet", LoadOptions{})
	if !apperrors.Is(err, apperrors.ErrCodeUnsupported) {
		t.Errorf("unknown format error = %v, want %s", err, apperrors.ErrCodeUnsupported)
	}
}

func xlsxFixture(t *testing.T, sheet string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
	}
	rows := [][]any{
		{"month", "a", "b"},
		{"Jan", 2, 3},
		{"Feb", 1, 4},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestReadXLSX(t *testing.T) {
	records, err := ReadXLSX(bytes.NewReader(xlsxFixture(t, "Sheet1")), "")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	checkScenario(t, records)
}

func TestReadXLSXNamedSheet(t *testing.T) {
	records, err := ReadXLSX(bytes.NewReader(xlsxFixture(t, "Sales")), "Sales")
	if err != nil {
		t.Fatalf("ReadXLSX: %v", err)
	}
	checkScenario(t, records)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(path, []byte("month,a,b\nJan,2,3\nFeb,1,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	checkScenario(t, records)

	// Format override wins over the extension.
	jsonPath := filepath.Join(dir, "sales.txt")
	if err := os.WriteFile(jsonPath, []byte(`[{"month":"Jan","a":2,"b":3},{"month":"Feb","a":1,"b":4}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err = Load(jsonPath, LoadOptions{Format: FormatJSON})
	if err != nil {
		t.Fatalf("Load with override: %v", err)
	}
	checkScenario(t, records)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.csv"), LoadOptions{})
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want %s", err, apperrors.ErrCodeFileNotFound)
	}

	_, err = Load(filepath.Join(dir, "data.parquet"), LoadOptions{})
	if !apperrors.Is(err, apperrors.ErrCodeUnsupported) {
		t.Errorf("unknown extension error = %v, want %s", err, apperrors.ErrCodeUnsupported)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]string{
		"a.json": FormatJSON,
		"a.CSV":  FormatCSV,
		"a.tsv":  FormatTSV,
		"a.yml":  FormatYAML,
		"a.yaml": FormatYAML,
		"a.toml": FormatTOML,
		"a.xlsx": FormatXLSX,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		if err != nil || got != want {
			t.Errorf("DetectFormat(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
}
