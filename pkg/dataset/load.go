package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/stackbar/pkg/errors"
)

// Input formats understood by Load and Read.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatXLSX = "xlsx"
)

var extFormats = map[string]string{
	".json": FormatJSON,
	".csv":  FormatCSV,
	".tsv":  FormatTSV,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
	".xlsx": FormatXLSX,
}

// LoadOptions tweaks how records are decoded.
type LoadOptions struct {
	// Format overrides detection from the file extension.
	Format string
	// Sheet selects the XLSX worksheet; the first sheet is used when empty.
	Sheet string
}

// DetectFormat returns the input format for path based on its extension.
func DetectFormat(path string) (string, error) {
	if f, ok := extFormats[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", apperrors.New(apperrors.ErrCodeUnsupported, "unsupported input file %q (want .json, .csv, .tsv, .yaml, .toml or .xlsx)", filepath.Base(path))
}

// Load reads all records from the file at path.
func Load(path string, opts LoadOptions) ([]Record, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	format := opts.Format
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := Read(f, format, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read decodes records from r in the given format.
func Read(r io.Reader, format string, opts LoadOptions) ([]Record, error) {
	var (
		records []Record
		err     error
	)
	switch format {
	case FormatJSON:
		records, err = ReadJSON(r)
	case FormatCSV:
		records, err = ReadCSV(r, ',')
	case FormatTSV:
		records, err = ReadCSV(r, '\t')
	case FormatYAML:
		records, err = ReadYAML(r)
	case FormatTOML:
		records, err = ReadTOML(r)
	case FormatXLSX:
		records, err = ReadXLSX(r, opts.Sheet)
	default:
		return nil, apperrors.New(apperrors.ErrCodeUnsupported, "unsupported input format %q", format)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "decode %s", format)
	}
	return records, nil
}

// ReadJSON decodes a JSON array of objects, or an object holding such an
// array under "records".
func ReadJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}
	var doc struct {
		Records []Record `json:"records"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Records, nil
}

// ReadCSV decodes delimited text whose first row names the fields.
// Values stay strings; Record.Number parses them on demand.
func ReadCSV(r io.Reader, comma rune) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

// ReadYAML decodes a YAML sequence of mappings, or a mapping holding such a
// sequence under "records".
func ReadYAML(r io.Reader) ([]Record, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	var records []Record
	if err := node.Decode(&records); err == nil {
		return records, nil
	}
	var doc struct {
		Records []Record `yaml:"records"`
	}
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Records, nil
}

// ReadTOML decodes an array of tables named "records":
//
//	[[records]]
//	month = "Jan"
//	a = 2
func ReadTOML(r io.Reader) ([]Record, error) {
	var doc struct {
		Records []map[string]any `toml:"records"`
	}
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	records := make([]Record, len(doc.Records))
	for i, m := range doc.Records {
		records[i] = Record(m)
	}
	return records, nil
}

// ReadXLSX decodes a worksheet whose first row names the fields.
func ReadXLSX(r io.Reader, sheet string) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	return fromRows(rows), nil
}

// fromRows turns a header row plus data rows into records.
// Empty rows are skipped and short rows leave trailing fields unset.
func fromRows(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		records = append(records, rec)
	}
	return records
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
