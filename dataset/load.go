package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/birkhoff/matrix"
)

// Load dispatches on the file extension: .csv/.tsv go to LoadCSVFile
// (.tsv implies a tab delimiter), .xlsx/.xlsm go to LoadXLSX.
func Load(path string, opts Options) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSVFile(path, opts)
	case ".tsv":
		opts.Comma = '\t'
		return LoadCSVFile(path, opts)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, opts)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrFormat)
	}
}

// LoadCSVFile opens path and calls LoadCSV.
func LoadCSVFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	t, err := LoadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// LoadCSV reads a delimited table from r. Every row must have the width of the
// first row (ErrRagged otherwise).
func LoadCSV(r io.Reader, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) && errors.Is(perr.Err, csv.ErrFieldCount) {
			return nil, fmt.Errorf("line %d: %w", perr.Line, ErrRagged)
		}
		return nil, fmt.Errorf("dataset: read csv: %w", err)
	}

	return buildTable(records, opts, false)
}

// LoadXLSX reads one sheet of an Excel workbook. Trailing empty cells that
// excelize omits are treated as empty and therefore invalid.
func LoadXLSX(path string, opts Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrSheetNotFound)
		}
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, fmt.Errorf("%s: sheet %q: %w", path, sheet, ErrSheetNotFound)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s/%s: %w", path, sheet, err)
	}
	t, err := buildTable(rows, opts, true)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", path, sheet, err)
	}

	return t, nil
}

// buildTable turns string records into a Table. pad widens short rows to the
// header width (XLSX drops trailing blanks); without pad they are ragged.
func buildTable(records [][]string, opts Options, pad bool) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	width := len(records[0])
	var names []string
	body := records
	if opts.HasHeader {
		names = make([]string, width)
		for j, h := range records[0] {
			names[j] = strings.TrimSpace(h)
		}
		body = records[1:]
	} else {
		names = make([]string, width)
		for j := range names {
			names[j] = "c" + strconv.Itoa(j)
		}
	}
	if len(body) == 0 || width == 0 {
		return nil, ErrEmpty
	}

	keep, err := selectColumns(names, opts.Columns)
	if err != nil {
		return nil, err
	}
	data, err := matrix.NewDense(len(body), len(keep))
	if err != nil {
		return nil, err
	}
	for i, rec := range body {
		line := i + 1
		if opts.HasHeader {
			line++
		}
		if len(rec) != width && !(pad && len(rec) < width) {
			return nil, fmt.Errorf("line %d has %d fields, want %d: %w", line, len(rec), width, ErrRagged)
		}
		for c, j := range keep {
			var cell string
			if j < len(rec) {
				cell = rec[j]
			}
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, names[j], err)
			}
			_ = data.Set(i, c, v)
		}
	}

	out := make([]string, len(keep))
	for c, j := range keep {
		out[c] = names[j]
	}

	return &Table{Columns: out, Data: data}, nil
}

// selectColumns maps wanted names to indices in names; empty wanted keeps all.
func selectColumns(names, wanted []string) ([]int, error) {
	if len(wanted) == 0 {
		keep := make([]int, len(names))
		for j := range keep {
			keep[j] = j
		}
		return keep, nil
	}
	index := make(map[string]int, len(names))
	for j, n := range names {
		if _, dup := index[n]; !dup {
			index[n] = j
		}
	}
	keep := make([]int, 0, len(wanted))
	for _, w := range wanted {
		j, ok := index[w]
		if !ok {
			return nil, fmt.Errorf("%q: %w", w, ErrUnknownColumn)
		}
		keep = append(keep, j)
	}

	return keep, nil
}

// parseCell accepts a non-negative integer, also written as an integral float
// ("12.0", "1e3") the way spreadsheets export numbers.
func parseCell(s string) (int64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != math.Trunc(f) || math.Abs(f) >= 1<<63 {
			return 0, fmt.Errorf("%q: %w", s, ErrInvalidCell)
		}
		v = int64(f)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q is negative: %w", s, ErrInvalidCell)
	}

	return v, nil
}
