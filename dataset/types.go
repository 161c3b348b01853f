package dataset

import (
	"errors"

	"github.com/katalvlaran/birkhoff/matrix"
)

// Sentinel errors.
var (
	ErrEmpty         = errors.New("dataset: table is empty")
	ErrRagged        = errors.New("dataset: ragged row")
	ErrInvalidCell   = errors.New("dataset: invalid cell")
	ErrUnknownColumn = errors.New("dataset: unknown column")
	ErrSheetNotFound = errors.New("dataset: sheet not found")
	ErrFormat        = errors.New("dataset: unsupported file format")
	ErrMismatch      = errors.New("dataset: table widths differ")
)

// Options configures the loaders.
//
// HasHeader – first row holds column names (default true). Without a header
// columns are named c0, c1, ...
// Sheet     – XLSX sheet name; empty selects the first sheet.
// Columns   – keep only these columns, in this order; empty keeps all.
// Comma     – CSV field delimiter (default ',').
type Options struct {
	HasHeader bool
	Sheet     string
	Columns   []string
	Comma     rune
}

// DefaultOptions returns {HasHeader: true, Comma: ','}.
func DefaultOptions() Options {
	return Options{HasHeader: true, Comma: ','}
}

// Table is a named integer matrix: Columns[j] names Data column j.
type Table struct {
	Columns []string
	Data    *matrix.Dense
}

// ColumnPair is one matched column: reference column RefIndex (named
// Reference) corresponds to observed column ObsIndex (named Observed).
type ColumnPair struct {
	RefIndex  int
	Reference string
	ObsIndex  int
	Observed  string
}
