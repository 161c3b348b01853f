package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/katalvlaran/birkhoff/matrix"
)

// alignmentHeader is the header row of every alignment export.
var alignmentHeader = []string{"ref_index", "reference", "obs_index", "observed"}

// Align names the matched columns: perm[j] = k pairs ref.Columns[j] with
// obs.Columns[k].
func Align(ref, obs *Table, perm matrix.Permutation) ([]ColumnPair, error) {
	if ref == nil || obs == nil {
		return nil, ErrEmpty
	}
	if len(ref.Columns) != len(obs.Columns) || len(perm) != len(ref.Columns) {
		return nil, fmt.Errorf("ref %d, obs %d, perm %d: %w",
			len(ref.Columns), len(obs.Columns), len(perm), ErrMismatch)
	}
	if err := perm.Validate(); err != nil {
		return nil, err
	}
	pairs := make([]ColumnPair, len(perm))
	for j, k := range perm {
		pairs[j] = ColumnPair{
			RefIndex:  j,
			Reference: ref.Columns[j],
			ObsIndex:  k,
			Observed:  obs.Columns[k],
		}
	}

	return pairs, nil
}

// WriteAlignmentCSV writes pairs as CSV with a header row.
func WriteAlignmentCSV(w io.Writer, pairs []ColumnPair) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(alignmentHeader); err != nil {
		return err
	}
	for _, p := range pairs {
		rec := []string{strconv.Itoa(p.RefIndex), p.Reference, strconv.Itoa(p.ObsIndex), p.Observed}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteAlignmentXLSX saves pairs to a new workbook at path, one sheet named
// "alignment".
func WriteAlignmentXLSX(path string, pairs []ColumnPair) error {
	const sheet = "alignment"
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}
	for i, h := range alignmentHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, p := range pairs {
		row := []interface{}{p.RefIndex, p.Reference, p.ObsIndex, p.Observed}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("dataset: save %s: %w", path, err)
	}

	return nil
}
