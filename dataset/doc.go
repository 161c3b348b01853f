// Package dataset loads real-world reference and observed tables for column
// matching and writes the resulting header alignment.
//
// Inputs are CSV or XLSX tables of non-negative integers, one sample per row
// and one matchable unit per column, with an optional header row naming the
// columns. Loaders return a Table whose Data feeds colmatch.MatchColumns
// directly; Align turns the recovered permutation back into header pairs.
//
// Errors (sentinel):
//
//	– ErrEmpty         no data rows (or no columns) after the header.
//	– ErrRagged        a CSV row whose width differs from the first row.
//	– ErrInvalidCell   a non-integer or negative cell; row/column context attached.
//	– ErrUnknownColumn Options.Columns names a column the header lacks.
//	– ErrSheetNotFound Options.Sheet does not exist in the workbook.
//	– ErrFormat        Load cannot infer the format from the file extension.
//	– ErrMismatch      Align inputs disagree in width.
package dataset
