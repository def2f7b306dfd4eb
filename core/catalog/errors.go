package catalog

import (
	"fmt"
	"strings"
)

// ColumnsError reports required header columns missing from the file.
type ColumnsError struct {
	Missing []string
}

func (e *ColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// RowError reports a malformed value. Row is the 1-based line number in the
// file, header included.
type RowError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
