package cleaner

import (
	"fmt"
	"strings"
)

// SchemaError indicates required fields are absent from the dataset as a
// whole, either as missing header columns or as columns with no values.
type SchemaError struct {
	Absent []string
	Empty  []string
}

func (e *SchemaError) Error() string {
	var parts []string
	if len(e.Absent) > 0 {
		parts = append(parts, fmt.Sprintf("missing required columns: %s", strings.Join(e.Absent, ", ")))
	}
	if len(e.Empty) > 0 {
		parts = append(parts, fmt.Sprintf("required columns empty in every row: %s", strings.Join(e.Empty, ", ")))
	}
	return "schema invalid: " + strings.Join(parts, "; ")
}

// MalformedFieldWarning records a value that was replaced by a sentinel.
// It is reported, never returned as an error.
type MalformedFieldWarning struct {
	Row      int
	Field    string
	Value    string
	Sentinel string
}

func (w MalformedFieldWarning) String() string {
	return fmt.Sprintf("row %d: %s %q unparseable, using %q", w.Row+1, w.Field, w.Value, w.Sentinel)
}
