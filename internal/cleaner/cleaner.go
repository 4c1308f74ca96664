// Package cleaner normalizes raw customer tables into canonical form and
// extracts email domains for aggregation.
package cleaner

import (
	"strconv"
	"strings"

	"github.com/KaramelBytes/custlens-cli/internal/table"
)

// Column names used by the customer schema.
const (
	ColFirstName        = "First Name"
	ColEmail            = "Email"
	ColCompany          = "Company"
	ColCountry          = "Country"
	ColCity             = "City"
	ColIndex            = "Index"
	ColSubscriptionDate = "Subscription Date"
)

// Options controls which columns are required and which are pruned.
type Options struct {
	// Required columns must exist and be non-empty for a row to survive.
	Required []string
	// Drop lists non-essential columns removed when present.
	Drop []string
}

// DefaultOptions returns the customer schema defaults.
func DefaultOptions() Options {
	return Options{
		Required: []string{ColFirstName, ColEmail},
		Drop:     []string{ColIndex, ColSubscriptionDate},
	}
}

// Result holds a cleaned table together with what was removed to get there.
type Result struct {
	Table *table.Table
	// Duplicates are input row positions removed as exact repeats.
	Duplicates []int
	// Incomplete are input row positions removed for missing required fields.
	Incomplete []int
	// DroppedColumns are the pruned columns that were present.
	DroppedColumns []string
}

// Clean deduplicates rows, drops rows lacking First Name or Email and prunes
// the Index and Subscription Date columns. The input is never modified.
func Clean(t *table.Table) (*table.Table, error) {
	res, err := CleanWithOptions(t, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}

// CleanWithOptions runs the cleaning pipeline with explicit options.
func CleanWithOptions(t *table.Table, opt Options) (*Result, error) {
	if err := checkSchema(t, opt.Required); err != nil {
		return nil, err
	}
	res := &Result{}

	seen := make(map[string]struct{}, t.Len())
	// kept maps positions in unique back to input positions
	kept := make([]int, 0, t.Len())
	unique := t.Filter(func(r table.Record) bool {
		k := rowKey(r.Values())
		if _, dup := seen[k]; dup {
			res.Duplicates = append(res.Duplicates, r.Position())
			return false
		}
		seen[k] = struct{}{}
		kept = append(kept, r.Position())
		return true
	})

	complete := unique.Filter(func(r table.Record) bool {
		for _, c := range opt.Required {
			if r.Missing(c) {
				res.Incomplete = append(res.Incomplete, kept[r.Position()])
				return false
			}
		}
		return true
	})

	res.Table, res.DroppedColumns = complete.DropColumns(opt.Drop...)
	return res, nil
}

func checkSchema(t *table.Table, required []string) error {
	var absent, empty []string
	for _, c := range required {
		if !t.HasColumn(c) {
			absent = append(absent, c)
			continue
		}
		if t.Len() == 0 {
			continue
		}
		allMissing := true
		for i := 0; i < t.Len(); i++ {
			if !t.Row(i).Missing(c) {
				allMissing = false
				break
			}
		}
		if allMissing {
			empty = append(empty, c)
		}
	}
	if len(absent) > 0 || len(empty) > 0 {
		return &SchemaError{Absent: absent, Empty: empty}
	}
	return nil
}

// rowKey encodes a row so that distinct rows never share a key.
func rowKey(values []string) string {
	var b strings.Builder
	for _, v := range values {
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}
