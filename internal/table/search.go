package table

import (
	"strings"

	"github.com/KaramelBytes/custlens-cli/internal/utils"
)

// Search keeps rows where any of the given columns contains term,
// ignoring case. Missing values never match. An empty term keeps every row.
func (t *Table) Search(term string, columns ...string) *Table {
	if term == "" {
		return t.Filter(func(Record) bool { return true })
	}
	needle := utils.Fold(term)
	return t.Filter(func(r Record) bool {
		for _, c := range columns {
			if r.Missing(c) {
				continue
			}
			if strings.Contains(utils.Fold(r.Value(c)), needle) {
				return true
			}
		}
		return false
	})
}
