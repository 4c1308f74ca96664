// Package match suggests known company names close to a free-text query.
//
// Key functions:
//   - Ratio: similarity of two strings on a 0-100 scale
//   - Suggest: filters, ranks and truncates candidates for a query
//   - New: selects the fuzzy or no-op Matcher once at startup
package match
