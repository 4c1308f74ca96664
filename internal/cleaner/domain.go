package cleaner

import (
	"strings"

	"github.com/KaramelBytes/custlens-cli/internal/table"
)

// UnknownDomain is the sentinel used in place of an unparseable email domain.
// Aggregations group unparseable addresses under this value.
const UnknownDomain = "Unknown"

// Domain is the outcome of parsing an email domain. Parsed is false when
// the address had no usable domain part.
type Domain struct {
	Name   string
	Parsed bool
}

// String renders the domain, or UnknownDomain when unparseable.
func (d Domain) String() string {
	if !d.Parsed {
		return UnknownDomain
	}
	return d.Name
}

// DomainOf returns the lower-cased text after the first '@'.
func DomainOf(email string) Domain {
	i := strings.IndexByte(email, '@')
	if i < 0 {
		return Domain{}
	}
	d := email[i+1:]
	if d == "" {
		return Domain{}
	}
	return Domain{Name: strings.ToLower(d), Parsed: true}
}

// EmailDomain is DomainOf rendered as text, with UnknownDomain for
// malformed addresses.
func EmailDomain(email string) string {
	return DomainOf(email).String()
}

// EmailDomains returns the domain of every row's Email field. Unparseable
// values are substituted with UnknownDomain and reported as warnings.
func EmailDomains(t *table.Table) ([]string, []MalformedFieldWarning) {
	out := make([]string, t.Len())
	var warns []MalformedFieldWarning
	for i := 0; i < t.Len(); i++ {
		email := t.Row(i).Value(ColEmail)
		d := DomainOf(email)
		out[i] = d.String()
		if !d.Parsed {
			warns = append(warns, MalformedFieldWarning{Row: i, Field: ColEmail, Value: email, Sentinel: UnknownDomain})
		}
	}
	return out, warns
}

// MissingEmails returns the positions of rows without an email address.
func MissingEmails(t *table.Table) []int {
	var out []int
	for i := 0; i < t.Len(); i++ {
		if t.Row(i).Missing(ColEmail) {
			out = append(out, i)
		}
	}
	return out
}
