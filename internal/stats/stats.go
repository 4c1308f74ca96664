// Package stats aggregates a customer table into the figures shown by the
// overview and statistics views.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/table"
	"github.com/KaramelBytes/custlens-cli/internal/utils"
)

// NotAvailable is shown when a statistic has no data.
const NotAvailable = "N/A"

// OthersLabel names the bucket that sums countries beyond the top N.
const OthersLabel = "Others"

// Options controls how many categories each breakdown keeps.
type Options struct {
	// TopN limits the country and city rankings and the country share.
	TopN int
	// TopCompanies limits the company ranking.
	TopCompanies int
}

// DefaultOptions returns top 5 countries/cities and top 10 companies.
func DefaultOptions() Options {
	return Options{TopN: 5, TopCompanies: 10}
}

type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// EmailAvailability counts customers with and without an email per country.
type EmailAvailability struct {
	Country  string `json:"country"`
	HasEmail int    `json:"has_email"`
	Missing  int    `json:"missing_email"`
}

// Distribution is a five-number summary with linear interpolation.
type Distribution struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// Summary is the headline view of a customer table.
type Summary struct {
	TotalCustomers    int             `json:"total_customers"`
	Countries         int             `json:"countries"`
	MostCommonCountry string          `json:"most_common_country"`
	TopCities         []CategoryCount `json:"top_cities"`
	TopCompanies      []CategoryCount `json:"top_companies"`
}

// Report holds the breakdowns behind the statistics view.
type Report struct {
	Name              string              `json:"name,omitempty"`
	Rows              int                 `json:"rows"`
	TopCountries      []CategoryCount     `json:"top_countries"`
	TopCities         []CategoryCount     `json:"top_cities"`
	CountryShare      []CategoryCount     `json:"country_share"`
	EmailDomains      []CategoryCount     `json:"email_domains"`
	TopCompanies      []CategoryCount     `json:"top_companies"`
	EmailByCountry    []EmailAvailability `json:"email_by_country"`
	CompanyNameLength *Distribution       `json:"company_name_length,omitempty"`
	Warnings          []string            `json:"warnings,omitempty"`
}

// Overview computes the headline numbers: customers, distinct countries,
// the most common country, top 3 cities and top 5 companies.
func Overview(t *table.Table) Summary {
	countries := column(t, cleaner.ColCountry)
	s := Summary{
		TotalCustomers:    t.Len(),
		Countries:         len(ValueCounts(countries)),
		MostCommonCountry: Mode(countries),
		TopCities:         Top(ValueCounts(column(t, cleaner.ColCity)), 3),
		TopCompanies:      Top(ValueCounts(column(t, cleaner.ColCompany)), 5),
	}
	return s
}

// Build computes every breakdown of the statistics view.
func Build(t *table.Table, opt Options) *Report {
	if opt.TopN <= 0 {
		opt.TopN = 5
	}
	if opt.TopCompanies <= 0 {
		opt.TopCompanies = 10
	}
	countries := ValueCounts(column(t, cleaner.ColCountry))
	rep := &Report{
		Rows:         t.Len(),
		TopCountries: Top(countries, opt.TopN),
		TopCities:    Top(ValueCounts(column(t, cleaner.ColCity)), opt.TopN),
		CountryShare: WithOthers(countries, opt.TopN),
		TopCompanies: Top(ValueCounts(column(t, cleaner.ColCompany)), opt.TopCompanies),
	}

	domains, warns := cleaner.EmailDomains(t)
	// sentinel values are real groups here, so count them directly
	rep.EmailDomains = tally(domains, false)
	for _, w := range warns {
		rep.Warnings = append(rep.Warnings, w.String())
	}

	rep.EmailByCountry = emailByCountry(t)

	var lengths []float64
	for _, name := range column(t, cleaner.ColCompany) {
		if table.IsMissing(name) {
			continue
		}
		lengths = append(lengths, float64(utils.RuneLen(name)))
	}
	rep.CompanyNameLength = Describe(lengths)
	return rep
}

// ValueCounts counts non-missing values, most frequent first. Equal counts
// keep the order in which values first appear.
func ValueCounts(values []string) []CategoryCount {
	return tally(values, true)
}

func tally(values []string, skipMissing bool) []CategoryCount {
	pos := make(map[string]int)
	var out []CategoryCount
	for _, v := range values {
		if skipMissing && table.IsMissing(v) {
			continue
		}
		if i, ok := pos[v]; ok {
			out[i].Count++
			continue
		}
		pos[v] = len(out)
		out = append(out, CategoryCount{Value: v, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Mode returns the most frequent non-missing value. Ties resolve to the
// smallest value; NotAvailable is returned when there are no values.
func Mode(values []string) string {
	counts := ValueCounts(values)
	if len(counts) == 0 {
		return NotAvailable
	}
	best := counts[0]
	for _, c := range counts[1:] {
		if c.Count < best.Count {
			break
		}
		if c.Value < best.Value {
			best = c
		}
	}
	return best.Value
}

// Top returns at most n leading entries.
func Top(counts []CategoryCount, n int) []CategoryCount {
	if n < 0 {
		n = 0
	}
	if len(counts) > n {
		counts = counts[:n]
	}
	out := make([]CategoryCount, len(counts))
	copy(out, counts)
	return out
}

// WithOthers keeps the top n entries and folds the remainder into a single
// OthersLabel entry. Lists of n or fewer entries are returned unchanged.
func WithOthers(counts []CategoryCount, n int) []CategoryCount {
	if len(counts) <= n {
		return Top(counts, len(counts))
	}
	out := Top(counts, n)
	rest := 0
	for _, c := range counts[n:] {
		rest += c.Count
	}
	return append(out, CategoryCount{Value: OthersLabel, Count: rest})
}

func emailByCountry(t *table.Table) []EmailAvailability {
	byCountry := map[string]*EmailAvailability{}
	for i := 0; i < t.Len(); i++ {
		r := t.Row(i)
		if r.Missing(cleaner.ColCountry) {
			continue
		}
		country := r.Value(cleaner.ColCountry)
		ea := byCountry[country]
		if ea == nil {
			ea = &EmailAvailability{Country: country}
			byCountry[country] = ea
		}
		if r.Missing(cleaner.ColEmail) {
			ea.Missing++
		} else {
			ea.HasEmail++
		}
	}
	out := make([]EmailAvailability, 0, len(byCountry))
	for _, ea := range byCountry {
		out = append(out, *ea)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}

// Describe summarizes values; it returns nil for an empty input.
func Describe(vals []float64) *Distribution {
	if len(vals) == 0 {
		return nil
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	sum := 0.0
	for _, v := range cp {
		sum += v
	}
	return &Distribution{
		Count:  len(cp),
		Min:    cp[0],
		Q1:     quantile(cp, 0.25),
		Median: quantile(cp, 0.5),
		Q3:     quantile(cp, 0.75),
		Max:    cp[len(cp)-1],
		Mean:   sum / float64(len(cp)),
	}
}

func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func column(t *table.Table, name string) []string {
	vals, _ := t.Column(name)
	return vals
}

func (d *Distribution) String() string {
	if d == nil {
		return NotAvailable
	}
	return fmt.Sprintf("n=%d min %.4g, q1 %.4g, median %.4g, q3 %.4g, max %.4g, mean %.4g",
		d.Count, d.Min, d.Q1, d.Median, d.Q3, d.Max, d.Mean)
}
