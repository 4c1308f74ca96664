package stats

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/custlens-cli/internal/utils"
)

// Markdown renders the overview as a compact text block.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[CUSTOMER OVERVIEW]\n")
	b.WriteString(fmt.Sprintf("Total Customers: %d\n", s.TotalCustomers))
	b.WriteString(fmt.Sprintf("Number of Countries: %d\n", s.Countries))
	b.WriteString(fmt.Sprintf("Most Common Country: %s\n", safeVal(s.MostCommonCountry)))
	writeCounts(&b, "TOP 3 CITIES", s.TopCities)
	writeCounts(&b, "TOP 5 COMPANIES", s.TopCompanies)
	return b.String()
}

// Markdown renders the statistics report suitable for terminals or docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[CUSTOMER STATISTICS]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))

	writeCounts(&b, fmt.Sprintf("TOP %d COUNTRIES BY CUSTOMER COUNT", len(r.TopCountries)), r.TopCountries)
	writeCounts(&b, fmt.Sprintf("TOP %d CITIES BY CUSTOMER COUNT", len(r.TopCities)), r.TopCities)
	writeShares(&b, "CUSTOMER DISTRIBUTION BY COUNTRY", r.CountryShare)
	writeShares(&b, "CUSTOMER DISTRIBUTION BY EMAIL DOMAIN", r.EmailDomains)
	writeCounts(&b, fmt.Sprintf("TOP %d COMPANIES BY CUSTOMER COUNT", len(r.TopCompanies)), r.TopCompanies)

	if len(r.EmailByCountry) > 0 {
		b.WriteString("\n[CUSTOMERS BY COUNTRY AND EMAIL AVAILABILITY]\n")
		b.WriteString("| Country | Has Email | Missing Email |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, e := range r.EmailByCountry {
			b.WriteString(fmt.Sprintf("| %s | %d | %d |\n", safeVal(e.Country), e.HasEmail, e.Missing))
		}
	}

	b.WriteString("\n[COMPANY NAME LENGTH]\n")
	b.WriteString(r.CompanyNameLength.String())
	b.WriteString("\n")

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func writeCounts(b *strings.Builder, title string, counts []CategoryCount) {
	b.WriteString("\n[")
	b.WriteString(title)
	b.WriteString("]\n")
	if len(counts) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, c := range counts {
		b.WriteString(fmt.Sprintf("- %s: %d\n", safeVal(c.Value), c.Count))
	}
}

func writeShares(b *strings.Builder, title string, counts []CategoryCount) {
	b.WriteString("\n[")
	b.WriteString(title)
	b.WriteString("]\n")
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	if total == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, c := range counts {
		pct := float64(c.Count) * 100.0 / float64(total)
		b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", safeVal(c.Value), c.Count, pct))
	}
}

func safeVal(s string) string {
	s = strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
	return utils.Truncate(s, 80)
}
