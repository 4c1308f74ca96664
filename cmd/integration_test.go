package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/stats"
	"github.com/KaramelBytes/custlens-cli/internal/store"
	"github.com/KaramelBytes/custlens-cli/internal/table"
)

const customersCSV = `Index,First Name,Email,Company,Country,City,Subscription Date
1,Ana,ana@acme.com,Acme,Chile,Santiago,2021-01-02
2,Bo,bo@globex.com,Globex,Peru,Lima,2021-03-04
1,Ana,ana@acme.com,Acme,Chile,Santiago,2021-01-02
3,Cy,,Initech,Chile,Valparaiso,2022-05-06
4,Di,di@umbrella.org,Umbrella,Spain,Madrid,2023-07-08
`

// resetFlags clears values and Changed state left over from earlier runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if _, ok := f.Value.(pflag.SliceValue); ok {
			return
		}
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// runCmd is a helper to execute the root command with args.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := execute(t, args...)
	if err != nil {
		t.Fatalf("command %v failed: %v\nstderr: %s", args, err, errOut)
	}
	return out
}

// setup isolates HOME and writes the sample customers file.
func setup(t *testing.T) (string, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	src := filepath.Join(home, "customers.csv")
	if err := os.WriteFile(src, []byte(customersCSV), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return home, src
}

func TestCLI_CleanExportsCSVAndSQLite(t *testing.T) {
	home, src := setup(t)
	outCSV := filepath.Join(home, "exports", "clean.csv")
	db := filepath.Join(home, "clean.db")

	out := runCmd(t, "clean", src, "-o", outCSV, "--sqlite", db)
	if !strings.Contains(out, "3 rows kept, 1 duplicates removed, 1 incomplete removed") {
		t.Fatalf("unexpected clean summary: %s", out)
	}

	got, err := table.ReadFile(outCSV, table.ReadOptions{})
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got.Len() != 3 || got.HasColumn("Index") || got.HasColumn("Subscription Date") {
		t.Fatalf("unexpected export: %v %v", got.Header(), got.Rows())
	}

	fromDB, err := store.ImportSQLite(context.Background(), db, store.DefaultTable)
	if err != nil {
		t.Fatalf("import sqlite: %v", err)
	}
	if !fromDB.Equal(got) {
		t.Fatalf("sqlite export differs from csv export")
	}
}

func TestCLI_CleanDefaultExportName(t *testing.T) {
	home, src := setup(t)
	exportDir := filepath.Join(home, "out")
	runCmd(t, "config", "set", "export_dir", exportDir)
	runCmd(t, "clean", src)

	matches, err := filepath.Glob(filepath.Join(exportDir, "cleaned_customers_*.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one timestamped export, got %v", matches)
	}
}

func TestCLI_OverviewJSON(t *testing.T) {
	_, src := setup(t)
	out := runCmd(t, "overview", src, "--format", "json")
	var s stats.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("decode overview: %v\n%s", err, out)
	}
	if s.TotalCustomers != 3 || s.Countries != 3 || s.MostCommonCountry != "Chile" {
		t.Fatalf("unexpected overview: %+v", s)
	}
}

func TestCLI_StatsMarkdownToFile(t *testing.T) {
	home, src := setup(t)
	report := filepath.Join(home, "stats.md")
	runCmd(t, "stats", src, "-o", report)
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatal(err)
	}
	md := string(b)
	for _, want := range []string{"[CUSTOMER STATISTICS]", "File: customers.csv", "umbrella.org"} {
		if !strings.Contains(md, want) {
			t.Fatalf("report missing %q:\n%s", want, md)
		}
	}

	if _, _, err := execute(t, "stats", src, "--format", "xml"); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestCLI_SearchUsesDataFile(t *testing.T) {
	_, src := setup(t)
	runCmd(t, "config", "set", "data_file", src)

	out := runCmd(t, "search", "GLOB")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "Bo,") {
		t.Fatalf("unexpected search output: %q", out)
	}
}

func TestCLI_Suggest(t *testing.T) {
	_, src := setup(t)
	out := runCmd(t, "suggest", src, "acme")
	if !strings.Contains(out, "- Acme (100)") || strings.Contains(out, "Globex") {
		t.Fatalf("unexpected suggestions: %s", out)
	}

	out = runCmd(t, "suggest", src, "zzz", "--threshold", "95")
	if !strings.Contains(out, "(no suggestions)") {
		t.Fatalf("expected no suggestions, got %s", out)
	}

	runCmd(t, "config", "set", "fuzzy_enabled", "false")
	out, errOut, err := execute(t, "suggest", src, "acme")
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if out != "" || !strings.Contains(errOut, "suggestions are disabled") {
		t.Fatalf("expected disabled notice, got out=%q err=%q", out, errOut)
	}
}

func TestCLI_EditScript(t *testing.T) {
	home, src := setup(t)
	script := filepath.Join(home, "edits.yaml")
	body := `edits:
  - op: set
    row: 1
    column: Email
    value: bo@globex.io
  - op: append
    values:
      First Name: Eve
      Email: ""
      Company: Hooli
`
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	outCSV := filepath.Join(home, "edited.csv")
	_, errOut, err := execute(t, "edit", src, "--script", script, "-o", outCSV)
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(errOut, "1 record(s) have no email address") {
		t.Fatalf("expected missing email warning, got %q", errOut)
	}
	got, err := table.ReadFile(outCSV, table.ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 4 || got.Row(1).Value("Email") != "bo@globex.io" || got.Row(3).Value("Company") != "Hooli" {
		t.Fatalf("unexpected edited table: %v", got.Rows())
	}

	bad := filepath.Join(home, "bad.yaml")
	if err := os.WriteFile(bad, []byte("edits:\n  - op: set\n    row: 0\n    column: Email\n    value: nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err = execute(t, "edit", src, "--script", bad, "-o", filepath.Join(home, "never.csv"))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if _, statErr := os.Stat(filepath.Join(home, "never.csv")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("rejected edit must not write output")
	}
}

func TestCLI_TypedErrors(t *testing.T) {
	home, _ := setup(t)
	_, _, err := execute(t, "overview", filepath.Join(home, "missing.csv"))
	var mse *table.MissingSourceError
	if !errors.As(err, &mse) {
		t.Fatalf("expected MissingSourceError, got %v", err)
	}
	if !strings.Contains(describeError(err), "source not found") {
		t.Fatalf("unexpected message: %s", describeError(err))
	}

	noEmail := filepath.Join(home, "no_email.csv")
	if err := os.WriteFile(noEmail, []byte("First Name,Company\nAna,Acme\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err = execute(t, "overview", noEmail)
	var se *cleaner.SchemaError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if !strings.Contains(describeError(err), "schema invalid") {
		t.Fatalf("unexpected message: %s", describeError(err))
	}

	if _, _, err := execute(t, "overview"); err == nil || !strings.Contains(err.Error(), "no input file") {
		t.Fatalf("expected missing input error, got %v", err)
	}
}

func TestCLI_ConfigShow(t *testing.T) {
	setup(t)
	runCmd(t, "config", "set", "required_columns", "First Name, Email, Company")
	out := runCmd(t, "config", "show")
	if !strings.Contains(out, "required_columns: First Name, Email, Company") {
		t.Fatalf("unexpected config: %s", out)
	}
	if _, _, err := execute(t, "config", "set", "match_threshold", "120"); err == nil {
		t.Fatalf("expected invalid threshold error")
	}
}
