package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/store"
	"github.com/KaramelBytes/custlens-cli/internal/table"
	"github.com/KaramelBytes/custlens-cli/internal/utils"
)

// exportTable writes t as CSV to out (or a timestamped name in export_dir)
// and optionally to a SQLite database.
func exportTable(cmd *cobra.Command, t *table.Table, out, sqlitePath string) error {
	if missing := cleaner.MissingEmails(t); len(missing) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Warning: %d record(s) have no email address\n", len(missing))
	}
	if out == "" {
		dir := ""
		if cfg != nil {
			dir = cfg.ExportDir
		}
		out = utils.ExportName(dir, time.Now())
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("ensure export dir: %w", err)
		}
	}
	if err := table.WriteFile(out, t); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	logger.Debug("exported csv", zap.String("path", out), zap.Int("rows", t.Len()))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %d rows to %s\n", t.Len(), out)

	if sqlitePath != "" {
		if err := store.ExportSQLite(cmd.Context(), sqlitePath, store.DefaultTable, t); err != nil {
			return fmt.Errorf("export sqlite: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote table %q to %s\n", store.DefaultTable, sqlitePath)
	}
	return nil
}

func writeReport(cmd *cobra.Command, body []byte, out string) error {
	if out == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
		return nil
	}
	if err := utils.SafeWriteFile(out, body); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", out)
	return nil
}
