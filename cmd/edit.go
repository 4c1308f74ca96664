package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/custlens-cli/internal/session"
)

var (
	editScript string
	editOutput string
	editSQLite string
)

var editCmd = &cobra.Command{
	Use:   "edit [file] --script edits.yaml",
	Short: "Apply a YAML edit script to the cleaned table and export it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if editScript == "" {
			return fmt.Errorf("--script is required")
		}
		path, _, err := sourceArgs(args, 0)
		if err != nil {
			return err
		}
		edits, err := session.LoadScript(editScript)
		if err != nil {
			return err
		}
		t, err := cache.Load(path)
		if err != nil {
			return err
		}
		s := session.New(t)
		edited, err := s.ApplyAll(edits)
		if err != nil {
			return err
		}
		for _, e := range s.History() {
			logger.Debug("applied edit", zap.String("session", s.ID), zap.String("id", e.ID), zap.String("op", string(e.Op)), zap.Int("row", e.Row))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Applied %d edits: %d rows -> %d rows\n", len(edits), t.Len(), edited.Len())
		return exportTable(cmd, edited, editOutput, editSQLite)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editScript, "script", "", "YAML edit script (required)")
	editCmd.Flags().StringVarP(&editOutput, "output", "o", "", "output CSV (default cleaned_customers_<timestamp>.csv)")
	editCmd.Flags().StringVar(&editSQLite, "sqlite", "", "also write the edited table to this SQLite file")
}
