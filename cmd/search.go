package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/table"
)

var searchColumns []string

var searchCmd = &cobra.Command{
	Use:   "search [file] <term>",
	Short: "Print cleaned rows whose name or company contains a term",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, rest, err := sourceArgs(args, 1)
		if err != nil {
			return err
		}
		t, err := cache.Load(path)
		if err != nil {
			return err
		}
		for _, c := range searchColumns {
			if !t.HasColumn(c) {
				return fmt.Errorf("unknown column %q", c)
			}
		}
		hits := t.Search(rest[0], searchColumns...)
		if err := table.Write(cmd.OutOrStdout(), hits); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ %d of %d rows match %q\n", hits.Len(), t.Len(), rest[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringSliceVar(&searchColumns, "columns", []string{cleaner.ColFirstName, cleaner.ColCompany}, "columns to search")
}
