package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cleanOutput string
	cleanSQLite string
)

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Remove duplicate and incomplete records and export the result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _, err := sourceArgs(args, 0)
		if err != nil {
			return err
		}
		res, err := cache.LoadResult(path)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "✓ Cleaned %s: %d rows kept, %d duplicates removed, %d incomplete removed\n",
			path, res.Table.Len(), len(res.Duplicates), len(res.Incomplete))
		if len(res.DroppedColumns) > 0 {
			fmt.Fprintf(out, "  dropped columns: %s\n", strings.Join(res.DroppedColumns, ", "))
		}
		return exportTable(cmd, res.Table, cleanOutput, cleanSQLite)
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVarP(&cleanOutput, "output", "o", "", "output CSV (default cleaned_customers_<timestamp>.csv)")
	cleanCmd.Flags().StringVar(&cleanSQLite, "sqlite", "", "also write the cleaned table to this SQLite file")
}
