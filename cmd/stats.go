package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/custlens-cli/internal/stats"
)

var (
	statsFormat string
	statsOutput string
	statsTopN   int
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Break customers down by country, city, email domain and company",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _, err := sourceArgs(args, 0)
		if err != nil {
			return err
		}
		t, err := cache.Load(path)
		if err != nil {
			return err
		}
		opt := cfg.StatsOptions()
		if statsTopN > 0 {
			opt.TopN = statsTopN
		}
		rep := stats.Build(t, opt)
		rep.Name = filepath.Base(path)
		body, err := render(statsFormat, rep, rep.Markdown)
		if err != nil {
			return err
		}
		return writeReport(cmd, body, statsOutput)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsFormat, "format", "markdown", "output format: markdown|json")
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "", "optional path to write the report")
	statsCmd.Flags().IntVar(&statsTopN, "top", 0, "number of countries and cities to rank (overrides top_n)")
}
