package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/match"
	"github.com/KaramelBytes/custlens-cli/internal/utils"
)

var (
	suggestThreshold int
	suggestLimit     int
	suggestJSON      bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [file] <company>",
	Short: "Suggest known company names similar to the given one",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, rest, err := sourceArgs(args, 1)
		if err != nil {
			return err
		}
		m := matcher
		if m.Enabled() && (cmd.Flags().Changed("threshold") || cmd.Flags().Changed("limit")) {
			opt := cfg.MatchOptions()
			if cmd.Flags().Changed("threshold") {
				opt.Threshold = suggestThreshold
			}
			if cmd.Flags().Changed("limit") {
				opt.Limit = suggestLimit
			}
			m = match.NewFuzzy(opt)
		}
		if !m.Enabled() {
			fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: company suggestions are disabled (set fuzzy_enabled to true)")
			return nil
		}

		t, err := cache.Load(path)
		if err != nil {
			return err
		}
		candidates := t.Distinct(cleaner.ColCompany)
		got := m.Suggest(rest[0], candidates)
		logger.Debug("suggest", zap.String("query", rest[0]), zap.Int("candidates", len(candidates)), zap.Int("matches", len(got)))

		out := cmd.OutOrStdout()
		if suggestJSON {
			if got == nil {
				got = []match.Candidate{}
			}
			b, err := utils.PrettyJSON(got)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			return nil
		}
		if len(got) == 0 {
			fmt.Fprintln(out, "(no suggestions)")
			return nil
		}
		for _, c := range got {
			fmt.Fprintf(out, "- %s (%d)\n", c.Name, c.Score)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().IntVar(&suggestThreshold, "threshold", 80, "minimum similarity score 0-100 (overrides match_threshold)")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 3, "maximum number of suggestions (overrides match_limit)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print suggestions as JSON")
}
