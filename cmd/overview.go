package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/custlens-cli/internal/stats"
	"github.com/KaramelBytes/custlens-cli/internal/utils"
)

var overviewFormat string

var overviewCmd = &cobra.Command{
	Use:   "overview [file]",
	Short: "Show headline numbers for the cleaned customer table",
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
		s := stats.Overview(t)
		body, err := render(overviewFormat, s, s.Markdown)
		if err != nil {
			return err
		}
		return writeReport(cmd, body, "")
	},
}

// render returns JSON or the Markdown produced by md.
func render(format string, v any, md func() string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "markdown", "md":
		return []byte(md()), nil
	case "json":
		return utils.PrettyJSON(v)
	default:
		return nil, fmt.Errorf("unsupported --format: %s (use markdown|json)", format)
	}
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringVar(&overviewFormat, "format", "markdown", "output format: markdown|json")
}
