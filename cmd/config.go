package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/custlens-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set custlens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		if cfg.DataFile != "" {
			fmt.Fprintf(out, "data_file: %s\n", cfg.DataFile)
		}
		fmt.Fprintf(out, "fuzzy_enabled: %t\n", cfg.FuzzyEnabled)
		fmt.Fprintf(out, "match_threshold: %d\n", cfg.MatchThreshold)
		fmt.Fprintf(out, "match_limit: %d\n", cfg.MatchLimit)
		fmt.Fprintf(out, "required_columns: %s\n", strings.Join(cfg.RequiredColumns, ", "))
		fmt.Fprintf(out, "drop_columns: %s\n", strings.Join(cfg.DropColumns, ", "))
		if cfg.ExportDir != "" {
			fmt.Fprintf(out, "export_dir: %s\n", cfg.ExportDir)
		}
		fmt.Fprintf(out, "top_n: %d\n", cfg.TopN)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_file":
			cfg.DataFile = val
		case "fuzzy_enabled":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for fuzzy_enabled: %v", val)
			}
			cfg.FuzzyEnabled = b
		case "match_threshold":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 || i > 100 {
				return fmt.Errorf("invalid score for match_threshold: %v (use 0-100)", val)
			}
			cfg.MatchThreshold = i
		case "match_limit":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for match_limit: %v", val)
			}
			cfg.MatchLimit = i
		case "required_columns":
			cfg.RequiredColumns = splitList(val)
		case "drop_columns":
			cfg.DropColumns = splitList(val)
		case "export_dir":
			cfg.ExportDir = val
		case "top_n":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return fmt.Errorf("invalid int for top_n: %v", val)
			}
			cfg.TopN = i
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

// splitList parses "First Name, Email" into trimmed, non-empty names.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
