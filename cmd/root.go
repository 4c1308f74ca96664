package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	cfgpkg "github.com/KaramelBytes/custlens-cli/internal/config"
	"github.com/KaramelBytes/custlens-cli/internal/dataset"
	"github.com/KaramelBytes/custlens-cli/internal/logging"
	"github.com/KaramelBytes/custlens-cli/internal/match"
	"github.com/KaramelBytes/custlens-cli/internal/session"
	"github.com/KaramelBytes/custlens-cli/internal/table"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration and the services built from it once per run
	cfg     *cfgpkg.Global
	logger  = zap.NewNop()
	cache   *dataset.Cache
	matcher match.Matcher = match.Noop{}
)

var rootCmd = &cobra.Command{
	Use:   "custlens",
	Short: "custlens: clean customer CSVs, explore them and match company names",
	Long: `custlens loads a customer CSV, removes duplicate and incomplete records,
and reports overview statistics. It can search and edit the cleaned table,
suggest close company-name matches and export the result as CSV or SQLite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", describeError(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.custlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	l, err := logging.New(debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v\n", err)
		l = zap.NewNop()
	}
	logger = l

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = cfgpkg.Defaults()
	}
	cfg = c

	opt := dataset.DefaultOptions()
	opt.Clean = cfg.CleanOptions()
	cache = dataset.NewCache(opt, logger)
	matcher = match.New(cfg.FuzzyEnabled, cfg.MatchOptions())
	logger.Debug("configuration loaded",
		zap.Bool("fuzzy_enabled", cfg.FuzzyEnabled),
		zap.Int("match_threshold", cfg.MatchThreshold),
		zap.Int("match_limit", cfg.MatchLimit),
		zap.Strings("required_columns", cfg.RequiredColumns))
}

// describeError adds a hint to the typed errors users can act on.
func describeError(err error) string {
	var mse *table.MissingSourceError
	var se *cleaner.SchemaError
	var ve *session.ValidationError
	switch {
	case errors.As(err, &mse):
		return fmt.Sprintf("%v (check the path or set data_file with 'custlens config set')", err)
	case errors.As(err, &se):
		return fmt.Sprintf("%v (required columns: see required_columns in config)", err)
	case errors.As(err, &ve):
		return fmt.Sprintf("%v (edit rejected, nothing was written)", err)
	}
	return err.Error()
}

// sourceArgs splits args into the input path and the remaining positional
// arguments. The path may be omitted when data_file is configured.
func sourceArgs(args []string, rest int) (string, []string, error) {
	if len(args) == rest+1 {
		return args[0], args[1:], nil
	}
	if len(args) == rest && cfg != nil && cfg.DataFile != "" {
		return cfg.DataFile, args, nil
	}
	return "", nil, errors.New("no input file: pass <file> or set data_file in config")
}
