package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/custlens-cli/internal/cleaner"
	"github.com/KaramelBytes/custlens-cli/internal/match"
	"github.com/KaramelBytes/custlens-cli/internal/stats"
)

// EnvPrefix is prepended to every environment override, e.g. CUSTLENS_TOP_N.
const EnvPrefix = "CUSTLENS"

// Global configuration structure.
type Global struct {
	DataFile        string   `mapstructure:"data_file" yaml:"data_file"`
	FuzzyEnabled    bool     `mapstructure:"fuzzy_enabled" yaml:"fuzzy_enabled"`
	MatchThreshold  int      `mapstructure:"match_threshold" yaml:"match_threshold"`
	MatchLimit      int      `mapstructure:"match_limit" yaml:"match_limit"`
	RequiredColumns []string `mapstructure:"required_columns" yaml:"required_columns"`
	DropColumns     []string `mapstructure:"drop_columns" yaml:"drop_columns"`
	ExportDir       string   `mapstructure:"export_dir" yaml:"export_dir"`
	TopN            int      `mapstructure:"top_n" yaml:"top_n"`
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	mo := match.DefaultOptions()
	co := cleaner.DefaultOptions()
	return &Global{
		FuzzyEnabled:    true,
		MatchThreshold:  mo.Threshold,
		MatchLimit:      mo.Limit,
		RequiredColumns: co.Required,
		DropColumns:     co.Drop,
		TopN:            stats.DefaultOptions().TopN,
	}
}

// MatchOptions returns the matcher settings.
func (c *Global) MatchOptions() match.Options {
	return match.Options{Threshold: c.MatchThreshold, Limit: c.MatchLimit}
}

// CleanOptions returns the cleaning settings.
func (c *Global) CleanOptions() cleaner.Options {
	return cleaner.Options{Required: c.RequiredColumns, Drop: c.DropColumns}
}

// StatsOptions returns the aggregation settings.
func (c *Global) StatsOptions() stats.Options {
	opt := stats.DefaultOptions()
	if c.TopN > 0 {
		opt.TopN = c.TopN
	}
	return opt
}

// Dir returns ~/.custlens.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".custlens"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.custlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including .env) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("data_file", d.DataFile)
	v.SetDefault("fuzzy_enabled", d.FuzzyEnabled)
	v.SetDefault("match_threshold", d.MatchThreshold)
	v.SetDefault("match_limit", d.MatchLimit)
	v.SetDefault("required_columns", d.RequiredColumns)
	v.SetDefault("drop_columns", d.DropColumns)
	v.SetDefault("export_dir", d.ExportDir)
	v.SetDefault("top_n", d.TopN)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
