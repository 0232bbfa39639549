package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/cfpwatch/internal/logging"
	"github.com/ppiankov/cfpwatch/internal/model"
)

// version is set at build time with -ldflags "-X github.com/ppiankov/cfpwatch/internal/cli.version=..."
var version = "dev"

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string

	// cfg is the effective configuration, loaded before any subcommand runs
	cfg *model.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cfpwatch",
	Short: "cfpwatch - conference paper deadline tracker",
	Long: `cfpwatch keeps a local database of paper submission deadlines for a
list of academic conferences.

For every tracked acronym it finds the official site of the current and
next edition, reads the submission deadline from the page, sanity-checks
it and records what changed since the previous run.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Logging.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		if verbose && !cmd.Flags().Changed("log-level") {
			level = "debug"
		}
		format := cfg.Logging.Format
		if cmd.Flags().Changed("log-format") {
			format = logFormat
		}
		logging.Init(format, logging.ParseLevel(level))

		if verbose && viper.ConfigFileUsed() != "" {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cfpwatch %s\n", version)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.cfpwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(versionCmd)
}

// optionalKeys are omitted from the marshaled defaults, so environment
// overrides for them must be bound explicitly
var optionalKeys = []string{
	"catalog_path",
	"llm.model", "llm.api_key", "llm.base_url",
	"http.http_proxy", "http.https_proxy", "http.no_proxy",
}

// loadConfig layers defaults, the config file and CFPWATCH_* variables.
// A .env file in the working directory is loaded first.
func loadConfig(v *viper.Viper, path string) (*model.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	out := model.DefaultConfig()
	defaults, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}

	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("read defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".cfpwatch"))
		v.SetConfigName("config")
	}

	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// Read in environment variables that match CFPWATCH_*
	v.SetEnvPrefix("CFPWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range optionalKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(out, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return out, nil
}
