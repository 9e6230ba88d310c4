package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-sidebar/pkg/sidebar"
	"github.com/mattsolo1/grove-sidebar/pkg/watch"
)

const EnvPrefix = "SIDEBAR"

// Effective is the fully resolved configuration, as printed by `sidebar config`.
type Effective struct {
	ConfigFile      string `yaml:"config_file,omitempty"`
	Root            string `yaml:"root"`
	LogLevel        string `yaml:"log_level"`
	sidebar.Options `yaml:",inline"`
	Watch           WatchConfig `yaml:"watch"`
}

type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// InitConfig loads the config file, environment and defaults into viper.
// A missing config file is not an error unless one was named with --config.
// Variables from a .env file in the working directory never override the
// process environment.
func InitConfig() error {
	_ = godotenv.Load()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sidebar"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sidebar")
	}

	defaults := sidebar.DefaultOptions()
	viper.SetDefault("root", "")
	viper.SetDefault("max_depth", defaults.MaxDepth)
	viper.SetDefault("header", defaults.Header)
	viper.SetDefault("sidebar_file", defaults.SidebarFile)
	viper.SetDefault("index_marker", defaults.IndexMarker)
	viper.SetDefault("extension", defaults.Extension)
	viper.SetDefault("stop_words", defaults.StopWords)
	viper.SetDefault("full_index", defaults.FullIndex)
	viper.SetDefault("frontmatter_titles", defaults.FrontmatterTitles)
	viper.SetDefault("watch.debounce", watch.DefaultDebounce)
	viper.SetDefault("log_level", "warn")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// LoadOptions builds validated generation options from the loaded configuration.
func LoadOptions() (sidebar.Options, error) {
	opts := sidebar.Options{
		MaxDepth:          viper.GetInt("max_depth"),
		Header:            viper.GetString("header"),
		SidebarFile:       viper.GetString("sidebar_file"),
		IndexMarker:       viper.GetString("index_marker"),
		Extension:         viper.GetString("extension"),
		StopWords:         viper.GetStringSlice("stop_words"),
		FullIndex:         viper.GetBool("full_index"),
		FrontmatterTitles: viper.GetBool("frontmatter_titles"),
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid configuration: %w", err)
	}
	return opts, nil
}

// Root returns the absolute documentation root, defaulting to the working directory.
func Root() (string, error) {
	root := viper.GetString("root")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %s is not a directory", abs)
	}
	return abs, nil
}

func WatchDebounce() time.Duration {
	return viper.GetDuration("watch.debounce")
}

// Resolve returns the effective configuration.
func Resolve() (*Effective, error) {
	opts, err := LoadOptions()
	if err != nil {
		return nil, err
	}
	root, err := Root()
	if err != nil {
		return nil, err
	}
	return &Effective{
		ConfigFile: viper.ConfigFileUsed(),
		Root:       root,
		LogLevel:   viper.GetString("log_level"),
		Options:    opts,
		Watch:      WatchConfig{Debounce: WatchDebounce().String()},
	}, nil
}

// NewLogger creates the process logger at the configured level.
func NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	return logger, nil
}

// Reset clears all loaded configuration. Commands built afterwards bind their flags afresh.
func Reset() {
	viper.Reset()
}

func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	// Standard grove commands may already carry --config.
	if flags.Lookup("config") == nil {
		flags.String("config", "", "config file (default is ./.sidebar.yaml or $HOME/.config/sidebar/.sidebar.yaml)")
	}
	flags.StringP("root", "r", "", "Documentation root (default is the current directory)")
	flags.IntP("max-depth", "d", sidebar.DefaultMaxDepth, "Maximum nesting depth shown in the sidebar")
	flags.String("header", "", "Markdown written at the top of the sidebar")
	flags.Bool("full-index", false, "Generate index files for directories below the maximum depth too")
	flags.Bool("frontmatter-titles", false, "Use frontmatter titles as document display names")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("root", flags.Lookup("root"))
	_ = viper.BindPFlag("max_depth", flags.Lookup("max-depth"))
	_ = viper.BindPFlag("header", flags.Lookup("header"))
	_ = viper.BindPFlag("full_index", flags.Lookup("full-index"))
	_ = viper.BindPFlag("frontmatter_titles", flags.Lookup("frontmatter-titles"))
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
}
