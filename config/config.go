package config

// Viper configuration loader: reads config.yaml from the user config
// directory or the current directory.

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information, set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Config holds all application configuration loaded from config.yaml.
type Config struct {
	// Logging configuration
	Logging struct {
		Level string `mapstructure:"level"` // "debug", "info", "warn", "error"
	} `mapstructure:"logging"`

	// Output configuration
	Output struct {
		PosixlyCorrect bool `mapstructure:"posixlyCorrect"`
	} `mapstructure:"output"`
}

// LoadConfig loads configuration from config.yaml.
// Priority order (first found wins): user config dir → current
// directory. If no config.yaml exists, defaults are used.
func LoadConfig() (*Config, error) {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if file := configFileFlag(); file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.AddConfigPath(GetConfigDir())
		viper.AddConfigPath(".")
	}

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("no config.yaml found, using defaults")
		} else {
			return nil, err
		}
	} else {
		slog.Debug("loaded configuration", "file", viper.ConfigFileUsed())
	}

	// Allow environment variables to override config file
	viper.SetEnvPrefix("HOUND")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := bindFlags(); err != nil {
		slog.Warn("failed to bind command line flags", "error", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("logging.level", "error")
	viper.SetDefault("output.posixlyCorrect", false)
}

// bindFlags binds supported command line flags to viper so they can
// override config values. Unknown flags are ignored: the expression
// part of the command line is full of dash words that are not flags.
func bindFlags() error {
	flagSet := newFlagSet()
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return err
	}
	return viper.BindPFlag("logging.level", flagSet.Lookup("log-level"))
}

// configFileFlag pre-scans the command line for --config, which has to
// be known before viper picks its search paths.
func configFileFlag() string {
	flagSet := newFlagSet()
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return ""
	}
	file, err := flagSet.GetString("config")
	if err != nil {
		return ""
	}
	return file
}

func newFlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("hound", pflag.ContinueOnError)
	flagSet.ParseErrorsWhitelist.UnknownFlags = true
	flagSet.SetOutput(io.Discard)

	flagSet.String("log-level", "", "Log level (debug, info, warn, error)")
	flagSet.String("config", "", "Path to config.yaml")
	return flagSet
}

// InitLogging installs the default slog handler at the configured
// level, writing to stderr so stdout stays machine-parseable.
func InitLogging(cfg *Config) slog.Level {
	level := slog.LevelError
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return level
}
