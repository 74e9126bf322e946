package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"github.com/alphabill-org/hashchain/chain"
	"github.com/alphabill-org/hashchain/logger"
)

type (
	LoggerFactory func(cfg *logger.LogConfiguration) (*slog.Logger, error)

	baseConfiguration struct {
		HomeDir    string // $HC_HOME, ~/.hashchain by default
		CfgFile    string // relative paths are resolved against HomeDir
		LogCfgFile string // same as CfgFile

		loggerBuilder LoggerFactory
		logger        *slog.Logger
		observe       *observability
		clock         clock.Clock
	}
)

const (
	envPrefix               = "HC"
	defaultConfigFile       = "config.props"
	defaultHashchainDir     = ".hashchain"
	defaultLoggerConfigFile = "logger-config.yaml"

	// home and config locate the rest of the configuration so they
	// are never read from the config file
	keyHome    = "home"
	keyConfig  = "config"
	keyMetrics = "metrics"

	flagNameLoggerCfgFile = "logger-config"
	flagNameLogOutputFile = "log-file"
	flagNameLogLevel      = "log-level"
	flagNameLogFormat     = "log-format"
)

func (r *baseConfiguration) addConfigurationFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&r.HomeDir, keyHome, "", fmt.Sprintf("set the HC_HOME for this invocation (default is %s)", hashchainHomeDir()))
	flags.StringVar(&r.CfgFile, keyConfig, "", fmt.Sprintf("config file URL (default is $HC_HOME/%s)", defaultConfigFile))
	flags.String(keyMetrics, "", "metrics exporter, disabled when not set. One of: stdout")

	flags.StringVar(&r.LogCfgFile, flagNameLoggerCfgFile, defaultLoggerConfigFile, "logger config file URL. Considered absolute if starts with '/'. Otherwise relative from $HC_HOME.")
	// no defaults, empty value means "use the value from logger config file"
	flags.String(flagNameLogOutputFile, "", "log file path or one of the special values: stdout, stderr, discard")
	flags.String(flagNameLogLevel, "", "logging level, one of: DEBUG, INFO, WARN, ERROR")
	flags.String(flagNameLogFormat, "", "log format, one of: text, json, console, ecs")
}

/*
resolvePaths fills in HomeDir and CfgFile when not given as flags, from
environment or defaults, and makes CfgFile absolute.
*/
func (r *baseConfiguration) resolvePaths() {
	if r.HomeDir == "" {
		if r.HomeDir = os.Getenv(envKey(keyHome)); r.HomeDir == "" {
			r.HomeDir = hashchainHomeDir()
		}
	}
	if r.CfgFile == "" {
		if r.CfgFile = os.Getenv(envKey(keyConfig)); r.CfgFile == "" {
			r.CfgFile = defaultConfigFile
		}
	}
	if !filepath.IsAbs(r.CfgFile) {
		r.CfgFile = filepath.Join(r.HomeDir, r.CfgFile)
	}
}

func (r *baseConfiguration) loggerCfgFilename() string {
	if !filepath.IsAbs(r.LogCfgFile) {
		return filepath.Join(r.HomeDir, r.LogCfgFile)
	}
	return r.LogCfgFile
}

/*
initLogger creates Logger based on configuration flags in "cmd".
Missing default logger configuration file is not an error.
*/
func (r *baseConfiguration) initLogger(cmd *cobra.Command) error {
	cfg := &logger.LogConfiguration{}

	loggerCfgFile := filepath.Clean(r.loggerCfgFilename())
	if f, err := os.Open(loggerCfgFile); err != nil {
		defaultLoggerCfg := filepath.Join(r.HomeDir, defaultLoggerConfigFile)
		if !(errors.Is(err, os.ErrNotExist) && loggerCfgFile == defaultLoggerCfg) {
			return fmt.Errorf("opening logger configuration file: %w", err)
		}
	} else {
		defer f.Close()
		if cfg, err = logger.LoadConfiguration(f); err != nil {
			return fmt.Errorf("loading %s: %w", loggerCfgFile, err)
		}
	}

	override := func(flagName string, value *string) error {
		if cmd.Flags().Changed(flagName) {
			var err error
			if *value, err = cmd.Flags().GetString(flagName); err != nil {
				return fmt.Errorf("failed to read %s flag value: %w", flagName, err)
			}
		}
		return nil
	}

	if err := override(flagNameLogLevel, &cfg.Level); err != nil {
		return err
	}
	if err := override(flagNameLogFormat, &cfg.Format); err != nil {
		return err
	}
	if err := override(flagNameLogOutputFile, &cfg.OutputPath); err != nil {
		return err
	}

	l, err := r.loggerBuilder(cfg)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	r.logger = l
	return nil
}

// chainOptions returns options for creating chain according to the configuration.
func (r *baseConfiguration) chainOptions() []chain.Option {
	opts := []chain.Option{chain.WithLogger(r.logger)}
	if reg := r.observe.PrometheusRegisterer(); reg != nil {
		opts = append(opts, chain.WithMetrics(reg))
	}
	return opts
}

func envKey(key string) string {
	return strings.ToUpper(envPrefix + "_" + key)
}

func hashchainHomeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		panic("default user home dir not defined: " + err.Error())
	}
	return filepath.Join(dir, defaultHashchainDir)
}
