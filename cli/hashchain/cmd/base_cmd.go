package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type hashchainApp struct {
	baseCmd    *cobra.Command
	baseConfig *baseConfiguration
}

func New(logF LoggerFactory) *hashchainApp {
	baseCmd, baseConfig := newBaseCmd(logF)
	return &hashchainApp{baseCmd, baseConfig}
}

// WithClock sets the clock used to timestamp the blocks of the sample chain.
func (a *hashchainApp) WithClock(clk clock.Clock) *hashchainApp {
	a.baseConfig.clock = clk
	return a
}

/*
Execute runs the command selected by the command line arguments. Collected
metrics are flushed after the command returns.
*/
func (a *hashchainApp) Execute(ctx context.Context) (err error) {
	defer func() {
		if a.baseConfig.observe != nil {
			err = errors.Join(err, a.baseConfig.observe.Shutdown())
		}
	}()

	return a.addAndExecuteCommand(ctx)
}

func (a *hashchainApp) addAndExecuteCommand(ctx context.Context) error {
	a.baseCmd.AddCommand(newDemoCmd(a.baseConfig))
	a.baseCmd.AddCommand(newEncodeCmd(a.baseConfig))
	a.baseCmd.AddCommand(newDecodeCmd(a.baseConfig))
	return a.baseCmd.ExecuteContext(ctx)
}

func newBaseCmd(logF LoggerFactory) (*cobra.Command, *baseConfiguration) {
	config := &baseConfiguration{loggerBuilder: logF, clock: clock.New()}
	baseCmd := &cobra.Command{
		Use:           "hashchain",
		Short:         "The hashchain CLI",
		Long:          `The hashchain CLI builds the sample chain of blocks and transactions, encodes and decodes blocks.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initializeConfig(cmd, config); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			return nil
		},
	}
	config.addConfigurationFlags(baseCmd)

	return baseCmd, config
}

/*
initializeConfig applies config file and environment to the flags of "cmd"
and then sets up logger and metrics of the "config".
*/
func initializeConfig(cmd *cobra.Command, config *baseConfiguration) error {
	var errs []error

	if err := config.loadFlagValues(cmd); err != nil {
		errs = append(errs, fmt.Errorf("reading configuration: %w", err))
	}

	if err := config.initLogger(cmd); err != nil {
		errs = append(errs, fmt.Errorf("initializing logger: %w", err))
	}

	metrics, err := cmd.Flags().GetString(keyMetrics)
	if err != nil {
		errs = append(errs, fmt.Errorf("reading flag %q: %w", keyMetrics, err))
	} else {
		obs, err := newObservability(metrics)
		if err != nil {
			errs = append(errs, fmt.Errorf("initializing observability: %w", err))
		}
		config.observe = obs
	}

	return errors.Join(errs...)
}

/*
loadFlagValues assigns values from the config file (when it exists) and
HC_ prefixed environment variables to the flags not set on the command line.
*/
func (config *baseConfiguration) loadFlagValues(cmd *cobra.Command) error {
	config.resolvePaths()

	v := viper.New()
	if _, err := os.Stat(config.CfgFile); err == nil {
		v.SetConfigFile(config.CfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading %s: %w", config.CfgFile, err)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := bindFlags(cmd, v); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// bindFlags sets flags of "cmd" which are not changed yet to the value "v" has for them.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var errs []error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		// already resolved by resolvePaths
		if f.Name == keyHome || f.Name == keyConfig {
			return
		}

		// log-level is read from HC_LOG_LEVEL
		if strings.Contains(f.Name, "-") {
			if err := v.BindEnv(f.Name, envKey(strings.ReplaceAll(f.Name, "-", "_"))); err != nil {
				errs = append(errs, fmt.Errorf("binding env to flag %q: %w", f.Name, err))
				return
			}
		}

		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, fmt.Sprint(v.Get(f.Name))); err != nil {
			errs = append(errs, fmt.Errorf("setting flag %q value: %w", f.Name, err))
		}
	})

	return errors.Join(errs...)
}
