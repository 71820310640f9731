package main

import (
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/initia-labs/movetx/client/cli"
)

const (
	// EnvPrefix is the prefix of the environment variables overriding flags,
	// e.g. MOVETX_TX_CHAIN_ID.
	EnvPrefix = "MOVETX"

	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"

	logFormatPlain = "plain"
	logFormatJSON  = "json"
)

// DefaultHome is where the config file is read from.
var DefaultHome = func() string {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return ".movetx"
	}

	return filepath.Join(userHomeDir, ".movetx")
}()

// NewRootCmd creates a new root command for movetx. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "movetx",
		Short: "offline move transaction builder",
		Long: `Build, sign, encode and decode move transactions offline.

Chain metadata and gas parameters are read from flags, from the MOVETX_* environment
variables and from $HOME/.movetx/config.toml, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			v, err := newViper(cmd)
			if err != nil {
				return err
			}

			logger, err := newLogger(cmd, v)
			if err != nil {
				return err
			}

			cli.SetCmdContext(cmd, &cli.Context{Viper: v, Logger: logger})
			return nil
		},
	}

	rootCmd.PersistentFlags().String(cli.FlagHome, DefaultHome, "directory for the config file")
	rootCmd.PersistentFlags().String(flagLogLevel, zerolog.InfoLevel.String(), "The logging level (trace|debug|info|warn|error|fatal|panic)")
	rootCmd.PersistentFlags().String(flagLogFormat, logFormatPlain, "The logging format (json|plain)")

	rootCmd.AddCommand(
		cli.EncodeCmd(),
		cli.TypeTagCmd(),
		cli.KeygenCmd(),
		cli.AddressCmd(),
		cli.SignCmd(),
		cli.MultiSignCmd(),
		cli.DecodeCmd(),
		cli.ConfigCmd(),
	)

	return rootCmd
}

// newViper layers the config file, the environment and the flags of cmd.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	configFile := filepath.Join(v.GetString(cli.FlagHome), cli.ConfigFileName)
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", configFile)
		}
	}

	return v, nil
}

func newLogger(cmd *cobra.Command, v *viper.Viper) (log.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, errors.Wrap(err, "invalid log level")
	}

	opts := []log.Option{log.LevelOption(level)}
	switch v.GetString(flagLogFormat) {
	case logFormatJSON:
		opts = append(opts, log.OutputJSONOption())
	case logFormatPlain:
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, errors.Errorf("unknown log format %q", v.GetString(flagLogFormat))
	}

	return log.NewLogger(cmd.ErrOrStderr(), opts...), nil
}
