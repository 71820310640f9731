package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/initia-labs/movetx/config"
)

// ConfigFileName is the name of the config file under the home directory.
const ConfigFileName = "config.toml"

// ConfigCmd groups the config subcommands.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "config subcommands",
	}

	cmd.AddCommand(configInitCmd())

	return cmd
}

func configInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "write the default config file to the home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := GetContextFromCmd(cmd)

			cfg := config.DefaultTxConfig()
			if chainID := cliCtx.Viper.GetUint(config.FlagChainID); chainID != 0 {
				cfg.ChainID = uint8(chainID)
			}

			path := filepath.Join(cliCtx.Viper.GetString(FlagHome), ConfigFileName)
			if err := config.WriteConfigFile(path, cfg); err != nil {
				return err
			}

			cliCtx.Logger.Info("config written", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().Uint8(config.FlagChainID, 0, "Set the id of the chain transactions are built for")

	return cmd
}
