package cli

import (
	"encoding/hex"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/types"
)

// EncodeCmd encodes move arguments into BCS.
func EncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [flags]",
		Short: "encode move arguments in BCS format",
		Long: `
		Provide BCS encoding for move arguments.

		Supported types : u8, u16, u32, u64, u128, u256, bool, string, address, raw_hex, raw_base64,
			vector<inner_type>, option<inner_type>, decimal128, decimal256, fixed_point32, fixed_point64
		Example of args: address:0x1 bool:true u8:0 string:hello vector<u32>:1,2,3

		Example:
		$ movetx encode --args '["address:0x1", "bool:true", "u8:0x01", "u64:717", "vector<u32>:1,2,3", "string:hello world"]'
`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			flagArgs, err := ReadAndDecodeJSONStringArray[string](cmd, FlagArgs)
			if err != nil {
				return errorsmod.Wrap(err, "failed to read move args")
			}

			bcsArgs, err := BCSEncode(flagArgs)
			if err != nil {
				return errorsmod.Wrap(err, "failed to encode move args")
			}

			for _, bcsArg := range bcsArgs {
				fmt.Fprintln(cmd.OutOrStdout(), "0x"+hex.EncodeToString(bcsArg))
			}

			return nil
		},
	}

	cmd.Flags().AddFlagSet(FlagSetArgs())

	return cmd
}

type typeTagOutput struct {
	TypeTag string `json:"type_tag" yaml:"type_tag"`
	BCS     string `json:"bcs" yaml:"bcs"`
}

// TypeTagCmd prints the canonical form and the BCS encoding of a type tag.
func TypeTagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type-tag [type]",
		Short: "print the canonical form and BCS encoding of a type tag",
		Example: `$ movetx type-tag '0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>'
$ movetx type-tag 'vector<u8>'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := types.ParseTypeTag(args[0])
			if err != nil {
				return err
			}

			bz, err := bcs.Marshal(tag)
			if err != nil {
				return err
			}

			return printOutput(cmd, typeTagOutput{
				TypeTag: tag.String(),
				BCS:     "0x" + hex.EncodeToString(bz),
			})
		},
	}

	cmd.Flags().AddFlagSet(FlagSetOutput())

	return cmd
}
