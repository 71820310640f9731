package cli

import (
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/movetx/tx"
)

type authenticatorOutput struct {
	Scheme     string   `json:"scheme" yaml:"scheme"`
	PublicKeys []string `json:"public_keys" yaml:"public_keys"`
	Threshold  uint8    `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Signers    []uint8  `json:"signers,omitempty" yaml:"signers,omitempty"`
	Address    string   `json:"address" yaml:"address"`
}

type decodedTxOutput struct {
	Hash                    string              `json:"hash" yaml:"hash"`
	Sender                  string              `json:"sender" yaml:"sender"`
	SequenceNumber          uint64              `json:"sequence_number" yaml:"sequence_number"`
	Payload                 string              `json:"payload" yaml:"payload"`
	TypeArgs                []string            `json:"type_args,omitempty" yaml:"type_args,omitempty"`
	Args                    []string            `json:"args,omitempty" yaml:"args,omitempty"`
	MaxGasAmount            uint64              `json:"max_gas_amount" yaml:"max_gas_amount"`
	GasUnitPrice            uint64              `json:"gas_unit_price" yaml:"gas_unit_price"`
	ExpirationTimestampSecs uint64              `json:"expiration_timestamp_secs" yaml:"expiration_timestamp_secs"`
	ChainID                 uint8               `json:"chain_id" yaml:"chain_id"`
	Authenticator           authenticatorOutput `json:"authenticator" yaml:"authenticator"`
	Verified                bool                `json:"verified" yaml:"verified"`
}

// DecodeCmd decodes and verifies a signed transaction envelope.
func DecodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [hex envelope]",
		Short: "decode and verify a BCS encoded signed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(args[0]), "0x"))
			if err != nil {
				return errors.Wrap(err, "invalid hex envelope")
			}

			stx, err := tx.DecodeSignedTransaction(envelope)
			if err != nil {
				return err
			}

			out := newDecodedTxOutput(stx, envelope)
			if err := stx.Verify(); err != nil {
				GetContextFromCmd(cmd).Logger.Error("signature verification failed", "hash", out.Hash, "err", err)
			} else {
				out.Verified = true
			}

			return printOutput(cmd, out)
		},
	}

	cmd.Flags().AddFlagSet(FlagSetOutput())

	return cmd
}

func newDecodedTxOutput(stx tx.SignedTransaction, envelope []byte) decodedTxOutput {
	raw := stx.RawTxn

	out := decodedTxOutput{
		Hash:                    tx.Hash(envelope).String(),
		Sender:                  raw.Sender.String(),
		SequenceNumber:          raw.SequenceNumber,
		MaxGasAmount:            raw.MaxGasAmount,
		GasUnitPrice:            raw.GasUnitPrice,
		ExpirationTimestampSecs: raw.ExpirationTimestampSecs,
		ChainID:                 uint8(raw.ChainID),
	}

	switch payload := raw.Payload.(type) {
	case tx.EntryFunction:
		out.Payload = payload.String()
		for _, typeArg := range payload.TypeArgs {
			out.TypeArgs = append(out.TypeArgs, typeArg.String())
		}
		for _, arg := range payload.Args {
			out.Args = append(out.Args, "0x"+hex.EncodeToString(arg))
		}
	case tx.Script:
		out.Payload = "script"
		for _, typeArg := range payload.TypeArgs {
			out.TypeArgs = append(out.TypeArgs, typeArg.String())
		}
	case tx.ModuleBundle:
		out.Payload = "module bundle"
	}

	switch auth := stx.Authenticator.(type) {
	case tx.Ed25519Authenticator:
		out.Authenticator = authenticatorOutput{
			Scheme:     "ed25519",
			PublicKeys: []string{auth.PublicKey.String()},
			Address:    auth.AuthKey().DerivedAddress().String(),
		}
	case tx.MultiEd25519Authenticator:
		multisig := newMultisigOutput(&auth.PublicKey)
		out.Authenticator = authenticatorOutput{
			Scheme:     "multi_ed25519",
			PublicKeys: multisig.PublicKeys,
			Threshold:  multisig.Threshold,
			Signers:    auth.Signature.Bitmap().Indices(),
			Address:    multisig.Address,
		}
	}

	return out
}
