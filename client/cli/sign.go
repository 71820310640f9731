package cli

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/movetx/config"
	"github.com/initia-labs/movetx/crypto/ed25519"
	"github.com/initia-labs/movetx/crypto/multied25519"
	"github.com/initia-labs/movetx/tx"
	"github.com/initia-labs/movetx/types"
)

type signedTxOutput struct {
	Sender         string `json:"sender" yaml:"sender"`
	SequenceNumber uint64 `json:"sequence_number" yaml:"sequence_number"`
	Function       string `json:"function" yaml:"function"`
	Hash           string `json:"hash" yaml:"hash"`
	Envelope       string `json:"envelope" yaml:"envelope"`
}

// SignCmd builds an entry function transaction and signs it with a single key.
func SignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [module] [function]",
		Short: "build and sign an entry function transaction with an ed25519 key",
		Long: `
		Build an entry function transaction and sign it with an ed25519 key. The key
		is read from --private-key or from the MOVETX_PRIVATE_KEY environment variable.

		Example:
		$ movetx sign 0x1::Coin transfer \
			--type-args '["0x1::TestCoin::TestCoin"]' \
			--args '["address:0xcafe", "u64:717"]' \
			--sequence-number 7 --tx.chain-id 4
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := GetContextFromCmd(cmd)

			seed := cliCtx.Viper.GetString(FlagPrivateKey)
			if seed == "" {
				return errors.New("a private key must be given with --private-key or MOVETX_PRIVATE_KEY")
			}
			privKey, err := ed25519.NewPrivKeyFromHex(seed)
			if err != nil {
				return err
			}

			raw, err := buildRawTransaction(cmd, privKey.PubKey().Address(), args)
			if err != nil {
				return err
			}

			stx, err := tx.NewEd25519Builder(privKey, tx.WithLogger(cliCtx.Logger)).Sign(raw)
			if err != nil {
				return err
			}

			return printSignedTx(cmd, stx)
		},
	}

	cmd.Flags().String(FlagPrivateKey, "", "The hex encoded ed25519 seed of the sender")
	addBuildFlags(cmd)

	return cmd
}

// MultiSignCmd builds an entry function transaction and signs it with a
// quorum of the members of a multi signature account.
func MultiSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "multisign [module] [function]",
		Short: "build and sign an entry function transaction with a k-of-n multi ed25519 key",
		Long: `
		Build an entry function transaction for a multi signature account and sign it
		with the given members. Every --signer is <member index>:<hex seed>; members
		sign in parallel and the envelope is only produced once the threshold is met.

		Example:
		$ movetx multisign 0x1::Coin transfer \
			--manifest multisig.toml \
			--signer 0:0x9d61... --signer 2:0x4ccd... \
			--type-args '["0x1::TestCoin::TestCoin"]' \
			--args '["address:0xcafe", "u64:123"]' \
			--sequence-number 0 --tx.chain-id 4
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := GetContextFromCmd(cmd)

			pubKey, err := readMultiPubKey(cmd)
			if err != nil {
				return err
			}

			signerFlags, err := cmd.Flags().GetStringArray(FlagSigner)
			if err != nil {
				return err
			}
			signers, err := parseSigners(signerFlags, pubKey)
			if err != nil {
				return err
			}

			raw, err := buildRawTransaction(cmd, pubKey.Address(), args)
			if err != nil {
				return err
			}

			signFn := tx.SignFuncFromSigners(cmd.Context(), signers...)
			stx, err := tx.NewMultiEd25519Builder(signFn, *pubKey, tx.WithLogger(cliCtx.Logger)).Sign(raw)
			if err != nil {
				return err
			}

			return printSignedTx(cmd, stx)
		},
	}

	cmd.Flags().StringArray(FlagSigner, nil, "A signing member as <member index>:<hex seed>, repeatable")
	cmd.Flags().AddFlagSet(FlagSetMultisig())
	addBuildFlags(cmd)

	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().AddFlagSet(FlagSetTypeArgs())
	cmd.Flags().AddFlagSet(FlagSetArgs())
	cmd.Flags().AddFlagSet(FlagSetTxFields())
	cmd.Flags().AddFlagSet(FlagSetOutput())
	config.AddConfigFlags(cmd)
}

// parseSigners parses `<index>:<seed>` pairs and checks that every seed
// belongs to the member at its index.
func parseSigners(signerFlags []string, pubKey *multied25519.PubKey) ([]tx.IndexedSigner, error) {
	keys := pubKey.Keys()

	signers := make([]tx.IndexedSigner, len(signerFlags))
	for i, signerFlag := range signerFlags {
		indexStr, seed, found := strings.Cut(signerFlag, ":")
		if !found {
			return nil, errors.Errorf("signer %q is not in <index>:<seed> form", signerFlag)
		}

		index, err := strconv.ParseUint(indexStr, 10, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid signer index %q", indexStr)
		}
		if int(index) >= len(keys) {
			return nil, errors.Wrapf(multied25519.ErrInvalidSignerIndex, "index %d out of range for %d keys", index, len(keys))
		}

		privKey, err := ed25519.NewPrivKeyFromHex(seed)
		if err != nil {
			return nil, errors.Wrapf(err, "signer %d", index)
		}
		if privKey.PubKey() != keys[index] {
			return nil, errors.Errorf("signer %d does not hold the key of member %d", i, index)
		}

		signers[i] = tx.IndexedSigner{Index: uint8(index), Signer: privKey}
	}

	return signers, nil
}

func buildRawTransaction(cmd *cobra.Command, defaultSender types.AccountAddress, args []string) (tx.RawTransaction, error) {
	cliCtx := GetContextFromCmd(cmd)

	cfg := config.GetConfig(cliCtx.Viper)
	if err := cfg.Validate(); err != nil {
		return tx.RawTransaction{}, err
	}

	sender := defaultSender
	senderStr, err := cmd.Flags().GetString(FlagSender)
	if err != nil {
		return tx.RawTransaction{}, err
	}
	if senderStr != "" {
		if sender, err = types.NewAccountAddress(senderStr); err != nil {
			return tx.RawTransaction{}, err
		}
	}

	sequenceNumber, err := cmd.Flags().GetUint64(FlagSequenceNumber)
	if err != nil {
		return tx.RawTransaction{}, err
	}

	typeArgs, err := ReadTypeArgs(cmd)
	if err != nil {
		return tx.RawTransaction{}, err
	}
	fnArgs, err := ReadArgs(cmd)
	if err != nil {
		return tx.RawTransaction{}, err
	}

	payload, err := tx.NewEntryFunction(args[0], args[1], typeArgs, fnArgs...)
	if err != nil {
		return tx.RawTransaction{}, err
	}

	return tx.RawTransaction{
		Sender:                  sender,
		SequenceNumber:          sequenceNumber,
		Payload:                 payload,
		MaxGasAmount:            cfg.MaxGasAmount,
		GasUnitPrice:            cfg.GasUnitPrice,
		ExpirationTimestampSecs: cfg.ExpirationTimestampSecs(time.Now()),
		ChainID:                 tx.ChainID(cfg.ChainID),
	}, nil
}

func printSignedTx(cmd *cobra.Command, stx *tx.SignedTransaction) error {
	if err := stx.Verify(); err != nil {
		return err
	}

	envelope, err := stx.Bytes()
	if err != nil {
		return err
	}

	out := signedTxOutput{
		Sender:         stx.RawTxn.Sender.String(),
		SequenceNumber: stx.RawTxn.SequenceNumber,
		Hash:           tx.Hash(envelope).String(),
		Envelope:       "0x" + hex.EncodeToString(envelope),
	}
	if f, ok := stx.RawTxn.Payload.(tx.EntryFunction); ok {
		out.Function = f.String()
	}

	return printOutput(cmd, out)
}
