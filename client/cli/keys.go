package cli

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/movetx/crypto/ed25519"
	"github.com/initia-labs/movetx/crypto/hd"
	"github.com/initia-labs/movetx/crypto/multied25519"
)

type keyOutput struct {
	Mnemonic   string `json:"mnemonic,omitempty" yaml:"mnemonic,omitempty"`
	PrivateKey string `json:"private_key,omitempty" yaml:"private_key,omitempty"`
	PublicKey  string `json:"public_key" yaml:"public_key"`
	AuthKey    string `json:"auth_key" yaml:"auth_key"`
	Address    string `json:"address" yaml:"address"`
}

// KeygenCmd generates an Ed25519 key from a fresh or a recovered mnemonic.
// Nothing is stored.
func KeygenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "generate an ed25519 key and print its mnemonic, seed, public key and address",
		Example: `$ movetx keygen
$ movetx keygen --recover "<24 words>" --hd-path "m/44'/637'/1'/0'/0'"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mnemonic, err := cmd.Flags().GetString(FlagRecover)
			if err != nil {
				return err
			}
			hdPath, err := cmd.Flags().GetString(FlagHDPath)
			if err != nil {
				return err
			}

			if mnemonic == "" {
				if mnemonic, err = hd.NewMnemonic(); err != nil {
					return err
				}
			}

			privKey, err := hd.Derive(mnemonic, "", hdPath)
			if err != nil {
				return err
			}
			pubKey := privKey.PubKey()

			return printOutput(cmd, keyOutput{
				Mnemonic:   mnemonic,
				PrivateKey: "0x" + hex.EncodeToString(privKey.Seed()),
				PublicKey:  pubKey.String(),
				AuthKey:    pubKey.AuthKey().String(),
				Address:    pubKey.Address().String(),
			})
		},
	}

	cmd.Flags().String(FlagRecover, "", "Recover the key of an existing bip39 mnemonic")
	cmd.Flags().String(FlagHDPath, hd.DefaultFullBIP44Path, "The hardened derivation path of the key")
	cmd.Flags().AddFlagSet(FlagSetOutput())

	return cmd
}

type multisigOutput struct {
	Threshold  uint8    `json:"threshold" yaml:"threshold"`
	PublicKeys []string `json:"public_keys" yaml:"public_keys"`
	AuthKey    string   `json:"auth_key" yaml:"auth_key"`
	Address    string   `json:"address" yaml:"address"`
}

// AddressCmd derives the address of a single or a multi signature key.
func AddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "derive the account address of an ed25519 or a k-of-n multi ed25519 key",
		Example: `$ movetx address --public-keys 0xd75a98...
$ movetx address --public-keys 0xaa...,0xbb...,0xcc... --threshold 2
$ movetx address --manifest multisig.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hexKeys, err := cmd.Flags().GetStringSlice(FlagPublicKeys)
			if err != nil {
				return err
			}
			threshold, err := cmd.Flags().GetUint8(FlagThreshold)
			if err != nil {
				return err
			}

			if len(hexKeys) == 1 && threshold == 0 {
				pubKey, err := ed25519.NewPubKeyFromHex(hexKeys[0])
				if err != nil {
					return err
				}

				return printOutput(cmd, keyOutput{
					PublicKey: pubKey.String(),
					AuthKey:   pubKey.AuthKey().String(),
					Address:   pubKey.Address().String(),
				})
			}

			pubKey, err := readMultiPubKey(cmd)
			if err != nil {
				return err
			}

			return printOutput(cmd, newMultisigOutput(pubKey))
		},
	}

	cmd.Flags().AddFlagSet(FlagSetMultisig())
	cmd.Flags().AddFlagSet(FlagSetOutput())

	return cmd
}

func newMultisigOutput(pubKey *multied25519.PubKey) multisigOutput {
	keys := pubKey.Keys()

	out := multisigOutput{
		Threshold:  pubKey.Threshold(),
		PublicKeys: make([]string, len(keys)),
		AuthKey:    pubKey.AuthKey().String(),
		Address:    pubKey.Address().String(),
	}
	for i, key := range keys {
		out.PublicKeys[i] = key.String()
	}

	return out
}

// readMultiPubKey builds the multi public key from --manifest, or from
// --public-keys and --threshold.
func readMultiPubKey(cmd *cobra.Command) (*multied25519.PubKey, error) {
	manifestPath, err := cmd.Flags().GetString(FlagManifest)
	if err != nil {
		return nil, err
	}
	if manifestPath != "" {
		manifest, err := LoadMultisigManifest(manifestPath)
		if err != nil {
			return nil, err
		}

		return manifest.PubKey()
	}

	hexKeys, err := cmd.Flags().GetStringSlice(FlagPublicKeys)
	if err != nil {
		return nil, err
	}
	if len(hexKeys) == 0 {
		return nil, errors.New("either --manifest or --public-keys must be given")
	}

	threshold, err := cmd.Flags().GetUint8(FlagThreshold)
	if err != nil {
		return nil, err
	}

	return newMultiPubKey(hexKeys, threshold)
}
