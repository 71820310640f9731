package cli

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/initia-labs/movetx/crypto/ed25519"
	"github.com/initia-labs/movetx/crypto/multied25519"
)

// MultisigManifest describes a multi signature account:
//
//	threshold = 2
//	public_keys = ["0x...", "0x...", "0x..."]
type MultisigManifest struct {
	Threshold  uint8    `toml:"threshold"`
	PublicKeys []string `toml:"public_keys"`
}

// LoadMultisigManifest reads a manifest from a TOML file.
func LoadMultisigManifest(path string) (*MultisigManifest, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read multisig manifest")
	}

	var manifest MultisigManifest
	if err := toml.Unmarshal(bz, &manifest); err != nil {
		return nil, errors.Wrapf(err, "failed to parse multisig manifest %s", path)
	}

	return &manifest, nil
}

// PubKey builds the multi public key of the manifest.
func (m MultisigManifest) PubKey() (*multied25519.PubKey, error) {
	return newMultiPubKey(m.PublicKeys, m.Threshold)
}

func newMultiPubKey(hexKeys []string, threshold uint8) (*multied25519.PubKey, error) {
	keys := make([]ed25519.PubKey, len(hexKeys))
	for i, hexKey := range hexKeys {
		key, err := ed25519.NewPubKeyFromHex(hexKey)
		if err != nil {
			return nil, errors.Wrapf(err, "public key %d", i)
		}
		keys[i] = key
	}

	return multied25519.NewPubKey(keys, threshold)
}
