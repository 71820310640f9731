package hd

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"strconv"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/go-bip39"

	"github.com/initia-labs/movetx/crypto/ed25519"
)

const (
	// DefaultFullBIP44Path is the derivation path of the first Move account.
	DefaultFullBIP44Path = "m/44'/637'/0'/0'/0'"

	// MnemonicEntropySize is the entropy of generated mnemonics, 24 words.
	MnemonicEntropySize = 256

	hardenedOffset = uint32(0x80000000)
)

var masterKeySalt = []byte("ed25519 seed")

// NewMnemonic returns a fresh 24 word bip39 mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(MnemonicEntropySize)
	if err != nil {
		return "", err
	}

	return bip39.NewMnemonic(entropy)
}

// Derive returns the Ed25519 key of hdPath below the bip39 seed of mnemonic.
// An empty path returns the master key.
func Derive(mnemonic, bip39Passphrase, hdPath string) (ed25519.PrivKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, bip39Passphrase)
	if err != nil {
		return ed25519.PrivKey{}, errorsmod.Wrap(ErrInvalidMnemonic, err.Error())
	}

	return DeriveFromSeed(seed, hdPath)
}

// DeriveFromSeed walks hdPath from the master key of seed following SLIP-0010.
func DeriveFromSeed(seed []byte, hdPath string) (ed25519.PrivKey, error) {
	indices, err := ParsePath(hdPath)
	if err != nil {
		return ed25519.PrivKey{}, err
	}

	key, chainCode := ComputeMastersFromSeed(seed)
	for _, index := range indices {
		key, chainCode = derivePrivateKey(key, chainCode, index)
	}

	return ed25519.NewPrivKeyFromSeed(key[:])
}

// ComputeMastersFromSeed returns the master secret and chain code of seed.
func ComputeMastersFromSeed(seed []byte) (secret [32]byte, chainCode [32]byte) {
	return i64(masterKeySalt, seed)
}

// ParsePath parses `m/a'/b'/...`. Ed25519 only supports hardened children, so
// every component must carry the `'` marker.
func ParsePath(hdPath string) ([]uint32, error) {
	if hdPath == "" || hdPath == "m" {
		return nil, nil
	}

	parts := strings.Split(hdPath, "/")
	if parts[0] != "m" {
		return nil, errorsmod.Wrapf(ErrInvalidPath, "%q does not start with m/", hdPath)
	}

	indices := make([]uint32, 0, len(parts)-1)
	for _, part := range parts[1:] {
		num, found := strings.CutSuffix(part, "'")
		if !found {
			return nil, errorsmod.Wrapf(ErrInvalidPath, "%q: component %q is not hardened", hdPath, part)
		}

		index, err := strconv.ParseUint(num, 10, 31)
		if err != nil {
			return nil, errorsmod.Wrapf(ErrInvalidPath, "%q: invalid component %q", hdPath, part)
		}

		indices = append(indices, uint32(index)+hardenedOffset)
	}

	return indices, nil
}

func derivePrivateKey(key, chainCode [32]byte, index uint32) ([32]byte, [32]byte) {
	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, key[:]...)
	data = binary.BigEndian.AppendUint32(data, index)

	return i64(chainCode[:], data)
}

// i64 returns the two halves of HMAC-SHA512(key, data).
func i64(key []byte, data []byte) (il [32]byte, ir [32]byte) {
	mac := hmac.New(sha512.New, key)
	// sha512 does not err
	_, _ = mac.Write(data)

	sum := mac.Sum(nil)
	copy(il[:], sum[:32])
	copy(ir[:], sum[32:])

	return
}
