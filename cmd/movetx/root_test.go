package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/initia-labs/movetx/crypto/ed25519"
	"github.com/initia-labs/movetx/crypto/multied25519"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}

	rootCmd := NewRootCmd()
	rootCmd.SetOut(out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append(args, "--home", t.TempDir()))

	err := rootCmd.Execute()
	return out.String(), err
}

func testSeed(i int) string {
	return hex.EncodeToString(bytes.Repeat([]byte{byte(i + 1)}, ed25519.PrivKeySize))
}

func testPubKey(t *testing.T, i int) ed25519.PubKey {
	t.Helper()

	privKey, err := ed25519.NewPrivKeyFromHex(testSeed(i))
	require.NoError(t, err)
	return privKey.PubKey()
}

type signedOutput struct {
	Sender   string `json:"sender"`
	Hash     string `json:"hash"`
	Function string `json:"function"`
	Envelope string `json:"envelope"`
}

type decodedOutput struct {
	Hash          string   `json:"hash"`
	Sender        string   `json:"sender"`
	Payload       string   `json:"payload"`
	TypeArgs      []string `json:"type_args"`
	Args          []string `json:"args"`
	ChainID       uint8    `json:"chain_id"`
	Verified      bool     `json:"verified"`
	Authenticator struct {
		Scheme  string  `json:"scheme"`
		Signers []uint8 `json:"signers"`
		Address string  `json:"address"`
	} `json:"authenticator"`
}

func decode(t *testing.T, envelope string) decodedOutput {
	t.Helper()

	out, err := execute(t, "decode", envelope, "--output", "json")
	require.NoError(t, err)

	var decoded decodedOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	return decoded
}

func TestEncodeCmd(t *testing.T) {
	out, err := execute(t, "encode", "--args", `["u64:717", "bool:true", "vector<u8>:1,2"]`)
	require.NoError(t, err)
	require.Equal(t, []string{"0xcd02000000000000", "0x01", "0x020102"}, strings.Fields(out))

	_, err = execute(t, "encode", "--args", `["u8:256"]`)
	require.Error(t, err)
}

func TestTypeTagCmd(t *testing.T) {
	out, err := execute(t, "type-tag", "vector<u8>", "--output", "json")
	require.NoError(t, err)
	require.JSONEq(t, `{"type_tag": "vector<u8>", "bcs": "0x0601"}`, out)

	_, err = execute(t, "type-tag", "vector<u8")
	require.Error(t, err)
}

func TestAddressCmd(t *testing.T) {
	pubKeys := []ed25519.PubKey{testPubKey(t, 0), testPubKey(t, 1), testPubKey(t, 2)}

	out, err := execute(t, "address", "--public-keys", pubKeys[0].String(), "--output", "json")
	require.NoError(t, err)
	require.Contains(t, out, pubKeys[0].Address().String())

	multiPubKey, err := multied25519.NewPubKey(pubKeys, 2)
	require.NoError(t, err)

	out, err = execute(t, "address",
		"--public-keys", fmt.Sprintf("%s,%s,%s", pubKeys[0], pubKeys[1], pubKeys[2]),
		"--threshold", "2",
	)
	require.NoError(t, err)
	require.Contains(t, out, multiPubKey.Address().String())

	_, err = execute(t, "address",
		"--public-keys", fmt.Sprintf("%s,%s,%s", pubKeys[0], pubKeys[1], pubKeys[2]),
		"--threshold", "4",
	)
	require.ErrorIs(t, err, multied25519.ErrInvalidThreshold)
}

func TestSignAndDecode(t *testing.T) {
	out, err := execute(t, "sign", "0x1::Coin", "transfer",
		"--private-key", testSeed(0),
		"--type-args", `["0x1::TestCoin::TestCoin"]`,
		"--args", `["address:0xcafe", "u64:717"]`,
		"--sequence-number", "7",
		"--tx.chain-id", "4",
		"--output", "json",
	)
	require.NoError(t, err)

	var signed signedOutput
	require.NoError(t, json.Unmarshal([]byte(out), &signed))
	require.Equal(t, testPubKey(t, 0).Address().String(), signed.Sender)
	require.Equal(t, "0x1::Coin::transfer", signed.Function)

	decoded := decode(t, signed.Envelope)
	require.True(t, decoded.Verified)
	require.Equal(t, signed.Hash, decoded.Hash)
	require.Equal(t, signed.Sender, decoded.Sender)
	require.Equal(t, uint8(4), decoded.ChainID)
	require.Equal(t, []string{"0x1::TestCoin::TestCoin"}, decoded.TypeArgs)
	require.Equal(t, "0xcd02000000000000", decoded.Args[1])
	require.Equal(t, "ed25519", decoded.Authenticator.Scheme)

	// chain id is required
	_, err = execute(t, "sign", "0x1::Coin", "transfer", "--private-key", testSeed(0))
	require.Error(t, err)
}

func writeManifest(t *testing.T, threshold int, pubKeys ...ed25519.PubKey) string {
	t.Helper()

	quoted := make([]string, len(pubKeys))
	for i, pubKey := range pubKeys {
		quoted[i] = fmt.Sprintf("%q", pubKey.String())
	}

	path := filepath.Join(t.TempDir(), "multisig.toml")
	manifest := fmt.Sprintf("threshold = %d\npublic_keys = [%s]\n", threshold, strings.Join(quoted, ", "))
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))
	return path
}

func TestMultiSignAndDecode(t *testing.T) {
	pubKeys := []ed25519.PubKey{testPubKey(t, 0), testPubKey(t, 1), testPubKey(t, 2)}
	manifest := writeManifest(t, 2, pubKeys...)

	multiPubKey, err := multied25519.NewPubKey(pubKeys, 2)
	require.NoError(t, err)

	out, err := execute(t, "multisign", "0x1::Coin", "transfer",
		"--manifest", manifest,
		"--signer", "2:"+testSeed(2),
		"--signer", "0:"+testSeed(0),
		"--type-args", `["0x1::TestCoin::TestCoin"]`,
		"--args", `["address:0xcafe", "u64:123"]`,
		"--tx.chain-id", "4",
		"--output", "json",
	)
	require.NoError(t, err)

	var signed signedOutput
	require.NoError(t, json.Unmarshal([]byte(out), &signed))
	require.Equal(t, multiPubKey.Address().String(), signed.Sender)
	require.True(t, strings.HasSuffix(signed.Envelope, "a0000000"))

	decoded := decode(t, signed.Envelope)
	require.True(t, decoded.Verified)
	require.Equal(t, "multi_ed25519", decoded.Authenticator.Scheme)
	require.Equal(t, []uint8{0, 2}, decoded.Authenticator.Signers)
	require.Equal(t, signed.Sender, decoded.Authenticator.Address)
}

func TestMultiSignErrors(t *testing.T) {
	pubKeys := []ed25519.PubKey{testPubKey(t, 0), testPubKey(t, 1), testPubKey(t, 2)}
	manifest := writeManifest(t, 2, pubKeys...)

	testCases := []struct {
		name    string
		signers []string
		expErr  error
	}{
		{"below quorum", []string{"1:" + testSeed(1)}, multied25519.ErrInsufficientSignatures},
		{"duplicated signer", []string{"1:" + testSeed(1), "1:" + testSeed(1)}, multied25519.ErrInvalidSignerIndex},
		{"index out of range", []string{"0:" + testSeed(0), "3:" + testSeed(2)}, multied25519.ErrInvalidSignerIndex},
		{"wrong key for member", []string{"0:" + testSeed(1), "1:" + testSeed(1)}, nil},
	}

	for _, tc := range testCases {
		args := []string{"multisign", "0x1::Coin", "transfer", "--manifest", manifest, "--tx.chain-id", "4"}
		for _, signer := range tc.signers {
			args = append(args, "--signer", signer)
		}

		_, err := execute(t, args...)
		require.Error(t, err, tc.name)
		if tc.expErr != nil {
			require.ErrorIs(t, err, tc.expErr, tc.name)
		}
	}
}

func TestConfigInit(t *testing.T) {
	home := t.TempDir()

	rootCmd := NewRootCmd()
	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"config", "init", "--tx.chain-id", "9", "--home", home})
	require.NoError(t, rootCmd.Execute())

	out := &bytes.Buffer{}
	rootCmd = NewRootCmd()
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"sign", "0x1::Coin", "transfer",
		"--private-key", testSeed(0),
		"--output", "json",
		"--home", home,
	})
	require.NoError(t, rootCmd.Execute())

	var signed signedOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &signed))
	require.Equal(t, uint8(9), decode(t, signed.Envelope).ChainID)
}

func TestKeygenCmd(t *testing.T) {
	out, err := execute(t, "keygen", "--output", "json")
	require.NoError(t, err)

	var key struct {
		Mnemonic   string `json:"mnemonic"`
		PrivateKey string `json:"private_key"`
		PublicKey  string `json:"public_key"`
		Address    string `json:"address"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &key))
	require.Len(t, strings.Fields(key.Mnemonic), 24)

	privKey, err := ed25519.NewPrivKeyFromHex(key.PrivateKey)
	require.NoError(t, err)
	require.Equal(t, privKey.PubKey().String(), key.PublicKey)
	require.Equal(t, privKey.PubKey().Address().String(), key.Address)

	// recovering the mnemonic yields the same key
	out, err = execute(t, "keygen", "--recover", key.Mnemonic, "--output", "json")
	require.NoError(t, err)

	var recovered struct {
		PrivateKey string `json:"private_key"`
		Address    string `json:"address"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &recovered))
	require.Equal(t, key.PrivateKey, recovered.PrivateKey)
	require.Equal(t, key.Address, recovered.Address)

	// a different account index yields a different key
	out, err = execute(t, "keygen", "--recover", key.Mnemonic, "--hd-path", "m/44'/637'/1'/0'/0'", "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &recovered))
	require.NotEqual(t, key.Address, recovered.Address)

	_, err = execute(t, "keygen", "--recover", "not a mnemonic")
	require.Error(t, err)
}
