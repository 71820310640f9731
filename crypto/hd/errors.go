package hd

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the error codespace of the hd package.
const ModuleName = "hd"

var (
	// ErrInvalidPath error for malformed or non hardened derivation paths
	ErrInvalidPath = errorsmod.Register(ModuleName, 2, "invalid derivation path")

	// ErrInvalidMnemonic error for mnemonics that fail the bip39 checksum
	ErrInvalidMnemonic = errorsmod.Register(ModuleName, 3, "invalid mnemonic")
)
