package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the error codespace of the types package.
const ModuleName = "types"

var (
	// ErrInvalidTypeTag error for unparseable type tag strings
	ErrInvalidTypeTag = errorsmod.Register(ModuleName, 2, "invalid type tag")

	// ErrInvalidAddress error for the invalid account address format
	ErrInvalidAddress = errorsmod.Register(ModuleName, 3, "invalid address")

	// ErrInvalidIdentifier error for module, struct and function names that are not Move identifiers
	ErrInvalidIdentifier = errorsmod.Register(ModuleName, 4, "invalid identifier")

	// ErrInvalidHash error for malformed hash values
	ErrInvalidHash = errorsmod.Register(ModuleName, 5, "invalid hash")
)
