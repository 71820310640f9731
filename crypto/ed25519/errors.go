package ed25519

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the error codespace of the ed25519 package.
const ModuleName = "ed25519"

var (
	// ErrInvalidKey error for key material of the wrong length
	ErrInvalidKey = errorsmod.Register(ModuleName, 2, "invalid key")

	// ErrInvalidSignature error for signatures of the wrong length or that fail verification
	ErrInvalidSignature = errorsmod.Register(ModuleName, 3, "invalid signature")
)
