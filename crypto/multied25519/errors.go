package multied25519

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the error codespace of the multied25519 package.
const ModuleName = "multied25519"

var (
	// ErrInvalidThreshold error for a threshold outside [1, n] or a key count outside [1, 32]
	ErrInvalidThreshold = errorsmod.Register(ModuleName, 2, "invalid threshold")

	// ErrInvalidSignerIndex error for duplicated or out of range signer indexes
	ErrInvalidSignerIndex = errorsmod.Register(ModuleName, 3, "invalid signer index")

	// ErrInsufficientSignatures error for a multi signature below the threshold
	ErrInsufficientSignatures = errorsmod.Register(ModuleName, 4, "insufficient signatures")

	// ErrInvalidSignature error for a member signature that fails verification
	ErrInvalidSignature = errorsmod.Register(ModuleName, 5, "invalid signature")

	// ErrInvalidKey error for malformed multi public key bytes
	ErrInvalidKey = errorsmod.Register(ModuleName, 6, "invalid key")
)
