package tx

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the error codespace of the tx package.
const ModuleName = "tx"

var (
	ErrInvalidPayload       = errorsmod.Register(ModuleName, 2, "invalid transaction payload")
	ErrVerificationFailed   = errorsmod.Register(ModuleName, 3, "transaction verification failed")
	ErrInvalidArgument      = errorsmod.Register(ModuleName, 4, "invalid argument")
	ErrSigningFailed        = errorsmod.Register(ModuleName, 5, "signing failed")
	ErrMissingAuthenticator = errorsmod.Register(ModuleName, 6, "missing authenticator")
)
