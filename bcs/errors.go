package bcs

import (
	"errors"

	errorsmod "cosmossdk.io/errors"
)

// ModuleName is the error codespace of the bcs package.
const ModuleName = "bcs"

var (
	// ErrMalformedInput is returned for every structural violation found while decoding.
	ErrMalformedInput = errorsmod.Register(ModuleName, 2, "malformed input")

	// ErrOverflow error for integers that do not fit their fixed width
	ErrOverflow = errorsmod.Register(ModuleName, 3, "integer overflow")
)

// malformed wraps a runtime decode error so that callers can match ErrMalformedInput.
func malformed(err error) error {
	if err == nil || errors.Is(err, ErrMalformedInput) {
		return err
	}

	return errorsmod.Wrap(ErrMalformedInput, err.Error())
}
