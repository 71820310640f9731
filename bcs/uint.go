package bcs

import (
	"math/big"

	errorsmod "cosmossdk.io/errors"

	"github.com/aptos-labs/serde-reflection/serde-generate/runtime/golang/serde"
)

// Uint128 is an unsigned 128 bit integer split into two 64 bit halves.
type Uint128 = serde.Uint128

// Uint256 is an unsigned 256 bit integer split into two 128 bit halves.
type Uint256 struct {
	Low  Uint128
	High Uint128
}

// NewUint128 widens a uint64.
func NewUint128(value uint64) Uint128 {
	return Uint128{Low: value}
}

// Uint128FromBig converts n, failing if it is negative or wider than 128 bits.
func Uint128FromBig(n *big.Int) (Uint128, error) {
	if n.Sign() < 0 {
		return Uint128{}, errorsmod.Wrap(ErrOverflow, "value cannot be negative")
	} else if n.BitLen() > 128 {
		return Uint128{}, errorsmod.Wrapf(ErrOverflow, "%s overflows u128", n)
	}

	v := new(big.Int).Set(n)
	low := v.Uint64()
	high := v.Rsh(v, 64).Uint64()
	return Uint128{High: high, Low: low}, nil
}

// Uint128ToBig converts value to a big integer.
func Uint128ToBig(value Uint128) *big.Int {
	n := new(big.Int).SetUint64(value.High)
	n.Lsh(n, 64)
	return n.Or(n, new(big.Int).SetUint64(value.Low))
}

// Uint256FromBig converts n, failing if it is negative or wider than 256 bits.
func Uint256FromBig(n *big.Int) (Uint256, error) {
	if n.Sign() < 0 {
		return Uint256{}, errorsmod.Wrap(ErrOverflow, "value cannot be negative")
	} else if n.BitLen() > 256 {
		return Uint256{}, errorsmod.Wrapf(ErrOverflow, "%s overflows u256", n)
	}

	mask := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	low, _ := Uint128FromBig(new(big.Int).And(n, mask))
	high, _ := Uint128FromBig(new(big.Int).Rsh(n, 128))
	return Uint256{Low: low, High: high}, nil
}

// Uint256ToBig converts value to a big integer.
func Uint256ToBig(value Uint256) *big.Int {
	n := Uint128ToBig(value.High)
	n.Lsh(n, 128)
	return n.Or(n, Uint128ToBig(value.Low))
}
