package types

import (
	"bytes"
	"encoding/hex"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
)

// AddressLength is the byte length of an account address.
const AddressLength = 32

// AccountAddress is the fixed width on-chain account identifier.
type AccountAddress [AddressLength]byte

var (
	_ bcs.Marshaler   = AccountAddress{}
	_ bcs.Unmarshaler = (*AccountAddress)(nil)
)

var (
	// StdAddress is the address of the framework modules.
	StdAddress = AccountAddress{AddressLength - 1: 0x1}
)

// NewAccountAddress parses a hex encoded address. The `0x` prefix is optional,
// odd length and upper case input are accepted and the value is left padded
// with zeros to 32 bytes.
func NewAccountAddress(hexStr string) (AccountAddress, error) {
	hexStr = strings.TrimPrefix(strings.TrimPrefix(hexStr, "0x"), "0X")
	if len(hexStr) == 0 {
		return AccountAddress{}, errorsmod.Wrap(ErrInvalidAddress, "empty address")
	}
	if len(hexStr) > AddressLength*2 {
		return AccountAddress{}, errorsmod.Wrapf(ErrInvalidAddress, "%s is longer than %d bytes", hexStr, AddressLength)
	}
	if len(hexStr)%2 == 1 {
		hexStr = "0" + hexStr
	}

	bz, err := hex.DecodeString(hexStr)
	if err != nil {
		return AccountAddress{}, errorsmod.Wrap(ErrInvalidAddress, err.Error())
	}

	return NewAccountAddressFromBytes(bz)
}

// MustNewAccountAddress is NewAccountAddress for constants; it panics on error.
func MustNewAccountAddress(hexStr string) AccountAddress {
	addr, err := NewAccountAddress(hexStr)
	if err != nil {
		panic(err)
	}

	return addr
}

// NewAccountAddressFromBytes left pads bz with zeros to 32 bytes.
func NewAccountAddressFromBytes(bz []byte) (AccountAddress, error) {
	var addr AccountAddress
	if len(bz) > AddressLength {
		return addr, errorsmod.Wrapf(ErrInvalidAddress, "expected at most %d bytes, got %d", AddressLength, len(bz))
	}

	copy(addr[AddressLength-len(bz):], bz)
	return addr, nil
}

// String returns the zero padded lowercase hex form with `0x` prefix.
func (addr AccountAddress) String() string {
	return "0x" + hex.EncodeToString(addr[:])
}

// ShortString returns the lowercase hex form without leading zeros, e.g. `0x1`.
func (addr AccountAddress) ShortString() string {
	s := strings.TrimLeft(hex.EncodeToString(addr[:]), "0")
	if s == "" {
		s = "0"
	}

	return "0x" + s
}

// Bytes returns a copy of the address bytes.
func (addr AccountAddress) Bytes() []byte {
	return bytes.Clone(addr[:])
}

// Equals reports whether both addresses are byte-identical.
func (addr AccountAddress) Equals(other AccountAddress) bool {
	return addr == other
}

// IsSpecial reports whether the address is one of the reserved 0x0..0xf addresses.
func (addr AccountAddress) IsSpecial() bool {
	for _, b := range addr[:AddressLength-1] {
		if b != 0 {
			return false
		}
	}

	return addr[AddressLength-1] < 0x10
}

// MarshalText implements encoding.TextMarshaler.
func (addr AccountAddress) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (addr *AccountAddress) UnmarshalText(text []byte) error {
	parsed, err := NewAccountAddress(string(text))
	if err != nil {
		return err
	}

	*addr = parsed
	return nil
}

// MarshalBCS writes the 32 address bytes without a length prefix.
func (addr AccountAddress) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeFixedBytes(addr[:])
}

// UnmarshalBCS reads 32 address bytes.
func (addr *AccountAddress) UnmarshalBCS(d *bcs.Deserializer) error {
	bz, err := d.DeserializeFixedBytes(AddressLength)
	if err != nil {
		return err
	}

	copy(addr[:], bz)
	return nil
}
