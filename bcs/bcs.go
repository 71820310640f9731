// Package bcs implements Binary Canonical Serialization, the deterministic
// encoding used for every on-chain value and signing message.
//
// Integers are little-endian with a fixed width, booleans are a single 0/1
// byte, sequences and byte strings carry a uleb128 length prefix, struct fields
// are written in declaration order and enum values are a uleb128 variant index
// followed by the variant payload. Nothing else is written: the reader must know
// the schema.
package bcs

import (
	errorsmod "cosmossdk.io/errors"
)

// Marshal returns the BCS encoding of value.
func Marshal(value Marshaler) ([]byte, error) {
	s := NewSerializer()
	if err := value.MarshalBCS(s); err != nil {
		return nil, err
	}

	return s.GetBytes(), nil
}

// Unmarshal decodes data into value. The whole input must be consumed.
func Unmarshal(data []byte, value Unmarshaler) error {
	d := NewDeserializer(data)
	if err := malformed(value.UnmarshalBCS(d)); err != nil {
		return err
	}
	if remaining := d.Remaining(); remaining != 0 {
		return errorsmod.Wrapf(ErrMalformedInput, "%d trailing bytes", remaining)
	}

	return nil
}

// SerializeU8 returns the encoding of a u8.
func SerializeU8(value uint8) []byte {
	s := NewSerializer()
	_ = s.SerializeU8(value)
	return s.GetBytes()
}

// SerializeU16 returns the encoding of a u16.
func SerializeU16(value uint16) []byte {
	s := NewSerializer()
	_ = s.SerializeU16(value)
	return s.GetBytes()
}

// SerializeU32 returns the encoding of a u32.
func SerializeU32(value uint32) []byte {
	s := NewSerializer()
	_ = s.SerializeU32(value)
	return s.GetBytes()
}

// SerializeU64 returns the encoding of a u64.
func SerializeU64(value uint64) []byte {
	s := NewSerializer()
	_ = s.SerializeU64(value)
	return s.GetBytes()
}

// SerializeU128 returns the encoding of a u128.
func SerializeU128(value Uint128) []byte {
	s := NewSerializer()
	_ = s.SerializeU128(value)
	return s.GetBytes()
}

// SerializeU256 returns the encoding of a u256.
func SerializeU256(value Uint256) []byte {
	s := NewSerializer()
	_ = s.SerializeU256(value)
	return s.GetBytes()
}

// SerializeBool returns the encoding of a bool.
func SerializeBool(value bool) []byte {
	s := NewSerializer()
	_ = s.SerializeBool(value)
	return s.GetBytes()
}

// SerializeBytes returns the length prefixed encoding of value.
func SerializeBytes(value []byte) ([]byte, error) {
	s := NewSerializer()
	if err := s.SerializeBytes(value); err != nil {
		return nil, err
	}

	return s.GetBytes(), nil
}

// SerializeStr returns the length prefixed encoding of value.
func SerializeStr(value string) ([]byte, error) {
	s := NewSerializer()
	if err := s.SerializeStr(value); err != nil {
		return nil, err
	}

	return s.GetBytes(), nil
}
