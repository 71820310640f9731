package bcs

import (
	"unicode/utf8"

	errorsmod "cosmossdk.io/errors"

	serdebcs "github.com/aptos-labs/serde-reflection/serde-generate/runtime/golang/bcs"
	"github.com/aptos-labs/serde-reflection/serde-generate/runtime/golang/serde"
)

// Unmarshaler is implemented by values that can be decoded from BCS.
type Unmarshaler interface {
	UnmarshalBCS(d *Deserializer) error
}

// Deserializer reads BCS encoded values from a fixed input. Every error it
// returns matches ErrMalformedInput.
type Deserializer struct {
	input []byte
	d     serde.Deserializer
}

// NewDeserializer returns a deserializer positioned at the start of input.
func NewDeserializer(input []byte) *Deserializer {
	return &Deserializer{
		input: input,
		d:     serdebcs.NewDeserializer(input),
	}
}

// Remaining returns the number of unread bytes.
func (d *Deserializer) Remaining() int {
	return len(d.input) - int(d.d.GetBufferOffset())
}

func (d *Deserializer) DeserializeU8() (uint8, error) {
	v, err := d.d.DeserializeU8()
	return v, malformed(err)
}

func (d *Deserializer) DeserializeU16() (uint16, error) {
	v, err := d.d.DeserializeU16()
	return v, malformed(err)
}

func (d *Deserializer) DeserializeU32() (uint32, error) {
	v, err := d.d.DeserializeU32()
	return v, malformed(err)
}

func (d *Deserializer) DeserializeU64() (uint64, error) {
	v, err := d.d.DeserializeU64()
	return v, malformed(err)
}

func (d *Deserializer) DeserializeU128() (Uint128, error) {
	v, err := d.d.DeserializeU128()
	return v, malformed(err)
}

func (d *Deserializer) DeserializeU256() (Uint256, error) {
	low, err := d.DeserializeU128()
	if err != nil {
		return Uint256{}, err
	}
	high, err := d.DeserializeU128()
	if err != nil {
		return Uint256{}, err
	}

	return Uint256{Low: low, High: high}, nil
}

func (d *Deserializer) DeserializeBool() (bool, error) {
	v, err := d.d.DeserializeBool()
	return v, malformed(err)
}

// DeserializeLen reads a uleb128 sequence length. Every element of a sequence
// occupies at least one byte, so a length above the remaining input is rejected
// before any allocation happens.
func (d *Deserializer) DeserializeLen() (int, error) {
	length, err := d.d.DeserializeLen()
	if err != nil {
		return 0, malformed(err)
	}
	if remaining := d.Remaining(); length > uint64(remaining) {
		return 0, errorsmod.Wrapf(ErrMalformedInput, "declared length %d exceeds remaining %d bytes", length, remaining)
	}

	return int(length), nil
}

// DeserializeVariantIndex reads an enum discriminant. Range checking is left to
// the caller, which knows the set of variants.
func (d *Deserializer) DeserializeVariantIndex() (uint32, error) {
	v, err := d.d.DeserializeVariantIndex()
	return v, malformed(err)
}

// DeserializeBytes reads a length prefixed byte string.
func (d *Deserializer) DeserializeBytes() ([]byte, error) {
	length, err := d.DeserializeLen()
	if err != nil {
		return nil, err
	}

	return d.DeserializeFixedBytes(length)
}

// DeserializeFixedBytes reads exactly length bytes without a prefix.
func (d *Deserializer) DeserializeFixedBytes(length int) ([]byte, error) {
	if remaining := d.Remaining(); length > remaining {
		return nil, errorsmod.Wrapf(ErrMalformedInput, "need %d bytes, %d remaining", length, remaining)
	}

	out := make([]byte, length)
	for i := range out {
		b, err := d.DeserializeU8()
		if err != nil {
			return nil, err
		}
		out[i] = b
	}

	return out, nil
}

// DeserializeStr reads a length prefixed utf-8 string.
func (d *Deserializer) DeserializeStr() (string, error) {
	bz, err := d.DeserializeBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bz) {
		return "", errorsmod.Wrap(ErrMalformedInput, "invalid utf-8 string")
	}

	return string(bz), nil
}

// Deserialize reads a nested value, accounting for the container depth limit.
func (d *Deserializer) Deserialize(value Unmarshaler) error {
	if err := d.d.IncreaseContainerDepth(); err != nil {
		return malformed(err)
	}
	defer d.d.DecreaseContainerDepth()

	return malformed(value.UnmarshalBCS(d))
}

// DeserializeSequence reads a length prefixed sequence of values.
func DeserializeSequence[T any, PT interface {
	*T
	Unmarshaler
}](d *Deserializer) ([]T, error) {
	length, err := d.DeserializeLen()
	if err != nil {
		return nil, err
	}

	items := make([]T, length)
	for i := range items {
		if err := d.Deserialize(PT(&items[i])); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// DeserializeByteSequences reads a length prefixed sequence of byte strings.
func DeserializeByteSequences(d *Deserializer) ([][]byte, error) {
	length, err := d.DeserializeLen()
	if err != nil {
		return nil, err
	}

	items := make([][]byte, length)
	for i := range items {
		if items[i], err = d.DeserializeBytes(); err != nil {
			return nil, err
		}
	}

	return items, nil
}
