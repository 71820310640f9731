package bcs

import (
	serdebcs "github.com/aptos-labs/serde-reflection/serde-generate/runtime/golang/bcs"
	"github.com/aptos-labs/serde-reflection/serde-generate/runtime/golang/serde"
)

// Marshaler is implemented by values with a canonical BCS encoding.
type Marshaler interface {
	MarshalBCS(s *Serializer) error
}

// Serializer appends BCS encoded values to an internal buffer.
type Serializer struct {
	s serde.Serializer
}

// NewSerializer returns an empty serializer.
func NewSerializer() *Serializer {
	return &Serializer{s: serdebcs.NewSerializer()}
}

func (s *Serializer) SerializeU8(value uint8) error {
	return s.s.SerializeU8(value)
}

func (s *Serializer) SerializeU16(value uint16) error {
	return s.s.SerializeU16(value)
}

func (s *Serializer) SerializeU32(value uint32) error {
	return s.s.SerializeU32(value)
}

func (s *Serializer) SerializeU64(value uint64) error {
	return s.s.SerializeU64(value)
}

func (s *Serializer) SerializeU128(value Uint128) error {
	return s.s.SerializeU128(value)
}

// SerializeU256 writes the low 128 bits followed by the high 128 bits.
func (s *Serializer) SerializeU256(value Uint256) error {
	if err := s.s.SerializeU128(value.Low); err != nil {
		return err
	}

	return s.s.SerializeU128(value.High)
}

func (s *Serializer) SerializeBool(value bool) error {
	return s.s.SerializeBool(value)
}

// SerializeBytes writes a uleb128 length prefix followed by the bytes.
func (s *Serializer) SerializeBytes(value []byte) error {
	return s.s.SerializeBytes(value)
}

// SerializeStr writes the utf-8 bytes of value with a length prefix.
func (s *Serializer) SerializeStr(value string) error {
	return s.s.SerializeStr(value)
}

// SerializeFixedBytes writes value without a length prefix. The schema must fix
// the length for the value to be decodable.
func (s *Serializer) SerializeFixedBytes(value []byte) error {
	for _, b := range value {
		if err := s.s.SerializeU8(b); err != nil {
			return err
		}
	}

	return nil
}

// SerializeLen writes a sequence length as uleb128.
func (s *Serializer) SerializeLen(length int) error {
	return s.s.SerializeLen(uint64(length))
}

// SerializeVariantIndex writes an enum discriminant as uleb128.
func (s *Serializer) SerializeVariantIndex(index uint32) error {
	return s.s.SerializeVariantIndex(index)
}

// Serialize writes a nested value, accounting for the container depth limit.
func (s *Serializer) Serialize(value Marshaler) error {
	if err := s.s.IncreaseContainerDepth(); err != nil {
		return err
	}
	defer s.s.DecreaseContainerDepth()

	return value.MarshalBCS(s)
}

// GetBytes returns the bytes serialized so far.
func (s *Serializer) GetBytes() []byte {
	return s.s.GetBytes()
}

// SerializeSequence writes a length prefixed sequence of values.
func SerializeSequence[T Marshaler](s *Serializer, items []T) error {
	if err := s.SerializeLen(len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := s.Serialize(item); err != nil {
			return err
		}
	}

	return nil
}

// SerializeByteSequences writes a length prefixed sequence of byte strings,
// each with its own length prefix.
func SerializeByteSequences(s *Serializer, items [][]byte) error {
	if err := s.SerializeLen(len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := s.SerializeBytes(item); err != nil {
			return err
		}
	}

	return nil
}
