package tx

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/types"
)

// Argument is a single entry function argument: the Move type it is encoded
// as, and its BCS encoding. The payload keeps only the bytes.
type Argument struct {
	// Type is nil for raw arguments whose encoding the caller produced.
	Type  types.TypeTag
	bytes []byte
}

// NewArgument pairs an already encoded value with its Move type.
func NewArgument(typeTag types.TypeTag, bz []byte) Argument {
	return Argument{Type: typeTag, bytes: append([]byte(nil), bz...)}
}

// Bytes returns the BCS encoding of the argument.
func (a Argument) Bytes() []byte {
	return append([]byte(nil), a.bytes...)
}

func U8Argument(v uint8) Argument {
	return Argument{Type: types.TypeTagU8{}, bytes: bcs.SerializeU8(v)}
}

func U16Argument(v uint16) Argument {
	return Argument{Type: types.TypeTagU16{}, bytes: bcs.SerializeU16(v)}
}

func U32Argument(v uint32) Argument {
	return Argument{Type: types.TypeTagU32{}, bytes: bcs.SerializeU32(v)}
}

func U64Argument(v uint64) Argument {
	return Argument{Type: types.TypeTagU64{}, bytes: bcs.SerializeU64(v)}
}

func U128Argument(v bcs.Uint128) Argument {
	return Argument{Type: types.TypeTagU128{}, bytes: bcs.SerializeU128(v)}
}

func U256Argument(v bcs.Uint256) Argument {
	return Argument{Type: types.TypeTagU256{}, bytes: bcs.SerializeU256(v)}
}

func BoolArgument(v bool) Argument {
	return Argument{Type: types.TypeTagBool{}, bytes: bcs.SerializeBool(v)}
}

func AddressArgument(addr types.AccountAddress) Argument {
	return Argument{Type: types.TypeTagAddress{}, bytes: addr.Bytes()}
}

// StringArgument encodes v as a 0x1::string::String.
func StringArgument(v string) Argument {
	bz, _ := bcs.SerializeStr(v)
	return Argument{
		Type: types.NewStructTypeTag(types.StructTag{
			Address: types.StdAddress,
			Module:  "string",
			Name:    "String",
		}),
		bytes: bz,
	}
}

// BytesArgument encodes v as a vector<u8>.
func BytesArgument(v []byte) Argument {
	bz, _ := bcs.SerializeBytes(v)
	return Argument{Type: types.NewVectorTypeTag(types.TypeTagU8{}), bytes: bz}
}

// RawArgument wraps bytes the caller already encoded.
func RawArgument(bz []byte) Argument {
	return NewArgument(nil, bz)
}

// VectorArgument encodes items as a vector<elem>. Every typed item must be of
// type elem.
func VectorArgument(elem types.TypeTag, items ...Argument) (Argument, error) {
	if elem == nil {
		return Argument{}, errorsmod.Wrap(ErrInvalidArgument, "vector without element type")
	}

	s := bcs.NewSerializer()
	if err := s.SerializeLen(len(items)); err != nil {
		return Argument{}, err
	}
	for i, item := range items {
		if item.Type != nil && item.Type.String() != elem.String() {
			return Argument{}, errorsmod.Wrapf(ErrInvalidArgument, "item %d is %s, expected %s", i, item.Type, elem)
		}
		if err := s.SerializeFixedBytes(item.bytes); err != nil {
			return Argument{}, err
		}
	}

	return Argument{Type: types.NewVectorTypeTag(elem), bytes: s.GetBytes()}, nil
}

func argumentBytes(args []Argument) [][]byte {
	if len(args) == 0 {
		return nil
	}

	out := make([][]byte, len(args))
	for i, arg := range args {
		out[i] = arg.Bytes()
	}

	return out
}
