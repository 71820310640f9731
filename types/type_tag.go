package types

import (
	"fmt"
	"regexp"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
)

// TypeTag variant indexes
const (
	typeTagBool uint32 = iota
	typeTagU8
	typeTagU64
	typeTagU128
	typeTagAddress
	typeTagSigner
	typeTagVector
	typeTagStruct
	typeTagU16
	typeTagU32
	typeTagU256
)

// TypeTag is a Move type used as a generic argument. The set of variants is
// closed; every variant writes its variant index before its payload.
type TypeTag interface {
	bcs.Marshaler
	fmt.Stringer

	isTypeTag()
}

type (
	TypeTagBool    struct{}
	TypeTagU8      struct{}
	TypeTagU16     struct{}
	TypeTagU32     struct{}
	TypeTagU64     struct{}
	TypeTagU128    struct{}
	TypeTagU256    struct{}
	TypeTagAddress struct{}
	TypeTagSigner  struct{}

	// TypeTagVector is vector<Elem>.
	TypeTagVector struct {
		Elem TypeTag
	}

	// TypeTagStruct wraps a fully qualified struct type.
	TypeTagStruct struct {
		Value StructTag
	}
)

func (TypeTagBool) isTypeTag()    {}
func (TypeTagU8) isTypeTag()      {}
func (TypeTagU16) isTypeTag()     {}
func (TypeTagU32) isTypeTag()     {}
func (TypeTagU64) isTypeTag()     {}
func (TypeTagU128) isTypeTag()    {}
func (TypeTagU256) isTypeTag()    {}
func (TypeTagAddress) isTypeTag() {}
func (TypeTagSigner) isTypeTag()  {}
func (TypeTagVector) isTypeTag()  {}
func (TypeTagStruct) isTypeTag()  {}

func (TypeTagBool) String() string    { return "bool" }
func (TypeTagU8) String() string      { return "u8" }
func (TypeTagU16) String() string     { return "u16" }
func (TypeTagU32) String() string     { return "u32" }
func (TypeTagU64) String() string     { return "u64" }
func (TypeTagU128) String() string    { return "u128" }
func (TypeTagU256) String() string    { return "u256" }
func (TypeTagAddress) String() string { return "address" }
func (TypeTagSigner) String() string  { return "signer" }

func (t TypeTagVector) String() string {
	return "vector<" + t.Elem.String() + ">"
}

func (t TypeTagStruct) String() string {
	return t.Value.String()
}

func (TypeTagBool) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagBool)
}

func (TypeTagU8) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagU8)
}

func (TypeTagU16) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagU16)
}

func (TypeTagU32) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagU32)
}

func (TypeTagU64) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagU64)
}

func (TypeTagU128) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagU128)
}

func (TypeTagU256) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagU256)
}

func (TypeTagAddress) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagAddress)
}

func (TypeTagSigner) MarshalBCS(s *bcs.Serializer) error {
	return s.SerializeVariantIndex(typeTagSigner)
}

func (t TypeTagVector) MarshalBCS(s *bcs.Serializer) error {
	if t.Elem == nil {
		return errorsmod.Wrap(ErrInvalidTypeTag, "vector without element type")
	}
	if err := s.SerializeVariantIndex(typeTagVector); err != nil {
		return err
	}

	return s.Serialize(t.Elem)
}

func (t TypeTagStruct) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(typeTagStruct); err != nil {
		return err
	}

	return s.Serialize(t.Value)
}

// NewStructTypeTag returns the TypeTag of a struct type.
func NewStructTypeTag(structTag StructTag) TypeTag {
	return TypeTagStruct{Value: structTag}
}

// NewVectorTypeTag returns vector<elem>.
func NewVectorTypeTag(elem TypeTag) TypeTag {
	return TypeTagVector{Elem: elem}
}

// TypeTagToStructTag returns the struct tag of a struct type tag.
func TypeTagToStructTag(tag TypeTag) (StructTag, error) {
	if st, ok := tag.(TypeTagStruct); ok {
		return st.Value, nil
	}

	return StructTag{}, errorsmod.Wrapf(ErrInvalidTypeTag, "%s is not a struct type", tag)
}

// typeTagBox lets a TypeTag be decoded through bcs.Deserializer.Deserialize, which
// tracks the nesting depth of vector and struct arguments.
type typeTagBox struct {
	TypeTag
}

func (b *typeTagBox) UnmarshalBCS(d *bcs.Deserializer) error {
	variant, err := d.DeserializeVariantIndex()
	if err != nil {
		return err
	}

	switch variant {
	case typeTagBool:
		b.TypeTag = TypeTagBool{}
	case typeTagU8:
		b.TypeTag = TypeTagU8{}
	case typeTagU16:
		b.TypeTag = TypeTagU16{}
	case typeTagU32:
		b.TypeTag = TypeTagU32{}
	case typeTagU64:
		b.TypeTag = TypeTagU64{}
	case typeTagU128:
		b.TypeTag = TypeTagU128{}
	case typeTagU256:
		b.TypeTag = TypeTagU256{}
	case typeTagAddress:
		b.TypeTag = TypeTagAddress{}
	case typeTagSigner:
		b.TypeTag = TypeTagSigner{}
	case typeTagVector:
		var elem typeTagBox
		if err := d.Deserialize(&elem); err != nil {
			return err
		}
		b.TypeTag = TypeTagVector{Elem: elem.TypeTag}
	case typeTagStruct:
		var st StructTag
		if err := d.Deserialize(&st); err != nil {
			return err
		}
		b.TypeTag = TypeTagStruct{Value: st}
	default:
		return errorsmod.Wrapf(bcs.ErrMalformedInput, "unknown type tag variant %d", variant)
	}

	return nil
}

// DeserializeTypeTag reads one variant prefixed TypeTag.
func DeserializeTypeTag(d *bcs.Deserializer) (TypeTag, error) {
	var b typeTagBox
	if err := d.Deserialize(&b); err != nil {
		return nil, err
	}

	return b.TypeTag, nil
}

// DeserializeTypeTags reads a length prefixed sequence of TypeTags.
func DeserializeTypeTags(d *bcs.Deserializer) ([]TypeTag, error) {
	boxes, err := bcs.DeserializeSequence[typeTagBox](d)
	if err != nil || len(boxes) == 0 {
		return nil, err
	}

	tags := make([]TypeTag, len(boxes))
	for i, b := range boxes {
		tags[i] = b.TypeTag
	}

	return tags, nil
}

// StructTag is a fully qualified struct type, e.g. `0x1::coin::CoinStore<0x1::aptos_coin::AptosCoin>`.
// Fields are encoded in declaration order.
type StructTag struct {
	Address  AccountAddress
	Module   string
	Name     string
	TypeArgs []TypeTag
}

var (
	_ bcs.Marshaler   = StructTag{}
	_ bcs.Unmarshaler = (*StructTag)(nil)
)

// String returns the canonical form, which ParseStructTag accepts.
func (st StructTag) String() string {
	var sb strings.Builder
	sb.WriteString(st.Address.ShortString())
	sb.WriteString("::")
	sb.WriteString(st.Module)
	sb.WriteString("::")
	sb.WriteString(st.Name)
	if len(st.TypeArgs) > 0 {
		args := make([]string, len(st.TypeArgs))
		for i, arg := range st.TypeArgs {
			args[i] = arg.String()
		}
		sb.WriteString("<")
		sb.WriteString(strings.Join(args, ", "))
		sb.WriteString(">")
	}

	return sb.String()
}

func (st StructTag) MarshalBCS(s *bcs.Serializer) error {
	if err := st.Address.MarshalBCS(s); err != nil {
		return err
	}
	if err := s.SerializeStr(st.Module); err != nil {
		return err
	}
	if err := s.SerializeStr(st.Name); err != nil {
		return err
	}

	return bcs.SerializeSequence(s, st.TypeArgs)
}

func (st *StructTag) UnmarshalBCS(d *bcs.Deserializer) (err error) {
	if err = st.Address.UnmarshalBCS(d); err != nil {
		return err
	}
	if st.Module, err = deserializeIdentifier(d); err != nil {
		return err
	}
	if st.Name, err = deserializeIdentifier(d); err != nil {
		return err
	}
	st.TypeArgs, err = DeserializeTypeTags(d)
	return err
}

var identifierRegex = regexp.MustCompile(`^(?:[a-zA-Z][a-zA-Z0-9_]*|_[a-zA-Z0-9_]+)$`)

// ValidateIdentifier checks that name is a Move identifier.
func ValidateIdentifier(name string) error {
	if !identifierRegex.MatchString(name) {
		return errorsmod.Wrapf(ErrInvalidIdentifier, "%q", name)
	}

	return nil
}

func deserializeIdentifier(d *bcs.Deserializer) (string, error) {
	name, err := d.DeserializeStr()
	if err != nil {
		return "", err
	}
	if err := ValidateIdentifier(name); err != nil {
		return "", errorsmod.Wrap(bcs.ErrMalformedInput, err.Error())
	}

	return name, nil
}
