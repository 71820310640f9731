package tx

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/types"
)

// TransactionPayload variant indexes. Variant 0 is the genesis write set,
// which user transactions never carry.
const (
	payloadWriteSet uint32 = iota
	payloadScript
	payloadModuleBundle
	payloadEntryFunction
)

// TransactionPayload is what a transaction executes.
type TransactionPayload interface {
	bcs.Marshaler

	isTransactionPayload()
}

var (
	_ TransactionPayload = Script{}
	_ TransactionPayload = ModuleBundle{}
	_ TransactionPayload = EntryFunction{}
)

// EntryFunction calls a public entry function of a published module. Args
// holds the BCS encoding of each argument in declared order.
type EntryFunction struct {
	Module   types.ModuleId
	Function string
	TypeArgs []types.TypeTag
	Args     [][]byte
}

// NewEntryFunction builds the payload calling `module::function<typeArgs>(args...)`,
// where module is `<address>::<name>`, e.g. `0x1::coin`.
func NewEntryFunction(module string, function string, typeArgs []types.TypeTag, args ...Argument) (EntryFunction, error) {
	moduleId, err := types.ParseModuleId(module)
	if err != nil {
		return EntryFunction{}, errorsmod.Wrap(ErrInvalidPayload, err.Error())
	}
	if err := types.ValidateIdentifier(function); err != nil {
		return EntryFunction{}, errorsmod.Wrapf(ErrInvalidPayload, "function name: %s", err)
	}
	for i, typeArg := range typeArgs {
		if typeArg == nil {
			return EntryFunction{}, errorsmod.Wrapf(ErrInvalidPayload, "type argument %d is nil", i)
		}
	}

	var tags []types.TypeTag
	if len(typeArgs) > 0 {
		tags = append(tags, typeArgs...)
	}

	return EntryFunction{
		Module:   moduleId,
		Function: function,
		TypeArgs: tags,
		Args:     argumentBytes(args),
	}, nil
}

func (EntryFunction) isTransactionPayload() {}

func (f EntryFunction) String() string {
	return fmt.Sprintf("%s::%s", f.Module, f.Function)
}

func (f EntryFunction) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(payloadEntryFunction); err != nil {
		return err
	}
	if err := s.Serialize(f.Module); err != nil {
		return err
	}
	if err := s.SerializeStr(f.Function); err != nil {
		return err
	}
	if err := bcs.SerializeSequence(s, f.TypeArgs); err != nil {
		return err
	}

	return bcs.SerializeByteSequences(s, f.Args)
}

func (f *EntryFunction) unmarshalBody(d *bcs.Deserializer) (err error) {
	if err = d.Deserialize(&f.Module); err != nil {
		return err
	}
	if f.Function, err = d.DeserializeStr(); err != nil {
		return err
	}
	if err = types.ValidateIdentifier(f.Function); err != nil {
		return errorsmod.Wrap(bcs.ErrMalformedInput, err.Error())
	}
	if f.TypeArgs, err = types.DeserializeTypeTags(d); err != nil {
		return err
	}
	if f.Args, err = bcs.DeserializeByteSequences(d); err != nil {
		return err
	}
	if len(f.Args) == 0 {
		f.Args = nil
	}

	return nil
}

// Script runs a compiled transaction script.
type Script struct {
	Code     []byte
	TypeArgs []types.TypeTag
	Args     []TransactionArgument
}

func (Script) isTransactionPayload() {}

func (sc Script) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(payloadScript); err != nil {
		return err
	}
	if err := s.SerializeBytes(sc.Code); err != nil {
		return err
	}
	if err := bcs.SerializeSequence(s, sc.TypeArgs); err != nil {
		return err
	}

	return bcs.SerializeSequence(s, sc.Args)
}

func (sc *Script) unmarshalBody(d *bcs.Deserializer) (err error) {
	if sc.Code, err = d.DeserializeBytes(); err != nil {
		return err
	}
	if sc.TypeArgs, err = types.DeserializeTypeTags(d); err != nil {
		return err
	}

	boxes, err := bcs.DeserializeSequence[transactionArgumentBox](d)
	if err != nil {
		return err
	}
	if len(boxes) == 0 {
		sc.Args = nil
		return nil
	}

	sc.Args = make([]TransactionArgument, len(boxes))
	for i, b := range boxes {
		sc.Args[i] = b.TransactionArgument
	}

	return nil
}

// ModuleBundle publishes compiled modules under the sender account.
type ModuleBundle struct {
	Modules [][]byte
}

func (ModuleBundle) isTransactionPayload() {}

func (mb ModuleBundle) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(payloadModuleBundle); err != nil {
		return err
	}

	return bcs.SerializeByteSequences(s, mb.Modules)
}

func (mb *ModuleBundle) unmarshalBody(d *bcs.Deserializer) (err error) {
	if mb.Modules, err = bcs.DeserializeByteSequences(d); err != nil {
		return err
	}
	if len(mb.Modules) == 0 {
		mb.Modules = nil
	}

	return nil
}

type payloadBox struct {
	TransactionPayload
}

func (b *payloadBox) UnmarshalBCS(d *bcs.Deserializer) error {
	variant, err := d.DeserializeVariantIndex()
	if err != nil {
		return err
	}

	switch variant {
	case payloadScript:
		var sc Script
		if err := sc.unmarshalBody(d); err != nil {
			return err
		}
		b.TransactionPayload = sc
	case payloadModuleBundle:
		var mb ModuleBundle
		if err := mb.unmarshalBody(d); err != nil {
			return err
		}
		b.TransactionPayload = mb
	case payloadEntryFunction:
		var f EntryFunction
		if err := f.unmarshalBody(d); err != nil {
			return err
		}
		b.TransactionPayload = f
	case payloadWriteSet:
		return errorsmod.Wrap(bcs.ErrMalformedInput, "write set payloads are not accepted")
	default:
		return errorsmod.Wrapf(bcs.ErrMalformedInput, "unknown payload variant %d", variant)
	}

	return nil
}

// TransactionArgument variant indexes
const (
	txnArgU8 uint32 = iota
	txnArgU64
	txnArgU128
	txnArgAddress
	txnArgU8Vector
	txnArgBool
)

// TransactionArgument is a self describing script argument.
type TransactionArgument interface {
	bcs.Marshaler

	isTransactionArgument()
}

type (
	TransactionArgumentU8       struct{ Value uint8 }
	TransactionArgumentU64      struct{ Value uint64 }
	TransactionArgumentU128     struct{ Value bcs.Uint128 }
	TransactionArgumentAddress  struct{ Value types.AccountAddress }
	TransactionArgumentU8Vector struct{ Value []byte }
	TransactionArgumentBool     struct{ Value bool }
)

func (TransactionArgumentU8) isTransactionArgument()       {}
func (TransactionArgumentU64) isTransactionArgument()      {}
func (TransactionArgumentU128) isTransactionArgument()     {}
func (TransactionArgumentAddress) isTransactionArgument()  {}
func (TransactionArgumentU8Vector) isTransactionArgument() {}
func (TransactionArgumentBool) isTransactionArgument()     {}

func (a TransactionArgumentU8) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(txnArgU8); err != nil {
		return err
	}
	return s.SerializeU8(a.Value)
}

func (a TransactionArgumentU64) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(txnArgU64); err != nil {
		return err
	}
	return s.SerializeU64(a.Value)
}

func (a TransactionArgumentU128) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(txnArgU128); err != nil {
		return err
	}
	return s.SerializeU128(a.Value)
}

func (a TransactionArgumentAddress) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(txnArgAddress); err != nil {
		return err
	}
	return a.Value.MarshalBCS(s)
}

func (a TransactionArgumentU8Vector) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(txnArgU8Vector); err != nil {
		return err
	}
	return s.SerializeBytes(a.Value)
}

func (a TransactionArgumentBool) MarshalBCS(s *bcs.Serializer) error {
	if err := s.SerializeVariantIndex(txnArgBool); err != nil {
		return err
	}
	return s.SerializeBool(a.Value)
}

type transactionArgumentBox struct {
	TransactionArgument
}

func (b *transactionArgumentBox) UnmarshalBCS(d *bcs.Deserializer) error {
	variant, err := d.DeserializeVariantIndex()
	if err != nil {
		return err
	}

	switch variant {
	case txnArgU8:
		v, err := d.DeserializeU8()
		b.TransactionArgument = TransactionArgumentU8{Value: v}
		return err
	case txnArgU64:
		v, err := d.DeserializeU64()
		b.TransactionArgument = TransactionArgumentU64{Value: v}
		return err
	case txnArgU128:
		v, err := d.DeserializeU128()
		b.TransactionArgument = TransactionArgumentU128{Value: v}
		return err
	case txnArgAddress:
		var addr types.AccountAddress
		err := addr.UnmarshalBCS(d)
		b.TransactionArgument = TransactionArgumentAddress{Value: addr}
		return err
	case txnArgU8Vector:
		v, err := d.DeserializeBytes()
		b.TransactionArgument = TransactionArgumentU8Vector{Value: v}
		return err
	case txnArgBool:
		v, err := d.DeserializeBool()
		b.TransactionArgument = TransactionArgumentBool{Value: v}
		return err
	default:
		return errorsmod.Wrapf(bcs.ErrMalformedInput, "unknown transaction argument variant %d", variant)
	}
}
