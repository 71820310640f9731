package bcs

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type testStruct struct {
	Small   uint8
	Medium  uint16
	Number  uint64
	Wide    Uint128
	Payload []byte
	Flag    bool
	Name    string
	Items   []testItem
}

type testItem struct {
	Value uint32
}

func (t testItem) MarshalBCS(s *Serializer) error {
	return s.SerializeU32(t.Value)
}

func (t *testItem) UnmarshalBCS(d *Deserializer) (err error) {
	t.Value, err = d.DeserializeU32()
	return err
}

func (t testStruct) MarshalBCS(s *Serializer) error {
	if err := s.SerializeU8(t.Small); err != nil {
		return err
	}
	if err := s.SerializeU16(t.Medium); err != nil {
		return err
	}
	if err := s.SerializeU64(t.Number); err != nil {
		return err
	}
	if err := s.SerializeU128(t.Wide); err != nil {
		return err
	}
	if err := s.SerializeBytes(t.Payload); err != nil {
		return err
	}
	if err := s.SerializeBool(t.Flag); err != nil {
		return err
	}
	if err := s.SerializeStr(t.Name); err != nil {
		return err
	}
	return SerializeSequence(s, t.Items)
}

func (t *testStruct) UnmarshalBCS(d *Deserializer) (err error) {
	if t.Small, err = d.DeserializeU8(); err != nil {
		return err
	}
	if t.Medium, err = d.DeserializeU16(); err != nil {
		return err
	}
	if t.Number, err = d.DeserializeU64(); err != nil {
		return err
	}
	if t.Wide, err = d.DeserializeU128(); err != nil {
		return err
	}
	if t.Payload, err = d.DeserializeBytes(); err != nil {
		return err
	}
	if t.Flag, err = d.DeserializeBool(); err != nil {
		return err
	}
	if t.Name, err = d.DeserializeStr(); err != nil {
		return err
	}
	t.Items, err = DeserializeSequence[testItem](d)
	return err
}

type u8Value struct {
	v uint8
}

func (u *u8Value) UnmarshalBCS(d *Deserializer) (err error) {
	u.v, err = d.DeserializeU8()
	return err
}

type bytesValue struct {
	v []byte
}

func (b *bytesValue) UnmarshalBCS(d *Deserializer) (err error) {
	b.v, err = d.DeserializeBytes()
	return err
}

type boolValue struct {
	v bool
}

func (b *boolValue) UnmarshalBCS(d *Deserializer) (err error) {
	b.v, err = d.DeserializeBool()
	return err
}

func TestSerializeU64(t *testing.T) {
	require.Equal(t, []byte{0xcd, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, SerializeU64(717))
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, SerializeU64(^uint64(0)))
}

func TestSerializePrimitives(t *testing.T) {
	testCases := []struct {
		name   string
		res    []byte
		expRes []byte
	}{
		{"u8", SerializeU8(0xab), []byte{0xab}},
		{"u16", SerializeU16(0x0102), []byte{0x02, 0x01}},
		{"u32", SerializeU32(0x01020304), []byte{0x04, 0x03, 0x02, 0x01}},
		{"bool true", SerializeBool(true), []byte{0x01}},
		{"bool false", SerializeBool(false), []byte{0x00}},
		{"u128", SerializeU128(Uint128{High: 0x0001020304050607, Low: 0x0809101112131415}),
			[]byte{0x15, 0x14, 0x13, 0x12, 0x11, 0x10, 0x09, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, 0x00}},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expRes, tc.res, tc.name)
	}
}

func TestSerializeBytesLengthPrefix(t *testing.T) {
	testCases := []struct {
		name   string
		length int
		prefix []byte
	}{
		{"empty", 0, []byte{0x00}},
		{"one byte prefix", 127, []byte{0x7f}},
		{"two byte prefix", 128, []byte{0x80, 0x01}},
		{"two byte prefix max", 16383, []byte{0xff, 0x7f}},
		{"three byte prefix", 16384, []byte{0x80, 0x80, 0x01}},
	}

	for _, tc := range testCases {
		payload := bytes.Repeat([]byte{0x07}, tc.length)
		res, err := SerializeBytes(payload)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.prefix, res[:len(tc.prefix)], tc.name)
		require.Equal(t, payload, res[len(tc.prefix):], tc.name)

		var decoded bytesValue
		require.NoError(t, Unmarshal(res, &decoded), tc.name)
		require.Equal(t, payload, decoded.v, tc.name)
	}
}

func TestSerializeStr(t *testing.T) {
	res, err := SerializeStr("hello")
	require.NoError(t, err)
	require.Equal(t, []byte{0x05, 0x68, 0x65, 0x6c, 0x6c, 0x6f}, res)
}

func TestUnmarshalMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
		value Unmarshaler
	}{
		{"trailing bytes", []byte{0x01, 0x02}, &u8Value{}},
		{"empty input", []byte{}, &u8Value{}},
		{"length exceeds input", []byte{0x05, 0x01, 0x02}, &bytesValue{}},
		{"huge length", []byte{0xff, 0xff, 0xff, 0xff, 0x07}, &bytesValue{}},
		{"invalid bool", []byte{0x02}, &boolValue{}},
		{"sequence length exceeds input", []byte{0x03, 0x01, 0x00, 0x00, 0x00}, &testStruct{}},
	}

	for _, tc := range testCases {
		err := Unmarshal(tc.input, tc.value)
		require.ErrorIs(t, err, ErrMalformedInput, tc.name)
	}
}

func TestStructRoundTrip(t *testing.T) {
	value := testStruct{
		Small:   1,
		Medium:  2,
		Number:  717,
		Wide:    NewUint128(3),
		Payload: []byte("payload"),
		Flag:    true,
		Name:    "transfer",
		Items:   []testItem{{Value: 1}, {Value: 2}},
	}

	bz, err := Marshal(value)
	require.NoError(t, err)

	var decoded testStruct
	require.NoError(t, Unmarshal(bz, &decoded))
	require.Equal(t, value, decoded)

	// truncating anywhere must fail
	for i := 0; i < len(bz); i++ {
		require.ErrorIs(t, Unmarshal(bz[:i], &testStruct{}), ErrMalformedInput)
	}
}

func TestStructRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := testStruct{
			Small:   rapid.Uint8().Draw(t, "small"),
			Medium:  rapid.Uint16().Draw(t, "medium"),
			Number:  rapid.Uint64().Draw(t, "number"),
			Wide:    Uint128{High: rapid.Uint64().Draw(t, "high"), Low: rapid.Uint64().Draw(t, "low")},
			Payload: rapid.SliceOfN(rapid.Byte(), 0, 300).Draw(t, "payload"),
			Flag:    rapid.Bool().Draw(t, "flag"),
			Name:    rapid.String().Draw(t, "name"),
		}
		for _, v := range rapid.SliceOfN(rapid.Uint32(), 0, 8).Draw(t, "items") {
			value.Items = append(value.Items, testItem{Value: v})
		}

		first, err := Marshal(value)
		require.NoError(t, err)
		second, err := Marshal(value)
		require.NoError(t, err)
		require.Equal(t, first, second)

		var decoded testStruct
		require.NoError(t, Unmarshal(first, &decoded))

		again, err := Marshal(decoded)
		require.NoError(t, err)
		require.Equal(t, first, again)
		require.Equal(t, value.Payload, decoded.Payload)
		require.Equal(t, value.Name, decoded.Name)
		require.Equal(t, value.Wide, decoded.Wide)
		require.Equal(t, len(value.Items), len(decoded.Items))
	})
}

func TestUint128Big(t *testing.T) {
	max, ok := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	require.True(t, ok)

	v, err := Uint128FromBig(max)
	require.NoError(t, err)
	require.Equal(t, Uint128{High: ^uint64(0), Low: ^uint64(0)}, v)
	require.Equal(t, 0, max.Cmp(Uint128ToBig(v)))

	_, err = Uint128FromBig(new(big.Int).Add(max, big.NewInt(1)))
	require.ErrorIs(t, err, ErrOverflow)

	_, err = Uint128FromBig(big.NewInt(-1))
	require.ErrorIs(t, err, ErrOverflow)
}

func TestUint256Big(t *testing.T) {
	n, ok := new(big.Int).SetString("0001020304050607080910111213141516171819202122232425262728293031", 16)
	require.True(t, ok)

	v, err := Uint256FromBig(n)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x31, 0x30, 0x29, 0x28, 0x27, 0x26, 0x25, 0x24, 0x23, 0x22, 0x21, 0x20, 0x19, 0x18, 0x17, 0x16,
		0x15, 0x14, 0x13, 0x12, 0x11, 0x10, 0x09, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, 0x00,
	}, SerializeU256(v))
	require.Equal(t, 0, n.Cmp(Uint256ToBig(v)))
}
