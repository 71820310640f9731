package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/initia-labs/movetx/bcs"
)

func testCoinTag() StructTag {
	return StructTag{
		Address: StdAddress,
		Module:  "TestCoin",
		Name:    "TestCoin",
	}
}

func TestParseTypeTag(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expRes TypeTag
		expErr bool
	}{
		{"bool", "bool", TypeTagBool{}, false},
		{"u8", "u8", TypeTagU8{}, false},
		{"u16", "u16", TypeTagU16{}, false},
		{"u32", "u32", TypeTagU32{}, false},
		{"u64", "u64", TypeTagU64{}, false},
		{"u128", "u128", TypeTagU128{}, false},
		{"u256", "u256", TypeTagU256{}, false},
		{"address", "address", TypeTagAddress{}, false},
		{"signer", "signer", TypeTagSigner{}, false},
		{"vector", "vector<u8>", TypeTagVector{Elem: TypeTagU8{}}, false},
		{"nested vector", "vector< vector<address> >", TypeTagVector{Elem: TypeTagVector{Elem: TypeTagAddress{}}}, false},
		{"struct", "0x1::TestCoin::TestCoin", TypeTagStruct{Value: testCoinTag()}, false},
		{"struct without 0x", "1::TestCoin::TestCoin", TypeTagStruct{Value: testCoinTag()}, false},
		{"struct padded address", "0x0000000000000000000000000000000000000000000000000000000000000001::TestCoin::TestCoin", TypeTagStruct{Value: testCoinTag()}, false},
		{"generic struct", "0x1::Coin::CoinStore<0x1::TestCoin::TestCoin>", TypeTagStruct{Value: StructTag{
			Address:  StdAddress,
			Module:   "Coin",
			Name:     "CoinStore",
			TypeArgs: []TypeTag{TypeTagStruct{Value: testCoinTag()}},
		}}, false},
		{"multiple generics", "0x1::pair::Pair<u64, vector<bool>>", TypeTagStruct{Value: StructTag{
			Address:  StdAddress,
			Module:   "pair",
			Name:     "Pair",
			TypeArgs: []TypeTag{TypeTagU64{}, TypeTagVector{Elem: TypeTagBool{}}},
		}}, false},
		{"unknown primitive", "u63", nil, true},
		{"empty", "", nil, true},
		{"unbalanced open", "vector<u8", nil, true},
		{"unbalanced close", "vector<u8>>", nil, true},
		{"unbalanced generics", "0x1::Coin::CoinStore<0x1::TestCoin::TestCoin", nil, true},
		{"empty generics", "0x1::Coin::CoinStore<>", nil, true},
		{"missing name", "0x1::Coin", nil, true},
		{"missing module", "0x1::::TestCoin", nil, true},
		{"bad address", "0xzz::Coin::CoinStore", nil, true},
		{"long address", "0x10000000000000000000000000000000000000000000000000000000000000001::a::b", nil, true},
		{"bad identifier", "0x1::1coin::Coin", nil, true},
		{"trailing comma", "0x1::pair::Pair<u64,>", nil, true},
		{"vector without generic", "vector", nil, true},
	}

	for _, tc := range testCases {
		res, err := ParseTypeTag(tc.input)
		if tc.expErr {
			require.ErrorIs(t, err, ErrInvalidTypeTag, tc.name)
		} else {
			require.NoError(t, err, tc.name)
			require.Equal(t, tc.expRes, res, tc.name)
		}
	}
}

func TestParseStructTag(t *testing.T) {
	st, err := ParseStructTag("0x1::TestCoin::TestCoin")
	require.NoError(t, err)
	require.Equal(t, testCoinTag(), st)

	_, err = ParseStructTag("vector<u8>")
	require.ErrorIs(t, err, ErrInvalidTypeTag)
}

func TestTypeTagString(t *testing.T) {
	input := "0x1::Coin::CoinStore<0x1::TestCoin::TestCoin, vector<u8>>"

	tag, err := ParseTypeTag(input)
	require.NoError(t, err)
	require.Equal(t, input, tag.String())

	tag, err = ParseTypeTag("0x01::Coin::CoinStore<0x1::TestCoin::TestCoin,vector<u8>>")
	require.NoError(t, err)
	require.Equal(t, input, tag.String())
}

func TestTypeTagBCS(t *testing.T) {
	testCases := []struct {
		name   string
		tag    TypeTag
		expRes []byte
	}{
		{"bool", TypeTagBool{}, []byte{0x00}},
		{"u8", TypeTagU8{}, []byte{0x01}},
		{"u64", TypeTagU64{}, []byte{0x02}},
		{"u128", TypeTagU128{}, []byte{0x03}},
		{"address", TypeTagAddress{}, []byte{0x04}},
		{"signer", TypeTagSigner{}, []byte{0x05}},
		{"vector<u8>", TypeTagVector{Elem: TypeTagU8{}}, []byte{0x06, 0x01}},
		{"u16", TypeTagU16{}, []byte{0x08}},
		{"u32", TypeTagU32{}, []byte{0x09}},
		{"u256", TypeTagU256{}, []byte{0x0a}},
	}

	for _, tc := range testCases {
		res, err := bcs.Marshal(tc.tag)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.expRes, res, tc.name)
	}

	// 0x1::TestCoin::TestCoin
	expected := []byte{0x07}
	expected = append(expected, StdAddress[:]...)
	expected = append(expected, 0x08)
	expected = append(expected, []byte("TestCoin")...)
	expected = append(expected, 0x08)
	expected = append(expected, []byte("TestCoin")...)
	expected = append(expected, 0x00)

	res, err := bcs.Marshal(NewStructTypeTag(testCoinTag()))
	require.NoError(t, err)
	require.Equal(t, expected, res)
}

func TestDeserializeTypeTagMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		input []byte
	}{
		{"unknown variant", []byte{0x0b}},
		{"empty", []byte{}},
		{"vector without element", []byte{0x06}},
		{"truncated struct", []byte{0x07, 0x00, 0x01}},
		{"invalid identifier", append(append([]byte{0x07}, StdAddress[:]...), 0x01, '1', 0x01, 'a', 0x00)},
		{"deep nesting", bytes.Repeat([]byte{0x06}, 1000)},
	}

	for _, tc := range testCases {
		d := bcs.NewDeserializer(tc.input)
		_, err := DeserializeTypeTag(d)
		require.ErrorIs(t, err, bcs.ErrMalformedInput, tc.name)
	}
}

func identifierGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9_]{0,8}`)
}

func typeTagGen(depth int) *rapid.Generator[TypeTag] {
	return rapid.Custom(func(t *rapid.T) TypeTag {
		maxKind := 10
		if depth <= 0 {
			maxKind = 8
		}

		switch rapid.IntRange(0, maxKind).Draw(t, "kind") {
		case 0:
			return TypeTagBool{}
		case 1:
			return TypeTagU8{}
		case 2:
			return TypeTagU16{}
		case 3:
			return TypeTagU32{}
		case 4:
			return TypeTagU64{}
		case 5:
			return TypeTagU128{}
		case 6:
			return TypeTagU256{}
		case 7:
			return TypeTagAddress{}
		case 8:
			return TypeTagSigner{}
		case 9:
			return TypeTagVector{Elem: typeTagGen(depth - 1).Draw(t, "elem")}
		default:
			addr, err := NewAccountAddressFromBytes(rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(t, "address"))
			if err != nil {
				t.Fatalf("address: %v", err)
			}

			st := StructTag{
				Address: addr,
				Module:  identifierGen().Draw(t, "module"),
				Name:    identifierGen().Draw(t, "name"),
			}
			args := rapid.SliceOfN(typeTagGen(depth-1), 0, 3).Draw(t, "args")
			if len(args) > 0 {
				st.TypeArgs = args
			}

			return TypeTagStruct{Value: st}
		}
	})
}

func TestTypeTagRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tag := typeTagGen(3).Draw(t, "tag")

		bz, err := bcs.Marshal(tag)
		require.NoError(t, err)

		d := bcs.NewDeserializer(bz)
		decoded, err := DeserializeTypeTag(d)
		require.NoError(t, err)
		require.Zero(t, d.Remaining())
		require.Equal(t, tag, decoded)

		parsed, err := ParseTypeTag(tag.String())
		require.NoError(t, err)
		require.Equal(t, tag, parsed)
	})
}
