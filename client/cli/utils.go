package cli

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	sdkmath "cosmossdk.io/math"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/initia-labs/movetx/bcs"
	"github.com/initia-labs/movetx/tx"
	"github.com/initia-labs/movetx/types"
)

// BcsSerializeArg appends the encoding of arg, given as a string, to s. The
// supported argument types are u8, u16, u32, u64, u128, u256, bool, string,
// address, raw_hex, raw_base64, decimal128, decimal256, fixed_point32,
// fixed_point64, vector<inner_type> and option<inner_type>.
func BcsSerializeArg(argType string, arg string, s *bcs.Serializer) ([]byte, error) {
	if arg == "" && acceptsEmpty(argType) {
		err := s.SerializeBytes([]byte(arg))
		return s.GetBytes(), err
	}
	switch argType {
	case "raw_hex":
		decoded, err := hex.DecodeString(strings.TrimPrefix(arg, "0x"))
		if err != nil {
			return nil, err
		}

		err = s.SerializeBytes(decoded)
		return s.GetBytes(), err
	case "raw_base64":
		decoded, err := base64.StdEncoding.DecodeString(arg)
		if err != nil {
			return nil, err
		}

		err = s.SerializeBytes(decoded)
		return s.GetBytes(), err
	case "address", "object":
		addr, err := types.NewAccountAddress(arg)
		if err != nil {
			return nil, err
		}

		err = s.SerializeFixedBytes(addr[:])
		return s.GetBytes(), err
	case "string":
		err := s.SerializeStr(arg)
		return s.GetBytes(), err

	case "bool":
		if arg == "true" || arg == "True" {
			err := s.SerializeBool(true)
			return s.GetBytes(), err
		} else if arg == "false" || arg == "False" {
			err := s.SerializeBool(false)
			return s.GetBytes(), err
		} else {
			return nil, errors.New("unsupported bool value")
		}

	case "u8", "u16", "u32", "u64":
		bitSize, _ := strconv.Atoi(strings.TrimPrefix(argType, "u"))

		var num uint64
		var err error
		if strings.HasPrefix(arg, "0x") {
			num, err = strconv.ParseUint(strings.TrimPrefix(arg, "0x"), 16, bitSize)
		} else {
			num, err = strconv.ParseUint(arg, 10, bitSize)
		}
		if err != nil {
			return nil, err
		}

		switch argType {
		case "u8":
			err = s.SerializeU8(uint8(num))
		case "u16":
			err = s.SerializeU16(uint16(num))
		case "u32":
			err = s.SerializeU32(uint32(num))
		case "u64":
			err = s.SerializeU64(num)
		}
		return s.GetBytes(), err

	case "u128":
		n, err := parseBigUint(arg)
		if err != nil {
			return nil, err
		}
		v, err := bcs.Uint128FromBig(n)
		if err != nil {
			return nil, err
		}

		err = s.SerializeU128(v)
		return s.GetBytes(), err
	case "u256":
		n, err := parseBigUint(arg)
		if err != nil {
			return nil, err
		}
		v, err := bcs.Uint256FromBig(n)
		if err != nil {
			return nil, err
		}

		err = s.SerializeU256(v)
		return s.GetBytes(), err
	case "decimal128":
		dec, err := sdkmath.LegacyNewDecFromStr(arg)
		if err != nil {
			return nil, err
		}
		decstr := dec.MulInt64(1000000000000000000).TruncateInt().String()
		return BcsSerializeArg("u128", decstr, s)
	case "decimal256":
		dec, err := sdkmath.LegacyNewDecFromStr(arg)
		if err != nil {
			return nil, err
		}
		decstr := dec.MulInt64(1000000000000000000).TruncateInt().String()
		return BcsSerializeArg("u256", decstr, s)
	case "fixed_point32":
		dec, err := sdkmath.LegacyNewDecFromStr(arg)
		if err != nil {
			return nil, err
		}
		decstr := dec.MulInt64(4294967296).TruncateInt().String()
		return BcsSerializeArg("u64", decstr, s)
	case "fixed_point64":
		dec, err := sdkmath.LegacyNewDecFromStr(arg)
		if err != nil {
			return nil, err
		}
		denominator := new(big.Int).Lsh(big.NewInt(1), 64)
		decstr := dec.MulInt(sdkmath.NewIntFromBigInt(denominator)).TruncateInt().String()
		return BcsSerializeArg("u128", decstr, s)
	default:
		if vectorRegex.MatchString(argType) {
			vecType := getInnerType(argType)
			items := strings.Split(arg, ",")

			if err := s.SerializeLen(len(items)); err != nil {
				return nil, err
			}
			for _, item := range items {
				_, err := BcsSerializeArg(vecType, item, s)
				if err != nil {
					return nil, err
				}
			}
			return s.GetBytes(), nil
		} else if optionRegex.MatchString(argType) {
			optionType := getInnerType(argType)
			if arg == "null" {
				err := s.SerializeLen(0)
				return s.GetBytes(), err
			}
			if err := s.SerializeLen(1); err != nil {
				return nil, err
			}
			_, err := BcsSerializeArg(optionType, arg, s)
			if err != nil {
				return nil, err
			}

			return s.GetBytes(), nil
		} else {
			return nil, errors.New("unsupported type arg")
		}
	}
}

var (
	vectorRegex    = regexp.MustCompile(`^vector<(.*)>$`)
	optionRegex    = regexp.MustCompile(`^option<(.*)>$`)
	innerTypeRegex = regexp.MustCompile(`<(.*)>`)
)

// acceptsEmpty reports whether an empty value has a meaning for argType: an
// empty string, byte string or vector, or none for an option. Fixed width
// values must always be given.
func acceptsEmpty(argType string) bool {
	switch argType {
	case "string", "raw_hex", "raw_base64":
		return true
	}

	return vectorRegex.MatchString(argType) || optionRegex.MatchString(argType)
}

func getInnerType(arg string) string {
	return innerTypeRegex.FindStringSubmatch(arg)[1]
}

// parseBigUint parses a decimal or `0x` prefixed hex unsigned integer.
func parseBigUint(s string) (*big.Int, error) {
	n := new(big.Int)

	var ok bool
	if strings.HasPrefix(s, "0x") {
		_, ok = n.SetString(strings.TrimPrefix(s, "0x"), 16)
	} else {
		_, ok = n.SetString(s, 10)
	}
	if !ok {
		return nil, fmt.Errorf("failed to parse %q as unsigned integer", s)
	}
	if n.Sign() < 0 {
		return nil, errors.New("value cannot be negative")
	}

	return n, nil
}

// argTypeTag returns the Move type of an argument type name, or nil when the
// name does not determine one (raw bytes, fixed point and decimal encodings).
func argTypeTag(argType string) types.TypeTag {
	switch argType {
	case "raw_hex", "raw_base64", "decimal128", "decimal256", "fixed_point32", "fixed_point64":
		return nil
	case "object":
		return types.TypeTagAddress{}
	case "string":
		return types.NewStructTypeTag(types.StructTag{Address: types.StdAddress, Module: "string", Name: "String"})
	}

	if vectorRegex.MatchString(argType) {
		elem := argTypeTag(getInnerType(argType))
		if elem == nil {
			return nil
		}
		return types.NewVectorTypeTag(elem)
	}
	if optionRegex.MatchString(argType) {
		elem := argTypeTag(getInnerType(argType))
		if elem == nil {
			return nil
		}
		return types.NewStructTypeTag(types.StructTag{
			Address:  types.StdAddress,
			Module:   "option",
			Name:     "Option",
			TypeArgs: []types.TypeTag{elem},
		})
	}

	tag, err := types.ParseTypeTag(argType)
	if err != nil {
		return nil
	}
	return tag
}

// BCSEncode encodes each `<type>:<value>` argument.
func BCSEncode(args []string) ([][]byte, error) {
	bcsArgs := make([][]byte, len(args))
	for i, arg := range args {
		argType, value, found := strings.Cut(arg, ":")
		if !found {
			return nil, fmt.Errorf("argument %q is not in <type>:<value> form", arg)
		}

		bz, err := BcsSerializeArg(argType, value, bcs.NewSerializer())
		if err != nil {
			return nil, errors.Wrapf(err, "failed to encode %q", arg)
		}

		bcsArgs[i] = bz
	}

	return bcsArgs, nil
}

// ParseArguments encodes each `<type>:<value>` argument into an entry
// function argument.
func ParseArguments(args []string) ([]tx.Argument, error) {
	bcsArgs, err := BCSEncode(args)
	if err != nil {
		return nil, err
	}

	out := make([]tx.Argument, len(args))
	for i, arg := range args {
		argType, _, _ := strings.Cut(arg, ":")
		out[i] = tx.NewArgument(argTypeTag(argType), bcsArgs[i])
	}

	return out, nil
}

// readJSONStringArray splits a JSON array into its raw elements.
func readJSONStringArray(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return []string{}, nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(s), &raws); err != nil {
		return nil, err
	}

	res := make([]string, len(raws))
	for i, raw := range raws {
		res[i] = string(raw)
	}

	return res, nil
}

// decodeJSONStringArray decodes every raw JSON element into a T.
func decodeJSONStringArray[T any](ss []string) ([]T, error) {
	res := make([]T, len(ss))
	for i, s := range ss {
		if err := json.Unmarshal([]byte(s), &res[i]); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// ReadAndDecodeJSONStringArray reads the JSON array flag flagName and decodes
// its elements into Ts.
func ReadAndDecodeJSONStringArray[T any](cmd *cobra.Command, flagName string) ([]T, error) {
	s, err := cmd.Flags().GetString(flagName)
	if err != nil {
		return nil, err
	}

	ss, err := readJSONStringArray(s)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read --%s", flagName)
	}

	return decodeJSONStringArray[T](ss)
}

// ReadTypeArgs parses the type arguments of the --type-args flag.
func ReadTypeArgs(cmd *cobra.Command) ([]types.TypeTag, error) {
	typeArgs, err := ReadAndDecodeJSONStringArray[string](cmd, FlagTypeArgs)
	if err != nil {
		return nil, err
	}

	return types.ParseTypeTags(typeArgs)
}

// ReadArgs encodes the arguments of the --args flag.
func ReadArgs(cmd *cobra.Command) ([]tx.Argument, error) {
	args, err := ReadAndDecodeJSONStringArray[string](cmd, FlagArgs)
	if err != nil {
		return nil, err
	}

	return ParseArguments(args)
}
