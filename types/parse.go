package types

import (
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// maxTypeTagDepth bounds vector and generic nesting while parsing.
const maxTypeTagDepth = 64

// ParseTypeTag parses the canonical string form of a type tag:
//
//	bool | u8 | u16 | u32 | u64 | u128 | u256 | address | signer
//	vector<T>
//	<address>::<module>::<name>[<T, ...>]
func ParseTypeTag(s string) (TypeTag, error) {
	p := &typeTagParser{input: s}

	tag, err := p.parseTypeTag(0)
	if err != nil {
		return nil, err
	}

	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected trailing input %q", p.input[p.pos:])
	}

	return tag, nil
}

// ParseStructTag parses `<address>::<module>::<name>[<T, ...>]`.
func ParseStructTag(s string) (StructTag, error) {
	tag, err := ParseTypeTag(s)
	if err != nil {
		return StructTag{}, err
	}

	return TypeTagToStructTag(tag)
}

// ParseTypeTags parses each of typeArgs, e.g. the generics of an entry function call.
func ParseTypeTags(typeArgs []string) ([]TypeTag, error) {
	if len(typeArgs) == 0 {
		return nil, nil
	}

	tags := make([]TypeTag, len(typeArgs))
	for i, typeArg := range typeArgs {
		tag, err := ParseTypeTag(typeArg)
		if err != nil {
			return nil, err
		}

		tags[i] = tag
	}

	return tags, nil
}

type typeTagParser struct {
	input string
	pos   int
}

func (p *typeTagParser) errorf(format string, args ...any) error {
	return errorsmod.Wrapf(ErrInvalidTypeTag, "%q: %s", p.input, fmt.Sprintf(format, args...))
}

func (p *typeTagParser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *typeTagParser) skipSpace() {
	for !p.eof() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

// readWord consumes identifier and address characters.
func (p *typeTagParser) readWord() string {
	p.skipSpace()

	start := p.pos
	for !p.eof() {
		c := p.input[p.pos]
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			p.pos++
			continue
		}
		break
	}

	return p.input[start:p.pos]
}

// consume skips whitespace and then token if it is next.
func (p *typeTagParser) consume(token string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], token) {
		p.pos += len(token)
		return true
	}

	return false
}

func (p *typeTagParser) expect(token string) error {
	if !p.consume(token) {
		if p.eof() {
			return p.errorf("expected %q at end of input", token)
		}
		return p.errorf("expected %q at offset %d", token, p.pos)
	}

	return nil
}

func (p *typeTagParser) parseTypeTag(depth int) (TypeTag, error) {
	if depth > maxTypeTagDepth {
		return nil, p.errorf("nesting deeper than %d", maxTypeTagDepth)
	}

	word := p.readWord()
	if word == "" {
		return nil, p.errorf("expected a type at offset %d", p.pos)
	}

	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], "::") {
		st, err := p.parseStructTag(word, depth)
		if err != nil {
			return nil, err
		}

		return TypeTagStruct{Value: st}, nil
	}

	switch word {
	case "bool":
		return TypeTagBool{}, nil
	case "u8":
		return TypeTagU8{}, nil
	case "u16":
		return TypeTagU16{}, nil
	case "u32":
		return TypeTagU32{}, nil
	case "u64":
		return TypeTagU64{}, nil
	case "u128":
		return TypeTagU128{}, nil
	case "u256":
		return TypeTagU256{}, nil
	case "address":
		return TypeTagAddress{}, nil
	case "signer":
		return TypeTagSigner{}, nil
	case "vector":
		if err := p.expect("<"); err != nil {
			return nil, err
		}
		elem, err := p.parseTypeTag(depth + 1)
		if err != nil {
			return nil, err
		}
		if err := p.expect(">"); err != nil {
			return nil, err
		}

		return TypeTagVector{Elem: elem}, nil
	default:
		return nil, p.errorf("unknown type %q", word)
	}
}

func (p *typeTagParser) parseStructTag(addrStr string, depth int) (StructTag, error) {
	addr, err := NewAccountAddress(addrStr)
	if err != nil {
		return StructTag{}, p.errorf("invalid module address %q", addrStr)
	}
	if err := p.expect("::"); err != nil {
		return StructTag{}, err
	}

	module := p.readWord()
	if ValidateIdentifier(module) != nil {
		return StructTag{}, p.errorf("invalid module name %q", module)
	}
	if err := p.expect("::"); err != nil {
		return StructTag{}, err
	}

	name := p.readWord()
	if ValidateIdentifier(name) != nil {
		return StructTag{}, p.errorf("invalid struct name %q", name)
	}

	st := StructTag{
		Address: addr,
		Module:  module,
		Name:    name,
	}
	if !p.consume("<") {
		return st, nil
	}

	for {
		arg, err := p.parseTypeTag(depth + 1)
		if err != nil {
			return StructTag{}, err
		}
		st.TypeArgs = append(st.TypeArgs, arg)

		if p.consume(",") {
			continue
		}
		if err := p.expect(">"); err != nil {
			return StructTag{}, err
		}

		return st, nil
	}
}
