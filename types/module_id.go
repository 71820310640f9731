package types

import (
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/initia-labs/movetx/bcs"
)

// ModuleId identifies a published module by its account and name.
type ModuleId struct {
	Address AccountAddress
	Name    string
}

var (
	_ bcs.Marshaler   = ModuleId{}
	_ bcs.Unmarshaler = (*ModuleId)(nil)
)

// NewModuleId validates name and returns the module id.
func NewModuleId(addr AccountAddress, name string) (ModuleId, error) {
	if err := ValidateIdentifier(name); err != nil {
		return ModuleId{}, err
	}

	return ModuleId{Address: addr, Name: name}, nil
}

// ParseModuleId parses `<address>::<module>`, e.g. `0x1::coin`.
func ParseModuleId(s string) (ModuleId, error) {
	parts := strings.Split(strings.TrimSpace(s), "::")
	if len(parts) != 2 {
		return ModuleId{}, errorsmod.Wrapf(ErrInvalidTypeTag, "malformed module path %q", s)
	}

	addr, err := NewAccountAddress(parts[0])
	if err != nil {
		return ModuleId{}, errorsmod.Wrapf(ErrInvalidTypeTag, "malformed module path %q: %s", s, err)
	}
	if err := ValidateIdentifier(parts[1]); err != nil {
		return ModuleId{}, errorsmod.Wrapf(ErrInvalidTypeTag, "malformed module path %q: %s", s, err)
	}

	return ModuleId{Address: addr, Name: parts[1]}, nil
}

// String returns `<short address>::<name>`.
func (m ModuleId) String() string {
	return m.Address.ShortString() + "::" + m.Name
}

func (m ModuleId) MarshalBCS(s *bcs.Serializer) error {
	if err := m.Address.MarshalBCS(s); err != nil {
		return err
	}

	return s.SerializeStr(m.Name)
}

func (m *ModuleId) UnmarshalBCS(d *bcs.Deserializer) (err error) {
	if err = m.Address.UnmarshalBCS(d); err != nil {
		return err
	}

	m.Name, err = deserializeIdentifier(d)
	return err
}
