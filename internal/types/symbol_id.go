package types

import (
	"fmt"
	"strconv"
)

// SymbolID is the stable cross translation unit identity of a declaration.
// It holds the first eight bytes of the SHA-1 digest of the declaration's USR
// (see idcodec.FromUSR). The zero value means "no symbol".
type SymbolID uint64

// IsZero reports whether the ID refers to no symbol
func (id SymbolID) IsZero() bool {
	return id == 0
}

// Hex returns the 16 character, zero padded, lowercase hex form of the ID.
// This is the token used in file names and hyperlinks.
func (id SymbolID) Hex() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// String implements fmt.Stringer
func (id SymbolID) String() string {
	return id.Hex()
}

// MarshalText encodes the ID as hex so it can be used as a JSON map key
func (id SymbolID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText decodes the hex form produced by MarshalText
func (id *SymbolID) UnmarshalText(text []byte) error {
	v, err := ParseSymbolID(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// ParseSymbolID parses the hex form of a SymbolID
func ParseSymbolID(s string) (SymbolID, error) {
	if len(s) == 0 || len(s) > 16 {
		return 0, fmt.Errorf("invalid symbol id %q: want 1-16 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid symbol id %q: %w", s, err)
	}
	return SymbolID(v), nil
}
