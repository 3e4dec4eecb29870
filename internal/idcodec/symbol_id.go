package idcodec

import (
	"crypto/sha1"
	"encoding/binary"

	"github.com/standardbeagle/cxxindex/internal/types"
)

// FromUSR derives the SymbolID of a declaration from its USR, the unified
// symbol reference string the front-end produces. Every redeclaration of the
// same entity, in any translation unit, has the same USR and so the same ID.
// An empty USR yields the zero ID.
func FromUSR(usr string) types.SymbolID {
	if usr == "" {
		return 0
	}
	sum := sha1.Sum([]byte(usr))
	return types.SymbolID(binary.BigEndian.Uint64(sum[:8]))
}

// EncodeSymbolID returns the compact base-63 token of id
func EncodeSymbolID(id types.SymbolID) string {
	return Encode(uint64(id))
}

// DecodeSymbolID parses a token produced by EncodeSymbolID
func DecodeSymbolID(encoded string) (types.SymbolID, error) {
	value, err := Decode(encoded)
	if err != nil {
		return 0, err
	}
	return types.SymbolID(value), nil
}

// MustDecodeSymbolID panics on invalid input; use only for known tokens.
func MustDecodeSymbolID(encoded string) types.SymbolID {
	id, err := DecodeSymbolID(encoded)
	if err != nil {
		panic("idcodec: MustDecodeSymbolID: " + err.Error())
	}
	return id
}
