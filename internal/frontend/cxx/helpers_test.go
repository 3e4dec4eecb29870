package cxx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeType(t *testing.T) {
	tests := []struct {
		prefix, base string
		parts        []string
		pack         bool
		want         string
	}{
		{"", "int", nil, false, "int"},
		{"const ", "Foo", []string{"*"}, false, "const Foo *"},
		{"", "T", []string{"&"}, false, "T &"},
		{"", "int", []string{"*const", "*"}, false, "int *const *"},
		{"", "char", []string{"*", "*"}, false, "char **"},
		{"", "float", []string{"[3]"}, false, "float[3]"},
		{"", "Ts", nil, true, "Ts..."},
		{"", "Ts", []string{"&&"}, true, "Ts &&..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, composeType(tt.prefix, tt.base, tt.parts, tt.pack))
	}
}

func TestQualifiedNames(t *testing.T) {
	assert.Equal(t, "std::vector", stripTemplateArgs("std::vector<std::pair<int, int>>"))

	qual, name := splitQualified("a::b<c::d>::e")
	assert.Equal(t, "a::b<c::d>", qual)
	assert.Equal(t, "e", name)

	qual, name = splitQualified("plain")
	assert.Empty(t, qual)
	assert.Equal(t, "plain", name)
}

func TestParseIntLiteral(t *testing.T) {
	tests := map[string]int64{
		"42":        42,
		"0x1F":      31,
		"010":       8,
		"0b101":     5,
		"1'000'000": 1000000,
		"7ull":      7,
		"0":         0,
		"-1":        -1,
		"-0x10":     -16,
		"+3":        3,
	}
	for text, want := range tests {
		got, ok := parseIntLiteral(text)
		assert.True(t, ok, text)
		assert.Equal(t, want, got, text)
	}
	_, ok := parseIntLiteral("1.5")
	assert.False(t, ok)
	_, ok = parseIntLiteral("-")
	assert.False(t, ok)
}

func TestIsOperatorName(t *testing.T) {
	assert.True(t, isOperatorName("operator=="))
	assert.True(t, isOperatorName("operator()"))
	assert.True(t, isOperatorName("operator new"))
	assert.False(t, isOperatorName("operatorCount"))
	assert.False(t, isOperatorName("opera"))
}
