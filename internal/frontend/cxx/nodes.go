package cxx

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// nodeText returns the source text covered by node
func nodeText(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start > uint(len(src)) || end > uint(len(src)) || start > end {
		return ""
	}
	return string(src[start:end])
}

// line is the 1-based line the node starts on
func line(node *sitter.Node) int {
	if node == nil {
		return 0
	}
	return int(node.StartPosition().Row) + 1
}

func children(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.ChildCount())
	for i := uint(0); i < node.ChildCount(); i++ {
		if c := node.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func childOfKind(node *sitter.Node, kinds ...string) *sitter.Node {
	for _, c := range children(node) {
		for _, k := range kinds {
			if c.Kind() == k {
				return c
			}
		}
	}
	return nil
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Kind() == b.Kind()
}

// collapse normalizes runs of whitespace to single spaces
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripTemplateArgs removes every <...> group: "std::vector<int>" -> "std::vector"
func stripTemplateArgs(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return collapse(b.String())
}

// splitQualified splits "a::b<c::d>::e" into "a::b<c::d>" and "e"
func splitQualified(s string) (qualifier, name string) {
	depth := 0
	for i := len(s) - 1; i > 0; i-- {
		switch s[i] {
		case '>':
			depth++
		case '<':
			depth--
		case ':':
			if depth == 0 && s[i-1] == ':' {
				return strings.TrimSpace(s[:i-1]), strings.TrimSpace(s[i+1:])
			}
		}
	}
	return "", strings.TrimSpace(s)
}

// lastComponent returns the unqualified name
func lastComponent(s string) string {
	_, name := splitQualified(s)
	return name
}
