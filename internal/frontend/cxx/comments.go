package cxx

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/cxxindex/internal/frontend"
)

// leadingComment gathers the documentation comments written directly above
// anchor. A blank line, a plain comment or a trailing comment of the
// previous declaration ends the run.
func leadingComment(anchor *sitter.Node, src []byte) *frontend.Comment {
	var raws []string
	nextRow := anchor.StartPosition().Row
	for s := anchor.PrevSibling(); s != nil && s.Kind() == "comment"; s = s.PrevSibling() {
		if s.EndPosition().Row+1 < nextRow {
			break
		}
		raw := nodeText(s, src)
		if !frontend.IsDocComment(raw) || frontend.IsTrailingDocComment(raw) {
			break
		}
		if prev := s.PrevSibling(); prev != nil && prev.Kind() != "comment" && prev.EndPosition().Row == s.StartPosition().Row {
			// shares a line with the previous declaration
			break
		}
		raws = append([]string{raw}, raws...)
		nextRow = s.StartPosition().Row
	}
	return frontend.ParseComment(raws...)
}

// memberComment is the leading comment of a field or enumerator, or failing
// that a ///< comment on the same line after it
func memberComment(node *sitter.Node, src []byte) *frontend.Comment {
	if c := leadingComment(node, src); c != nil {
		return c
	}
	row := node.EndPosition().Row
	s := node.NextSibling()
	for s != nil && (s.Kind() == "," || s.Kind() == ";") {
		s = s.NextSibling()
	}
	if s == nil || s.Kind() != "comment" || s.StartPosition().Row != row {
		return nil
	}
	if raw := nodeText(s, src); frontend.IsTrailingDocComment(raw) {
		return frontend.ParseComment(raw)
	}
	return nil
}
