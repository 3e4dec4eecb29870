package cxx

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// evalConst folds the integer constant expressions that appear as
// enumerator initializers. Names resolve against the enumerators seen so
// far. ok is false for anything it cannot fold.
func evalConst(n *sitter.Node, src []byte, names map[string]int64) (int64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.Kind() {
	case "number_literal":
		return parseIntLiteral(nodeText(n, src))
	case "char_literal":
		text := nodeText(n, src)
		unq, err := strconv.Unquote(text)
		if err != nil || len(unq) == 0 {
			return 0, false
		}
		return int64(unq[0]), true
	case "true":
		return 1, true
	case "false":
		return 0, true
	case "identifier", "qualified_identifier":
		v, ok := names[lastComponent(nodeText(n, src))]
		return v, ok
	case "parenthesized_expression":
		for _, c := range children(n) {
			if c.IsNamed() {
				return evalConst(c, src, names)
			}
		}
	case "unary_expression":
		v, ok := evalConst(n.ChildByFieldName("argument"), src, names)
		if !ok {
			return 0, false
		}
		switch nodeText(n.ChildByFieldName("operator"), src) {
		case "-":
			return -v, true
		case "+":
			return v, true
		case "~":
			return ^v, true
		case "!":
			if v == 0 {
				return 1, true
			}
			return 0, true
		}
	case "binary_expression":
		l, ok := evalConst(n.ChildByFieldName("left"), src, names)
		if !ok {
			return 0, false
		}
		r, ok := evalConst(n.ChildByFieldName("right"), src, names)
		if !ok {
			return 0, false
		}
		return applyBinary(nodeText(n.ChildByFieldName("operator"), src), l, r)
	case "cast_expression":
		return evalConst(n.ChildByFieldName("value"), src, names)
	}
	return 0, false
}

func applyBinary(op string, l, r int64) (int64, bool) {
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case "%":
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case "<<":
		if r < 0 || r > 63 {
			return 0, false
		}
		return l << uint(r), true
	case ">>":
		if r < 0 || r > 63 {
			return 0, false
		}
		return l >> uint(r), true
	case "|":
		return l | r, true
	case "&":
		return l & r, true
	case "^":
		return l ^ r, true
	}
	return 0, false
}

// parseIntLiteral handles decimal, hex, octal and binary literals with
// digit separators and integer suffixes. tree-sitter keeps a leading sign
// inside the literal node, so "-1" arrives here whole.
func parseIntLiteral(text string) (int64, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "'", "")
	negative := false
	switch {
	case strings.HasPrefix(text, "-"):
		negative, text = true, strings.TrimSpace(text[1:])
	case strings.HasPrefix(text, "+"):
		text = strings.TrimSpace(text[1:])
	}
	text = strings.TrimRight(text, "uUlLzZ")
	if text == "" {
		return 0, false
	}
	base := 10
	switch {
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		base, text = 16, text[2:]
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		base, text = 2, text[2:]
	case len(text) > 1 && text[0] == '0':
		base, text = 8, text[1:]
	}
	v, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		return -int64(v), true
	}
	return int64(v), true
}
