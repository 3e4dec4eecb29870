package frontend

import (
	"strings"
)

// commands recognised at the start of a line after @ or \. Anything else,
// such as \sqrt inside a formula, stays text.
var knownCommands = map[string]string{
	"brief":      "brief",
	"short":      "brief",
	"param":      "param",
	"tparam":     "tparam",
	"return":     "return",
	"returns":    "return",
	"result":     "return",
	"details":    "details",
	"pre":        "pre",
	"post":       "post",
	"note":       "note",
	"warning":    "warning",
	"see":        "see",
	"sa":         "see",
	"throws":     "throws",
	"throw":      "throws",
	"exception":  "throws",
	"deprecated": "deprecated",
	"since":      "since",
	"todo":       "todo",
}

// IsDocComment reports whether a raw comment uses one of the documentation
// comment forms: ///, //!, /** or /*!
func IsDocComment(raw string) bool {
	switch {
	case strings.HasPrefix(raw, "////"), strings.HasPrefix(raw, "/***"):
		return false
	case strings.HasPrefix(raw, "///"), strings.HasPrefix(raw, "//!"):
		return true
	case strings.HasPrefix(raw, "/**"), strings.HasPrefix(raw, "/*!"):
		return raw != "/**/"
	}
	return false
}

// IsTrailingDocComment reports whether raw documents the preceding
// declaration (///< or //!< or /**< or /*!<)
func IsTrailingDocComment(raw string) bool {
	for _, p := range []string{"///<", "//!<", "/**<", "/*!<"} {
		if strings.HasPrefix(raw, p) {
			return true
		}
	}
	return false
}

// ParseComment parses consecutive raw comments into a Comment. It returns
// nil when the comments hold no text.
func ParseComment(raws ...string) *Comment {
	var lines []string
	trailing := false
	for _, raw := range raws {
		if IsTrailingDocComment(raw) {
			trailing = true
		}
		lines = append(lines, stripMarkers(raw)...)
	}

	p := &commentParser{}
	for _, line := range lines {
		p.line(strings.TrimSpace(line))
	}
	p.flush()

	if len(p.blocks) == 0 {
		return nil
	}
	return &Comment{Blocks: p.blocks, Trailing: trailing}
}

func stripMarkers(raw string) []string {
	raw = strings.TrimRight(raw, " \t\r\n")
	if strings.HasPrefix(raw, "//") {
		body := strings.TrimLeft(raw[2:], "/!")
		body = strings.TrimPrefix(body, "<")
		return []string{body}
	}

	body := strings.TrimPrefix(raw, "/*")
	body = strings.TrimSuffix(body, "*/")
	body = strings.TrimLeft(body, "*!")
	body = strings.TrimPrefix(body, "<")

	parts := strings.Split(body, "\n")
	for i, part := range parts {
		part = strings.TrimSpace(strings.TrimRight(part, "\r"))
		if i > 0 && strings.HasPrefix(part, "*") {
			part = strings.TrimPrefix(part, "*")
		}
		parts[i] = part
	}
	return parts
}

type commentParser struct {
	blocks []CommentBlock
	cur    *CommentBlock
}

func (p *commentParser) flush() {
	if p.cur == nil {
		return
	}
	if p.cur.Kind != BlockParagraph || len(p.cur.Lines) > 0 {
		p.blocks = append(p.blocks, *p.cur)
	}
	p.cur = nil
}

func (p *commentParser) line(text string) {
	if text == "" {
		p.flush()
		return
	}

	if text[0] == '@' || text[0] == '\\' {
		word, rest := commandWord(text[1:])
		if cmd, ok := knownCommands[word]; ok {
			p.flush()
			p.startCommand(cmd, rest)
			return
		}
	}

	if p.cur == nil {
		p.cur = &CommentBlock{Kind: BlockParagraph}
	}
	p.cur.Lines = append(p.cur.Lines, text)
}

func (p *commentParser) startCommand(cmd, rest string) {
	block := CommentBlock{Kind: BlockCommand, Command: cmd}
	switch cmd {
	case "param", "tparam":
		block.Kind = BlockParam
		if cmd == "tparam" {
			block.Kind = BlockTParam
		}
		rest = strings.TrimSpace(rest)
		if strings.HasPrefix(rest, "[") {
			if end := strings.IndexByte(rest, ']'); end >= 0 {
				rest = rest[end+1:]
			}
		}
		block.Arg, rest = splitWord(rest)
	}
	if rest = strings.TrimSpace(rest); rest != "" {
		block.Lines = append(block.Lines, rest)
	}
	p.cur = &block
}

func splitWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t")
	end := strings.IndexAny(s, " \t")
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end+1:]
}

// commandWord splits the leading run of letters off s
func commandWord(s string) (word, rest string) {
	end := 0
	for end < len(s) && (s[end] >= 'a' && s[end] <= 'z' || s[end] >= 'A' && s[end] <= 'Z') {
		end++
	}
	return s[:end], s[end:]
}
