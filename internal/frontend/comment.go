package frontend

import "strings"

type BlockKind uint8

const (
	// BlockParagraph is free text
	BlockParagraph BlockKind = iota
	// BlockCommand is a block command such as @brief or @return
	BlockCommand
	// BlockParam is @param <name>
	BlockParam
	// BlockTParam is @tparam <name>
	BlockTParam
)

// CommentBlock is one top-level part of a documentation comment
type CommentBlock struct {
	Kind BlockKind
	// Command is the command name without @ or \, e.g. "brief"
	Command string
	// Arg is the parameter name for BlockParam and BlockTParam
	Arg string
	// Lines holds the text lines with leading whitespace removed
	Lines []string
}

// Text joins the block's lines with single spaces
func (b CommentBlock) Text() string {
	return strings.Join(b.Lines, " ")
}

// Comment is a parsed documentation comment
type Comment struct {
	Blocks []CommentBlock
	// Trailing is set for comments written after the declaration (///<)
	Trailing bool
}
