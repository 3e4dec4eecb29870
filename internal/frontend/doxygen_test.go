package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsDocComment(t *testing.T) {
	assert.True(t, IsDocComment("/// text"))
	assert.True(t, IsDocComment("//! text"))
	assert.True(t, IsDocComment("/** text */"))
	assert.True(t, IsDocComment("/*! text */"))
	assert.True(t, IsDocComment("///< trailing"))

	assert.False(t, IsDocComment("// plain"))
	assert.False(t, IsDocComment("/* plain */"))
	assert.False(t, IsDocComment("//// banner"))
	assert.False(t, IsDocComment("/***************/"))
	assert.False(t, IsDocComment("/**/"))
}

func TestParseCommentParagraph(t *testing.T) {
	c := ParseComment("/// Some comment")
	require.NotNil(t, c)
	require.Len(t, c.Blocks, 1)
	assert.Equal(t, BlockParagraph, c.Blocks[0].Kind)
	assert.Equal(t, "Some comment", c.Blocks[0].Text())
	assert.False(t, c.Trailing)
}

func TestParseCommentBlockStyle(t *testing.T) {
	c := ParseComment("/**\n     * Some comment\n     */")
	require.NotNil(t, c)
	require.Len(t, c.Blocks, 1)
	assert.Equal(t, "Some comment", c.Blocks[0].Text())

	c = ParseComment("/*!\n * @brief foo bar baz\n */")
	require.NotNil(t, c)
	require.Len(t, c.Blocks, 1)
	assert.Equal(t, BlockCommand, c.Blocks[0].Kind)
	assert.Equal(t, "brief", c.Blocks[0].Command)
	assert.Equal(t, "foo bar baz", c.Blocks[0].Text())
}

func TestParseCommentCommands(t *testing.T) {
	c := ParseComment(
		"/// @brief does foo to x and y",
		"///",
		"/// @param x bar",
		"/// @param[in] y  baz",
		"/// @returns boo",
	)
	require.NotNil(t, c)
	require.Len(t, c.Blocks, 4)

	assert.Equal(t, "does foo to x and y", c.Blocks[0].Text())
	assert.Equal(t, CommentBlock{Kind: BlockParam, Command: "param", Arg: "x", Lines: []string{"bar"}}, c.Blocks[1])
	assert.Equal(t, CommentBlock{Kind: BlockParam, Command: "param", Arg: "y", Lines: []string{"baz"}}, c.Blocks[2])
	assert.Equal(t, CommentBlock{Kind: BlockCommand, Command: "return", Lines: []string{"boo"}}, c.Blocks[3])
}

func TestParseCommentBackslashCommandsAndFormulas(t *testing.T) {
	c := ParseComment(
		`/// Calculate Euclidean distance in $\R^2$.`,
		`/// Corresponds to the following formula:`,
		`/// \tparam T a test comment`,
		`/// \return $\sqrt{x}$`,
	)
	require.NotNil(t, c)
	require.Len(t, c.Blocks, 3)
	assert.Equal(t, `Calculate Euclidean distance in $\R^2$. Corresponds to the following formula:`, c.Blocks[0].Text())
	assert.Equal(t, BlockTParam, c.Blocks[1].Kind)
	assert.Equal(t, "T", c.Blocks[1].Arg)
	assert.Equal(t, "a test comment", c.Blocks[1].Text())
	assert.Equal(t, `$\sqrt{x}$`, c.Blocks[2].Text())
}

func TestParseCommentDetailsSwallowFollowingLines(t *testing.T) {
	c := ParseComment(
		"/// @details",
		"/// Plot the curve",
		"/// where i = 0.",
	)
	require.NotNil(t, c)
	require.Len(t, c.Blocks, 1)
	assert.Equal(t, "details", c.Blocks[0].Command)
	assert.Equal(t, "Plot the curve where i = 0.", c.Blocks[0].Text())
}

func TestParseCommentTrailing(t *testing.T) {
	c := ParseComment("///< the sample rate")
	require.NotNil(t, c)
	assert.True(t, c.Trailing)
	assert.Equal(t, "the sample rate", c.Blocks[0].Text())
}

func TestParseCommentEmpty(t *testing.T) {
	assert.Nil(t, ParseComment("///", "///   "))
	assert.Nil(t, ParseComment())
}
