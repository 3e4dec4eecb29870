package indexing

import (
	"strings"

	"github.com/standardbeagle/cxxindex/internal/frontend"
	"github.com/standardbeagle/cxxindex/internal/types"
)

// describe fills the brief and extended descriptions shared by every
// category. Paragraphs are joined with a space.
func describe(s *types.Symbol, c *frontend.Comment) {
	if c == nil {
		return
	}
	var paragraphs []string
	for _, b := range c.Blocks {
		switch {
		case b.Kind == frontend.BlockParagraph:
			paragraphs = append(paragraphs, b.Text())
		case b.Kind == frontend.BlockCommand && b.Command == "brief":
			s.BriefComment = strings.TrimSpace(b.Text())
		}
	}
	s.DocComment = strings.TrimSpace(strings.Join(paragraphs, " "))
}

// describeFunction also routes @param, @tparam and @return blocks.
// Parameters named in the comment but absent from the signature are
// dropped.
func describeFunction(f *types.FunctionSymbol, c *frontend.Comment) {
	if c == nil || c.Trailing {
		return
	}
	describe(&f.Symbol, c)
	describeTemplateParams(f.TemplateParams, c)
	for _, b := range c.Blocks {
		switch b.Kind {
		case frontend.BlockParam:
			for i := range f.Params {
				if f.Params[i].Name == b.Arg {
					f.Params[i].DocComment = b.Text()
				}
			}
		case frontend.BlockCommand:
			if b.Command == "return" {
				f.ReturnTypeDocComment = b.Text()
			}
		}
	}
}

// describeTemplateParams attaches @tparam text to the named parameters
func describeTemplateParams(params []types.TemplateParam, c *frontend.Comment) {
	if c == nil {
		return
	}
	for _, b := range c.Blocks {
		if b.Kind != frontend.BlockTParam {
			continue
		}
		for i := range params {
			if params[i].Name == b.Arg {
				params[i].DocComment = b.Text()
			}
		}
	}
}

// memberDoc is the documentation of a field: its last paragraph
func memberDoc(c *frontend.Comment) string {
	if c == nil {
		return ""
	}
	var doc string
	for _, b := range c.Blocks {
		if b.Kind == frontend.BlockParagraph {
			doc = b.Text()
		}
	}
	return doc
}

// enumeratorDoc joins every paragraph of an enumerator's comment
func enumeratorDoc(c *frontend.Comment) string {
	if c == nil {
		return ""
	}
	var parts []string
	for _, b := range c.Blocks {
		if b.Kind == frontend.BlockParagraph {
			parts = append(parts, b.Text())
		}
	}
	return strings.Join(parts, " ")
}
