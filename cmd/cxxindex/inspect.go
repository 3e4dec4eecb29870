package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cxxindex/internal/export"
	"github.com/standardbeagle/cxxindex/internal/idcodec"
	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/indexing"
	"github.com/standardbeagle/cxxindex/internal/types"
)

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Look up symbols by name or ID in a written index",
		ArgsUsage: "<index.json[.zst]> [name]",
		Description: "With a name, prints the first function, record, enum and namespace " +
			"of that name as JSON. Without one, prints a listing of the whole index.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Look up by symbol ID: 16 hex digits or a compact token",
			},
		},
		Action: inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("inspect requires an index file", 2)
	}
	doc, err := export.ReadJSONFile(afero.NewOsFs(), c.Args().Get(0))
	if err != nil {
		return err
	}
	idx := doc.Index()

	var found map[string]match
	switch {
	case c.String("id") != "":
		id, err := parseID(c.String("id"))
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		found = findByID(idx, id)
	case c.Args().Get(1) != "":
		found = findByName(idx, c.Args().Get(1))
	default:
		return indexing.Dump(c.App.Writer, idx)
	}
	if len(found) == 0 {
		return cli.Exit("no matching symbol", 1)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(found)
}

// parseID accepts the fixed-width hex form used in the JSON dump, or the
// base-63 token form
func parseID(s string) (types.SymbolID, error) {
	if len(s) == 16 {
		if id, err := types.ParseSymbolID(s); err == nil {
			return id, nil
		}
	}
	id, err := idcodec.DecodeSymbolID(s)
	if err != nil {
		return 0, fmt.Errorf("invalid symbol id %q: %w", s, err)
	}
	return id, nil
}

// match is one inspect result. Records also list what they inherit through
// non-private bases.
type match struct {
	Page             string   `json:"page"`
	Symbol           any      `json:"symbol"`
	InheritedBases   []string `json:"inheritedBases,omitempty"`
	InheritedMethods []string `json:"inheritedMethods,omitempty"`
}

func recordMatch(idx *index.Index, r *types.RecordSymbol) match {
	m := match{Page: r.URL(), Symbol: r}
	for _, id := range idx.InheritedBases(r.ID, index.InheritOptions{}) {
		if base, ok := idx.Records.Get(id); ok {
			m.InheritedBases = append(m.InheritedBases, base.Name)
		}
	}
	for _, id := range idx.InheritedMethods(r.ID, index.InheritOptions{}) {
		if fn, ok := idx.Functions.Get(id); ok {
			m.InheritedMethods = append(m.InheritedMethods, fn.Proto)
		}
	}
	return m
}

func findByID(idx *index.Index, id types.SymbolID) map[string]match {
	found := make(map[string]match)
	if f, ok := idx.Functions.Get(id); ok {
		found["function"] = match{Page: f.URL(), Symbol: f}
	}
	if r, ok := idx.Records.Get(id); ok {
		found["record"] = recordMatch(idx, &r)
	}
	if e, ok := idx.Enums.Get(id); ok {
		found["enum"] = match{Page: e.URL(), Symbol: e}
	}
	if n, ok := idx.Namespaces.Get(id); ok {
		found["namespace"] = match{Page: n.URL(), Symbol: n}
	}
	return found
}

func findByName(idx *index.Index, name string) map[string]match {
	found := make(map[string]match)
	if f, ok := index.FindByName(idx.Functions, name); ok {
		found["function"] = match{Page: f.URL(), Symbol: f}
	}
	if r, ok := index.FindByName(idx.Records, name); ok {
		found["record"] = recordMatch(idx, r)
	}
	if e, ok := index.FindByName(idx.Enums, name); ok {
		found["enum"] = match{Page: e.URL(), Symbol: e}
	}
	if n, ok := index.FindByName(idx.Namespaces, name); ok {
		found["namespace"] = match{Page: n.URL(), Symbol: n}
	}
	return found
}
