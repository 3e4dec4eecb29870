package indexing

import (
	"bufio"
	"fmt"
	"io"
	"log"

	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/types"
)

// PrintStats logs how many declarations each collector saw and how many
// distinct symbols it kept
func PrintStats(idx *index.Index) {
	s := idx.Stats()
	log.Printf("Indexing statistics:")
	log.Printf("  functions:  %d matches, %d indexed", s.Functions.Matches, s.Functions.Entries)
	log.Printf("  records:    %d matches, %d indexed", s.Records.Matches, s.Records.Entries)
	log.Printf("  enums:      %d matches, %d indexed", s.Enums.Matches, s.Enums.Entries)
	log.Printf("  namespaces: %d matches, %d indexed", s.Namespaces.Matches, s.Namespaces.Entries)
}

// Dump writes a readable listing of every symbol, in ID order, one category
// at a time
func Dump(w io.Writer, idx *index.Index) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "functions (%d)\n", idx.Functions.Len())
	idx.Functions.Each(func(id types.SymbolID, f *types.FunctionSymbol) bool {
		fmt.Fprintf(bw, "  %s %s  [%s:%d]\n", id, f.Proto, f.File, f.Line)
		return true
	})
	fmt.Fprintf(bw, "records (%d)\n", idx.Records.Len())
	idx.Records.Each(func(id types.SymbolID, r *types.RecordSymbol) bool {
		fmt.Fprintf(bw, "  %s %s  [%s:%d]\n", id, r.Proto, r.File, r.Line)
		for _, v := range r.Vars {
			fmt.Fprintf(bw, "      %s %s\n", v.Type.Name, v.Name)
		}
		return true
	})
	fmt.Fprintf(bw, "enums (%d)\n", idx.Enums.Len())
	idx.Enums.Each(func(id types.SymbolID, e *types.EnumSymbol) bool {
		fmt.Fprintf(bw, "  %s %s %s  [%s:%d]\n", id, e.Type, e.Name, e.File, e.Line)
		for _, m := range e.Members {
			fmt.Fprintf(bw, "      %s = %d\n", m.Name, m.Value)
		}
		return true
	})
	fmt.Fprintf(bw, "namespaces (%d)\n", idx.Namespaces.Len())
	idx.Namespaces.Each(func(id types.SymbolID, n *types.NamespaceSymbol) bool {
		fmt.Fprintf(bw, "  %s %s  records=%d enums=%d namespaces=%d\n",
			id, n.Name, len(n.Records), len(n.Enums), len(n.Namespaces))
		return true
	})
	return bw.Flush()
}
