package compdb

import (
	"path/filepath"
	"strings"
)

// ArgumentsAdjuster rewrites the argument vector of one command. args[0] is
// the compiler.
type ArgumentsAdjuster func(args []string, file string) []string

// Chain applies adjusters in order
func Chain(adjusters ...ArgumentsAdjuster) ArgumentsAdjuster {
	return func(args []string, file string) []string {
		for _, adj := range adjusters {
			if adj != nil {
				args = adj(args, file)
			}
		}
		return args
	}
}

// StripOutput removes -o <file> and joined -o<file>.o
func StripOutput() ArgumentsAdjuster {
	return func(args []string, _ string) []string {
		out := make([]string, 0, len(args))
		for i := 0; i < len(args); i++ {
			a := args[i]
			if a == "-o" {
				i++
				continue
			}
			if i > 0 && strings.HasPrefix(a, "-o") && (strings.HasSuffix(a, ".o") || strings.HasSuffix(a, ".obj")) {
				continue
			}
			out = append(out, a)
		}
		return out
	}
}

// dependency-file flags that take a separate value
var depFlagsWithValue = map[string]bool{"-MF": true, "-MT": true, "-MQ": true}

// StripDependencyFile removes the -M family of flags that make the compiler
// write dependency files
func StripDependencyFile() ArgumentsAdjuster {
	return func(args []string, _ string) []string {
		out := make([]string, 0, len(args))
		for i := 0; i < len(args); i++ {
			a := args[i]
			if depFlagsWithValue[a] {
				i++
				continue
			}
			if strings.HasPrefix(a, "-M") || strings.HasPrefix(a, "--write-dependencies") ||
				strings.HasPrefix(a, "--write-user-dependencies") {
				continue
			}
			out = append(out, a)
		}
		return out
	}
}

// SyntaxOnly drops compile-only style actions and adds -fsyntax-only. -w
// turns off warnings since per-file diagnostics are not reported.
func SyntaxOnly() ArgumentsAdjuster {
	return func(args []string, _ string) []string {
		out := make([]string, 0, len(args)+2)
		for i, a := range args {
			if i > 0 && (a == "-c" || a == "-S" || a == "-E" || a == "-fsyntax-only" || a == "-w") {
				continue
			}
			out = append(out, a)
		}
		return append(out, "-fsyntax-only", "-w")
	}
}

// AppendArguments adds extra at the end of the command line
func AppendArguments(extra ...string) ArgumentsAdjuster {
	return func(args []string, _ string) []string {
		if len(extra) == 0 {
			return args
		}
		out := make([]string, 0, len(args)+len(extra))
		out = append(out, args...)
		return append(out, extra...)
	}
}

// IncludeSearchPath is one directory the front-end looks in for #include
type IncludeSearchPath struct {
	Dir string
	// Quoted directories only serve #include "..." (from -iquote)
	Quoted bool
	System bool
}

// IncludeSearchPaths extracts -iquote, -I and -isystem directories in order
// of their appearance. Relative directories are resolved against dir.
func IncludeSearchPaths(args []string, dir string) []IncludeSearchPath {
	var paths []IncludeSearchPath
	add := func(p string, quoted, system bool) {
		if p == "" {
			return
		}
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		paths = append(paths, IncludeSearchPath{Dir: p, Quoted: quoted, System: system})
	}
	for i := 0; i < len(args); i++ {
		a := args[i]
		for _, flag := range []struct {
			name           string
			quoted, system bool
		}{{"-iquote", true, false}, {"-isystem", false, true}, {"-I", false, false}} {
			if a == flag.name {
				if i+1 < len(args) {
					add(args[i+1], flag.quoted, flag.system)
					i++
				}
				break
			}
			if strings.HasPrefix(a, flag.name) {
				add(strings.TrimPrefix(a, flag.name), flag.quoted, flag.system)
				break
			}
		}
	}
	return paths
}
