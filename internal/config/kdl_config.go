package config

import (
	"bytes"
	"fmt"
	"log"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// applyKDL overlays .cxxindex.kdl onto cfg:
//
//	project { name "demo"; version "1.0" }
//	paths { compile_commands "build/compile_commands.json"; output_dir "docs" }
//	includes { paths "/opt/include"; use_system_includes false }
//	ignore { paths "third_party/" "**/*_test.h"; private_members true }
//	debug { num_threads 4; limit_num_indexed_files 10 }
func applyKDL(cfg *Config, data []byte) error {
	doc, err := kdl.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "name", func(v string) { cfg.Project.Name = v })
				assignSimpleString(cn, "version", func(v string) { cfg.Project.Version = v })
			}
		case "paths":
			for _, cn := range n.Children {
				assignSimpleString(cn, "compile_commands", func(v string) { cfg.Paths.CompileCommands = v })
				assignSimpleString(cn, "output_dir", func(v string) { cfg.Paths.OutputDir = v })
			}
		case "includes":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "paths":
					cfg.Includes.Paths = collectStringArgs(cn)
				case "use_system_includes":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Includes.UseSystemIncludes = b
					}
				}
			}
		case "ignore":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "paths":
					cfg.Ignore.Paths = collectStringArgs(cn)
				case "private_members":
					if b, ok := firstBoolArg(cn); ok {
						cfg.Ignore.PrivateMembers = b
					}
				}
			}
		case "debug":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "num_threads":
					if v, ok := firstIntArg(cn); ok {
						cfg.Debug.NumThreads = v
					}
				case "limit_num_indexed_files":
					if v, ok := firstIntArg(cn); ok {
						cfg.Debug.LimitNumIndexedFiles = v
					}
				}
			}
		default:
			log.Printf("WARNING: unknown node '%s' in KDL config", nodeName(n))
		}
	}
	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		log.Printf("WARNING: invalid integer value for '%s' in KDL config, got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs accepts both the inline form (paths "a" "b") and the
// block form (paths { "a"; "b" })
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// in block form each string is a child node named by the string
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
