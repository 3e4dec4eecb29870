// Package compdb reads the build manifest (compile_commands.json) that names
// the translation units of a project and how each one is compiled.
package compdb

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	cxxerrors "github.com/standardbeagle/cxxindex/internal/errors"
)

// Command is one compilation of one source file
type Command struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Arguments []string `json:"arguments,omitempty"`
	Output    string   `json:"output,omitempty"`
}

// Path returns the absolute path of the source file
func (c Command) Path() string {
	if filepath.IsAbs(c.File) {
		return filepath.Clean(c.File)
	}
	return filepath.Join(c.Directory, c.File)
}

type rawCommand struct {
	Directory string   `json:"directory"`
	File      string   `json:"file"`
	Command   string   `json:"command"`
	Arguments []string `json:"arguments"`
	Output    string   `json:"output"`
}

// Database is the parsed manifest in file order
type Database struct {
	Path     string
	Commands []Command
}

// Load parses the manifest at path. Entries with a "command" string are
// split into arguments with shell quoting rules.
func Load(fs afero.Fs, path string) (*Database, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, cxxerrors.NewFileError("read", path, err)
	}

	var raw []rawCommand
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse compilation database %s: %w", path, err)
	}

	db := &Database{Path: path, Commands: make([]Command, 0, len(raw))}
	for i, r := range raw {
		if r.File == "" {
			return nil, fmt.Errorf("compilation database %s: entry %d has no file", path, i)
		}
		args := r.Arguments
		if len(args) == 0 && r.Command != "" {
			args, err = SplitCommandLine(r.Command)
			if err != nil {
				return nil, fmt.Errorf("compilation database %s: entry %d: %w", path, i, err)
			}
		}
		dir := r.Directory
		if dir == "" {
			dir = filepath.Dir(path)
		}
		db.Commands = append(db.Commands, Command{
			Directory: dir,
			File:      r.File,
			Arguments: args,
			Output:    r.Output,
		})
	}
	return db, nil
}

// Files returns every distinct source file in manifest order
func (db *Database) Files() []string {
	seen := make(map[string]bool, len(db.Commands))
	files := make([]string, 0, len(db.Commands))
	for _, c := range db.Commands {
		p := c.Path()
		if seen[p] {
			continue
		}
		seen[p] = true
		files = append(files, p)
	}
	return files
}

// CommandsFor returns the commands that compile file
func (db *Database) CommandsFor(file string) []Command {
	var out []Command
	for _, c := range db.Commands {
		if c.Path() == filepath.Clean(file) {
			out = append(out, c)
		}
	}
	return out
}
