package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// TOMLFile is the project file read first
	TOMLFile = ".hdoc.toml"
	// KDLFile overrides TOMLFile when both exist
	KDLFile = ".cxxindex.kdl"
)

type Config struct {
	Project  Project
	Paths    Paths
	Includes Includes
	Ignore   Ignore
	Debug    Debug
}

type Project struct {
	Root    string // absolute; the directory holding the config file
	Name    string
	Version string
}

type Paths struct {
	CompileCommands string // compile_commands.json, relative to Root or absolute
	OutputDir       string // defaults to <Root>/docs
}

type Includes struct {
	Paths             []string // passed to the front-end as -isystem
	UseSystemIncludes bool
}

type Ignore struct {
	Paths          []string // substrings of absolute paths or doublestar globs
	PrivateMembers bool
}

type Debug struct {
	NumThreads           int // 0 = all hardware threads
	LimitNumIndexedFiles int // 0 = no limit
}

// Default returns the configuration used when no file sets a value
func Default(root string) *Config {
	return &Config{
		Project:  Project{Root: root},
		Includes: Includes{UseSystemIncludes: true},
	}
}

// Load reads the configuration of the project at root from fsys. Values
// from .hdoc.toml are applied first, then .cxxindex.kdl. A project with
// neither file gets the defaults.
func Load(fsys afero.Fs, root string) (*Config, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root %s: %w", root, err)
	}
	cfg := Default(abs)

	for _, src := range []struct {
		name  string
		apply func(cfg *Config, data []byte) error
	}{
		{TOMLFile, applyTOML},
		{KDLFile, applyKDL},
	} {
		path := filepath.Join(abs, src.name)
		data, err := afero.ReadFile(fsys, path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := src.apply(cfg, data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return cfg, nil
}

// ManifestPath returns the absolute path of the compilation database
func (c *Config) ManifestPath() string {
	if c.Paths.CompileCommands == "" || filepath.IsAbs(c.Paths.CompileCommands) {
		return c.Paths.CompileCommands
	}
	return filepath.Join(c.Project.Root, c.Paths.CompileCommands)
}

// IncludeArgs renders the include paths as front-end arguments
func (c *Config) IncludeArgs() []string {
	args := make([]string, 0, len(c.Includes.Paths))
	for _, p := range c.Includes.Paths {
		args = append(args, "-isystem"+p)
	}
	return args
}
