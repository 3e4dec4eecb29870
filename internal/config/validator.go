package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"

	cxxerrors "github.com/standardbeagle/cxxindex/internal/errors"
)

// DefaultSystemIncludeDirs are searched when use_system_includes is set.
// Glob entries expand in reverse lexical order.
var DefaultSystemIncludeDirs = []string{
	"/usr/include/c++/*",
	"/usr/include/x86_64-linux-gnu/c++/*",
	"/usr/include/aarch64-linux-gnu/c++/*",
	"/usr/local/include",
	"/usr/include/x86_64-linux-gnu",
	"/usr/include/aarch64-linux-gnu",
	"/usr/include",
}

// Validator validates configuration and sets defaults. Every failure is a
// *errors.ConfigError.
type Validator struct {
	fs                afero.Fs
	SystemIncludeDirs []string
}

// NewValidator creates a validator that checks paths on fsys
func NewValidator(fsys afero.Fs) *Validator {
	return &Validator{fs: fsys, SystemIncludeDirs: DefaultSystemIncludeDirs}
}

// ValidateAndSetDefaults validates cfg in place. Paths are made absolute
// against the project root.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateProject(&cfg.Project); err != nil {
		return err
	}
	if err := v.validatePaths(cfg); err != nil {
		return err
	}
	if err := v.validateDebug(&cfg.Debug); err != nil {
		return err
	}
	v.resolveIncludes(cfg)
	return nil
}

func (v *Validator) validateProject(project *Project) error {
	if project.Root == "" {
		return cxxerrors.NewConfigError("project.root", "", errors.New("project root cannot be empty"))
	}
	ok, err := afero.IsDir(v.fs, project.Root)
	if err != nil || !ok {
		return cxxerrors.NewConfigError("project.root", project.Root, errors.New("not a directory"))
	}
	if project.Name == "" {
		project.Name = filepath.Base(project.Root)
	}
	return nil
}

func (v *Validator) validatePaths(cfg *Config) error {
	if cfg.Paths.CompileCommands == "" {
		detected := NewBuildArtifactDetector(v.fs, cfg.Project.Root).DetectCompileCommands()
		if detected == "" {
			return cxxerrors.NewConfigError("paths.compile_commands", "",
				errors.New("no compile_commands.json found in the project, set paths.compile_commands"))
		}
		log.Printf("using compilation database %s", detected)
		cfg.Paths.CompileCommands = detected
	}
	manifest := cfg.ManifestPath()
	if ok, _ := afero.Exists(v.fs, manifest); !ok {
		return cxxerrors.NewConfigError("paths.compile_commands", manifest, errors.New("file does not exist"))
	}
	cfg.Paths.CompileCommands = manifest

	switch {
	case cfg.Paths.OutputDir == "":
		cfg.Paths.OutputDir = filepath.Join(cfg.Project.Root, "docs")
	case !filepath.IsAbs(cfg.Paths.OutputDir):
		cfg.Paths.OutputDir = filepath.Join(cfg.Project.Root, cfg.Paths.OutputDir)
	}
	return nil
}

func (v *Validator) validateDebug(d *Debug) error {
	if d.NumThreads < 0 {
		return cxxerrors.NewConfigError("debug.num_threads", fmt.Sprint(d.NumThreads), errors.New("cannot be negative"))
	}
	if d.LimitNumIndexedFiles < 0 {
		return cxxerrors.NewConfigError("debug.limit_num_indexed_files", fmt.Sprint(d.LimitNumIndexedFiles), errors.New("cannot be negative"))
	}
	return nil
}

// resolveIncludes drops include paths that do not exist and appends the
// system directories when requested
func (v *Validator) resolveIncludes(cfg *Config) {
	var paths []string
	for _, p := range cfg.Includes.Paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(cfg.Project.Root, p)
		}
		if ok, _ := afero.IsDir(v.fs, p); !ok {
			log.Printf("WARNING: include path %s does not exist, ignoring it", p)
			continue
		}
		paths = append(paths, p)
	}

	if cfg.Includes.UseSystemIncludes {
		for _, pattern := range v.SystemIncludeDirs {
			matches, err := afero.Glob(v.fs, pattern)
			if err != nil {
				continue
			}
			sort.Sort(sort.Reverse(sort.StringSlice(matches)))
			for _, m := range matches {
				if ok, _ := afero.IsDir(v.fs, m); ok {
					paths = append(paths, m)
				}
			}
		}
	}
	cfg.Includes.Paths = DeduplicatePatterns(paths)
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(fsys afero.Fs, cfg *Config) error {
	return NewValidator(fsys).ValidateAndSetDefaults(cfg)
}
