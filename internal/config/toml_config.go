package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// hdocFile mirrors .hdoc.toml. Pointers tell unset keys from zero values.
type hdocFile struct {
	Project struct {
		Name    *string `toml:"name"`
		Version *string `toml:"version"`
	} `toml:"project"`
	Paths struct {
		CompileCommands *string `toml:"compile_commands"`
		OutputDir       *string `toml:"output_dir"`
	} `toml:"paths"`
	Includes struct {
		Paths             []string `toml:"paths"`
		UseSystemIncludes *bool    `toml:"use_system_includes"`
	} `toml:"includes"`
	Ignore struct {
		Paths                []string `toml:"paths"`
		IgnorePrivateMembers *bool    `toml:"ignore_private_members"`
	} `toml:"ignore"`
	Debug struct {
		NumThreads           *int `toml:"num_threads"`
		LimitNumIndexedFiles *int `toml:"limit_num_indexed_files"`
	} `toml:"debug"`
}

func applyTOML(cfg *Config, data []byte) error {
	var f hdocFile
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for _, e := range strict.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return fmt.Errorf("failed to parse TOML config: %w", err)
	}

	setString(&cfg.Project.Name, f.Project.Name)
	setString(&cfg.Project.Version, f.Project.Version)
	setString(&cfg.Paths.CompileCommands, f.Paths.CompileCommands)
	setString(&cfg.Paths.OutputDir, f.Paths.OutputDir)
	if f.Includes.Paths != nil {
		cfg.Includes.Paths = f.Includes.Paths
	}
	if f.Includes.UseSystemIncludes != nil {
		cfg.Includes.UseSystemIncludes = *f.Includes.UseSystemIncludes
	}
	if f.Ignore.Paths != nil {
		cfg.Ignore.Paths = f.Ignore.Paths
	}
	if f.Ignore.IgnorePrivateMembers != nil {
		cfg.Ignore.PrivateMembers = *f.Ignore.IgnorePrivateMembers
	}
	if f.Debug.NumThreads != nil {
		cfg.Debug.NumThreads = *f.Debug.NumThreads
	}
	if f.Debug.LimitNumIndexedFiles != nil {
		cfg.Debug.LimitNumIndexedFiles = *f.Debug.LimitNumIndexedFiles
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
