// Finds the compilation database a build system left in the project when
// the configuration does not name one
package config

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const compileCommandsName = "compile_commands.json"

// BuildArtifactDetector looks for build output directories under a project
// root
type BuildArtifactDetector struct {
	fs          afero.Fs
	projectRoot string
}

// NewBuildArtifactDetector creates a detector for the project at root
func NewBuildArtifactDetector(fsys afero.Fs, projectRoot string) *BuildArtifactDetector {
	return &BuildArtifactDetector{fs: fsys, projectRoot: projectRoot}
}

// DetectCompileCommands returns the absolute path of the first
// compile_commands.json found, or "" when there is none. The root itself is
// checked first, then CMake preset binary directories, then the usual build
// directory names.
func (bad *BuildArtifactDetector) DetectCompileCommands() string {
	for _, dir := range bad.candidateDirs() {
		path := filepath.Join(dir, compileCommandsName)
		if ok, _ := afero.Exists(bad.fs, path); ok {
			return path
		}
	}
	return ""
}

func (bad *BuildArtifactDetector) candidateDirs() []string {
	dirs := []string{bad.projectRoot}
	dirs = append(dirs, bad.cmakePresetDirs()...)
	for _, name := range []string{"build", "out", "builddir", "_build"} {
		dirs = append(dirs, filepath.Join(bad.projectRoot, name))
	}

	// CLion style cmake-build-debug, cmake-build-release, ...
	if matches, err := afero.Glob(bad.fs, filepath.Join(bad.projectRoot, "cmake-build-*")); err == nil {
		sort.Strings(matches)
		dirs = append(dirs, matches...)
	}
	return DeduplicatePatterns(dirs)
}

// cmakePresetDirs reads binaryDir from CMakePresets.json and
// CMakeUserPresets.json configure presets
func (bad *BuildArtifactDetector) cmakePresetDirs() []string {
	var dirs []string
	for _, name := range []string{"CMakeUserPresets.json", "CMakePresets.json"} {
		data, err := afero.ReadFile(bad.fs, filepath.Join(bad.projectRoot, name))
		if err != nil {
			continue
		}
		var presets struct {
			ConfigurePresets []struct {
				Name      string `json:"name"`
				BinaryDir string `json:"binaryDir"`
			} `json:"configurePresets"`
		}
		if json.Unmarshal(data, &presets) != nil {
			continue
		}
		for _, p := range presets.ConfigurePresets {
			if p.BinaryDir == "" || strings.Contains(p.BinaryDir, "$env{") {
				continue
			}
			dir := strings.NewReplacer(
				"${sourceDir}", bad.projectRoot,
				"${presetName}", p.Name,
			).Replace(p.BinaryDir)
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(bad.projectRoot, dir)
			}
			dirs = append(dirs, filepath.Clean(dir))
		}
	}
	return dirs
}

// DeduplicatePatterns removes duplicates, keeping the first occurrence
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if !seen[pattern] {
			seen[pattern] = true
			result = append(result, pattern)
		}
	}

	return result
}
