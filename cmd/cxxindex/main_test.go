package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/cxxindex/internal/config"
	"github.com/standardbeagle/cxxindex/internal/export"
	"github.com/standardbeagle/cxxindex/internal/idcodec"
	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/types"
	"github.com/standardbeagle/cxxindex/internal/version"
)

const shapesHeader = `#pragma once

namespace geo {

/// A point in the plane
struct Point {
  int x; ///< Horizontal
  int y; ///< Vertical
};

enum class Axis { X, Y = 4 };

/// Distance between two points
double distance(Point a, Point b);

struct Shape {
  double area() const;
};

/// A closed polyline
struct Polygon : public Shape {
  int sides;
};

}
`

const shapesSource = `#include "shapes.h"

namespace geo {
Point origin() { return Point{0, 0}; }
}
`

// writeProject lays out a two-file project with its compilation database
// under a temp directory and returns the directory
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	commands, err := json.Marshal([]map[string]any{{
		"directory": dir,
		"file":      "shapes.cpp",
		"arguments": []string{"c++", "-c", "shapes.cpp", "-o", "shapes.o"},
	}})
	require.NoError(t, err)

	for name, content := range map[string]string{
		"shapes.h":              shapesHeader,
		"shapes.cpp":            shapesSource,
		"compile_commands.json": string(commands),
		config.TOMLFile:         "[project]\nname = \"shapes\"\nversion = \"1.2\"\n",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"cxxindex"}, args...))
	return out.String(), err
}

func TestIndexCommandWritesJSONAndSQLite(t *testing.T) {
	dir := writeProject(t)
	jsonPath := filepath.Join(dir, "out", "index.json.zst")
	dbPath := filepath.Join(dir, "out", "index.db")

	_, err := runApp(t, "--root", dir, "-q", "index", "--no-system-includes", "-o", jsonPath, "--sqlite", dbPath)
	require.NoError(t, err)

	doc, err := export.ReadJSONFile(afero.NewOsFs(), jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "shapes", doc.Meta.ProjectName)
	assert.Equal(t, "1.2", doc.Meta.ProjectVersion)

	idx := doc.Index()
	point, ok := index.FindByName(idx.Records, "Point")
	require.True(t, ok)
	assert.Equal(t, "shapes.h", point.File)
	assert.Equal(t, "A point in the plane", point.DocComment)
	require.Len(t, point.Vars, 2)
	assert.Equal(t, "Horizontal", point.Vars[0].DocComment)

	geo, ok := index.FindByName(idx.Namespaces, "geo")
	require.True(t, ok)
	assert.Equal(t, geo.ID, point.ParentNamespaceID)
	assert.Contains(t, geo.Records, point.ID)

	distance, ok := index.FindByName(idx.Functions, "distance")
	require.True(t, ok)
	assert.Equal(t, "shapes.h", distance.File)
	assert.Equal(t, "Distance between two points", distance.DocComment)
	require.Len(t, distance.Params, 2)
	assert.Equal(t, point.ID, distance.Params[0].Type.ID)

	axis, ok := index.FindByName(idx.Enums, "Axis")
	require.True(t, ok)
	assert.Equal(t, "enum class", axis.Type)
	require.Len(t, axis.Members, 2)
	assert.Equal(t, int64(4), axis.Members[1].Value)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestIndexCommandDefaultOutput(t *testing.T) {
	dir := writeProject(t)

	_, err := runApp(t, "-r", dir, "-q", "index", "--no-system-includes", "--threads", "2")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "docs", "index.json"))
	assert.NoError(t, err)
}

func TestIndexCommandMissingManifest(t *testing.T) {
	dir := t.TempDir()

	_, err := runApp(t, "-r", dir, "-q", "index", "--no-system-includes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile_commands")
}

func TestInspectCommand(t *testing.T) {
	dir := writeProject(t)
	jsonPath := filepath.Join(dir, "index.json")
	_, err := runApp(t, "-r", dir, "-q", "index", "--no-system-includes", "-o", jsonPath)
	require.NoError(t, err)

	out, err := runApp(t, "inspect", jsonPath, "Point")
	require.NoError(t, err)
	var found map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	assert.Contains(t, found, "record")
	assert.NotContains(t, found, "function")

	out, err = runApp(t, "inspect", jsonPath)
	require.NoError(t, err)
	assert.Contains(t, out, "struct Point")

	_, err = runApp(t, "inspect", jsonPath, "Nowhere")
	assert.Error(t, err)
}

func TestInspectByID(t *testing.T) {
	dir := writeProject(t)
	jsonPath := filepath.Join(dir, "index.json")
	_, err := runApp(t, "-r", dir, "-q", "index", "--no-system-includes", "-o", jsonPath)
	require.NoError(t, err)

	doc, err := export.ReadJSONFile(afero.NewOsFs(), jsonPath)
	require.NoError(t, err)
	axis, ok := index.FindByName(doc.Index().Enums, "Axis")
	require.True(t, ok)

	for _, id := range []string{axis.ID.Hex(), idcodec.EncodeSymbolID(axis.ID)} {
		out, err := runApp(t, "inspect", "--id", id, jsonPath)
		require.NoError(t, err, id)
		var found map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(out), &found))
		assert.Contains(t, found, "enum")
	}
}

func TestInspectRecordListsInheritedMembers(t *testing.T) {
	dir := writeProject(t)
	jsonPath := filepath.Join(dir, "index.json")
	_, err := runApp(t, "-r", dir, "-q", "index", "--no-system-includes", "-o", jsonPath)
	require.NoError(t, err)

	out, err := runApp(t, "inspect", jsonPath, "Polygon")
	require.NoError(t, err)

	var found map[string]struct {
		Page             string          `json:"page"`
		Symbol           json.RawMessage `json:"symbol"`
		InheritedBases   []string        `json:"inheritedBases"`
		InheritedMethods []string        `json:"inheritedMethods"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Contains(t, found, "record")
	rec := found["record"]

	var polygon types.RecordSymbol
	require.NoError(t, json.Unmarshal(rec.Symbol, &polygon))
	assert.Equal(t, "Polygon", polygon.Name)
	assert.Equal(t, "r"+polygon.ID.Hex()+".html", rec.Page)
	assert.Equal(t, []string{"Shape"}, rec.InheritedBases)
	require.Len(t, rec.InheritedMethods, 1)
	assert.Contains(t, rec.InheritedMethods[0], "area")
}

func TestIndexFingerprintInMeta(t *testing.T) {
	dir := writeProject(t)
	jsonPath := filepath.Join(dir, "index.json")
	_, err := runApp(t, "-r", dir, "-q", "index", "--no-system-includes", "-o", jsonPath)
	require.NoError(t, err)

	doc, err := export.ReadJSONFile(afero.NewOsFs(), jsonPath)
	require.NoError(t, err)
	sum, err := doc.Index().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%016x", sum), doc.Meta.Fingerprint)
}

func TestParseID(t *testing.T) {
	id, err := parseID("00000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, types.SymbolID(0xff), id)

	token := idcodec.EncodeSymbolID(types.SymbolID(0xabcdef))
	id, err = parseID(token)
	require.NoError(t, err)
	assert.Equal(t, types.SymbolID(0xabcdef), id)

	_, err = parseID("not a token!")
	assert.Error(t, err)
}

func TestBuildIndexRespectsLimit(t *testing.T) {
	dir := writeProject(t)
	fsys := afero.NewOsFs()
	cfg, err := config.Load(fsys, dir)
	require.NoError(t, err)
	cfg.Includes.UseSystemIncludes = false
	cfg.Debug.LimitNumIndexedFiles = 1
	require.NoError(t, config.ValidateConfig(fsys, cfg))

	idx, res, err := buildIndex(context.Background(), fsys, cfg, true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.NoError(t, res.Err())
	assert.False(t, idx.Empty())
}

func TestBuildIndexLogsStatsWhenQuiet(t *testing.T) {
	dir := writeProject(t)
	fsys := afero.NewOsFs()
	cfg, err := config.Load(fsys, dir)
	require.NoError(t, err)
	cfg.Includes.UseSystemIncludes = false
	require.NoError(t, config.ValidateConfig(fsys, cfg))

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	_, _, err = buildIndex(context.Background(), fsys, cfg, true)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "Indexing statistics:"))
	assert.Contains(t, buf.String(), "records:")
}

func TestVersionCommand(t *testing.T) {
	out, err := runApp(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version.Version)
}
