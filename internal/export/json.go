// Package export writes a finished index for the rendering stage: a JSON
// document (optionally zstd compressed) or a SQLite database.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"

	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/types"
	"github.com/standardbeagle/cxxindex/internal/version"
)

// Meta describes the run that produced an index
type Meta struct {
	RunID          string      `json:"runID"`
	ProjectName    string      `json:"projectName"`
	ProjectVersion string      `json:"projectVersion,omitempty"`
	Timestamp      string      `json:"timestamp"`
	Version        string      `json:"version"`
	BuildID        string      `json:"buildID"`
	Fingerprint    string      `json:"fingerprint"`
	Stats          index.Stats `json:"stats"`
}

// NewMeta stamps a new run ID, the current time and the content fingerprint
// of idx
func NewMeta(projectName, projectVersion string, idx *index.Index) (Meta, error) {
	sum, err := idx.Fingerprint()
	if err != nil {
		return Meta{}, err
	}
	return Meta{
		RunID:          uuid.New().String(),
		ProjectName:    projectName,
		ProjectVersion: projectVersion,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Version:        version.Version,
		BuildID:        version.BuildID(),
		Fingerprint:    fmt.Sprintf("%016x", sum),
		Stats:          idx.Stats(),
	}, nil
}

// Document is the JSON form of an index. Map keys are hex SymbolIDs.
type Document struct {
	Meta       Meta                                     `json:"meta"`
	Functions  map[types.SymbolID]types.FunctionSymbol  `json:"functions"`
	Records    map[types.SymbolID]types.RecordSymbol    `json:"records"`
	Enums      map[types.SymbolID]types.EnumSymbol      `json:"enums"`
	Namespaces map[types.SymbolID]types.NamespaceSymbol `json:"namespaces"`
}

// NewDocument snapshots idx
func NewDocument(idx *index.Index, meta Meta) *Document {
	return &Document{
		Meta:       meta,
		Functions:  snapshot(idx.Functions),
		Records:    snapshot(idx.Records),
		Enums:      snapshot(idx.Enums),
		Namespaces: snapshot(idx.Namespaces),
	}
}

func snapshot[T any](db *index.Database[T]) map[types.SymbolID]T {
	out := make(map[types.SymbolID]T, db.Len())
	db.Each(func(id types.SymbolID, entry *T) bool {
		out[id] = *entry
		return true
	})
	return out
}

// Index rebuilds an index from the document. Match counters are not
// restored.
func (d *Document) Index() *index.Index {
	idx := index.New()
	restore(idx.Functions, d.Functions)
	restore(idx.Records, d.Records)
	restore(idx.Enums, d.Enums)
	restore(idx.Namespaces, d.Namespaces)
	return idx
}

func restore[T any](db *index.Database[T], entries map[types.SymbolID]T) {
	for id, entry := range entries {
		db.Update(id, entry)
	}
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// WriteJSON encodes doc to w
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return nil
}

// WriteJSONFile writes doc to path on fsys. Paths ending in .zst are zstd
// compressed.
func WriteJSONFile(fsys afero.Fs, path string, doc *Document) (err error) {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var enc *zstd.Encoder
	if compressed(path) {
		enc, err = zstd.NewWriter(bw)
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		w = enc
	}

	if err := WriteJSON(w, doc); err != nil {
		if enc != nil {
			_ = enc.Close()
		}
		return err
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("zstd close: %w", err)
		}
	}
	return bw.Flush()
}

// ReadJSONFile reads a document written by WriteJSONFile
func ReadJSONFile(fsys afero.Fs, path string) (*Document, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if compressed(path) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &doc, nil
}
