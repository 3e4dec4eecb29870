package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/standardbeagle/cxxindex/internal/index"
	"github.com/standardbeagle/cxxindex/internal/types"
)

// IDs are stored as their 16 digit hex form; zero IDs as NULL.
const schema = `
CREATE TABLE meta (key TEXT PRIMARY KEY, value TEXT NOT NULL);
CREATE TABLE namespaces (
	id TEXT PRIMARY KEY, name TEXT NOT NULL, file TEXT, line INTEGER,
	parent_id TEXT, brief TEXT, doc TEXT
);
CREATE TABLE records (
	id TEXT PRIMARY KEY, name TEXT NOT NULL, kind TEXT NOT NULL, proto TEXT NOT NULL,
	file TEXT, line INTEGER, parent_id TEXT, brief TEXT, doc TEXT
);
CREATE TABLE record_bases (
	record_id TEXT NOT NULL REFERENCES records(id), position INTEGER NOT NULL,
	base_id TEXT, access TEXT NOT NULL, name TEXT NOT NULL,
	PRIMARY KEY (record_id, position)
);
CREATE TABLE record_vars (
	record_id TEXT NOT NULL REFERENCES records(id), position INTEGER NOT NULL,
	name TEXT NOT NULL, type_id TEXT, type_name TEXT NOT NULL, default_value TEXT,
	doc TEXT, access TEXT NOT NULL, is_static INTEGER NOT NULL,
	PRIMARY KEY (record_id, position)
);
CREATE TABLE record_methods (
	record_id TEXT NOT NULL REFERENCES records(id), function_id TEXT NOT NULL,
	PRIMARY KEY (record_id, function_id)
);
CREATE TABLE functions (
	id TEXT PRIMARY KEY, name TEXT NOT NULL, proto TEXT NOT NULL,
	file TEXT, line INTEGER, parent_id TEXT, brief TEXT, doc TEXT,
	return_type_id TEXT, return_type_name TEXT, return_doc TEXT,
	access TEXT NOT NULL, is_record_member INTEGER NOT NULL
);
CREATE TABLE function_params (
	function_id TEXT NOT NULL REFERENCES functions(id), position INTEGER NOT NULL,
	name TEXT, type_id TEXT, type_name TEXT NOT NULL, default_value TEXT, doc TEXT,
	PRIMARY KEY (function_id, position)
);
CREATE TABLE enums (
	id TEXT PRIMARY KEY, name TEXT NOT NULL, kind TEXT NOT NULL,
	file TEXT, line INTEGER, parent_id TEXT, brief TEXT, doc TEXT
);
CREATE TABLE enum_members (
	enum_id TEXT NOT NULL REFERENCES enums(id), position INTEGER NOT NULL,
	name TEXT NOT NULL, value INTEGER NOT NULL, doc TEXT,
	PRIMARY KEY (enum_id, position)
);
CREATE INDEX idx_functions_name ON functions(name);
CREATE INDEX idx_records_name ON records(name);
CREATE INDEX idx_records_parent ON records(parent_id);
`

func nullID(id types.SymbolID) any {
	if id.IsZero() {
		return nil
	}
	return id.Hex()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// WriteSQLite creates a new database at path holding idx. The file must not
// already contain the tables.
func WriteSQLite(ctx context.Context, path string, idx *index.Index, meta Meta) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	w := &sqliteWriter{ctx: ctx, tx: tx}
	w.meta(meta)
	w.namespaces(idx)
	w.records(idx)
	w.functions(idx)
	w.enums(idx)
	if w.err != nil {
		return w.err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// sqliteWriter keeps the first error and turns later writes into no-ops
type sqliteWriter struct {
	ctx context.Context
	tx  *sql.Tx
	err error
}

func (w *sqliteWriter) exec(query string, args ...any) {
	if w.err != nil {
		return
	}
	if _, err := w.tx.ExecContext(w.ctx, query, args...); err != nil {
		w.err = fmt.Errorf("insert failed: %w", err)
	}
}

func (w *sqliteWriter) meta(m Meta) {
	for _, kv := range [][2]string{
		{"run_id", m.RunID},
		{"project_name", m.ProjectName},
		{"project_version", m.ProjectVersion},
		{"timestamp", m.Timestamp},
		{"version", m.Version},
		{"build_id", m.BuildID},
		{"fingerprint", m.Fingerprint},
	} {
		w.exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, kv[0], kv[1])
	}
}

func (w *sqliteWriter) namespaces(idx *index.Index) {
	idx.Namespaces.Each(func(id types.SymbolID, n *types.NamespaceSymbol) bool {
		w.exec(`INSERT INTO namespaces (id, name, file, line, parent_id, brief, doc) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id.Hex(), n.Name, n.File, n.Line, nullID(n.ParentNamespaceID), n.BriefComment, n.DocComment)
		return w.err == nil
	})
}

func (w *sqliteWriter) records(idx *index.Index) {
	idx.Records.Each(func(id types.SymbolID, r *types.RecordSymbol) bool {
		w.exec(`INSERT INTO records (id, name, kind, proto, file, line, parent_id, brief, doc) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.Hex(), r.Name, r.Type, r.Proto, r.File, r.Line, nullID(r.ParentNamespaceID), r.BriefComment, r.DocComment)
		for i, b := range r.BaseRecords {
			w.exec(`INSERT INTO record_bases (record_id, position, base_id, access, name) VALUES (?, ?, ?, ?, ?)`,
				id.Hex(), i, nullID(b.ID), b.Access.String(), b.Name)
		}
		for i, v := range r.Vars {
			w.exec(`INSERT INTO record_vars (record_id, position, name, type_id, type_name, default_value, doc, access, is_static) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id.Hex(), i, v.Name, nullID(v.Type.ID), v.Type.Name, v.DefaultValue, v.DocComment, v.Access.String(), boolInt(v.IsStatic))
		}
		for _, m := range r.MethodIDs {
			w.exec(`INSERT INTO record_methods (record_id, function_id) VALUES (?, ?)`, id.Hex(), m.Hex())
		}
		return w.err == nil
	})
}

func (w *sqliteWriter) functions(idx *index.Index) {
	idx.Functions.Each(func(id types.SymbolID, f *types.FunctionSymbol) bool {
		w.exec(`INSERT INTO functions (id, name, proto, file, line, parent_id, brief, doc, return_type_id, return_type_name, return_doc, access, is_record_member) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id.Hex(), f.Name, f.Proto, f.File, f.Line, nullID(f.ParentNamespaceID), f.BriefComment, f.DocComment,
			nullID(f.ReturnType.ID), f.ReturnType.Name, f.ReturnTypeDocComment, f.Access.String(), boolInt(f.IsRecordMember))
		for i, p := range f.Params {
			w.exec(`INSERT INTO function_params (function_id, position, name, type_id, type_name, default_value, doc) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				id.Hex(), i, p.Name, nullID(p.Type.ID), p.Type.Name, p.DefaultValue, p.DocComment)
		}
		return w.err == nil
	})
}

func (w *sqliteWriter) enums(idx *index.Index) {
	idx.Enums.Each(func(id types.SymbolID, e *types.EnumSymbol) bool {
		w.exec(`INSERT INTO enums (id, name, kind, file, line, parent_id, brief, doc) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id.Hex(), e.Name, e.Type, e.File, e.Line, nullID(e.ParentNamespaceID), e.BriefComment, e.DocComment)
		for i, m := range e.Members {
			w.exec(`INSERT INTO enum_members (enum_id, position, name, value, doc) VALUES (?, ?, ?, ?, ?)`,
				id.Hex(), i, m.Name, m.Value, m.DocComment)
		}
		return w.err == nil
	})
}
