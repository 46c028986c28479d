package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dustin/go-wikinode"
)

// ErrNotFound is returned by Lookup for titles that aren't indexed.
var ErrNotFound = errors.New("no such title")

// SQLite keeps nodes keyed by title, the links between them, and a
// full text index over both.  Inserts are grouped into transactions of
// batch nodes.
type SQLite struct {
	db    *sql.DB
	tx    *sql.Tx
	stmts []*sql.Stmt
	batch int
	n     int
}

// Edges hold link targets as written, so a target needn't be indexed.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS nodes (
		id      INTEGER PRIMARY KEY,
		title   TEXT NOT NULL UNIQUE,
		content TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS edges (
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		PRIMARY KEY (source, target)
	) WITHOUT ROWID`,
	`CREATE INDEX IF NOT EXISTS edges_target ON edges (target)`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS nodes_fts USING fts5 (
		title, content, content='nodes', content_rowid='id', tokenize='unicode61'
	)`,
	`CREATE TRIGGER IF NOT EXISTS nodes_ai AFTER INSERT ON nodes BEGIN
		INSERT INTO nodes_fts (rowid, title, content) VALUES (new.id, new.title, new.content);
	END`,
	`CREATE TRIGGER IF NOT EXISTS nodes_ad AFTER DELETE ON nodes BEGIN
		INSERT INTO nodes_fts (nodes_fts, rowid, title, content) VALUES ('delete', old.id, old.title, old.content);
	END`,
	`CREATE TRIGGER IF NOT EXISTS nodes_au AFTER UPDATE ON nodes BEGIN
		INSERT INTO nodes_fts (nodes_fts, rowid, title, content) VALUES ('delete', old.id, old.title, old.content);
		INSERT INTO nodes_fts (rowid, title, content) VALUES (new.id, new.title, new.content);
	END`,
}

// Statements run for every emitted node, in this order.
var sqliteEmit = []string{
	`INSERT INTO nodes (title, content) VALUES (?1, ?2)
		ON CONFLICT (title) DO UPDATE SET content = excluded.content`,
	`DELETE FROM edges WHERE source = ?1`,
	`INSERT OR IGNORE INTO edges (source, target) VALUES (?1, ?2)`,
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string, batch int) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; the open transaction holds the only connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	for _, q := range sqliteSchema {
		if _, err := db.Exec(q); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	if batch < 1 {
		batch = 1
	}
	return &SQLite{db: db, batch: batch}, nil
}

// Emit stores a node with the links in its content, replacing any
// earlier node with the same title.
func (s *SQLite) Emit(n wikinode.Node) error {
	if s.tx == nil {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		for _, q := range sqliteEmit {
			stmt, err := tx.Prepare(q)
			if err != nil {
				s.closeStmts()
				_ = tx.Rollback()
				return err
			}
			s.stmts = append(s.stmts, stmt)
		}
		s.tx = tx
	}
	upsert, unlink, link := s.stmts[0], s.stmts[1], s.stmts[2]
	if _, err := upsert.Exec(n.Title, n.Content); err != nil {
		return fmt.Errorf("failed to insert %q: %w", n.Title, err)
	}
	if _, err := unlink.Exec(n.Title); err != nil {
		return fmt.Errorf("failed to clear links of %q: %w", n.Title, err)
	}
	for _, target := range wikinode.FindLinks(n.Content) {
		if _, err := link.Exec(n.Title, target); err != nil {
			return fmt.Errorf("failed to link %q to %q: %w", n.Title, target, err)
		}
	}
	s.n++
	if s.n >= s.batch {
		return s.flush()
	}
	return nil
}

func (s *SQLite) closeStmts() {
	for _, stmt := range s.stmts {
		_ = stmt.Close()
	}
	s.stmts = nil
}

func (s *SQLite) flush() error {
	if s.tx == nil {
		return nil
	}
	s.closeStmts()
	err := s.tx.Commit()
	s.tx, s.n = nil, 0
	return err
}

// Lookup gets the node stored under title.
func (s *SQLite) Lookup(ctx context.Context, title string) (wikinode.Node, error) {
	if err := s.flush(); err != nil {
		return wikinode.Node{}, err
	}
	n := wikinode.Node{Title: title}
	err := s.db.QueryRowContext(ctx, "SELECT content FROM nodes WHERE title = ?", title).Scan(&n.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return wikinode.Node{}, ErrNotFound
	}
	return n, err
}

// Count gets the number of stored nodes.
func (s *SQLite) Count(ctx context.Context) (int64, error) {
	if err := s.flush(); err != nil {
		return 0, err
	}
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nodes").Scan(&n)
	return n, err
}

// ftsPhrase quotes s as one FTS5 string.
func ftsPhrase(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func (s *SQLite) titles(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	if err := s.flush(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rv := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		rv = append(rv, v)
	}
	return rv, rows.Err()
}

// Prefix finds titles with a word starting with prefix, best first.
func (s *SQLite) Prefix(ctx context.Context, prefix string, limit int) ([]string, error) {
	return s.titles(ctx, `SELECT title FROM nodes_fts
		WHERE nodes_fts MATCH ? ORDER BY rank LIMIT ?`,
		"title : "+ftsPhrase(prefix)+" *", limit)
}

// A Hit is a full text search result.  Snippet has the matched terms
// in brackets.
type Hit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Search runs an FTS5 query over titles and content, best first.
func (s *SQLite) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if err := s.flush(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT title, snippet(nodes_fts, 1, '[', ']', '...', 30)
		FROM nodes_fts WHERE nodes_fts MATCH ? ORDER BY rank LIMIT ?`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer rows.Close()

	rv := []Hit{}
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.Title, &h.Snippet); err != nil {
			return nil, err
		}
		rv = append(rv, h)
	}
	return rv, rows.Err()
}

// Links gets the titles a node links to.
func (s *SQLite) Links(ctx context.Context, title string) ([]string, error) {
	return s.titles(ctx, `SELECT target FROM edges WHERE source = ? ORDER BY target`, title)
}

// Backlinks gets the titles of the nodes that link to title.
func (s *SQLite) Backlinks(ctx context.Context, title string, limit int) ([]string, error) {
	return s.titles(ctx, `SELECT source FROM edges WHERE target = ? ORDER BY source LIMIT ?`,
		title, limit)
}

// A Ranked title comes with how many links it has, in or out.
type Ranked struct {
	Title string
	Links int64
}

// GraphStats describes the whole link graph.
type GraphStats struct {
	Nodes int64
	Edges int64
	// MostLinked are the most common link targets.
	MostLinked []Ranked
	// MostLinking are the nodes with the most links out.
	MostLinking []Ranked
}

func (s *SQLite) ranked(ctx context.Context, query string, limit int) ([]Ranked, error) {
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rv := []Ranked{}
	for rows.Next() {
		var r Ranked
		if err := rows.Scan(&r.Title, &r.Links); err != nil {
			return nil, err
		}
		rv = append(rv, r)
	}
	return rv, rows.Err()
}

// Graph counts nodes and edges and ranks the top titles both ways.
func (s *SQLite) Graph(ctx context.Context, top int) (GraphStats, error) {
	var gs GraphStats
	n, err := s.Count(ctx)
	if err != nil {
		return gs, err
	}
	gs.Nodes = n
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM edges").Scan(&gs.Edges); err != nil {
		return gs, err
	}
	gs.MostLinked, err = s.ranked(ctx, `SELECT target, COUNT(*) AS n FROM edges
		GROUP BY target ORDER BY n DESC, target LIMIT ?`, top)
	if err != nil {
		return gs, err
	}
	gs.MostLinking, err = s.ranked(ctx, `SELECT source, COUNT(*) AS n FROM edges
		GROUP BY source ORDER BY n DESC, source LIMIT ?`, top)
	return gs, err
}

// Close commits what's pending and closes the database.
func (s *SQLite) Close() error {
	err := s.flush()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}
