// Package feature provides the persistent relational feature store built
// from GFF sources.
//
// Each store is a single SQLite database file holding every feature of one
// or more merged GFF sources plus a parent/child relation table derived
// from the GFF3 Parent attribute. Iteration order is insertion order, so
// repeated reads of the same store see the same sequence of features.
package feature

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/NLeSC/siga/gff"
)

// MergePolicy selects the behavior when a source introduces a feature ID
// that is already stored.
type MergePolicy int

const (
	// RejectOnCollision fails the build with ErrDuplicateID.
	RejectOnCollision MergePolicy = iota

	// RenameOnCollision derives a unique ID by appending a numeric
	// suffix, like gffutils' create_unique strategy.
	RenameOnCollision
)

// Options configure store creation and updates.
type Options struct {
	// Merge is the duplicate-ID policy. The default rejects collisions.
	Merge MergePolicy

	// CheckIntegrity verifies that every Parent reference resolves to a
	// stored feature ID.
	CheckIntegrity bool
}

// Feature is one stored genomic feature.
type Feature struct {
	ID         string
	Seqid      string
	Source     string
	Type       string
	Start      int
	End        int
	Score      string
	Strand     string
	Phase      int
	Attributes map[string][]string
}

// Attr returns the values stored under key, trying the exact key first and
// then its lower-cased form. GFF attribute tags are case-variant across
// annotation providers.
func (f *Feature) Attr(key string) ([]string, bool) {
	if vs, ok := f.Attributes[key]; ok {
		return vs, true
	}
	if lower := strings.ToLower(key); lower != key {
		if vs, ok := f.Attributes[lower]; ok {
			return vs, true
		}
	}
	return nil, false
}

const schema = `
CREATE TABLE IF NOT EXISTS features (
    id          TEXT PRIMARY KEY,
    seqid       TEXT NOT NULL,
    source      TEXT NOT NULL,
    featuretype TEXT NOT NULL,
    start       INTEGER NOT NULL,
    end         INTEGER NOT NULL,
    score       TEXT NOT NULL,
    strand      TEXT NOT NULL,
    phase       INTEGER NOT NULL,
    attributes  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS relations (
    parent TEXT NOT NULL,
    child  TEXT NOT NULL,
    level  INTEGER NOT NULL,
    PRIMARY KEY (parent, child, level)
);
CREATE INDEX IF NOT EXISTS idx_relations_parent ON relations (parent);
`

// Store is an open feature database.
type Store struct {
	db   *sql.DB
	path string
}

// Create builds a new store at dbPath from the GFF source at gffPath. It
// fails with ErrStoreExists if dbPath already exists. On a failed build the
// partially-written database file is removed.
func Create(gffPath, dbPath string, opts Options) (*Store, error) {
	if _, err := os.Stat(dbPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreExists, dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	s := &Store{db: db, path: dbPath}

	if _, err := db.Exec(schema); err != nil {
		s.Close()
		os.Remove(dbPath)
		return nil, fmt.Errorf("create schema in %s: %w", dbPath, err)
	}
	if err := s.Update(gffPath, opts); err != nil {
		s.Close()
		os.Remove(dbPath)
		return nil, err
	}
	return s, nil
}

// Open opens an existing store. It fails with ErrStoreNotFound if dbPath
// does not exist.
func Open(dbPath string) (*Store, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, dbPath)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbPath, err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Update merges the GFF source at gffPath into the store.
func (s *Store) Update(gffPath string, opts Options) error {
	doc, err := gff.ReadFile(gffPath)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	type relation struct{ parent, child string }
	var relations []relation

	for i := range doc.Features {
		ft := &doc.Features[i]
		id := ft.ID()
		if id == "" {
			// ID-less features (common for exons and UTRs) get a stable
			// derived identifier local to the store.
			id = fmt.Sprintf("%s-%s-%d-%d", ft.Type, ft.Seqid, ft.Start, ft.End)
		}

		id, err := s.resolveID(tx, id, opts.Merge)
		if err != nil {
			return fmt.Errorf("%w in %s", err, gffPath)
		}

		attrs, err := json.Marshal(ft.Attributes)
		if err != nil {
			return fmt.Errorf("encode attributes of %s: %w", id, err)
		}
		_, err = tx.Exec(
			`INSERT INTO features (id, seqid, source, featuretype, start, end, score, strand, phase, attributes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, ft.Seqid, ft.Source, ft.Type, ft.Start, ft.End, ft.Score, ft.Strand, ft.Phase, string(attrs))
		if err != nil {
			return fmt.Errorf("insert feature %s: %w", id, err)
		}

		for _, parent := range ft.Parents() {
			relations = append(relations, relation{parent: parent, child: id})
		}
	}

	for _, rel := range relations {
		if opts.CheckIntegrity {
			var n int
			if err := tx.QueryRow(`SELECT COUNT(*) FROM features WHERE id = ?`, rel.parent).Scan(&n); err != nil {
				return fmt.Errorf("check parent %s: %w", rel.parent, err)
			}
			if n == 0 {
				return fmt.Errorf("%w: feature %q references missing parent %q", ErrIntegrity, rel.child, rel.parent)
			}
		}
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO relations (parent, child, level) VALUES (?, ?, 1)`,
			rel.parent, rel.child)
		if err != nil {
			return fmt.Errorf("insert relation %s -> %s: %w", rel.parent, rel.child, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// resolveID applies the merge policy to a candidate feature ID.
func (s *Store) resolveID(tx *sql.Tx, id string, policy MergePolicy) (string, error) {
	exists, err := idExists(tx, id)
	if err != nil {
		return "", err
	}
	if !exists {
		return id, nil
	}
	if policy == RejectOnCollision {
		return "", fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	for n := 1; ; n++ {
		candidate := id + "_" + strconv.Itoa(n)
		exists, err := idExists(tx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func idExists(tx *sql.Tx, id string) (bool, error) {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM features WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("look up feature ID %s: %w", id, err)
	}
	return n > 0, nil
}

const featureColumns = `id, seqid, source, featuretype, start, end, score, strand, phase, attributes`

// AllFeatures returns a restartable sequence over every stored feature in
// insertion order.
func (s *Store) AllFeatures() iter.Seq2[Feature, error] {
	return func(yield func(Feature, error) bool) {
		rows, err := s.db.Query(`SELECT ` + featureColumns + ` FROM features ORDER BY rowid`)
		if err != nil {
			yield(Feature{}, fmt.Errorf("query features: %w", err))
			return
		}
		defer rows.Close()
		for rows.Next() {
			ft, err := scanFeature(rows)
			if !yield(ft, err) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Feature{}, fmt.Errorf("iterate features: %w", err))
		}
	}
}

// Children returns the direct (level-1) children of the feature with the
// given ID, in insertion order.
func (s *Store) Children(id string) ([]Feature, error) {
	rows, err := s.db.Query(
		`SELECT `+featureColumns+` FROM features
		 JOIN relations ON features.id = relations.child
		 WHERE relations.parent = ? AND relations.level = 1
		 ORDER BY features.rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("query children of %s: %w", id, err)
	}
	defer rows.Close()

	var children []Feature
	for rows.Next() {
		ft, err := scanFeature(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate children of %s: %w", id, err)
	}
	return children, nil
}

// Count reports the number of stored features.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM features`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count features: %w", err)
	}
	return n, nil
}

func scanFeature(rows *sql.Rows) (Feature, error) {
	var ft Feature
	var attrs string
	err := rows.Scan(&ft.ID, &ft.Seqid, &ft.Source, &ft.Type, &ft.Start, &ft.End, &ft.Score, &ft.Strand, &ft.Phase, &attrs)
	if err != nil {
		return Feature{}, fmt.Errorf("scan feature: %w", err)
	}
	if err := json.Unmarshal([]byte(attrs), &ft.Attributes); err != nil {
		return Feature{}, fmt.Errorf("decode attributes of %s: %w", ft.ID, err)
	}
	return ft, nil
}
