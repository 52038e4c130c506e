package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spektr-org/lookbook/engine"
	"github.com/spektr-org/lookbook/report"
)

// ============================================================================
// SNAPSHOT STORE — SQLite copy of a dashboard run
// ============================================================================
// One database holds any number of runs keyed by report ID. Each run stores
// the tagged catalog rows and the aggregates shown on the dashboard, so the
// numbers can be queried later without the source CSV.
// ============================================================================

// Snapshot is an open snapshot database.
type Snapshot struct {
	db *sql.DB
}

// Run describes one stored dashboard run.
type Run struct {
	ID            string
	GeneratedAt   time.Time
	Source        string
	Selection     []string
	FilteredCount int
}

// Open opens (creating if needed) a snapshot database with WAL enabled.
func Open(ctx context.Context, path string) (*Snapshot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Snapshot{db: db}, nil
}

// Close closes the database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	generated_at TEXT NOT NULL,
	source TEXT,
	selection TEXT NOT NULL,
	filtered_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT,
	category TEXT,
	subcategory TEXT,
	price REAL,
	stars REAL,
	best_seller INTEGER NOT NULL,
	collection TEXT,
	PRIMARY KEY(run_id, position),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS summary_stats (
	run_id TEXT NOT NULL,
	column_name TEXT NOT NULL,
	count INTEGER NOT NULL,
	mean REAL, std REAL, min REAL, q25 REAL, median REAL, q75 REAL, max REAL,
	PRIMARY KEY(run_id, column_name),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS group_means (
	run_id TEXT NOT NULL,
	dimension TEXT NOT NULL,
	label TEXT NOT NULL,
	count INTEGER NOT NULL,
	mean_price REAL,
	mean_stars REAL,
	PRIMARY KEY(run_id, dimension, label),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS best_sellers (
	run_id TEXT NOT NULL,
	dimension TEXT NOT NULL,
	label TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(run_id, dimension, label),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS collections (
	run_id TEXT NOT NULL,
	label TEXT NOT NULL,
	total INTEGER NOT NULL,
	best_sellers INTEGER NOT NULL,
	avg_price REAL,
	PRIMARY KEY(run_id, label),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_products_collection ON products(run_id, collection);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(run_id, category);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Export writes one run to the database at path and closes it.
func Export(ctx context.Context, path string, r *report.Report, catalog engine.RecordView) error {
	s, err := Open(ctx, path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer s.Close()
	return s.Save(ctx, r, catalog)
}

// Save stores a run in one transaction. Every catalog row is stored with the
// collection label the run's collection list assigns to it.
func (s *Snapshot) Save(ctx context.Context, r *report.Report, catalog engine.RecordView) error {
	d := r.Dashboard
	tagger, err := engine.NewTagger(d.Collections.Collections)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	selection, err := json.Marshal(d.Selection)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, generated_at, source, selection, filtered_count) VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.GeneratedAt.UTC().Format(time.RFC3339Nano), r.Source, string(selection), d.Main.FilteredCount,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err := insertProducts(ctx, tx, r.ID, engine.Rows(tagger.Tag(catalog))); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	if err := insertStats(ctx, tx, r.ID, d.Main.Summary); err != nil {
		return fmt.Errorf("insert summary stats: %w", err)
	}
	for dim, groups := range map[string][]engine.Group{
		engine.KeyCategory:    d.Main.ByCategory,
		engine.KeySubcategory: d.Main.BySubcategory,
	} {
		if err := insertMeans(ctx, tx, r.ID, dim, groups); err != nil {
			return fmt.Errorf("insert %s means: %w", dim, err)
		}
	}
	for dim, groups := range map[string][]engine.Group{
		engine.KeyCategory:    d.Main.BestByCategory,
		engine.KeySubcategory: d.Main.BestBySubcategory,
	} {
		if err := insertCounts(ctx, tx, r.ID, dim, groups); err != nil {
			return fmt.Errorf("insert %s best sellers: %w", dim, err)
		}
	}
	if err := insertCollections(ctx, tx, r.ID, d.Collections); err != nil {
		return fmt.Errorf("insert collections: %w", err)
	}

	return tx.Commit()
}

func insertProducts(ctx context.Context, tx *sql.Tx, runID string, rows []engine.ProductRow) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO products
		(run_id, position, name, category, subcategory, price, stars, best_seller, collection)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range rows {
		if _, err := stmt.ExecContext(ctx, runID, i,
			nullable(p.Name), nullable(p.Category), nullable(p.Subcategory),
			nullable(p.Price), nullable(p.Stars), p.BestSeller, nullable(p.Collection),
		); err != nil {
			return err
		}
	}
	return nil
}

func insertStats(ctx context.Context, tx *sql.Tx, runID string, stats []engine.ColumnStats) error {
	for _, st := range stats {
		if _, err := tx.ExecContext(ctx, `INSERT INTO summary_stats
			(run_id, column_name, count, mean, std, min, q25, median, q75, max)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, st.Column, st.Count,
			nullable(st.Mean), nullable(st.Std), nullable(st.Min), nullable(st.Q25),
			nullable(st.Median), nullable(st.Q75), nullable(st.Max),
		); err != nil {
			return err
		}
	}
	return nil
}

func insertMeans(ctx context.Context, tx *sql.Tx, runID, dim string, groups []engine.Group) error {
	for _, g := range groups {
		if _, err := tx.ExecContext(ctx, `INSERT INTO group_means
			(run_id, dimension, label, count, mean_price, mean_stars) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, dim, g.Key, g.Count, nullable(g.Means[engine.KeyPrice]), nullable(g.Means[engine.KeyStars]),
		); err != nil {
			return err
		}
	}
	return nil
}

func insertCounts(ctx context.Context, tx *sql.Tx, runID, dim string, groups []engine.Group) error {
	for _, g := range groups {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO best_sellers (run_id, dimension, label, count) VALUES (?, ?, ?, ?)`,
			runID, dim, g.Key, g.Count,
		); err != nil {
			return err
		}
	}
	return nil
}

func insertCollections(ctx context.Context, tx *sql.Tx, runID string, cv engine.CollectionsView) error {
	avg := make(map[string]engine.Optional[float64], len(cv.AvgPrice))
	for _, g := range cv.AvgPrice {
		avg[g.Key] = g.Means[engine.KeyPrice]
	}
	for i, label := range cv.Summary.Labels {
		if _, err := tx.ExecContext(ctx, `INSERT INTO collections
			(run_id, label, total, best_sellers, avg_price) VALUES (?, ?, ?, ?, ?)`,
			runID, label, cv.Summary.Total[i], cv.Summary.BestSellers[i], nullable(avg[label]),
		); err != nil {
			return err
		}
	}
	return nil
}

// nullable maps an absent value to SQL NULL.
func nullable[T any](o engine.Optional[T]) any {
	if !o.Ok {
		return nil
	}
	return o.Value
}

// ============================================================================
// READ BACK
// ============================================================================

// Runs lists stored runs, oldest first.
func (s *Snapshot) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, generated_at, source, selection, filtered_count FROM runs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var generated, selection string
		var source sql.NullString
		if err := rows.Scan(&r.ID, &generated, &source, &selection, &r.FilteredCount); err != nil {
			return nil, err
		}
		r.Source = source.String
		if r.GeneratedAt, err = time.Parse(time.RFC3339Nano, generated); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(selection), &r.Selection); err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Products returns the stored catalog rows of a run in catalog order.
func (s *Snapshot) Products(ctx context.Context, runID string) ([]engine.ProductRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, category, subcategory, price, stars, best_seller, collection
		FROM products WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.ProductRow
	for rows.Next() {
		var name, category, subcategory, collection sql.NullString
		var price, stars sql.NullFloat64
		var p engine.ProductRow
		if err := rows.Scan(&name, &category, &subcategory, &price, &stars, &p.BestSeller, &collection); err != nil {
			return nil, err
		}
		p.Name = optString(name)
		p.Category = optString(category)
		p.Subcategory = optString(subcategory)
		p.Price = optFloat(price)
		p.Stars = optFloat(stars)
		p.Collection = optString(collection)
		out = append(out, p)
	}
	return out, rows.Err()
}

// CollectionCounts returns stored total and best-seller counts keyed by label.
func (s *Snapshot) CollectionCounts(ctx context.Context, runID string) (map[string][2]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, total, best_sellers FROM collections WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][2]int)
	for rows.Next() {
		var label string
		var total, best int
		if err := rows.Scan(&label, &total, &best); err != nil {
			return nil, err
		}
		out[label] = [2]int{total, best}
	}
	return out, rows.Err()
}

func optString(n sql.NullString) engine.Optional[string] {
	if !n.Valid {
		return engine.None[string]()
	}
	return engine.Some(n.String)
}

func optFloat(n sql.NullFloat64) engine.Optional[float64] {
	if !n.Valid {
		return engine.None[float64]()
	}
	return engine.Some(n.Float64)
}
