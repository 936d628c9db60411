// Package db is the sqlite-backed catalog store. Layouts and their
// per-language metric rows are ingested from scraped data files; every
// ingest is recorded as an audit row. Schema is managed by embedded
// migrations, see migrate.go.
package db

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ergodata/layout.report/internal/dataset"
)

type DB struct {
	*sql.DB
}

// OpenDB opens the database without touching the schema. Use this from the
// migrate subcommand where migrations manage the schema explicitly.
func OpenDB(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return &DB{sqlDB}, nil
}

// NewDB opens the database and brings the schema up to date.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// IngestRun summarizes one catalog ingest.
type IngestRun struct {
	RunID       string `json:"run_id"`
	Source      string `json:"source"`
	ScrapedAt   string `json:"scraped_at"`
	LayoutCount int    `json:"layout_count"`
	MetricCount int    `json:"metric_count"`
}

// IngestDocument upserts every layout and metric row from a scraped
// document inside one transaction and records the run. Re-ingesting the
// same document is idempotent apart from the audit row.
func (db *DB) IngestDocument(doc *dataset.Document, source string) (*IngestRun, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	metricCount := 0
	for i := range doc.Layouts {
		rec := &doc.Layouts[i]
		_, err := tx.Exec(
			`INSERT INTO layouts (name, url, thumb, website, year, family, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(name) DO UPDATE SET
				url = excluded.url,
				thumb = excluded.thumb,
				website = excluded.website,
				year = excluded.year,
				family = excluded.family,
				updated_at = CURRENT_TIMESTAMP`,
			rec.Name, rec.URL, rec.Thumb, nullable(rec.Website), nullableInt(rec.Year), nullable(rec.Family),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert layout %q: %w", rec.Name, err)
		}

		for language, metrics := range rec.Metrics {
			for key, value := range metrics.Fields() {
				_, err := tx.Exec(
					`INSERT INTO layout_metrics (layout_name, language, metric, value)
					 VALUES (?, ?, ?, ?)
					 ON CONFLICT(layout_name, language, metric) DO UPDATE SET value = excluded.value`,
					rec.Name, language, key, value,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to upsert metric %s/%s for %q: %w", language, key, rec.Name, err)
				}
				metricCount++
			}
		}
	}

	run := &IngestRun{
		RunID:       uuid.NewString(),
		Source:      source,
		ScrapedAt:   doc.ScrapedAt,
		LayoutCount: len(doc.Layouts),
		MetricCount: metricCount,
	}
	_, err = tx.Exec(
		`INSERT INTO ingest_runs (run_id, source, scraped_at, layout_count, metric_count)
		 VALUES (?, ?, ?, ?, ?)`,
		run.RunID, run.Source, run.ScrapedAt, run.LayoutCount, run.MetricCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record ingest run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return run, nil
}

// ListLayouts returns every catalog entry with all metric rows folded back
// into per-language records, ordered by name.
func (db *DB) ListLayouts() ([]dataset.LayoutRecord, error) {
	rows, err := db.Query(
		`SELECT name, url, thumb, COALESCE(website,''), COALESCE(year,0), COALESCE(family,'')
		 FROM layouts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []dataset.LayoutRecord
	index := make(map[string]int)
	for rows.Next() {
		var rec dataset.LayoutRecord
		if err := rows.Scan(&rec.Name, &rec.URL, &rec.Thumb, &rec.Website, &rec.Year, &rec.Family); err != nil {
			return nil, err
		}
		rec.Metrics = make(map[string]dataset.Metrics)
		index[rec.Name] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	mrows, err := db.Query(`SELECT layout_name, language, metric, value FROM layout_metrics`)
	if err != nil {
		return nil, err
	}
	defer mrows.Close()

	for mrows.Next() {
		var name, language, metric, value string
		if err := mrows.Scan(&name, &language, &metric, &value); err != nil {
			return nil, err
		}
		i, ok := index[name]
		if !ok {
			continue
		}
		m := records[i].Metrics[language]
		if !m.SetField(metric, value) {
			// Unknown metric key from a newer scraper; skip the row.
			continue
		}
		records[i].Metrics[language] = m
	}
	if err := mrows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetLayout returns one catalog entry by name.
func (db *DB) GetLayout(name string) (*dataset.LayoutRecord, error) {
	var rec dataset.LayoutRecord
	err := db.QueryRow(
		`SELECT name, url, thumb, COALESCE(website,''), COALESCE(year,0), COALESCE(family,'')
		 FROM layouts WHERE name = ?`, name,
	).Scan(&rec.Name, &rec.URL, &rec.Thumb, &rec.Website, &rec.Year, &rec.Family)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("layout %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	rec.Metrics = make(map[string]dataset.Metrics)

	rows, err := db.Query(
		`SELECT language, metric, value FROM layout_metrics WHERE layout_name = ?`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var language, metric, value string
		if err := rows.Scan(&language, &metric, &value); err != nil {
			return nil, err
		}
		m := rec.Metrics[language]
		if m.SetField(metric, value) {
			rec.Metrics[language] = m
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Languages returns the distinct languages present in the metric rows,
// sorted.
func (db *DB) Languages() ([]string, error) {
	rows, err := db.Query(`SELECT DISTINCT language FROM layout_metrics`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var langs []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(langs)
	return langs, nil
}

// LastIngestRun returns the most recent ingest audit row, or nil when the
// catalog has never been ingested.
func (db *DB) LastIngestRun() (*IngestRun, error) {
	var run IngestRun
	err := db.QueryRow(
		`SELECT run_id, COALESCE(source,''), COALESCE(scraped_at,''), layout_count, metric_count
		 FROM ingest_runs ORDER BY timestamp DESC, run_id DESC LIMIT 1`,
	).Scan(&run.RunID, &run.Source, &run.ScrapedAt, &run.LayoutCount, &run.MetricCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v int) interface{} {
	if v == 0 {
		return nil
	}
	return v
}
