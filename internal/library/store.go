// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library persists collected papers in a SQLite database. Loading
// a paper is pure deserialization: scoring fields are stored flat and
// never re-derived on read.
package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper-prospector/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "library.db"
)

// Store manages the personal library SQLite database.
type Store struct {
	db         *sql.DB
	libraryDir string
	maxResults int
}

// NewStore opens or creates the library database at
// libraryDir/index/library.db, creating the schema if needed.
func NewStore(cfg types.LibraryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.LibraryDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{
		db:         db,
		libraryDir: cfg.LibraryDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			id TEXT PRIMARY KEY,
			doi TEXT,
			title TEXT NOT NULL,
			authors TEXT,
			journal TEXT,
			year INTEGER,
			citation_count INTEGER NOT NULL DEFAULT 0,
			reference_count INTEGER,
			source TEXT,
			impact_score INTEGER NOT NULL,
			potential_score INTEGER NOT NULL,
			bias_penalty INTEGER NOT NULL,
			classification TEXT NOT NULL,
			integrity_status TEXT NOT NULL,
			risk_reason TEXT,
			breakdown_base INTEGER NOT NULL,
			breakdown_evidence INTEGER NOT NULL,
			breakdown_team INTEGER NOT NULL,
			breakdown_volume INTEGER NOT NULL,
			breakdown_integrity INTEGER NOT NULL,
			is_reviewed INTEGER NOT NULL DEFAULT 0,
			final_score INTEGER,
			deleted INTEGER NOT NULL DEFAULT 0,
			collected_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_classification ON papers(classification)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_deleted ON papers(deleted)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

var idUnsafe = regexp.MustCompile(`[^a-z0-9._/-]+`)

// PaperID returns the stable library key for a paper: its lower-cased DOI
// when present, otherwise a slug of the title.
func PaperID(p types.EvaluatedPaper) string {
	if p.DOI != "" {
		return strings.ToLower(p.DOI)
	}
	slug := idUnsafe.ReplaceAllString(strings.ToLower(p.Title), "-")
	return strings.Trim(slug, "-")
}

// Collect stores an evaluated paper. Collecting an already stored paper
// refreshes its row and clears a soft delete.
func (s *Store) Collect(ctx context.Context, p types.EvaluatedPaper) error {
	id := PaperID(p)
	if id == "" {
		return fmt.Errorf("paper has neither DOI nor title")
	}

	authorsJSON, _ := json.Marshal(p.Authors)
	refCount := sql.NullInt64{}
	if p.ReferenceCount != nil {
		refCount = sql.NullInt64{Int64: int64(*p.ReferenceCount), Valid: true}
	}
	finalScore := sql.NullInt64{}
	if p.IsReviewed {
		finalScore = sql.NullInt64{Int64: int64(p.FinalScore), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO papers (
			id, doi, title, authors, journal, year, citation_count,
			reference_count, source, impact_score, potential_score,
			bias_penalty, classification, integrity_status, risk_reason,
			breakdown_base, breakdown_evidence, breakdown_team,
			breakdown_volume, breakdown_integrity,
			is_reviewed, final_score, deleted, collected_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?)
		 ON CONFLICT(id) DO UPDATE SET
			doi=excluded.doi, title=excluded.title, authors=excluded.authors,
			journal=excluded.journal, year=excluded.year,
			citation_count=excluded.citation_count,
			reference_count=excluded.reference_count, source=excluded.source,
			impact_score=excluded.impact_score,
			potential_score=excluded.potential_score,
			bias_penalty=excluded.bias_penalty,
			classification=excluded.classification,
			integrity_status=excluded.integrity_status,
			risk_reason=excluded.risk_reason,
			breakdown_base=excluded.breakdown_base,
			breakdown_evidence=excluded.breakdown_evidence,
			breakdown_team=excluded.breakdown_team,
			breakdown_volume=excluded.breakdown_volume,
			breakdown_integrity=excluded.breakdown_integrity,
			is_reviewed=excluded.is_reviewed,
			final_score=excluded.final_score,
			deleted=0`,
		id, p.DOI, p.Title, string(authorsJSON), p.Journal, p.Year,
		p.CitationCount, refCount, p.Source,
		p.ImpactScore, p.PotentialScore, p.BiasPenalty,
		string(p.Classification), string(p.Integrity), p.RiskReason,
		p.Breakdown.Base, p.Breakdown.Evidence, p.Breakdown.Team,
		p.Breakdown.VolumePenalty, p.Breakdown.IntegrityPenalty,
		p.IsReviewed, finalScore,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing paper %s: %w", id, err)
	}
	return nil
}

// Entry is a stored paper with its library bookkeeping fields.
type Entry struct {
	types.EvaluatedPaper `yaml:",inline"`

	ID          string    `json:"id" yaml:"id"`
	Deleted     bool      `json:"deleted" yaml:"deleted"`
	CollectedAt time.Time `json:"collected_at" yaml:"collected_at"`
}

// ErrNotFound is returned when a paper ID has no row.
var ErrNotFound = sql.ErrNoRows

const entryColumns = `id, doi, title, authors, journal, year, citation_count,
	reference_count, source, impact_score, potential_score, bias_penalty,
	classification, integrity_status, risk_reason,
	breakdown_base, breakdown_evidence, breakdown_team,
	breakdown_volume, breakdown_integrity,
	is_reviewed, final_score, deleted, collected_at`

// Get loads one paper by library ID, including soft-deleted entries.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM papers WHERE id = ?`, strings.ToLower(id))
	return scanEntry(row)
}

// ListOptions filters List output.
type ListOptions struct {
	// Classification keeps only papers with the given tag when non-empty.
	Classification types.Classification

	// IncludeDeleted keeps soft-deleted papers in the listing.
	IncludeDeleted bool

	// MaxResults limits the listing. Zero uses the store default.
	MaxResults int
}

// List returns stored papers ordered by potential score descending.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT ` + entryColumns + ` FROM papers WHERE 1=1`)
	if !opts.IncludeDeleted {
		qb.WriteString(` AND deleted = 0`)
	}
	if opts.Classification != "" {
		qb.WriteString(` AND classification = ?`)
		args = append(args, string(opts.Classification))
	}
	qb.WriteString(` ORDER BY potential_score DESC, collected_at DESC LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying library: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete soft-deletes a paper. The row stays so Restore can undo it.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.setDeleted(ctx, id, 1)
}

// Restore undoes a soft delete.
func (s *Store) Restore(ctx context.Context, id string) error {
	return s.setDeleted(ctx, id, 0)
}

func (s *Store) setDeleted(ctx context.Context, id string, deleted int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE papers SET deleted = ? WHERE id = ?`, deleted, strings.ToLower(id))
	if err != nil {
		return fmt.Errorf("updating paper %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("paper %s not found", id)
	}
	return nil
}

// ApplyReview persists the outcome of a review action for a stored paper.
func (s *Store) ApplyReview(ctx context.Context, id string, reviewed types.EvaluatedPaper) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE papers SET is_reviewed = ?, final_score = ?, classification = ?
		 WHERE id = ?`,
		reviewed.IsReviewed, reviewed.FinalScore, string(reviewed.Classification),
		strings.ToLower(id))
	if err != nil {
		return fmt.Errorf("updating review for %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("paper %s not found", id)
	}
	return nil
}

// CountByClassification returns how many non-deleted papers carry each tag.
func (s *Store) CountByClassification(ctx context.Context) (map[types.Classification]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT classification, COUNT(*) FROM papers WHERE deleted = 0 GROUP BY classification`)
	if err != nil {
		return nil, fmt.Errorf("counting papers: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.Classification]int)
	for rows.Next() {
		var tag string
		var n int
		if err := rows.Scan(&tag, &n); err != nil {
			return nil, fmt.Errorf("scanning count row: %w", err)
		}
		counts[types.Classification(tag)] = n
	}
	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e           Entry
		authorsJSON sql.NullString
		refCount    sql.NullInt64
		finalScore  sql.NullInt64
		class       string
		integrity   string
		riskReason  sql.NullString
		collectedAt string
	)

	err := row.Scan(
		&e.ID, &e.DOI, &e.Title, &authorsJSON, &e.Journal, &e.Year,
		&e.CitationCount, &refCount, &e.Source,
		&e.ImpactScore, &e.PotentialScore, &e.BiasPenalty,
		&class, &integrity, &riskReason,
		&e.Breakdown.Base, &e.Breakdown.Evidence, &e.Breakdown.Team,
		&e.Breakdown.VolumePenalty, &e.Breakdown.IntegrityPenalty,
		&e.IsReviewed, &finalScore, &e.Deleted, &collectedAt,
	)
	if err != nil {
		return Entry{}, err
	}

	e.Classification = types.Classification(class)
	e.Integrity = types.IntegrityStatus(integrity)
	if riskReason.Valid {
		e.RiskReason = riskReason.String
	}
	if authorsJSON.Valid {
		json.Unmarshal([]byte(authorsJSON.String), &e.Authors)
	}
	if refCount.Valid {
		n := int(refCount.Int64)
		e.ReferenceCount = &n
	}
	if finalScore.Valid {
		e.FinalScore = int(finalScore.Int64)
	}
	if t, parseErr := time.Parse(time.RFC3339, collectedAt); parseErr == nil {
		e.CollectedAt = t
	}
	return e, nil
}
