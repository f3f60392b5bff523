package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/ethanol1310/hotnews"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ hotnews.RunService = (*RunService)(nil)

// RunService implements hotnews.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// hashURL computes the xxHash of an article URL as a hex string.
// It keys the article index so lookups do not compare full URLs.
func hashURL(url string) string {
	h := xxhash.Sum64String(url)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateRun saves a run and its articles in rank order within one transaction.
func (s *RunService) CreateRun(ctx context.Context, run *hotnews.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, source, start_date, end_date, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Source), run.Start, run.End, run.Total,
		run.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	for i, a := range run.Articles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_articles (run_id, rank, url, url_hash, title, total_likes)
			VALUES (?, ?, ?, ?, ?, ?)
		`, run.ID, i+1, a.URL, hashURL(a.URL), a.Title, a.TotalLikes); err != nil {
			return fmt.Errorf("failed to insert article %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run with its articles in rank order.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*hotnews.Run, error) {
	var run hotnews.Run
	var source, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, start_date, end_date, total, created_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &source, &run.Start, &run.End, &run.Total, &createdAt)

	if err == sql.ErrNoRows {
		return nil, hotnews.Errorf(hotnews.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.Source = hotnews.SourceName(source)
	if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, total_likes
		FROM run_articles
		WHERE run_id = ?
		ORDER BY rank ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a hotnews.Article
		if err := rows.Scan(&a.URL, &a.Title, &a.TotalLikes); err != nil {
			return nil, err
		}
		run.Articles = append(run.Articles, &a)
	}

	return &run, rows.Err()
}

// FindRuns retrieves runs matching the filter, newest first.
// Articles are not loaded.
func (s *RunService) FindRuns(ctx context.Context, filter hotnews.RunFilter) ([]*hotnews.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, start_date, end_date, total, created_at FROM runs WHERE 1=1")

	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}
	if filter.URL != nil {
		query.WriteString(" AND id IN (SELECT run_id FROM run_articles WHERE url_hash = ? AND url = ?)")
		args = append(args, hashURL(*filter.URL), *filter.URL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*hotnews.Run
	for rows.Next() {
		var run hotnews.Run
		var source, createdAt string

		if err := rows.Scan(&run.ID, &source, &run.Start, &run.End, &run.Total, &createdAt); err != nil {
			return nil, err
		}

		run.Source = hotnews.SourceName(source)
		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
