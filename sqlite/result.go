package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/kbmigrate"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kbmigrate.ResultService = (*ResultService)(nil)

// ResultService implements kbmigrate.ResultService using SQLite.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// CreateResult stores a result, assigning a new ID and CreatedAt.
func (s *ResultService) CreateResult(ctx context.Context, result *kbmigrate.Result) error {
	if err := result.Validate(); err != nil {
		return err
	}

	result.ID = uuid.New().String()
	result.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (id, run_id, folder, status, article_id, title, body_hash,
			images_uploaded, attachments_uploaded, warnings, errors, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID, result.RunID, result.Folder, string(result.Status), result.ArticleID, result.Title,
		result.BodyHash, result.ImagesUploaded, result.AttachmentsUploaded,
		joinMessages(result.Warnings), joinMessages(result.Errors),
		result.CreatedAt.Format(time.RFC3339))

	return err
}

// FindResults retrieves results matching the filter, newest first.
func (s *ResultService) FindResults(ctx context.Context, filter kbmigrate.ResultFilter) ([]*kbmigrate.Result, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, run_id, folder, status, article_id, title, body_hash,
		images_uploaded, attachments_uploaded, warnings, errors, created_at FROM results WHERE 1=1`)

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Folder != nil {
		query.WriteString(" AND folder = ?")
		args = append(args, *filter.Folder)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*kbmigrate.Result
	for rows.Next() {
		var r kbmigrate.Result
		var status, warnings, errs, createdAt string

		if err := rows.Scan(&r.ID, &r.RunID, &r.Folder, &status, &r.ArticleID, &r.Title, &r.BodyHash,
			&r.ImagesUploaded, &r.AttachmentsUploaded, &warnings, &errs, &createdAt); err != nil {
			return nil, err
		}

		r.Status = kbmigrate.ResultStatus(status)
		r.Warnings = splitMessages(warnings)
		r.Errors = splitMessages(errs)
		if r.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		results = append(results, &r)
	}

	return results, rows.Err()
}
