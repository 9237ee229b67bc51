package kbmigrate

import (
	"context"
	"time"
)

// ResultStatus is the outcome of migrating one article folder.
type ResultStatus string

// ResultStatus constants.
const (
	StatusPending ResultStatus = "pending"
	StatusSuccess ResultStatus = "success"
	StatusSkipped ResultStatus = "skipped"
	StatusError   ResultStatus = "error"
)

// Result records the migration of one article folder.
type Result struct {
	ID    string `json:"id"`
	RunID string `json:"runId"`

	Folder string       `json:"folder"`
	Status ResultStatus `json:"status"`

	ArticleID string `json:"articleId"`
	Title     string `json:"title"`

	// BodyHash identifies the final body content.
	BodyHash string `json:"bodyHash"`

	ImagesUploaded      int `json:"imagesUploaded"`
	AttachmentsUploaded int `json:"attachmentsUploaded"`

	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the result contains invalid fields.
func (r *Result) Validate() error {
	if r.RunID == "" {
		return Errorf(EINVALID, "result run ID required")
	}
	if r.Folder == "" {
		return Errorf(EINVALID, "result folder required")
	}
	return nil
}

// Failed reports whether the result is an error.
func (r *Result) Failed() bool {
	return r.Status == StatusError
}

// ResultService persists migration results across runs.
type ResultService interface {
	// CreateResult stores a result, assigning ID and CreatedAt.
	CreateResult(ctx context.Context, result *Result) error

	// FindResults retrieves results matching the filter, newest first.
	FindResults(ctx context.Context, filter ResultFilter) ([]*Result, error)
}

// ResultFilter represents a filter for FindResults.
type ResultFilter struct {
	RunID  *string       `json:"runId"`
	Folder *string       `json:"folder"`
	Status *ResultStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Report summarizes one migration run.
type Report struct {
	RunID     string    `json:"runId"`
	StartedAt time.Time `json:"startedAt"`
	DryRun    bool      `json:"dryRun"`
	Results   []*Result `json:"results"`
}

// Count returns the number of results with the given status.
func (r *Report) Count(status ResultStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// ReportStore persists run reports.
type ReportStore interface {
	// SaveReport writes the report and returns where it was stored.
	SaveReport(ctx context.Context, report *Report) (string, error)
}
