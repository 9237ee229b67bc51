// Package migrate provides migration orchestration.
// It coordinates classification, transformation, file uploads,
// placeholder substitution and article creation for export folders.
package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/kbmigrate"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DryRunArticleID is the article ID reported for dry runs.
const DryRunArticleID = "DRY_RUN_ID"

// Migrator migrates article folders into the destination system.
type Migrator struct {
	Transformer kbmigrate.Transformer
	Classifier  kbmigrate.CategoryClassifier
	Uploader    kbmigrate.Uploader
	Articles    kbmigrate.ArticleService

	// Results records outcomes when set.
	Results kbmigrate.ResultService

	// Ledger skips folders already migrated when set.
	Ledger *Ledger

	Config     kbmigrate.Config
	ExportRoot string
	Logger     *slog.Logger

	RetryDelays []time.Duration
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Folder    string
	Result    *kbmigrate.Result
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// folderResult holds the outcome of processing a single folder.
type folderResult struct {
	position int
	result   *kbmigrate.Result
}

// Run migrates folders and returns a report with results in folder order.
// A failed folder never stops the run; cancellation stops issuing new
// folders and returns the report so far with the context error.
func (m *Migrator) Run(ctx context.Context, folders []string, progress ProgressFunc) (*kbmigrate.Report, error) {
	report := &kbmigrate.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		DryRun:    m.Config.DryRun,
	}

	concurrency := m.Config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	resultCh := make(chan folderResult, len(folders))
	var completed atomic.Int64
	total := len(folders)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	go func() {
		for i, folder := range folders {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				resultCh <- folderResult{position: i, result: m.MigrateFolder(ctx, report.RunID, folder)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*kbmigrate.Result, len(folders))
	for fr := range resultCh {
		completed.Add(1)
		results[fr.position] = fr.result
		m.record(ctx, fr.result)

		if progress != nil {
			typ := ProgressCompleted
			if fr.result.Failed() {
				typ = ProgressFailed
			}
			progress(ProgressEvent{
				Type:      typ,
				Completed: int(completed.Load()),
				Total:     total,
				Folder:    fr.result.Folder,
				Result:    fr.result,
			})
		}
	}

	for _, r := range results {
		if r != nil {
			report.Results = append(report.Results, r)
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: int(completed.Load()), Total: total})
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// record stores a result in the ledger. Storage failures are logged only.
func (m *Migrator) record(ctx context.Context, result *kbmigrate.Result) {
	if m.Results == nil || m.Config.DryRun || result.Status == kbmigrate.StatusSkipped {
		return
	}
	if err := m.Results.CreateResult(ctx, result); err != nil {
		m.logger().Error("failed to record result", "folder", result.Folder, "error", err)
		return
	}
	if m.Ledger != nil && result.Status == kbmigrate.StatusSuccess {
		m.Ledger.Record(result.Folder)
	}
}

// MigrateFolder migrates a single article folder. Failures are reported
// in the returned result, never as an error.
func (m *Migrator) MigrateFolder(ctx context.Context, runID, folder string) *kbmigrate.Result {
	folder = filepath.Clean(folder)
	logger := m.logger().With("folder", filepath.Base(folder))
	result := &kbmigrate.Result{
		RunID:  runID,
		Folder: folder,
		Status: kbmigrate.StatusPending,
	}

	if err := m.migrate(ctx, logger, folder, result); err != nil {
		result.Status = kbmigrate.StatusError
		result.Errors = append(result.Errors, err.Error())
		logger.Error("failed to migrate article", "error", err)
		return result
	}
	if result.Status == kbmigrate.StatusPending {
		result.Status = kbmigrate.StatusSuccess
		logger.Info("article migrated", "title", result.Title, "article_id", result.ArticleID)
	}
	return result
}

func (m *Migrator) migrate(ctx context.Context, logger *slog.Logger, folder string, result *kbmigrate.Result) error {
	htmlPath := filepath.Join(folder, m.htmlFilename())

	if m.Ledger != nil {
		done, err := m.Ledger.Migrated(ctx, folder)
		if err != nil {
			return fmt.Errorf("ledger lookup: %w", err)
		}
		if done {
			m.skip(logger, result, "already migrated")
			return nil
		}
	}

	if m.Config.SkipCategoryPages && m.Classifier != nil && m.Classifier.IsCategoryPage(htmlPath) {
		m.skip(logger, result, "category page")
		return nil
	}

	article, err := m.Transformer.Transform(htmlPath, kbmigrate.ExportLayout{
		ExportRoot: m.ExportRoot,
		ArticleDir: folder,
	})
	if err != nil {
		return err
	}
	result.Title = article.Title

	replacements := make(kbmigrate.Replacements, len(article.Images)+len(article.Attachments))

	for _, img := range article.Images {
		if !fileExists(img.LocalPath) {
			msg := "image not found: " + img.LocalPath
			logger.Error(msg)
			result.Errors = append(result.Errors, msg)
			replacements[img.Placeholder] = kbmigrate.MissingImageValue
			continue
		}
		if m.Config.DryRun {
			logger.Info("dry run: would upload image", "filename", img.Filename)
			replacements[img.Placeholder] = kbmigrate.DryRunValue(img)
			continue
		}
		uploaded, err := m.upload(ctx, img)
		if err != nil {
			return err
		}
		replacements[img.Placeholder] = uploaded.RenditionURL
		result.ImagesUploaded++
	}

	var documents []*kbmigrate.UploadResult
	for _, att := range article.Attachments {
		if !fileExists(att.LocalPath) {
			msg := "attachment not found: " + att.LocalPath
			logger.Warn(msg)
			result.Warnings = append(result.Warnings, msg)
			replacements[att.Placeholder] = kbmigrate.MissingAttachmentValue
			continue
		}
		if m.Config.DryRun {
			logger.Info("dry run: would upload attachment", "filename", att.Filename)
			replacements[att.Placeholder] = kbmigrate.DryRunValue(att)
			continue
		}
		uploaded, err := m.upload(ctx, att)
		if err != nil {
			return err
		}
		replacements[att.Placeholder] = uploaded.DownloadURL
		documents = append(documents, uploaded)
		result.AttachmentsUploaded++
	}

	body := kbmigrate.Substitute(article.Body, replacements)
	result.BodyHash = ComputeHash(body)

	if n, limit := utf8.RuneCountInString(body), m.Config.MaxBodyLength; limit > 0 && n > limit {
		msg := fmt.Sprintf("article body is %d chars, exceeds the %d char limit", n, limit)
		logger.Warn(msg)
		result.Warnings = append(result.Warnings, msg)
	}

	if m.Config.DryRun {
		logger.Info("dry run: would create article", "title", article.Title, "body_size", FormatBytes(len(body)))
		result.ArticleID = DryRunArticleID
		return nil
	}

	articleID, err := m.Articles.CreateArticle(ctx, &kbmigrate.ArticleDraft{
		Title: article.Title,
		Body:  body,
	})
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	result.ArticleID = articleID

	for _, doc := range documents {
		if err := m.Articles.LinkFile(ctx, doc.DocumentID, articleID); err != nil {
			msg := fmt.Sprintf("could not link %s: %s", doc.Filename, err.Error())
			logger.Warn(msg)
			result.Warnings = append(result.Warnings, msg)
		}
	}

	if m.Config.Publish {
		if err := m.Articles.PublishArticle(ctx, articleID); err != nil {
			msg := "could not publish article: " + err.Error()
			logger.Warn(msg)
			result.Warnings = append(result.Warnings, msg)
		}
	}

	return nil
}

func (m *Migrator) skip(logger *slog.Logger, result *kbmigrate.Result, reason string) {
	logger.Info("skipping folder", "reason", reason)
	result.Status = kbmigrate.StatusSkipped
	result.Warnings = append(result.Warnings, "skipped: "+reason)
}

func (m *Migrator) upload(ctx context.Context, ref kbmigrate.MediaRef) (*kbmigrate.UploadResult, error) {
	delays := m.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	uploaded, err := UploadWithRetry(ctx, m.Uploader, ref.LocalPath, ref.Filename, m.logger(), delays)
	if err != nil {
		return nil, fmt.Errorf("upload %s %s: %w", ref.Kind, ref.Filename, err)
	}
	return uploaded, nil
}

func (m *Migrator) htmlFilename() string {
	if m.Config.HTMLFilename == "" {
		return kbmigrate.DefaultConfig().HTMLFilename
	}
	return m.Config.HTMLFilename
}

func (m *Migrator) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return m.Logger
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
