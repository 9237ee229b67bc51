package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/kbmigrate"
	"github.com/fwojciec/kbmigrate/fs"
	"github.com/fwojciec/kbmigrate/migrate"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	folders, err := c.folders(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", kbmigrate.ErrorMessage(err))
		return err
	}
	if len(folders) == 0 {
		fmt.Fprintf(deps.Stdout, "No article folders found in %s\n", deps.Config.ArticlesRoot)
		return nil
	}

	if deps.Config.DryRun {
		fmt.Fprintln(deps.Stdout, "DRY RUN: nothing will be uploaded")
	}

	report, runErr := deps.Migrator.Run(deps.Ctx, folders, progressPrinter(deps.Stdout))

	if deps.Reports != nil {
		path, err := deps.Reports.SaveReport(deps.Ctx, report)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "warning: failed to save report: %v\n", err)
		} else {
			fmt.Fprintf(deps.Stdout, "Report saved to %s\n", path)
		}
	}

	printSummary(deps.Stdout, report)

	if runErr != nil {
		return runErr
	}
	if failed := report.Count(kbmigrate.StatusError); failed > 0 {
		return fmt.Errorf("%d article(s) failed", failed)
	}
	return nil
}

// folders returns the article folders to migrate in order.
func (c *RunCmd) folders(deps *Dependencies) ([]string, error) {
	if c.Folder != "" {
		return []string{c.Folder}, nil
	}

	discovery, err := fs.DiscoverArticles(deps.Config.ArticlesRoot, deps.Config.HTMLFilename)
	if err != nil {
		return nil, err
	}
	for _, dir := range discovery.Skipped {
		deps.Logger.Warn("no page found, skipping folder", "folder", dir, "html_filename", deps.Config.HTMLFilename)
	}
	return discovery.Folders, nil
}

func progressPrinter(w io.Writer) migrate.ProgressFunc {
	return func(e migrate.ProgressEvent) {
		switch e.Type {
		case migrate.ProgressStarted:
			fmt.Fprintf(w, "Migrating %d article folder(s)\n", e.Total)
		case migrate.ProgressCompleted, migrate.ProgressFailed:
			fmt.Fprintf(w, "[%d/%d] %s %s\n", e.Completed, e.Total, statusIcon(e.Result.Status), migrate.TruncatePath(e.Folder, 60))
		}
	}
}

func printSummary(w io.Writer, report *kbmigrate.Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "MIGRATION SUMMARY")
	fmt.Fprintf(w, "  Run ID:     %s\n", report.RunID)
	fmt.Fprintf(w, "  Total:      %d\n", len(report.Results))
	fmt.Fprintf(w, "  Succeeded:  %d\n", report.Count(kbmigrate.StatusSuccess))
	fmt.Fprintf(w, "  Skipped:    %d\n", report.Count(kbmigrate.StatusSkipped))
	fmt.Fprintf(w, "  Failed:     %d\n", report.Count(kbmigrate.StatusError))
	fmt.Fprintln(w)

	for _, r := range report.Results {
		name := r.Title
		if name == "" {
			name = r.Folder
		}
		fmt.Fprintf(w, "  %s %s\n", statusIcon(r.Status), name)
		if r.ArticleID != "" {
			fmt.Fprintf(w, "      Article ID: %s  Images: %d  Attachments: %d\n",
				r.ArticleID, r.ImagesUploaded, r.AttachmentsUploaded)
		}
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "      ERROR: %s\n", msg)
		}
	}
}

func statusIcon(status kbmigrate.ResultStatus) string {
	switch status {
	case kbmigrate.StatusSuccess:
		return "✓"
	case kbmigrate.StatusSkipped:
		return "-"
	default:
		return "✗"
	}
}
