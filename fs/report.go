// Package fs provides file-based access to the MindTouch export and
// file-based storage for run reports.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/kbmigrate"
)

// Ensure ReportStore implements kbmigrate.ReportStore at compile time.
var _ kbmigrate.ReportStore = (*ReportStore)(nil)

// ReportStore writes run reports as JSON files into a directory.
// Reports are written to a temporary file and renamed into place, so a
// partially written report is never visible.
type ReportStore struct {
	dir string
}

// NewReportStore creates a new ReportStore writing to dir.
func NewReportStore(dir string) *ReportStore {
	return &ReportStore{dir: dir}
}

// ReportName returns the file name of the report for a run started at the
// report's StartedAt time.
func ReportName(report *kbmigrate.Report) string {
	return "upload_report_" + report.StartedAt.Format("20060102_150405") + ".json"
}

// SaveReport writes the report and returns its path.
func (s *ReportStore) SaveReport(ctx context.Context, report *kbmigrate.Report) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	finalPath := filepath.Join(s.dir, ReportName(report))
	tmp, err := os.CreateTemp(s.dir, ".report-*.tmp")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return finalPath, nil
}
