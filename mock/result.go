package mock

import (
	"context"

	"github.com/fwojciec/kbmigrate"
)

var (
	_ kbmigrate.ResultService = (*ResultService)(nil)
	_ kbmigrate.ReportStore   = (*ReportStore)(nil)
)

// ResultService is a mock implementation of kbmigrate.ResultService.
type ResultService struct {
	CreateResultFn func(ctx context.Context, result *kbmigrate.Result) error
	FindResultsFn  func(ctx context.Context, filter kbmigrate.ResultFilter) ([]*kbmigrate.Result, error)
}

func (s *ResultService) CreateResult(ctx context.Context, result *kbmigrate.Result) error {
	return s.CreateResultFn(ctx, result)
}

func (s *ResultService) FindResults(ctx context.Context, filter kbmigrate.ResultFilter) ([]*kbmigrate.Result, error) {
	return s.FindResultsFn(ctx, filter)
}

// ReportStore is a mock implementation of kbmigrate.ReportStore.
type ReportStore struct {
	SaveReportFn func(ctx context.Context, report *kbmigrate.Report) (string, error)
}

func (s *ReportStore) SaveReport(ctx context.Context, report *kbmigrate.Report) (string, error) {
	return s.SaveReportFn(ctx, report)
}
