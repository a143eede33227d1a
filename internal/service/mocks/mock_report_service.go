package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreport/internal/model"
	"docreport/internal/service"
)

type MockReportService struct {
	mock.Mock
}

var _ service.ReportService = (*MockReportService)(nil)

func (m *MockReportService) Consult(ctx context.Context, period string) (*service.ConsultResult, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ConsultResult), args.Error(1)
}

func (m *MockReportService) Preview(ctx context.Context, key model.ContractKey, period string) (string, error) {
	args := m.Called(ctx, key, period)
	return args.String(0), args.Error(1)
}

func (m *MockReportService) SendBatch(ctx context.Context, dispatches []model.Dispatch) (*model.BatchResult, error) {
	args := m.Called(ctx, dispatches)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BatchResult), args.Error(1)
}

func (m *MockReportService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
