package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docreport/internal/model"
	"docreport/internal/repository"
)

type MockDocumentRepository struct {
	mock.Mock
}

var _ repository.DocumentRepository = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindByPeriod(ctx context.Context, period string) ([]model.DocumentRecord, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentRecord), args.Error(1)
}

func (m *MockDocumentRepository) HistoricalAggregates(ctx context.Context, period string) ([]model.HistoricalAggregate, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoricalAggregate), args.Error(1)
}

func (m *MockDocumentRepository) HistoricalPendencies(ctx context.Context) ([]model.DocumentRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentRecord), args.Error(1)
}

func (m *MockDocumentRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
