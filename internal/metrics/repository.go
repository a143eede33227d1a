package metrics

import (
	"context"
	"time"

	"docreport/internal/model"
	"docreport/internal/repository"
)

// instrumentedRepository records query latency around another repository.
type instrumentedRepository struct {
	next repository.DocumentRepository
	m    *Metrics
}

// InstrumentRepository wraps repo so every warehouse call is timed.
func InstrumentRepository(repo repository.DocumentRepository, m *Metrics) repository.DocumentRepository {
	return &instrumentedRepository{next: repo, m: m}
}

func (r *instrumentedRepository) FindByPeriod(ctx context.Context, period string) ([]model.DocumentRecord, error) {
	start := time.Now()
	out, err := r.next.FindByPeriod(ctx, period)
	r.m.observeQuery("find_by_period", time.Since(start).Seconds(), err)
	return out, err
}

func (r *instrumentedRepository) HistoricalAggregates(ctx context.Context, period string) ([]model.HistoricalAggregate, error) {
	start := time.Now()
	out, err := r.next.HistoricalAggregates(ctx, period)
	r.m.observeQuery("historical_aggregates", time.Since(start).Seconds(), err)
	return out, err
}

func (r *instrumentedRepository) HistoricalPendencies(ctx context.Context) ([]model.DocumentRecord, error) {
	start := time.Now()
	out, err := r.next.HistoricalPendencies(ctx)
	r.m.observeQuery("historical_pendencies", time.Since(start).Seconds(), err)
	return out, err
}

func (r *instrumentedRepository) Ping(ctx context.Context) error {
	start := time.Now()
	err := r.next.Ping(ctx)
	r.m.observeQuery("ping", time.Since(start).Seconds(), err)
	return err
}
