package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docreport/internal/assets"
	"docreport/internal/chart"
	"docreport/internal/compliance"
	"docreport/internal/logger"
	"docreport/internal/mail"
	"docreport/internal/metrics"
	"docreport/internal/model"
	"docreport/internal/report"
	"docreport/internal/repository"
	"docreport/internal/storage"
)

var (
	ErrInvalidPeriod    = errors.New("invalid period, expected YYYY-MM")
	ErrEmptyBatch       = errors.New("dispatch list is empty")
	ErrContractNotFound = errors.New("no documents found for contract")
	ErrNoRecipients     = errors.New("no recipient emails")
)

// Failure reasons reported per contract in a batch.
const (
	reasonNoRecipients = "Nenhum email fornecido"
	reasonNotFound     = "Nenhum documento encontrado"

	statusSent       = "enviado"
	previewRecipient = "exemplo@email.com"
	csvContentType   = "text/csv"
)

// ConsultResult lists the contracts of a period that can receive a report.
type ConsultResult struct {
	Success        bool                       `json:"success"`
	Period         string                     `json:"competencia"`
	TotalContracts int                        `json:"total_contratos"`
	TotalDocuments int                        `json:"total_documentos"`
	Contracts      []model.ContractForSending `json:"contratos"`
}

// ReportService defines the report use cases.
type ReportService interface {
	// Consult scores every contract with recipients in period.
	Consult(ctx context.Context, period string) (*ConsultResult, error)

	// Preview renders the report of one contract without sending it.
	Preview(ctx context.Context, key model.ContractKey, period string) (string, error)

	// SendBatch renders and mails one report per dispatch. Warehouse data for every
	// period in the batch is read before the first mail leaves; a read failure aborts
	// the batch. Per-contract failures are collected in the result.
	SendBatch(ctx context.Context, dispatches []model.Dispatch) (*model.BatchResult, error)

	// Ping checks warehouse connectivity.
	Ping(ctx context.Context) error
}

// Deps are the collaborators of the report service. Rasterizer, Archive and Logo are optional.
type Deps struct {
	Repo       repository.DocumentRepository
	Mailer     mail.Transport
	Composer   *report.Composer
	Rasterizer chart.Rasterizer
	Logo       assets.LogoSource
	Archive    storage.Storage
	Metrics    *metrics.Metrics
	Log        *zap.Logger
	From       string
}

type reportService struct {
	repo       repository.DocumentRepository
	mailer     mail.Transport
	composer   *report.Composer
	rasterizer chart.Rasterizer
	logo       assets.LogoSource
	archive    storage.Storage
	metrics    *metrics.Metrics
	log        *zap.Logger
	from       string
	tracer     trace.Tracer
}

// NewReportService constructs a ReportService.
func NewReportService(d Deps) ReportService {
	s := &reportService{
		repo:       d.Repo,
		mailer:     d.Mailer,
		composer:   d.Composer,
		rasterizer: d.Rasterizer,
		logo:       d.Logo,
		archive:    d.Archive,
		metrics:    d.Metrics,
		log:        d.Log,
		from:       d.From,
		tracer:     otel.Tracer("docreport/service"),
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

func (s *reportService) Consult(ctx context.Context, period string) (*ConsultResult, error) {
	if !compliance.ValidPeriod(period) {
		return nil, ErrInvalidPeriod
	}
	ctx, span := s.tracer.Start(ctx, "ReportService.Consult", trace.WithAttributes(attribute.String("period", period)))
	defer span.End()

	records, err := s.repo.FindByPeriod(ctx, period)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("consult period %s: %w", period, err)
	}

	contracts := compliance.ContractsForSending(period, records)
	return &ConsultResult{
		Success:        true,
		Period:         period,
		TotalContracts: len(contracts),
		TotalDocuments: len(records),
		Contracts:      contracts,
	}, nil
}

func (s *reportService) Preview(ctx context.Context, key model.ContractKey, period string) (string, error) {
	if !compliance.ValidPeriod(period) {
		return "", ErrInvalidPeriod
	}
	ctx, span := s.tracer.Start(ctx, "ReportService.Preview", trace.WithAttributes(contractAttrs(key, period)...))
	defer span.End()

	data, err := s.loadPeriod(ctx, period)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	docs := compliance.FilterContract(data.records, key)
	if len(docs) == 0 {
		return "", ErrContractNotFound
	}
	recipients := compliance.ParseRecipients(docs[0].RecipientEmails)
	if len(recipients) == 0 {
		recipients = []string{previewRecipient}
	}

	html, err := s.render(ctx, key, period, docs, data.aggregates, recipients, s.logoBase64(ctx))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return html, nil
}

func (s *reportService) SendBatch(ctx context.Context, dispatches []model.Dispatch) (*model.BatchResult, error) {
	if len(dispatches) == 0 {
		return nil, ErrEmptyBatch
	}
	for _, d := range dispatches {
		if !compliance.ValidPeriod(d.Period) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, d.Period)
		}
	}
	ctx, span := s.tracer.Start(ctx, "ReportService.SendBatch", trace.WithAttributes(attribute.Int("dispatches", len(dispatches))))
	defer span.End()

	periods, pendencies, err := s.prefetch(ctx, dispatches)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	log := logger.FromContext(ctx, s.log)
	logo := s.logoBase64(ctx)
	res := &model.BatchResult{
		Success: true,
		Results: make([]model.DispatchResult, 0, len(dispatches)),
		Errors:  make([]model.DispatchError, 0),
	}

	for _, d := range dispatches {
		fields := []zap.Field{
			zap.String("project", d.Project),
			zap.String("provider", d.Provider),
			zap.String("contract", d.Contract),
			zap.String("period", d.Period),
		}

		out, err := s.dispatch(ctx, d, periods[d.Period], pendencies, logo)
		if err != nil {
			log.Warn("report dispatch failed", append(fields, zap.Error(err))...)
			s.metrics.Dispatch(d.Project, metrics.OutcomeFailed)
			res.Errors = append(res.Errors, model.DispatchError{
				Provider: d.Provider,
				Contract: d.Contract,
				Reason:   failureReason(err),
			})
			continue
		}

		log.Info("report dispatched", append(fields, zap.Int("recipients", len(out.Emails)))...)
		s.metrics.Dispatch(d.Project, metrics.OutcomeSent)
		res.Results = append(res.Results, out)
	}

	res.TotalSent = len(res.Results)
	res.TotalFails = len(res.Errors)
	span.SetAttributes(attribute.Int("sent", res.TotalSent), attribute.Int("failed", res.TotalFails))
	return res, nil
}

func (s *reportService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// periodData is the warehouse snapshot of one period.
type periodData struct {
	records    []model.DocumentRecord
	aggregates []model.HistoricalAggregate
}

func (s *reportService) loadPeriod(ctx context.Context, period string) (periodData, error) {
	var data periodData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.repo.FindByPeriod(gctx, period)
		if err != nil {
			return fmt.Errorf("load documents for %s: %w", period, err)
		}
		data.records = recs
		return nil
	})
	g.Go(func() error {
		aggs, err := s.repo.HistoricalAggregates(gctx, period)
		if err != nil {
			return fmt.Errorf("load history for %s: %w", period, err)
		}
		data.aggregates = aggs
		return nil
	})
	if err := g.Wait(); err != nil {
		return periodData{}, err
	}
	return data, nil
}

// prefetch reads every distinct period of the batch plus the historical pendencies.
func (s *reportService) prefetch(ctx context.Context, dispatches []model.Dispatch) (map[string]periodData, []model.DocumentRecord, error) {
	distinct := make([]string, 0)
	seen := make(map[string]bool)
	for _, d := range dispatches {
		if !seen[d.Period] {
			seen[d.Period] = true
			distinct = append(distinct, d.Period)
		}
	}

	loaded := make([]periodData, len(distinct))
	var pendencies []model.DocumentRecord

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range distinct {
		g.Go(func() error {
			data, err := s.loadPeriod(gctx, p)
			if err != nil {
				return err
			}
			loaded[i] = data
			return nil
		})
	}
	g.Go(func() error {
		recs, err := s.repo.HistoricalPendencies(gctx)
		if err != nil {
			return fmt.Errorf("load historical pendencies: %w", err)
		}
		pendencies = recs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	out := make(map[string]periodData, len(distinct))
	for i, p := range distinct {
		out[p] = loaded[i]
	}
	return out, pendencies, nil
}

func (s *reportService) dispatch(ctx context.Context, d model.Dispatch, data periodData, pendencies []model.DocumentRecord, logo string) (model.DispatchResult, error) {
	key := d.Key()
	ctx, span := s.tracer.Start(ctx, "ReportService.dispatch", trace.WithAttributes(contractAttrs(key, d.Period)...))
	defer span.End()

	emails := cleanEmails(d.Emails)
	if len(emails) == 0 {
		return model.DispatchResult{}, ErrNoRecipients
	}
	docs := compliance.FilterContract(data.records, key)
	if len(docs) == 0 {
		return model.DispatchResult{}, ErrContractNotFound
	}

	html, err := s.render(ctx, key, d.Period, docs, data.aggregates, emails, logo)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return model.DispatchResult{}, err
	}

	msg := mail.Message{
		From:    s.from,
		To:      emails,
		Subject: report.Subject(d.Provider, d.Contract, d.Period),
		HTML:    html,
	}
	var csv []byte
	var csvName string
	if own := compliance.FilterContract(pendencies, key); len(own) > 0 {
		csv = report.PendencyCSV(own)
		csvName = report.PendencyFilename(d.Provider, d.Contract)
		msg.Attachments = []mail.Attachment{{Filename: csvName, ContentType: csvContentType, Data: csv}}
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return model.DispatchResult{}, err
	}

	return model.DispatchResult{
		Provider:   d.Provider,
		Contract:   d.Contract,
		Emails:     emails,
		Status:     statusSent,
		ArchiveKey: s.archiveReport(ctx, d, html, csv, csvName),
	}, nil
}

// render builds the history, chart and HTML of one contract.
func (s *reportService) render(ctx context.Context, key model.ContractKey, period string, docs []model.DocumentRecord, aggregates []model.HistoricalAggregate, recipients []string, logo string) (string, error) {
	history, err := compliance.BuildHistory(period, key, aggregates)
	if err != nil {
		return "", fmt.Errorf("build history: %w", err)
	}

	log := logger.FromContext(ctx, s.log)
	img := chart.Render(ctx, s.rasterizer, history, log)
	if img == nil && s.rasterizer != nil {
		s.metrics.ChartFallback()
	}

	html, err := s.composer.Compose(report.Input{
		Project:    key.Project,
		Provider:   key.Provider,
		Contract:   key.Contract,
		Period:     period,
		History:    history,
		Documents:  docs,
		Recipients: recipients,
		Chart:      img,
		LogoBase64: logo,
	})
	if err != nil {
		return "", fmt.Errorf("compose report: %w", err)
	}
	return html, nil
}

// archiveReport stores the sent HTML and CSV. The HTML object is removed again when
// the CSV upload fails. Failures are logged and yield an empty key.
func (s *reportService) archiveReport(ctx context.Context, d model.Dispatch, html string, csv []byte, csvName string) string {
	if s.archive == nil {
		return ""
	}
	log := logger.FromContext(ctx, s.log).With(
		zap.String("provider", d.Provider),
		zap.String("contract", d.Contract),
		zap.String("period", d.Period),
	)

	id := uuid.NewString()
	htmlKey := storage.ReportKey(d.Period, id+".html")
	if _, err := s.archive.Put(ctx, htmlKey, strings.NewReader(html), storage.PutObjectOptions{
		Size:        int64(len(html)),
		ContentType: "text/html; charset=utf-8",
	}); err != nil {
		log.Error("archive report failed", zap.String("key", htmlKey), zap.Error(err))
		return ""
	}

	if len(csv) > 0 {
		csvKey := storage.ReportKey(d.Period, id+".csv")
		if _, err := s.archive.Put(ctx, csvKey, bytes.NewReader(csv), storage.PutObjectOptions{
			Size:        int64(len(csv)),
			ContentType: csvContentType,
			Metadata:    map[string]string{"filename": csvName},
		}); err != nil {
			log.Error("archive pendency csv failed", zap.String("key", csvKey), zap.Error(err))
			if derr := s.archive.Delete(ctx, htmlKey); derr != nil {
				log.Error("rollback archived report failed", zap.String("key", htmlKey), zap.Error(derr))
			}
			return ""
		}
	}
	return htmlKey
}

func (s *reportService) logoBase64(ctx context.Context) string {
	if s.logo == nil {
		return ""
	}
	return s.logo.LogoBase64(ctx)
}

func cleanEmails(in []string) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrNoRecipients):
		return reasonNoRecipients
	case errors.Is(err, ErrContractNotFound):
		return reasonNotFound
	default:
		return err.Error()
	}
}

func contractAttrs(key model.ContractKey, period string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("project", key.Project),
		attribute.String("provider", key.Provider),
		attribute.String("contract", key.Contract),
		attribute.String("period", period),
	}
}
