package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"docreport/internal/assets"
	"docreport/internal/chart"
	"docreport/internal/config"
	"docreport/internal/database"
	"docreport/internal/logger"
	"docreport/internal/mail"
	"docreport/internal/metrics"
	"docreport/internal/report"
	"docreport/internal/repository"
	"docreport/internal/repository/bigquery"
	"docreport/internal/repository/postgres"
	"docreport/internal/service"
	"docreport/internal/storage"
)

// application holds the wired service and the resources to release on exit.
type application struct {
	cfg      *config.AppConfig
	log      *zap.Logger
	registry *prometheus.Registry
	service  service.ReportService
	closers  []func() error
}

type appOptions struct {
	// needMail requires SMTP settings; preview and consult work without them.
	needMail bool
}

func loadConfig() (*config.AppConfig, *time.Location, *zap.Logger) {
	cfg := config.Load()
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Location: loc})
	return cfg, loc, log
}

func newApplication(ctx context.Context, cfg *config.AppConfig, loc *time.Location, log *zap.Logger, opts appOptions) (*application, error) {
	a := &application{cfg: cfg, log: log, registry: prometheus.NewRegistry()}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m, err := metrics.New(a.registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	repo, err := a.openWarehouse(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	var mailer mail.Transport
	if opts.needMail {
		t, err := mail.NewSMTPTransport(cfg.SMTP)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("mail transport: %w", err)
		}
		mailer = t
	}

	var store storage.Storage
	if cfg.MinIO.Enabled() && (cfg.Report.LogoObjectKey != "" || cfg.Report.ArchiveEnabled) {
		store, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("object storage: %w", err)
		}
	}

	var logo assets.LogoSource = &assets.FileLogo{Path: cfg.Report.LogoPath, Log: log}
	if cfg.Report.LogoObjectKey != "" && store != nil {
		logo = &assets.ObjectLogo{Store: store, Key: cfg.Report.LogoObjectKey, Log: log}
	}

	var archive storage.Storage
	if cfg.Report.ArchiveEnabled {
		if store == nil {
			log.Warn("report archive enabled without object storage; archiving disabled")
		}
		archive = store
	}

	composer, err := report.NewComposer(report.WithLocation(loc))
	if err != nil {
		a.Close()
		return nil, err
	}

	a.service = service.NewReportService(service.Deps{
		Repo:       metrics.InstrumentRepository(repo, m),
		Mailer:     mailer,
		Composer:   composer,
		Rasterizer: a.rasterizer(),
		Logo:       logo,
		Archive:    archive,
		Metrics:    m,
		Log:        log,
		From:       cfg.SMTP.From,
	})
	return a, nil
}

func (a *application) openWarehouse(ctx context.Context) (repository.DocumentRepository, error) {
	switch a.cfg.WarehouseDriver {
	case config.DriverBigQuery:
		bq, err := bigquery.NewDocumentBigQuery(ctx, a.cfg.BigQuery)
		if err != nil {
			return nil, fmt.Errorf("bigquery: %w", err)
		}
		a.closers = append(a.closers, bq.Close)
		return bq, nil
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, a.cfg.Database, a.log)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		return postgres.NewDocumentPostgres(db), nil
	default:
		return nil, fmt.Errorf("unknown warehouse driver %q", a.cfg.WarehouseDriver)
	}
}

func (a *application) rasterizer() chart.Rasterizer {
	switch a.cfg.Chart.Renderer {
	case config.RendererNone:
		return nil
	case config.RendererSVG:
		return chart.SVGRasterizer{}
	default:
		r := chart.NewChromedpRasterizer(chart.ChromedpConfig{
			RemoteURL: a.cfg.Chart.RemoteURL,
			Timeout:   time.Duration(a.cfg.Chart.TimeoutSec) * time.Second,
			NoSandbox: a.cfg.Chart.NoSandbox,
			Logger:    a.log,
		})
		a.closers = append(a.closers, r.Close)
		return r
	}
}

// Close releases resources in reverse order of acquisition.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close resource", zap.Error(err))
		}
	}
	a.closers = nil
}
