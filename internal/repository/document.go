package repository

import (
	"context"

	"docreport/internal/model"
)

// DocumentRepository is the read-only row source of the compliance cube.
// Implementations return normalized records and contain no business logic.
type DocumentRepository interface {
	// FindByPeriod returns every document record of a YYYY-MM period.
	FindByPeriod(ctx context.Context, period string) ([]model.DocumentRecord, error)

	// HistoricalAggregates returns per (project, provider, contract, period) totals for
	// the five periods ending at period, ordered by period.
	HistoricalAggregates(ctx context.Context, period string) ([]model.HistoricalAggregate, error)

	// HistoricalPendencies returns every non-conforming or not-sent record across all periods.
	HistoricalPendencies(ctx context.Context) ([]model.DocumentRecord, error)

	// Ping checks that the warehouse answers a trivial query.
	Ping(ctx context.Context) error
}

// Columns of the compliance cube, in select order.
const (
	ColProject             = "PROJETO"
	ColPeriod              = "COMPETENCIA"
	ColPeriodDate          = "Competencia_Data"
	ColDocument            = "DOCUMENTO"
	ColProvider            = "PRESTADOR"
	ColProviderTaxID       = "CNPJ_PRESTADOR"
	ColContract            = "CONTRATO"
	ColStatus              = "STATUS_GERAL_Regra"
	ColCritical            = "CRITICO"
	ColRelevance           = "RELEVANCIA"
	ColApprovalObservation = "DOCUMENTO_APROV_OBS2"
	ColRegularizationNote  = "DOCUMENTO_APROV_REGULARIZA2"
	ColCompositeKey        = "Chave_Composta"
	ColRecipientEmails     = "email_envio"

	ColTotalPendencies   = "total_pendencias"
	ColTotalCritical     = "total_criticos"
	ColPercentageReached = "perc_atingido"
)

// RecordColumns lists the document record columns in select order.
var RecordColumns = []string{
	ColProject, ColPeriod, ColPeriodDate, ColDocument, ColProvider, ColProviderTaxID,
	ColContract, ColStatus, ColCritical, ColRelevance, ColApprovalObservation,
	ColRegularizationNote, ColCompositeKey, ColRecipientEmails,
}
