package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"docreport/internal/model"
	"docreport/internal/repository"
)

// DocumentPostgres reads a PostgreSQL mirror of the compliance cube.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const recordColumns = `projeto, competencia, competencia_data, documento, prestador, cnpj_prestador,
		       contrato, status_geral_regra, critico, relevancia, documento_aprov_obs2,
		       documento_aprov_regulariza2, chave_composta, email_envio`

// FindByPeriod returns every record of the period.
func (r *DocumentPostgres) FindByPeriod(ctx context.Context, period string) ([]model.DocumentRecord, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM cubo_documentos
		WHERE competencia = $1
	`
	return r.queryRecords(ctx, q, period)
}

// HistoricalPendencies returns non-conforming and not-sent records of every period.
func (r *DocumentPostgres) HistoricalPendencies(ctx context.Context) ([]model.DocumentRecord, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM cubo_documentos
		WHERE status_geral_regra IN ('Não Conforme', 'Não Enviado')
	`
	return r.queryRecords(ctx, q)
}

// HistoricalAggregates groups the five periods ending at period.
func (r *DocumentPostgres) HistoricalAggregates(ctx context.Context, period string) ([]model.HistoricalAggregate, error) {
	const q = `
		WITH referencia AS (
			SELECT competencia_data AS data_ref
			FROM cubo_documentos
			WHERE competencia = $1
			LIMIT 1
		),
		ultimas_5 AS (
			SELECT DISTINCT t.competencia
			FROM cubo_documentos t
			CROSS JOIN referencia r
			WHERE t.competencia_data BETWEEN r.data_ref - INTERVAL '4 months' AND r.data_ref
		)
		SELECT projeto, prestador, contrato, competencia,
		       COUNT(*) FILTER (WHERE status_geral_regra = 'Não Conforme') AS total_pendencias,
		       COUNT(*) FILTER (WHERE status_geral_regra = 'Não Conforme' AND critico = '1') AS total_criticos,
		       COALESCE(SUM(CASE
		           WHEN (projeto IN ('Reparação Bacia do Rio Doce', 'Samarco - COA') AND status_geral_regra = 'Conforme')
		             OR (projeto NOT IN ('Reparação Bacia do Rio Doce', 'Samarco - COA') AND status_geral_regra IN ('Conforme', 'Em Análise'))
		           THEN relevancia ELSE 0 END), 0) AS perc_atingido
		FROM cubo_documentos
		WHERE competencia IN (SELECT competencia FROM ultimas_5)
		GROUP BY projeto, prestador, contrato, competencia
		ORDER BY competencia
	`
	rows, err := r.db.QueryContext(ctx, q, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.HistoricalAggregate, 0)
	for rows.Next() {
		var (
			a                     model.HistoricalAggregate
			project, provider     sql.NullString
			contract, periodOf    sql.NullString
			pendencies, criticals int64
			reached               decimal.Decimal
		)
		if err := rows.Scan(&project, &provider, &contract, &periodOf, &pendencies, &criticals, &reached); err != nil {
			return nil, err
		}
		a.Project = project.String
		a.Provider = provider.String
		a.Contract = contract.String
		a.Period = periodOf.String
		a.TotalPendencies = int(pendencies)
		a.TotalCritical = int(criticals)
		a.PercentageReached = reached.InexactFloat64()
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Ping runs a trivial query.
func (r *DocumentPostgres) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return nil
}

func (r *DocumentPostgres) queryRecords(ctx context.Context, q string, args ...any) ([]model.DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentRecord, 0)
	for rows.Next() {
		var (
			project, period, document, provider, taxID sql.NullString
			contract, status, critical                 sql.NullString
			observation, regularization                sql.NullString
			compositeKey, emails                       sql.NullString
			periodDate                                 sql.NullTime
			relevance                                  decimal.NullDecimal
		)
		if err := rows.Scan(
			&project,
			&period,
			&periodDate,
			&document,
			&provider,
			&taxID,
			&contract,
			&status,
			&critical,
			&relevance,
			&observation,
			&regularization,
			&compositeKey,
			&emails,
		); err != nil {
			return nil, err
		}

		d := model.DocumentRecord{
			Project:             project.String,
			Period:              period.String,
			Document:            document.String,
			Provider:            provider.String,
			ProviderTaxID:       taxID.String,
			Contract:            contract.String,
			Status:              status.String,
			Critical:            critical.String,
			Relevance:           repository.Float(relevance),
			ApprovalObservation: observation.String,
			RegularizationNote:  regularization.String,
			CompositeKey:        compositeKey.String,
			RecipientEmails:     emails.String,
		}
		if periodDate.Valid {
			d.PeriodDate = periodDate.Time.Format(time.DateOnly)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
