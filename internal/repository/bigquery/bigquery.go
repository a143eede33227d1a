package bigquery

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"docreport/internal/config"
	"docreport/internal/model"
	"docreport/internal/repository"
)

// DocumentBigQuery reads the compliance cube from BigQuery with parameterized queries.
type DocumentBigQuery struct {
	client *bigquery.Client
	table  string
}

var _ repository.DocumentRepository = (*DocumentBigQuery)(nil)

type serviceAccount struct {
	ProjectID string `json:"project_id"`
}

// DecodeCredentials decodes a base64 service account JSON and returns it together
// with the project it belongs to.
func DecodeCredentials(encoded string) ([]byte, string, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, "", errors.New("bigquery credentials are not configured")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, "", fmt.Errorf("decode bigquery credentials: %w", err)
	}
	var sa serviceAccount
	if err := json.Unmarshal(raw, &sa); err != nil {
		return nil, "", fmt.Errorf("parse bigquery credentials: %w", err)
	}
	return raw, sa.ProjectID, nil
}

// NewDocumentBigQuery creates a BigQuery client from the configured credentials.
func NewDocumentBigQuery(ctx context.Context, c config.BigQueryConfig) (*DocumentBigQuery, error) {
	creds, projectID, err := DecodeCredentials(c.CredentialsBase64)
	if err != nil {
		return nil, err
	}
	if c.ProjectID != "" {
		projectID = c.ProjectID
	}
	if projectID == "" {
		return nil, errors.New("bigquery project id is not configured")
	}

	client, err := bigquery.NewClient(ctx, projectID, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, fmt.Errorf("bigquery client: %w", err)
	}
	return &DocumentBigQuery{client: client, table: c.Table}, nil
}

// Close releases the underlying client.
func (r *DocumentBigQuery) Close() error {
	return r.client.Close()
}

func (r *DocumentBigQuery) FindByPeriod(ctx context.Context, period string) ([]model.DocumentRecord, error) {
	rows, err := r.query(ctx, periodQuery(r.table), bigquery.QueryParameter{Name: "competencia", Value: period})
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func (r *DocumentBigQuery) HistoricalAggregates(ctx context.Context, period string) ([]model.HistoricalAggregate, error) {
	rows, err := r.query(ctx, aggregatesQuery(r.table), bigquery.QueryParameter{Name: "competencia", Value: period})
	if err != nil {
		return nil, err
	}
	out := make([]model.HistoricalAggregate, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.AggregateFromRow(row))
	}
	return out, nil
}

func (r *DocumentBigQuery) HistoricalPendencies(ctx context.Context) ([]model.DocumentRecord, error) {
	rows, err := r.query(ctx, pendenciesQuery(r.table))
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}

func (r *DocumentBigQuery) Ping(ctx context.Context) error {
	_, err := r.query(ctx, "SELECT 1 AS test")
	return err
}

func (r *DocumentBigQuery) query(ctx context.Context, sql string, params ...bigquery.QueryParameter) ([]repository.Row, error) {
	q := r.client.Query(sql)
	q.Parameters = params

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("bigquery query: %w", err)
	}

	rows := make([]repository.Row, 0)
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bigquery read: %w", err)
		}
		row := make(repository.Row, len(values))
		for k, v := range values {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toRecords(rows []repository.Row) []model.DocumentRecord {
	out := make([]model.DocumentRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.RecordFromRow(row))
	}
	return out
}
