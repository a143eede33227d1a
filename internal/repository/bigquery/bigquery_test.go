package bigquery

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreport/internal/config"
)

const table = "datalake-metax.zz_Disparo_Docs.Cubo_Documentos"

func TestDecodeCredentials(t *testing.T) {
	json := `{"type":"service_account","project_id":"datalake-metax"}`
	raw, project, err := DecodeCredentials(base64.StdEncoding.EncodeToString([]byte(json)))
	require.NoError(t, err)
	assert.Equal(t, json, string(raw))
	assert.Equal(t, "datalake-metax", project)
}

func TestDecodeCredentials_Errors(t *testing.T) {
	tests := map[string]string{
		"empty":       "  ",
		"not base64":  "***",
		"not json":    base64.StdEncoding.EncodeToString([]byte("nope")),
		"json string": base64.StdEncoding.EncodeToString([]byte(`"x"`)),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeCredentials(in)
			assert.Error(t, err)
		})
	}
}

func TestNewDocumentBigQuery_RequiresProject(t *testing.T) {
	creds := base64.StdEncoding.EncodeToString([]byte(`{"type":"service_account"}`))
	_, err := NewDocumentBigQuery(context.Background(), config.BigQueryConfig{CredentialsBase64: creds, Table: table})
	assert.EqualError(t, err, "bigquery project id is not configured")
}

func TestQueries(t *testing.T) {
	q := periodQuery(table)
	assert.Contains(t, q, "FROM `"+table+"`")
	assert.Contains(t, q, "WHERE COMPETENCIA = @competencia")
	assert.Contains(t, q, "email_envio")
	assert.Equal(t, 14, strings.Count(q, ",\n")+1)

	q = pendenciesQuery(table)
	assert.Contains(t, q, "STATUS_GERAL_Regra IN ('Não Conforme', 'Não Enviado')")
	assert.NotContains(t, q, "@competencia")

	q = aggregatesQuery(table)
	assert.Equal(t, 3, strings.Count(q, "`"+table+"`"))
	assert.Contains(t, q, "DATE_SUB(r.data_ref, INTERVAL 4 MONTH)")
	assert.Contains(t, q, "relevancia_conforme AS perc_atingido")
	assert.Contains(t, q, "SAFE_CAST(CRITICO AS INT64) = 1")
}
