package config

import (
	"encoding/base64"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("WAREHOUSE_DRIVER", "postgres")
	t.Setenv("CHART_RENDERER", "svg")
	t.Setenv("REPORT_ARCHIVE_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, DriverPostgres, cfg.WarehouseDriver)
	assert.Equal(t, RendererSVG, cfg.Chart.Renderer)
	assert.True(t, cfg.Report.ArchiveEnabled)
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "APP_TIMEZONE", "WAREHOUSE_DRIVER", "BIGQUERY_TABLE", "CHART_RENDERER",
		"CHART_TIMEOUT_SEC", "LOGO_PATH", "SMTP_PORT", "SMTP_FROM", "EMAIL_CREDENCIAL",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.Equal(t, DriverBigQuery, cfg.WarehouseDriver)
	assert.Equal(t, "datalake-metax.zz_Disparo_Docs.Cubo_Documentos", cfg.BigQuery.Table)
	assert.Equal(t, RendererChromedp, cfg.Chart.Renderer)
	assert.Equal(t, 20, cfg.Chart.TimeoutSec)
	assert.Equal(t, "public/images/logo.png", cfg.Report.LogoPath)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "noreply@metax.com", cfg.SMTP.From)
}

func TestLoad_BigQueryCredentialFallback(t *testing.T) {
	t.Setenv("BIGQUERY_CREDENTIALS_BASE64", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "ZmFsbGJhY2s=")
	assert.Equal(t, "ZmFsbGJhY2s=", Load().BigQuery.CredentialsBase64)

	t.Setenv("BIGQUERY_CREDENTIALS_BASE64", "cHJpbWFyeQ==")
	assert.Equal(t, "cHJpbWFyeQ==", Load().BigQuery.CredentialsBase64)
}

func TestLoad_SMTPFromCredentialBundle(t *testing.T) {
	bundle := `{"smtp_server":"smtp.example.com","smtp_port":2525,"smtp_user":"bot","smtp_password":"secret","smtp_from":"reports@example.com"}`
	t.Setenv("EMAIL_CREDENCIAL", base64.StdEncoding.EncodeToString([]byte(bundle)))
	t.Setenv("SMTP_SERVER", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_USER", "override")
	t.Setenv("SMTP_PASSWORD", "")
	t.Setenv("SMTP_FROM", "")

	smtp := Load().SMTP

	assert.Equal(t, "smtp.example.com", smtp.Server)
	assert.Equal(t, 2525, smtp.Port)
	assert.Equal(t, "override", smtp.User)
	assert.Equal(t, "secret", smtp.Password)
	assert.Equal(t, "reports@example.com", smtp.From)
}

func TestDecodeSMTPCredential(t *testing.T) {
	_, err := DecodeSMTPCredential("%%%")
	assert.Error(t, err)

	_, err = DecodeSMTPCredential(base64.StdEncoding.EncodeToString([]byte("not json")))
	assert.Error(t, err)

	c, err := DecodeSMTPCredential(base64.StdEncoding.EncodeToString([]byte(`{"smtp_server":"h","smtp_port":25}`)))
	require.NoError(t, err)
	assert.Equal(t, SMTPConfig{Server: "h", Port: 25}, c)
}

func TestMinIOConfigEnabled(t *testing.T) {
	assert.False(t, MinIOConfig{}.Enabled())
	assert.False(t, MinIOConfig{Endpoint: "localhost:9000"}.Enabled())
	assert.True(t, MinIOConfig{Endpoint: "localhost:9000", Bucket: "reports"}.Enabled())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
