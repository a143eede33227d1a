package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Warehouse drivers.
const (
	DriverBigQuery = "bigquery"
	DriverPostgres = "postgres"
)

// Chart renderers.
const (
	RendererChromedp = "chromedp"
	RendererSVG      = "svg"
	RendererNone     = "none"
)

// DatabaseConfig holds PostgreSQL settings of the warehouse mirror.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
}

// BigQueryConfig holds the production warehouse settings.
type BigQueryConfig struct {
	// CredentialsBase64 is a base64 encoded service account JSON.
	CredentialsBase64 string
	// ProjectID defaults to the project_id of the credentials.
	ProjectID string
	Table     string
}

// SMTPConfig holds mail transport settings.
type SMTPConfig struct {
	Server   string `json:"smtp_server"`
	Port     int    `json:"smtp_port"`
	User     string `json:"smtp_user"`
	Password string `json:"smtp_password"`
	From     string `json:"smtp_from"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether object storage is configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// ChartConfig selects and tunes the chart rasterizer.
type ChartConfig struct {
	Renderer   string
	RemoteURL  string
	TimeoutSec int
	NoSandbox  bool
}

// ReportConfig holds report asset and archive settings.
type ReportConfig struct {
	LogoPath       string
	LogoObjectKey  string
	ArchiveEnabled bool
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost         string
	Port            string
	Timezone        string
	Log             LogConfig
	WarehouseDriver string
	BigQuery        BigQueryConfig
	Database        DatabaseConfig
	SMTP            SMTPConfig
	Chart           ChartConfig
	Report          ReportConfig
	MinIO           MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Timezone: getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		WarehouseDriver: getEnv("WAREHOUSE_DRIVER", DriverBigQuery),
		BigQuery: BigQueryConfig{
			CredentialsBase64: getEnv("BIGQUERY_CREDENTIALS_BASE64", getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),
			ProjectID:         getEnv("BIGQUERY_PROJECT_ID", ""),
			Table:             getEnv("BIGQUERY_TABLE", "datalake-metax.zz_Disparo_Docs.Cubo_Documentos"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		SMTP: loadSMTP(),
		Chart: ChartConfig{
			Renderer:   getEnv("CHART_RENDERER", RendererChromedp),
			RemoteURL:  getEnv("CHROME_REMOTE_URL", ""),
			TimeoutSec: getEnvInt("CHART_TIMEOUT_SEC", 20),
			NoSandbox:  getEnvBool("CHROME_NO_SANDBOX", false),
		},
		Report: ReportConfig{
			LogoPath:       getEnv("LOGO_PATH", "public/images/logo.png"),
			LogoObjectKey:  getEnv("LOGO_OBJECT_KEY", ""),
			ArchiveEnabled: getEnvBool("REPORT_ARCHIVE_ENABLED", false),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// loadSMTP starts from the EMAIL_CREDENCIAL bundle when present and lets the
// individual SMTP_* variables override it.
func loadSMTP() SMTPConfig {
	c := SMTPConfig{Port: 587, From: "noreply@metax.com"}
	if raw := os.Getenv("EMAIL_CREDENCIAL"); raw != "" {
		if bundle, err := DecodeSMTPCredential(raw); err == nil {
			c = mergeSMTP(c, bundle)
		}
	}
	return mergeSMTP(c, SMTPConfig{
		Server:   getEnv("SMTP_SERVER", ""),
		Port:     getEnvInt("SMTP_PORT", 0),
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
	})
}

// DecodeSMTPCredential decodes a base64 JSON credential bundle.
func DecodeSMTPCredential(raw string) (SMTPConfig, error) {
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return SMTPConfig{}, fmt.Errorf("decode email credential: %w", err)
	}
	var c SMTPConfig
	if err := json.Unmarshal(b, &c); err != nil {
		return SMTPConfig{}, fmt.Errorf("parse email credential: %w", err)
	}
	return c, nil
}

func mergeSMTP(base, over SMTPConfig) SMTPConfig {
	if over.Server != "" {
		base.Server = over.Server
	}
	if over.Port != 0 {
		base.Port = over.Port
	}
	if over.User != "" {
		base.User = over.User
	}
	if over.Password != "" {
		base.Password = over.Password
	}
	if over.From != "" {
		base.From = over.From
	}
	return base
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
