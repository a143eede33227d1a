package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docreport/internal/config"
)

func TestReportKey(t *testing.T) {
	assert.Equal(t, "reports/2025-09/Acme_123.html", ReportKey("2025-09", "Acme_123.html"))
}

func TestNewMinIO_RequiresSettings(t *testing.T) {
	cases := map[string]config.MinIOConfig{
		"endpoint":    {AccessKey: "a", SecretKey: "s", Bucket: "b"},
		"credentials": {Endpoint: "localhost:9000", Bucket: "b"},
		"bucket":      {Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewMinIO(context.Background(), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}
