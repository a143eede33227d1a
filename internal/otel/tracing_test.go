package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSampler(t *testing.T) {
	cases := map[string]struct {
		name, arg string
		want      string
	}{
		"always on":          {name: "always_on", want: "AlwaysOnSampler"},
		"always off":         {name: "always_off", want: "AlwaysOffSampler"},
		"ratio":              {name: "traceidratio", arg: "0.25", want: "TraceIDRatioBased{0.25}"},
		"default":            {name: "", want: "ParentBased{root:AlwaysOnSampler"},
		"bad ratio defaults": {name: "traceidratio", arg: "abc", want: "AlwaysOnSampler"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, Sampler(tc.name, tc.arg).Description(), tc.want)
		})
	}
}

func TestInit_Disabled(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, false, logs.All()[0].ContextMap()["tracing_enabled"])
}

func TestInit_UnsupportedProtocolDegrades(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "carrier-pigeon")
	core, logs := observer.New(zap.InfoLevel)

	shutdown, err := Init(context.Background(), zap.New(core))
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("tracing init failed").Len())
}
