package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/facility-safety-service/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_InstallsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "info", LogFormat: "json"})

	require.NotNil(t, logger)
	assert.Same(t, logger, slog.Default())
}

func TestNewLogger_Level(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		level     string
		debug     bool
		info      bool
		warnLevel bool
	}{
		{level: "debug", debug: true, info: true, warnLevel: true},
		{level: "info", debug: false, info: true, warnLevel: true},
		{level: "warn", debug: false, info: false, warnLevel: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(&config.Config{LogLevel: tt.level, LogFormat: "text"})
			ctx := context.Background()
			assert.Equal(t, tt.debug, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.info, logger.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.warnLevel, logger.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestNewMetricsForTesting_Unregistered(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(a.FacilitiesScored))
	require.NoError(t, prometheus.NewRegistry().Register(b.FacilitiesScored))

	a.FacilitiesScored.Add(2)
	a.ScansTotal.WithLabelValues("success").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(a.FacilitiesScored))
	assert.Zero(t, testutil.ToFloat64(b.FacilitiesScored))
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ScansTotal.WithLabelValues("success")))
	assert.Len(t, a.collectors(), 12)
}
