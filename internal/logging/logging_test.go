package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "folio.log")

	logger, sync, err := New("info", path)
	require.NoError(t, err)

	logger.Debugf("hidden %d", 1)
	logger.With("symbol", "AAPL").Errorf("failed to save %s", "AAPL")
	sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "failed to save AAPL")
	assert.Contains(t, string(data), `"symbol":"AAPL"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New("loud", filepath.Join(t.TempDir(), "folio.log"))

	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := Wrap(zap.New(core))

	logger.Infof("ignored")
	logger.Warnf("search failed: %v", "timeout")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "search failed: timeout", logs.All()[0].Message)
}

func TestNop(t *testing.T) {
	logger := Nop()

	logger.Errorf("nothing happens")
	assert.NoError(t, logger.Sync())
}
