package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		ci        string
		wantDebug bool
	}{
		{name: "production", env: "production", wantDebug: false},
		{name: "development", env: "", wantDebug: true},
		{name: "ci overrides env", env: "production", ci: "true", wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", tt.env)
			t.Setenv("CI", tt.ci)

			logger, err := newLogger()
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zap.DebugLevel))
		})
	}
}
