package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexkeep/pkg/config"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected config.OutputFormat
		wantErr  bool
	}{
		{"text", config.FormatText, false},
		{"json", config.FormatJSON, false},
		{"diff", config.FormatDiff, false},
		{"", config.FormatText, false},
		{"sarif", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
