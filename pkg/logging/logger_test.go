package logging_test

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bengalssg/bengal/pkg/logging"
)

func TestNewLevels(t *testing.T) {
	t.Parallel()
	cases := []struct {
		level    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"invalid", log.InfoLevel},
		{"", log.InfoLevel},
		{"DEBUG", log.DebugLevel},
	}
	for _, c := range cases {
		logger := logging.New(c.level)
		require.NotNil(t, logger)
		assert.Equal(t, c.expected, logger.GetLevel(), "level %q", c.level)
	}
}

func TestDefaultAndSetDefault(t *testing.T) {
	require.NotNil(t, logging.Default())
	custom := logging.New("error")
	logging.SetDefault(custom)
	assert.Same(t, custom, logging.Default())
	logging.SetDefault(logging.New("info"))
}
