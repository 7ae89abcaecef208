package logging_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bengalssg/bengal/pkg/logging"
)

func TestPhaseRecordsNestedTimings(t *testing.T) {
	rec := logging.NewRecorder()
	ctx, end := logging.Phase(context.Background(), "build", rec)
	time.Sleep(time.Millisecond)
	ctx2, end2 := logging.Phase(ctx, "parse", rec)
	time.Sleep(time.Millisecond)
	end2()
	end()

	timings := rec.Timings()
	require.Contains(t, timings, "build")
	require.Contains(t, timings, "build.parse")
	assert.Greater(t, timings["build"], time.Duration(0))
	assert.Greater(t, timings["build.parse"], time.Duration(0))
	_ = ctx2
}

func TestPhaseLoggerCarriesPhaseField(t *testing.T) {
	var buf bytes.Buffer
	base := logging.WithLogger(context.Background(), log.New(&buf))
	ctx, end := logging.Phase(base, "render", nil)
	defer end()
	logger := logging.FromContext(ctx)
	require.NotNil(t, logger)
	logger.Info("hello")
	assert.Contains(t, buf.String(), "phase=render")
}

func TestRecorderRunIDIsUnique(t *testing.T) {
	a := logging.NewRecorder()
	b := logging.NewRecorder()
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestFormatSummaryListsPhases(t *testing.T) {
	rec := logging.NewRecorder()
	_, end := logging.Phase(context.Background(), "cache", rec)
	end()
	summary := rec.FormatSummary()
	assert.Contains(t, summary, "cache")
	assert.Contains(t, summary, "total")
}
