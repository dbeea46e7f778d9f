package diagnostics_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillcorner/event-sync/internal/eventsync/diagnostics"
	"github.com/skillcorner/event-sync/internal/eventsync/report"
)

func TestRenderMatchRateSummaryProducesHTML(t *testing.T) {
	t.Parallel()
	rows := []report.EventTypeAggregate{
		{EventTypeName: "pass", NbEvents: 100, PctIsMatched: 92.5},
		{EventTypeName: "shot", NbEvents: 10, PctIsMatched: 60.0},
	}

	var buf bytes.Buffer
	err := diagnostics.RenderMatchRateSummary(&buf, "match-123", rows)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "match-123")
	assert.Contains(t, out, "pass")
	assert.Contains(t, out, "shot")
	assert.Contains(t, out, "<html")
}

func TestRenderMatchRateSummaryEmptyRows(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := diagnostics.RenderMatchRateSummary(&buf, "match-empty", nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<html")
}
