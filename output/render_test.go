package output

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semlint/model"
	"github.com/c360studio/semlint/validate"
)

func sampleEvents() []validate.Event {
	return []validate.Event{
		{
			ID:       "NoninclusiveTerms",
			Severity: validate.SeverityWarning,
			Source:   model.SourceLocation{File: "a.model.json", Line: 3, Column: 9},
			Message:  "Structure shape uses a non-inclusive term 'Master'.",
		},
		{
			ID:       "NoninclusiveTerms",
			Severity: validate.SeverityWarning,
			Message:  "blacklist.rules namespace uses a non-inclusive term 'blacklist'.",
		},
	}
}

func TestNewRenderer(t *testing.T) {
	text, err := NewRenderer("text", false)
	require.NoError(t, err)
	assert.IsType(t, &TextRenderer{}, text)

	jsonR, err := NewRenderer("json", false)
	require.NoError(t, err)
	assert.IsType(t, &JSONRenderer{}, jsonR)

	_, err = NewRenderer("xml", false)
	assert.Error(t, err)
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{NoColor: true}

	require.NoError(t, r.Render(&buf, sampleEvents(), 2))

	out := buf.String()
	assert.Contains(t, out, "WARNING: a.model.json:3:9: [NoninclusiveTerms] Structure shape uses a non-inclusive term 'Master'.\n")
	assert.Contains(t, out, "WARNING: <none>: [NoninclusiveTerms] blacklist.rules namespace uses a non-inclusive term 'blacklist'.\n")
	assert.Contains(t, out, "2 finding(s) in 2 model document(s).\n")
}

func TestTextRendererNoFindings(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{NoColor: true}

	require.NoError(t, r.Render(&buf, nil, 3))
	assert.Equal(t, "No findings in 3 model document(s).\n", buf.String())
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{}

	require.NoError(t, r.Render(&buf, sampleEvents(), 2))

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))

	_, err := uuid.Parse(report.RunID)
	assert.NoError(t, err, "runId should be a UUID")
	assert.Equal(t, 2, report.ModelFiles)
	assert.Len(t, report.Events, 2)
	assert.Equal(t, 2, report.Counts[validate.SeverityWarning])
	assert.Equal(t, "Structure shape uses a non-inclusive term 'Master'.", report.Events[0].Message)
}

func TestJSONRendererEmptyEvents(t *testing.T) {
	var buf bytes.Buffer
	r := &JSONRenderer{}

	require.NoError(t, r.Render(&buf, nil, 1))

	// events must render as [], not null.
	assert.Contains(t, buf.String(), `"events": []`)
}
