package reporter

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"daysquare/internal/batch"
	"daysquare/internal/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResults() []batch.Result {
	return []batch.Result{
		{
			Name:       "ok",
			Line:       "http://spotify.com|v1/helloworld",
			Descriptor: parser.MustParse("http://spotify.com|v1/helloworld"),
			Duration:   time.Millisecond,
		},
		{
			Name:     "bad",
			Line:     "nope",
			Error:    errors.New("malformed"),
			Duration: 2 * time.Millisecond,
		},
	}
}

func TestBuildReport(t *testing.T) {
	r := NewReporter(ReportingConfig{})
	report := r.BuildReport(sampleResults())

	assert.Equal(t, 2, report.TotalLines)
	assert.Equal(t, 1, report.ParsedLines)
	assert.Equal(t, 1, report.FailedLines)
	assert.Equal(t, 3*time.Millisecond, report.Duration)
	assert.Equal(t, StatusParsed, report.Results[0].Status)
	assert.Equal(t, StatusRejected, report.Results[1].Status)
	assert.Equal(t, "malformed", report.Results[1].Error)
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	r := NewReporter(ReportingConfig{Format: []string{"json", "yaml"}, OutputDir: dir})
	r.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	paths, err := r.GenerateReport(sampleResults())
	require.NoError(t, err)
	require.Equal(t, []string{dir + "/report_20240501_123000.json", dir + "/report_20240501_123000.yaml"}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var fromJSON Report
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, 1, fromJSON.ParsedLines)
	assert.Equal(t, "v1", fromJSON.Results[0].Descriptor.Version)

	data, err = os.ReadFile(paths[1])
	require.NoError(t, err)
	var fromYAML Report
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, 1, fromYAML.FailedLines)
}

func TestGenerateReportUnknownFormat(t *testing.T) {
	r := NewReporter(ReportingConfig{Format: []string{"html"}, OutputDir: t.TempDir()})
	_, err := r.GenerateReport(nil)
	assert.ErrorContains(t, err, "unsupported report format: html")
}
