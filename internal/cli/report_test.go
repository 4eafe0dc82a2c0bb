package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fogreport/internal/config"
	"fogreport/internal/report"
)

func TestApplyFlagsWinOverConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.API.Endpoint = "https://file.fogbugz.com/api.asp"
	cfg.API.Email = "file@example.com"

	cmd := &ReportCommand{
		Endpoint: "https://flag.fogbugz.com/api.asp",
		Password: "flag-secret",
		Detailed: true,
		Prefetch: true,
		globals:  &GlobalFlags{Verbose: true},
	}
	cmd.applyFlags(cfg)

	assert.Equal(t, "https://flag.fogbugz.com/api.asp", cfg.API.Endpoint)
	assert.Equal(t, "flag-secret", cfg.API.Password)
	assert.True(t, cfg.Output.Detailed)
	assert.True(t, cfg.Report.Prefetch)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unset flags leave other sources alone.
	assert.Equal(t, "file@example.com", cfg.API.Email)
}

func TestApplyFlagsBooleanFlagsOnlyEnable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Report.CountUnassigned = true

	cmd := &ReportCommand{globals: &GlobalFlags{}}
	cmd.applyFlags(cfg)

	assert.True(t, cfg.Report.CountUnassigned)
}

func TestWriteJSON(t *testing.T) {
	res := &report.Result{
		Ledger:    make(report.Ledger),
		Tags:      map[string]struct{}{"web-ui": {}},
		Anomalies: map[int]struct{}{20: {}, 30: {}},
	}
	res.Ledger.Add("Alice", "web-ui", 2.5)
	res.Ledger.Add("Alice", report.CategoryTotal, 2.5)

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, res))

	var out struct {
		Ledger        map[string]map[string]float64 `json:"ledger"`
		Tags          []string                      `json:"tags"`
		Anomalies     []int                         `json:"anomalies"`
		FollowUpQuery string                        `json:"follow_up_query"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.InDelta(t, 2.5, out.Ledger["Alice"]["web-ui"], 1e-9)
	assert.Equal(t, []string{"web-ui"}, out.Tags)
	assert.Equal(t, []int{20, 30}, out.Anomalies)
	assert.Equal(t, `ixBug:"20" OR ixBug:"30"`, out.FollowUpQuery)
}

func TestWriteJSONOmitsQueryWithoutAnomalies(t *testing.T) {
	res := &report.Result{
		Ledger:    make(report.Ledger),
		Tags:      map[string]struct{}{},
		Anomalies: map[int]struct{}{},
	}

	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, res))
	assert.NotContains(t, buf.String(), "follow_up_query")
}
