package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/fi-dashboard/internal/usecases/forecasting"
	"github.com/vfg2006/fi-dashboard/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	log.SetupTestLogger(io.Discard)
	os.Exit(m.Run())
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestForecastCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantOut []string
		wantErr string
	}{
		{
			name:    "base by default",
			args:    []string{"forecast"},
			wantOut: []string{"Base Scenario Forecast", "2025", "55%", "25%", "2027", "65%"},
		},
		{
			name:    "optimistic",
			args:    []string{"forecast", "--scenario", "optimistic"},
			wantOut: []string{"Optimistic Scenario Forecast", "70%", "50%"},
		},
		{
			name:    "unknown scenario",
			args:    []string{"forecast", "-s", "wild"},
			wantErr: "unknown scenario",
		},
		{
			name:    "unknown output",
			args:    []string{"forecast", "-o", "xml"},
			wantErr: "unknown output",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestForecastCommand_JSON(t *testing.T) {
	out, _, err := execute(t, "", "forecast", "-s", "Pessimistic", "-o", "json")
	require.NoError(t, err)

	var series forecasting.ScenarioSeries
	require.NoError(t, json.Unmarshal([]byte(out), &series))
	assert.Equal(t, []float64{50, 55, 60}, series.Access)
	assert.Equal(t, []float64{20, 30, 40}, series.Usage)
}

func TestForecastCommand_FallbackWarning(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yaml")

	out, errOut, err := execute(t, "", "forecast", "--forecast-file", missing)
	require.NoError(t, err)
	assert.Contains(t, errOut, "using placeholder forecast")
	assert.Contains(t, out, "55%")
}

func TestProgressCommand(t *testing.T) {
	out, _, err := execute(t, "", "progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Forecast (Base)")
	assert.Contains(t, out, "60% target reached in 2026")

	out, _, err = execute(t, "", "progress", "--target", "90")
	require.NoError(t, err)
	assert.Contains(t, out, "90% target not reached")

	out, _, err = execute(t, "", "progress", "-o", "json")
	require.NoError(t, err)
	var report progressReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 2026, report.ReachedIn)
	assert.Len(t, report.Points, 8)
}

func TestEventsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "enriched.csv")
	content := "record_type,event_date,description\n" +
		"event,2021-05-11,Telebirr launch by Ethio Telecom and partners\n" +
		"observation,2022-01-01,Findex\n" +
		"event,later,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out, _, err := execute(t, "", "events", "--dataset", path, "-o", "json")
	require.NoError(t, err)

	var rows []eventRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, eventRow{Date: "2021-05-11", Year: 2021, Label: "Telebirr launch by Ethio Telec", Marked: true}, rows[0])
	assert.Equal(t, eventRow{Label: "Event"}, rows[1])

	_, _, err = execute(t, "", "events", "--dataset", filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}

func TestHashPasswordCommand(t *testing.T) {
	out, _, err := execute(t, "", "hash-password", "corr3ct-horse!")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("corr3ct-horse!")))

	out, _, err = execute(t, "corr3ct-horse!\n", "hash-password")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(strings.TrimSpace(out)), []byte("corr3ct-horse!")))

	_, _, err = execute(t, "", "hash-password", "short")
	assert.Error(t, err)

	_, _, err = execute(t, "", "hash-password")
	assert.ErrorContains(t, err, "password is required")
}
