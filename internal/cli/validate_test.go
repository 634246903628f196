package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invalidConfigScenario = `
name: cli-invalid
description: button declared without its required label
steps:
  - run:
      - as: go
        type: button
        config:
          disabled: true
`

func TestValidatePassingScenario(t *testing.T) {
	out, err := executeCommand(t, "validate", writeScenario(t, passingScenario))
	require.NoError(t, err)
	assert.Contains(t, out, "all declarations valid")
}

func TestValidateCatchesBadConfig(t *testing.T) {
	out, err := executeCommand(t, "validate", writeScenario(t, invalidConfigScenario))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `widget "go"`)
}

func TestValidateJSONReport(t *testing.T) {
	out, err := executeCommand(t, "validate", writeScenario(t, invalidConfigScenario),
		"--format", "json")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, merr := json.Marshal(resp.Data)
	require.NoError(t, merr)
	var report ValidationReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.False(t, report.Valid)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "go", report.Issues[0].Widget)
}

func TestValidateMissingCatalogFile(t *testing.T) {
	_, err := executeCommand(t, "validate", writeScenario(t, passingScenario),
		"--catalog", "does-not-exist.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
