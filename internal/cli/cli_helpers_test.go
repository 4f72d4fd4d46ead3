package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const pinnedConfig = `timezone = "UTC"
now = "2010-07-19 12:00"
`

// setupCLI writes configBody to a temp config, resets global flag state and
// builds the shared Kit. The returned buffer receives command and JSON output.
func setupCLI(t *testing.T, configBody string) *bytes.Buffer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(configBody), 0o644))

	prevConfig, prevJSON, prevOut := configPath, jsonOutput, jsonOut
	t.Cleanup(func() {
		configPath, jsonOutput, jsonOut = prevConfig, prevJSON, prevOut
		resetCommandFlags()
	})

	configPath = path
	jsonOutput = false
	timezoneFlag, nowFlag, debugFlag = "", "", false
	resetCommandFlags()
	require.NoError(t, setup())

	buf := &bytes.Buffer{}
	jsonOut = buf
	return buf
}

func resetCommandFlags() {
	parseFormat, parseWithout = "", nil
	formatDialect, formatPreset = "", ""
	addFormat = ""
	diffDecimal = false
	patternsWithout = nil
	autoformatTemplate, autoformatStrict = "", false
	atDryRun = false
}

func runCommand(t *testing.T, c *cobra.Command, buf *bytes.Buffer, args ...string) error {
	t.Helper()
	c.SetOut(buf)
	c.SetErr(io.Discard)
	return c.RunE(c, args)
}

type testResponse struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func decodeResponse(t *testing.T, buf *bytes.Buffer) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp), "output: %s", buf.String())
	return resp
}

func decodeData(t *testing.T, resp testResponse, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, v))
}
