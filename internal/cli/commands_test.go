package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/datekit/internal/ui"
)

func TestFormatCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, formatCmd, buf, "2006-09-09", "%B %e, %Y"))
	assert.Equal(t, "September 9, 2006\n", buf.String())

	buf.Reset()
	require.NoError(t, runCommand(t, formatCmd, buf, "2012-06-09 20:01", "F jS, Y"))
	assert.Equal(t, "June 9th, 2012\n", buf.String())
}

func TestFormatCommandDialect(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	formatDialect = "sql"
	require.NoError(t, runCommand(t, formatCmd, buf, "2012-06-09", "yyyy-mm-dd"))
	assert.Equal(t, "2012-06-09\n", buf.String())

	buf.Reset()
	formatDialect = "klingon"
	assert.Error(t, runCommand(t, formatCmd, buf, "2012-06-09", "yyyy"))

	buf.Reset()
	jsonOutput = true
	require.NoError(t, runCommand(t, formatCmd, buf, "2012-06-09", "yyyy"))
	resp := decodeResponse(t, buf)
	assert.False(t, resp.OK)
	assert.Equal(t, ErrUnknownDialect, resp.Error.Code)
}

func TestFormatCommandConfigDialect(t *testing.T) {
	buf := setupCLI(t, pinnedConfig+"dialect = \"sql\"\n")
	require.NoError(t, runCommand(t, formatCmd, buf, "2012-06-09", "dd/mm/yyyy"))
	assert.Equal(t, "09/06/2012\n", buf.String())
}

func TestFormatCommandPreset(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	formatPreset = "sql"
	jsonOutput = true
	require.NoError(t, runCommand(t, formatCmd, buf, "2012-06-09 20:01:02"))

	resp := decodeResponse(t, buf)
	require.True(t, resp.OK)
	var data map[string]any
	decodeData(t, resp, &data)
	assert.Equal(t, "2012-06-09 20:01:02", data["formatted"])

	buf.Reset()
	formatPreset = "bogus"
	require.NoError(t, runCommand(t, formatCmd, buf, "2012-06-09"))
	assert.Equal(t, ErrInvalidInput, decodeResponse(t, buf).Error.Code)
}

func TestAddCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, addCmd, buf, "2007-10-31", "1", "month"))
	assert.Contains(t, buf.String(), "2007-11-30T00:00:00.000Z")

	buf.Reset()
	addFormat = "Y-m-d"
	require.NoError(t, runCommand(t, addCmd, buf, "2012-06-09", "-3", "days"))
	assert.Equal(t, "2012-06-06\n", buf.String())
}

func TestAddCommandErrors(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	jsonOutput = true

	require.NoError(t, runCommand(t, addCmd, buf, "2012-06-09", "1", "fortnight"))
	resp := decodeResponse(t, buf)
	assert.Equal(t, ErrInvalidUnit, resp.Error.Code)
	assert.Contains(t, resp.Error.Suggestion, "millisecond")

	buf.Reset()
	require.NoError(t, runCommand(t, addCmd, buf, "2012-06-09", "many", "days"))
	assert.Equal(t, ErrInvalidInput, decodeResponse(t, buf).Error.Code)
}

func TestSuccCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, succCmd, buf, "2010-02-28"))
	assert.Contains(t, buf.String(), "2010-03-01T00:00:00.000Z")

	buf.Reset()
	require.NoError(t, runCommand(t, succCmd, buf, "2010-02-28", "Hours"))
	assert.Contains(t, buf.String(), "2010-02-28T01:00:00.000Z")
}

func TestDiffCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, diffCmd, buf, "2012-06-12", "2012-06-09"))
	assert.Equal(t, "3\n", buf.String())

	buf.Reset()
	require.NoError(t, runCommand(t, diffCmd, buf, "2012-06-09", "2012-06-12", "hours"))
	assert.Equal(t, "-72\n", buf.String())

	buf.Reset()
	diffDecimal = true
	require.NoError(t, runCommand(t, diffCmd, buf, "2012-06-09 12:00", "2012-06-08", "day"))
	assert.Equal(t, "1.5\n", buf.String())
}

func TestCompareCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, compareCmd, buf, "2013-09-13", "2013-09-13 11am", "day"))
	assert.Equal(t, "equal\n", buf.String())

	buf.Reset()
	require.NoError(t, runCommand(t, compareCmd, buf, "2013-09-13", "2013-09-13 11am"))
	assert.Equal(t, "before\n", buf.String())

	buf.Reset()
	require.NoError(t, runCommand(t, compareCmd, buf, "2013-09-13", "2013-09-12"))
	assert.Equal(t, "after\n", buf.String())
}

func TestAgoCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, agoCmd, buf, "2010-07-16 12:00"))
	assert.Contains(t, buf.String(), "3 days ago")

	buf.Reset()
	jsonOutput = true
	require.NoError(t, runCommand(t, agoCmd, buf, "2010-07-24 12:00", "2010-07-19 12:00"))
	var data map[string]any
	decodeData(t, decodeResponse(t, buf), &data)
	assert.Equal(t, "in 5 days", data["text"])
}

func TestPatternsCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, patternsCmd, buf))
	out := buf.String()
	assert.Contains(t, out, "iso_8601")
	assert.Contains(t, out, "conversational_sans_year")
	assert.Contains(t, out, "(17 patterns)")

	buf.Reset()
	jsonOutput = true
	patternsWithout = []string{"unix"}
	require.NoError(t, runCommand(t, patternsCmd, buf))
	resp := decodeResponse(t, buf)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 16, resp.Meta.Count)
}

func TestPatternsCommandDayFirstOrder(t *testing.T) {
	buf := setupCLI(t, pinnedConfig+"day_first = true\n")
	jsonOutput = true
	require.NoError(t, runCommand(t, patternsCmd, buf))

	var items []map[string]any
	decodeData(t, decodeResponse(t, buf), &items)
	var names []string
	for _, item := range items {
		names = append(names, item["name"].(string))
	}
	require.GreaterOrEqual(t, len(names), 3)
	assert.Equal(t, []string{"iso_8601", "world", "us"}, names[:3])
}

func TestPatternsShowCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, patternsShowCmd, buf, "24 hour"))
	out := buf.String()
	assert.Contains(t, out, "24_hour")
	assert.Contains(t, out, "8")

	buf.Reset()
	assert.Error(t, runCommand(t, patternsShowCmd, buf, "nope"))
}

func TestPatternsFragmentsCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, patternsFragmentsCmd, buf))
	assert.Contains(t, buf.String(), "_MONTHNAME_")
}

func TestDialectsCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, dialectsCmd, buf))
	out := buf.String()
	for _, name := range []string{"strftime", "php", "sql"} {
		assert.Contains(t, out, name)
	}
}

func TestDialectsCodesCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, dialectsCodesCmd, buf, "strftime"))
	out := buf.String()
	assert.Contains(t, out, "%Y")
	assert.Contains(t, out, "FullYear")

	buf.Reset()
	jsonOutput = true
	require.NoError(t, runCommand(t, dialectsCodesCmd, buf, "php"))
	var rows []map[string]any
	decodeData(t, decodeResponse(t, buf), &rows)
	found := false
	for _, row := range rows {
		if row["token"] == "Y" {
			found = true
			assert.Equal(t, "FullYear", row["value"])
			assert.Equal(t, "code", row["kind"])
		}
	}
	assert.True(t, found)

	buf.Reset()
	require.NoError(t, runCommand(t, dialectsCodesCmd, buf, "klingon"))
	assert.Equal(t, ErrUnknownDialect, decodeResponse(t, buf).Error.Code)
}

func TestPrintable(t *testing.T) {
	assert.Equal(t, "Date.2", printable("Date.2"))
	assert.Equal(t, `"\t"`, printable("\t"))
}

func TestAutoformatCommandStdin(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	autoformatTemplate = "Y-m-d"
	autoformatCmd.SetIn(strings.NewReader("next friday\nnot a date\n"))
	t.Cleanup(func() { autoformatCmd.SetIn(nil) })

	require.NoError(t, runCommand(t, autoformatCmd, buf))
	assert.Equal(t, "2010-07-23\nnot a date\n", buf.String())
}

func TestAutoformatCommandWarnsOnStderr(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	autoformatTemplate = "Y-m-d"
	var errBuf bytes.Buffer
	autoformatCmd.SetOut(buf)
	autoformatCmd.SetErr(&errBuf)
	t.Cleanup(func() { autoformatCmd.SetErr(nil) })

	require.NoError(t, autoformatCmd.RunE(autoformatCmd, []string{"tomorrow", "soonish"}))
	assert.Equal(t, "2010-07-20\nsoonish\n", buf.String())
	assert.Equal(t, ui.Warning(`"soonish" left unchanged`)+"\n", errBuf.String())
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, nil)
	reportError(&buf, errReported)
	assert.Empty(t, buf.String())

	reportError(&buf, errors.New("unknown dialect: klingon"))
	assert.Equal(t, ui.Error("unknown dialect: klingon")+"\n", buf.String())
}

func TestAutoformatCommandJSONWarnings(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	jsonOutput = true
	autoformatTemplate = "%Y"
	require.NoError(t, runCommand(t, autoformatCmd, buf, "tomorrow", "soonish"))

	resp := decodeResponse(t, buf)
	require.True(t, resp.OK)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "soonish", resp.Warnings[0].Input)

	var results []autoformatResult
	decodeData(t, resp, &results)
	require.Len(t, results, 2)
	assert.Equal(t, "2010", results[0].Output)
	assert.True(t, results[0].Recognized)
	assert.False(t, results[1].Recognized)
}

func TestAutoformatCommandStrict(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	autoformatStrict = true
	err := runCommand(t, autoformatCmd, buf, "tomorrow", "soonish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
}

func TestAtCommandDryRun(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	atDryRun = true
	jsonOutput = true
	require.NoError(t, runCommand(t, atCmd, buf, "2010-07-20"))

	var data map[string]any
	decodeData(t, decodeResponse(t, buf), &data)
	assert.Equal(t, "2010-07-20T00:00:00.000Z", data["at"])
	assert.Equal(t, float64(0), data["delay_ms"], "past instants fire at once")
}

func TestAtCommandFiresPastInstant(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, atCmd, buf, "2010-07-20"))
	assert.Contains(t, buf.String(), "2010-07-20T00:00:00.000Z")
}

func TestAtCommandRejectsSplitWhen(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	err := runCommand(t, atCmd, buf, "in", "10", "minutes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected one <when> argument")
}

func TestConfigCommands(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	configPath = filepath.Join(t.TempDir(), "datekit", "config.toml")

	require.NoError(t, runCommand(t, configCmd, buf))
	assert.Contains(t, buf.String(), "does not exist")

	buf.Reset()
	require.NoError(t, runCommand(t, configInitCmd, buf))
	assert.Contains(t, buf.String(), "Created config")
	_, err := os.Stat(configPath)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, runCommand(t, configInitCmd, buf))
	assert.Contains(t, buf.String(), "already exists")

	flags := configSetCmd.Flags()
	t.Cleanup(func() {
		resetChangedFlags(configSetCmd)
		configSetTimezone, configSetTemplate = "", ""
	})
	require.NoError(t, flags.Set("timezone", "Asia/Tokyo"))
	require.NoError(t, flags.Set("template", "F jS, Y"))

	buf.Reset()
	require.NoError(t, runCommand(t, configSetCmd, buf))
	assert.Contains(t, buf.String(), "default_template, timezone")

	buf.Reset()
	jsonOutput = true
	require.NoError(t, runCommand(t, configCmd, buf))
	var data map[string]any
	decodeData(t, decodeResponse(t, buf), &data)
	assert.Equal(t, "Asia/Tokyo", data["timezone"])
	assert.Equal(t, "F jS, Y", data["default_template"])
	assert.Equal(t, true, data["exists"])
}

func TestConfigSetRejectsBadTimezone(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	flags := configSetCmd.Flags()
	t.Cleanup(func() {
		resetChangedFlags(configSetCmd)
		configSetTimezone = ""
	})
	require.NoError(t, flags.Set("timezone", "Mars/Olympus"))
	assert.Error(t, runCommand(t, configSetCmd, buf))
}

func TestVersionCommand(t *testing.T) {
	buf := setupCLI(t, pinnedConfig)
	require.NoError(t, runCommand(t, versionCmd, buf))
	assert.True(t, strings.HasPrefix(buf.String(), "dk "))
	assert.Contains(t, buf.String(), "platform: ")
}
