package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/versionsync/pkg/buildversion"
	"github.com/MacroPower/versionsync/pkg/propagate"
	"github.com/MacroPower/versionsync/pkg/report"
)

func testResult(ok bool) *propagate.Result {
	matched := 1
	if !ok {
		matched = 0
	}

	return &propagate.Result{
		Version:     "0.75.0",
		BuildType:   buildversion.BuildTypeDryRun,
		SnapshotDir: "/tmp/versionsync-1234",
		Written:     []string{"package.json", "ReactAndroid/gradle.properties"},
		Verification: propagate.Verification{
			Needle: "0.75.0",
			Files: []propagate.FileCheck{
				{Path: "package.json", Matched: 1, Diff: "--- a/package.json\n+++ b/package.json\n-  \"version\": \"1000.0.0\",\n+  \"version\": \"0.75.0\",\n"},
				{Path: "ReactAndroid/gradle.properties", Matched: matched},
			},
			Expected: 2,
			Matched:  1 + matched,
			OK:       ok,
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		want report.Format
	}{
		"":     {want: report.FormatText},
		"text": {want: report.FormatText},
		"JSON": {want: report.FormatJSON},
		"yaml": {want: report.FormatYAML},
		"toml": {err: report.ErrUnknownOutputFormat},
	}

	for in, tc := range tcs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			got, err := report.ParseFormat(in)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPrintText(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := report.NewPrinter(buf, report.WithColor(false))
	require.NoError(t, p.Print(testResult(true), report.FormatText))

	out := buf.String()
	assert.Contains(t, out, "Version 0.75.0 (dry-run)")
	assert.Contains(t, out, "Snapshot /tmp/versionsync-1234")
	assert.Contains(t, out, "✓ ReactAndroid/gradle.properties")
	assert.Contains(t, out, "Verified 2/2 changes of 0.75.0\n")
	assert.NotContains(t, out, "+++ b/package.json")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestPrintTextMismatchWithDiff(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := report.NewPrinter(buf, report.WithColor(false), report.WithDiff(true))
	require.NoError(t, p.Print(testResult(false), report.FormatText))

	out := buf.String()
	assert.Contains(t, out, "✗ ReactAndroid/gradle.properties")
	assert.Contains(t, out, "    +++ b/package.json\n")
	assert.Contains(t, out, "Verified 1/2 changes of 0.75.0; inspect the snapshot")
}

func TestPrintJSON(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, report.NewPrinter(buf).Print(testResult(true), report.FormatJSON))

	got := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "0.75.0", got["version"])
	assert.Equal(t, "dry-run", got["buildType"])

	vr, ok := got["verification"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, vr["ok"])
	assert.NotContains(t, buf.String(), "+++", "diffs are not serialized")
}

func TestPrintYAML(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, report.NewPrinter(buf).Print(testResult(false), report.FormatYAML))

	assert.Contains(t, buf.String(), "version: 0.75.0\n")
	assert.Contains(t, buf.String(), "ok: false\n")
}

func TestEvent(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	p := report.NewPrinter(buf, report.WithColor(false))

	p.Event(propagate.EventSnapshot{Dir: "/tmp/snap", Files: 3})
	p.Event(propagate.EventWrote{Path: "package.json", Format: "manifest"})
	p.Event(propagate.EventWrote{Path: "gradle.properties", Format: "properties", Err: errors.New("no VERSION_NAME")})
	p.Event(propagate.EventVerified{})

	assert.Equal(t, "✓ saved 3 files to /tmp/snap\n"+
		"✓ package.json (manifest)\n"+
		"✗ gradle.properties no VERSION_NAME\n", buf.String())
}
