package log_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/versionsync/pkg/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		want slog.Level
	}{
		"debug":   {want: slog.LevelDebug},
		"INFO":    {want: slog.LevelInfo},
		"warn":    {want: slog.LevelWarn},
		"warning": {want: slog.LevelWarn},
		"error":   {want: slog.LevelError},
		"fatal":   {err: log.ErrUnknownLogLevel},
		"loud":    {err: log.ErrUnknownLogLevel},
	}

	for in, tc := range tcs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(in)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCreateHandlerWithStrings(t *testing.T) {
	t.Parallel()

	_, err := log.CreateHandlerWithStrings(&bytes.Buffer{}, "info", "xml")
	require.ErrorIs(t, err, log.ErrUnknownLogFormat)

	_, err = log.CreateHandlerWithStrings(&bytes.Buffer{}, "chatty", "text")
	require.ErrorIs(t, err, log.ErrUnknownLogLevel)

	buf := &bytes.Buffer{}
	h, err := log.CreateHandlerWithStrings(buf, "info", "json")
	require.NoError(t, err)

	logger := slog.New(h)
	logger.Debug("hidden")
	logger.Info("wrote target", slog.String("path", "package.json"))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"wrote target"`)
	assert.Contains(t, buf.String(), `"path":"package.json"`)
}

func TestCreateHandlerText(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := slog.New(log.CreateHandler(buf, slog.LevelWarn, log.FormatLogfmt))

	logger.Info("hidden")
	logger.Warn("verification mismatch", slog.Int("matched", 2))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "verification mismatch")
	assert.Contains(t, buf.String(), "matched=2")
}
