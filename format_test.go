package logger_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	logger "github.com/fireflycore/go-datadog-logger"
)

func TestJSONFormatter_Format(t *testing.T) {
	ts := time.Date(2024, 3, 5, 10, 20, 30, 123456000, time.UTC)
	r := logger.MapLevel(logger.Record{
		Level:    logger.LevelWarning,
		Channel:  "app",
		Message:  "x",
		Context:  map[string]any{"user": "alice", "attempt": 3},
		Datetime: ts,
	})

	b, err := logger.JSONFormatter{}.Format(r)
	require.NoError(t, err)
	require.Contains(t, string(b), `"level":"warning"`)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	want := map[string]any{
		"message":    "x",
		"context":    map[string]any{"user": "alice", "attempt": 3.0},
		"level":      "warning",
		"level_name": "WARNING",
		"channel":    "app",
		"datetime":   "2024-03-05T10:20:30.123456+00:00",
		"extra":      map[string]any{},
	}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Error("-got +want", diff)
	}
}

func TestJSONFormatter_unmappedRecordKeepsNumericLevel(t *testing.T) {
	b, err := logger.JSONFormatter{}.Format(logger.Record{Level: logger.LevelError, Channel: "app"})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, 400.0, got["level"])
	require.Equal(t, "", got["datetime"])
	require.Equal(t, map[string]any{}, got["context"])
}

func TestJSONFormatter_AppendNewline(t *testing.T) {
	b, err := logger.JSONFormatter{AppendNewline: true}.Format(logger.Record{Level: logger.LevelInfo})
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(b), "}\n"))
}

func TestChannelOf(t *testing.T) {
	for _, channel := range []string{"payments", "", "with \"quotes\" and ünicode"} {
		b, err := logger.JSONFormatter{}.Format(logger.MapLevel(logger.Record{Level: logger.LevelInfo, Channel: channel}))
		require.NoError(t, err)

		got, err := logger.ChannelOf(b)
		require.NoError(t, err)
		require.Equal(t, channel, got)
	}

	_, err := logger.ChannelOf([]byte("not json"))
	require.Error(t, err)
}

func TestJSONFormatter_datetimeOffset(t *testing.T) {
	tz := time.FixedZone("CST", 8*60*60)
	ts := time.Date(2024, 3, 5, 18, 20, 30, 0, tz)

	b, err := logger.JSONFormatter{}.Format(logger.Record{Level: logger.LevelInfo, Datetime: ts})
	require.NoError(t, err)
	require.Contains(t, string(b), `"datetime":"2024-03-05T18:20:30.000000+08:00"`)

	b, err = logger.JSONFormatter{}.Format(logger.Record{Level: logger.LevelInfo, Datetime: ts.UTC()})
	require.NoError(t, err)
	require.Contains(t, string(b), `"datetime":"2024-03-05T10:20:30.000000+00:00"`)
}
