package logger_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logger "github.com/fireflycore/go-datadog-logger"
)

func TestLogrusHook(t *testing.T) {
	sink := newRecordingSink(logger.LevelInfo)

	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.TraceLevel)
	log.AddHook(logger.NewLogrusHook(sink, "worker"))

	log.Debug("ignored")
	log.WithContext(context.Background()).
		WithError(errors.New("disk full")).
		WithField("job", 12).
		Warn("retrying")

	records := sink.Records()
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, logger.LevelWarning, r.Level)
	assert.Equal(t, "worker", r.Channel)
	assert.Equal(t, "retrying", r.Message)
	assert.Equal(t, "disk full", r.Context[logrus.ErrorKey])
	assert.Equal(t, 12, r.Context["job"])
	assert.False(t, r.Datetime.IsZero())
}

func TestLogrusHook_surfacesErrors(t *testing.T) {
	sink := newRecordingSink(logger.LevelDebug)
	sink.err = errors.New("intake down")

	hook := logger.NewLogrusHook(sink, "worker")
	assert.Equal(t, logrus.AllLevels, hook.Levels())

	e := logrus.NewEntry(logrus.New())
	e.Level = logrus.ErrorLevel
	e.Message = "boom"
	require.EqualError(t, hook.Fire(e), "intake down")
}
