package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogrusHook 把 logrus 日志交给 Sink，需通过 logrus.AddHook 注册。
type LogrusHook struct {
	sink    Sink
	channel string
}

// NewLogrusHook 创建 LogrusHook。
func NewLogrusHook(sink Sink, channel string) *LogrusHook {
	return &LogrusHook{sink: sink, channel: channel}
}

// Levels 实现 logrus.Hook；是否投递由 sink 的阈值决定。
func (h *LogrusHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 实现 logrus.Hook。Entry.Context 中的 span 会被关联到日志。
func (h *LogrusHook) Fire(e *logrus.Entry) error {
	level := LevelFromLogrus(e.Level)
	if !h.sink.IsHandling(level) {
		return nil
	}

	ctx := e.Context
	if ctx == nil {
		ctx = context.Background()
	}

	fields := make(map[string]any, len(e.Data))
	for k, v := range e.Data {
		// error 序列化为 JSON 时会丢失内容，这里提前转成字符串。
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fields[k] = v
	}

	_, err := h.sink.Handle(ctx, Record{
		Level:    level,
		Channel:  h.channel,
		Message:  e.Message,
		Context:  fields,
		Datetime: e.Time,
	})
	return err
}
