package logger

import (
	"context"

	"github.com/fireflycore/go-datadog-logger/internal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Conf 是 zap logger 的配置项。
// - Console：是否启用控制台输出
// - Remote：是否启用 Datadog 输出（需要同时提供 sink 才会生效）
// - Channel：上报的 channel；为空时使用 zap 的 logger 名称
type Conf struct {
	Console bool   `json:"console"`
	Remote  bool   `json:"remote"`
	Channel string `json:"channel"`
}

// New 构造一个 zap.Logger。
//
// - Console=true 时输出到 stdout（面向人读）
// - Remote=true 且提供 sink 时把每条日志同步投递给 sink
// - 两者都未启用时返回 Nop logger，避免 nil 引用
func New(conf *Conf, sink Sink) *zap.Logger {
	if conf == nil {
		return zap.NewNop()
	}

	cores := make([]zapcore.Core, 0, 2)
	if conf.Console {
		cores = append(cores, internal.NewConsoleCore(zapcore.DebugLevel))
	}
	// Remote 需要 sink，否则无法写入，避免产生“启用但无输出”的隐式失败。
	if conf.Remote && sink != nil {
		cores = append(cores, NewCore(sink, conf.Channel))
	}

	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// NewCore 返回一个把 zap 日志转换为 Record 并交给 sink 的 core。
// 是否启用由 sink.IsHandling 决定。
func NewCore(sink Sink, channel string) zapcore.Core {
	enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return sink.IsHandling(LevelFromZap(l))
	})

	return internal.NewRemoteCore(enabler, func(entry zapcore.Entry, fields map[string]any) error {
		r := Record{
			Level:    LevelFromZap(entry.Level),
			Channel:  channel,
			Message:  entry.Message,
			Context:  fields,
			Datetime: entry.Time,
		}
		if r.Channel == "" {
			r.Channel = entry.LoggerName
		}
		if entry.Caller.Defined {
			r.Extra = map[string]any{"path": entry.Caller.TrimmedPath()}
		}
		// zap 的 Write 不携带 context，链路关联请使用 dd-trace-go 的 zap 字段。
		_, err := sink.Handle(context.Background(), r)
		return err
	})
}
