package internal

import (
	"go.uber.org/zap/zapcore"
)

// WriteFunc 接收一条 zap 日志及其已展开的字段。
type WriteFunc func(entry zapcore.Entry, fields map[string]any) error

type remoteCore struct {
	// level 控制该 core 允许输出的最小日志等级。
	level zapcore.LevelEnabler
	// write 是远端写入回调。
	write WriteFunc
	// fields 为通过 Logger.With(...) 挂载的“常驻字段”。
	fields []zapcore.Field
}

// NewRemoteCore 构造一个远端输出 core。
//
// 与 JSON encoder 不同，该 core 直接把字段展开为 map 交给 write，由上层决定如何序列化。
func NewRemoteCore(level zapcore.LevelEnabler, write WriteFunc) zapcore.Core {
	return &remoteCore{
		level: level,
		write: write,
	}
}

func (c *remoteCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *remoteCore) With(fields []zapcore.Field) zapcore.Core {
	if len(fields) == 0 {
		return c
	}
	// 复制后追加，避免多个子 logger 共享同一底层数组。
	next := *c
	next.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &next
}

func (c *remoteCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return ce.AddCore(entry, c)
	}
	return ce
}

func (c *remoteCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if c.write == nil {
		return nil
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	// 错误交由 zap 的 ErrorOutput 输出，不在此吞掉。
	return c.write(entry, enc.Fields)
}

func (c *remoteCore) Sync() error {
	// 每条日志都是同步投递，没有需要 flush 的缓冲。
	return nil
}
