package internal

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewEncoderConfig 返回本库统一的 encoder 配置。
//
// 时间写入 created_at，调用位置写入 path，消息写入 message。
func NewEncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = func(t time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(t.Format(time.DateTime))
	}
	encoderConfig.MessageKey = "message"
	encoderConfig.CallerKey = "path"
	encoderConfig.TimeKey = "created_at"
	return encoderConfig
}

// NewConsoleCore 构造一个输出到 stdout 的控制台 core（面向人读）。
func NewConsoleCore(level zapcore.LevelEnabler) zapcore.Core {
	encoderConfig := NewEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), level)
}
