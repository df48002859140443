package logger

import (
	"log/slog"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap/zapcore"
)

// Record 是一条待投递的日志记录，每次日志调用生成一条，投递后即丢弃。
type Record struct {
	Level Level
	// AlertType 由 LevelMapper 写入；为空表示尚未映射。
	AlertType AlertType
	// Channel 为产生日志的子系统名称，未配置 service 时作为 service 上报。
	Channel  string
	Message  string
	Context  map[string]any
	Extra    map[string]any
	Datetime time.Time
}

// 额外的 slog 级别，补齐 8 个严重级别。
const (
	SlogLevelNotice    = (slog.LevelInfo + slog.LevelWarn) / 2
	SlogLevelCritical  = slog.LevelError + 4
	SlogLevelAlert     = slog.LevelError + 8
	SlogLevelEmergency = slog.LevelError + 12
)

// LevelFromZap 将 zap 的级别映射为 Level。
func LevelFromZap(level zapcore.Level) Level {
	switch level {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.InfoLevel:
		return LevelInfo
	case zapcore.WarnLevel:
		return LevelWarning
	case zapcore.ErrorLevel:
		return LevelError
	case zapcore.DPanicLevel:
		return LevelCritical
	case zapcore.PanicLevel:
		return LevelAlert
	case zapcore.FatalLevel:
		return LevelEmergency
	default:
		if level < zapcore.DebugLevel {
			return LevelDebug
		}
		return LevelEmergency
	}
}

// LevelFromSlog 将 slog 级别映射为 Level，未命名的级别归入下一个更高的级别。
func LevelFromSlog(l slog.Level) Level {
	switch {
	case l <= slog.LevelDebug:
		return LevelDebug
	case l <= slog.LevelInfo:
		return LevelInfo
	case l <= SlogLevelNotice:
		return LevelNotice
	case l <= slog.LevelWarn:
		return LevelWarning
	case l <= slog.LevelError:
		return LevelError
	case l <= SlogLevelCritical:
		return LevelCritical
	case l <= SlogLevelAlert:
		return LevelAlert
	default:
		return LevelEmergency
	}
}

// LevelFromLogrus 将 logrus 级别映射为 Level。
func LevelFromLogrus(level logrus.Level) Level {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		return LevelDebug
	case logrus.InfoLevel:
		return LevelInfo
	case logrus.WarnLevel:
		return LevelWarning
	case logrus.ErrorLevel:
		return LevelError
	case logrus.FatalLevel:
		return LevelAlert
	default:
		return LevelEmergency
	}
}
