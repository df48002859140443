package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Level 是日志严重级别，数值越大越严重。
type Level int

const (
	LevelDebug     Level = 100
	LevelInfo      Level = 200
	LevelNotice    Level = 250
	LevelWarning   Level = 300
	LevelError     Level = 400
	LevelCritical  Level = 500
	LevelAlert     Level = 550
	LevelEmergency Level = 600
)

// Levels 按严重程度升序列出全部已知级别。
var Levels = []Level{
	LevelDebug,
	LevelInfo,
	LevelNotice,
	LevelWarning,
	LevelError,
	LevelCritical,
	LevelAlert,
	LevelEmergency,
}

var levelNames = map[Level]string{
	LevelDebug:     "DEBUG",
	LevelInfo:      "INFO",
	LevelNotice:    "NOTICE",
	LevelWarning:   "WARNING",
	LevelError:     "ERROR",
	LevelCritical:  "CRITICAL",
	LevelAlert:     "ALERT",
	LevelEmergency: "EMERGENCY",
}

// String 返回大写的级别名称，未知级别输出 LEVEL(n)。
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// Known 判断 l 是否属于 8 个已知级别之一。
func (l Level) Known() bool {
	_, ok := levelNames[l]
	return ok
}

// MarshalText 让 Level 在 JSON 配置中以名称出现。
func (l Level) MarshalText() ([]byte, error) {
	if !l.Known() {
		return nil, fmt.Errorf("%w: %d", ErrUnmappedSeverity, int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText 按 ParseLevel 解析级别名称。
func (l *Level) UnmarshalText(b []byte) error {
	parsed, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 解析级别名称（大小写不敏感），"warn" 视为 WARNING。
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARN" {
		return LevelWarning, nil
	}
	for l, n := range levelNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// AlertType 是 Datadog 接收端使用的粗粒度告警类型。
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertError   AlertType = "error"
)

// alertTypes 为进程级静态映射，运行期间不会修改。
var alertTypes = map[Level]AlertType{
	LevelDebug:     AlertInfo,
	LevelInfo:      AlertInfo,
	LevelNotice:    AlertWarning,
	LevelWarning:   AlertWarning,
	LevelError:     AlertError,
	LevelAlert:     AlertError,
	LevelCritical:  AlertError,
	LevelEmergency: AlertError,
}

// AlertTypeFor 返回级别对应的告警类型；未知级别返回 ErrUnmappedSeverity。
func AlertTypeFor(l Level) (AlertType, error) {
	t, ok := alertTypes[l]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnmappedSeverity, int(l))
	}
	return t, nil
}

// Processor 在格式化之前对记录做一次变换。
type Processor func(Record) Record

// MapLevel 把 Level 改写为 AlertType，未知级别回退为 info。
func MapLevel(r Record) Record {
	return mapLevel(r, nil)
}

// NewLevelMapper 与 MapLevel 相同，但会在遇到未知级别时通过 diag 输出一条告警。
func NewLevelMapper(diag *zap.Logger) Processor {
	return func(r Record) Record {
		return mapLevel(r, diag)
	}
}

func mapLevel(r Record, diag *zap.Logger) Record {
	t, err := AlertTypeFor(r.Level)
	if err != nil {
		if diag != nil {
			diag.Warn("unmapped log severity, falling back to info",
				zap.Int("level", int(r.Level)),
				zap.String("channel", r.Channel),
				zap.Error(err),
			)
		}
		t = AlertInfo
	}
	r.AlertType = t
	return r
}
