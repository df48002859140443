package logger

import (
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// DatetimeLayout 是 datetime 字段的格式（微秒精度，UTC 输出为 +00:00）。
const DatetimeLayout = "2006-01-02T15:04:05.000000-07:00"

// Formatter 把一条记录序列化为请求体。
type Formatter interface {
	Format(r Record) ([]byte, error)
}

// JSONFormatter 是默认的 Formatter。
type JSONFormatter struct {
	// AppendNewline 为 true 时在末尾追加换行，便于写入行式日志文件。
	AppendNewline bool
}

type jsonRecord struct {
	Message   string         `json:"message"`
	Context   map[string]any `json:"context"`
	Level     any            `json:"level"`
	LevelName string         `json:"level_name"`
	Channel   string         `json:"channel"`
	Datetime  string         `json:"datetime"`
	Extra     map[string]any `json:"extra"`
}

// Format 实现 Formatter。
//
// level 字段在记录已映射时输出告警类型字符串，否则输出数值级别。
func (f JSONFormatter) Format(r Record) ([]byte, error) {
	out := jsonRecord{
		Message:   r.Message,
		Context:   r.Context,
		Level:     int(r.Level),
		LevelName: r.Level.String(),
		Channel:   r.Channel,
		Extra:     r.Extra,
	}
	if r.AlertType != "" {
		out.Level = string(r.AlertType)
	}
	if out.Context == nil {
		out.Context = map[string]any{}
	}
	if out.Extra == nil {
		out.Extra = map[string]any{}
	}
	if !r.Datetime.IsZero() {
		out.Datetime = r.Datetime.Format(DatetimeLayout)
	}

	b, err := jsonAPI.Marshal(&out)
	if err != nil {
		return nil, err
	}
	if f.AppendNewline {
		b = append(b, '\n')
	}
	return b, nil
}

// ChannelOf 从已格式化的 JSON 记录中取回 channel 字段。
func ChannelOf(formatted []byte) (string, error) {
	var head struct {
		Channel string `json:"channel"`
	}
	if err := jsonAPI.Unmarshal(formatted, &head); err != nil {
		return "", err
	}
	return head.Channel, nil
}
