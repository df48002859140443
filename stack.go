package logger

import (
	"context"
	"time"

	"go.uber.org/multierr"
)

// Sink 是可以接收记录的处理单元，*Handler 与 *Stack 都实现了它。
type Sink interface {
	IsHandling(level Level) bool
	Bubble() bool
	Handle(ctx context.Context, r Record) (bool, error)
}

// Stack 是一个具名日志通道：依次把记录交给各个 Sink。
//
// 某个 Sink 处理了记录且 Bubble() 为 false 时，后续 Sink 不再收到该记录。
type Stack struct {
	channel    string
	sinks      []Sink
	processors []Processor
	now        func() time.Time
}

// NewStack 创建通道，sinks 按给定顺序调用。
func NewStack(channel string, sinks ...Sink) *Stack {
	return &Stack{
		channel: channel,
		sinks:   append([]Sink(nil), sinks...),
		now:     time.Now,
	}
}

// Channel 返回通道名称。
func (s *Stack) Channel() string {
	return s.channel
}

// Push 把 sink 放到栈顶，使其最先被调用。
func (s *Stack) Push(sink Sink) {
	s.sinks = append([]Sink{sink}, s.sinks...)
}

// PushProcessor 添加一个在所有 sink 之前执行的处理器。
func (s *Stack) PushProcessor(p Processor) {
	s.processors = append(s.processors, p)
}

// IsHandling 判断是否至少有一个 sink 会处理该级别。
func (s *Stack) IsHandling(level Level) bool {
	for _, sink := range s.sinks {
		if sink.IsHandling(level) {
			return true
		}
	}
	return false
}

// Bubble 对嵌套的 Stack 始终为 true。
func (s *Stack) Bubble() bool {
	return true
}

// Log 构造一条记录并分发。
func (s *Stack) Log(ctx context.Context, level Level, message string, fields map[string]any) error {
	_, err := s.Handle(ctx, Record{
		Level:    level,
		Message:  message,
		Context:  fields,
		Datetime: s.now(),
	})
	return err
}

// Handle 实现 Sink。各 sink 的错误通过 multierr 合并返回，不会中断后续 sink。
func (s *Stack) Handle(ctx context.Context, r Record) (bool, error) {
	if !s.IsHandling(r.Level) {
		return false, nil
	}
	if r.Channel == "" {
		r.Channel = s.channel
	}
	if r.Datetime.IsZero() {
		r.Datetime = s.now()
	}
	for _, p := range s.processors {
		r = p(r)
	}

	var (
		handled bool
		errs    error
	)
	for _, sink := range s.sinks {
		if !sink.IsHandling(r.Level) {
			continue
		}
		ok, err := sink.Handle(ctx, r)
		errs = multierr.Append(errs, err)
		if !ok {
			continue
		}
		handled = true
		if !sink.Bubble() {
			break
		}
	}
	return handled, errs
}

// Debug 以 DEBUG 级别记录一条日志。
func (s *Stack) Debug(ctx context.Context, message string, fields map[string]any) error {
	return s.Log(ctx, LevelDebug, message, fields)
}

// Info 以 INFO 级别记录一条日志。
func (s *Stack) Info(ctx context.Context, message string, fields map[string]any) error {
	return s.Log(ctx, LevelInfo, message, fields)
}

// Notice 以 NOTICE 级别记录一条日志。
func (s *Stack) Notice(ctx context.Context, message string, fields map[string]any) error {
	return s.Log(ctx, LevelNotice, message, fields)
}

// Warning 以 WARNING 级别记录一条日志。
func (s *Stack) Warning(ctx context.Context, message string, fields map[string]any) error {
	return s.Log(ctx, LevelWarning, message, fields)
}

// Error 以 ERROR 级别记录一条日志。
func (s *Stack) Error(ctx context.Context, message string, fields map[string]any) error {
	return s.Log(ctx, LevelError, message, fields)
}

// Critical 以 CRITICAL 级别记录一条日志。
func (s *Stack) Critical(ctx context.Context, message string, fields map[string]any) error {
	return s.Log(ctx, LevelCritical, message, fields)
}

// Alert 以 ALERT 级别记录一条日志。
func (s *Stack) Alert(ctx context.Context, message string, fields map[string]any) error {
	return s.Log(ctx, LevelAlert, message, fields)
}

// Emergency 以 EMERGENCY 级别记录一条日志。
func (s *Stack) Emergency(ctx context.Context, message string, fields map[string]any) error {
	return s.Log(ctx, LevelEmergency, message, fields)
}
