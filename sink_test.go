package logger_test

import (
	"context"
	"sync"

	logger "github.com/fireflycore/go-datadog-logger"
)

// recordingSink 记录收到的全部记录，供各适配器测试断言。
type recordingSink struct {
	mu      sync.Mutex
	min     logger.Level
	bubble  bool
	handled bool
	err     error
	records []logger.Record
}

func newRecordingSink(min logger.Level) *recordingSink {
	return &recordingSink{min: min, bubble: true, handled: true}
}

func (s *recordingSink) IsHandling(level logger.Level) bool { return level >= s.min }

func (s *recordingSink) Bubble() bool { return s.bubble }

func (s *recordingSink) Handle(_ context.Context, r logger.Record) (bool, error) {
	if !s.IsHandling(r.Level) {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return s.handled, s.err
}

func (s *recordingSink) Records() []logger.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]logger.Record(nil), s.records...)
}
