package logger

import (
	"errors"
	"fmt"

	"github.com/fireflycore/go-datadog-logger/internal"
)

var (
	// ErrUnmappedSeverity 表示级别不在已知的 8 个级别之内。
	ErrUnmappedSeverity = errors.New("unmapped log severity")
	// ErrMissingAPIKey 表示构造 Handler 时未提供 API key。
	ErrMissingAPIKey = errors.New("datadog api key is required")
	// ErrMissingHTTPClient 表示显式传入了空的 HTTP client。
	ErrMissingHTTPClient = errors.New("http client is required")
	// ErrInsecureEndpoint 表示投递地址不是 https。
	ErrInsecureEndpoint = errors.New("datadog endpoint must use https")
	// ErrInsecureTransport 表示 HTTP transport 关闭了证书校验。
	ErrInsecureTransport = internal.ErrInsecureTransport
	// ErrOpaqueTransport 表示无法检查 transport 是否开启证书校验，
	// 需要通过 WithUncheckedTransport 显式允许。
	ErrOpaqueTransport = internal.ErrOpaqueTransport
)

// ConfigurationError 在构造阶段返回，持有该错误时 Handler 不可用。
type ConfigurationError struct {
	Reason string
	Err    error
}

// Error 实现 error。
func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return "datadog handler: " + e.Reason
	}
	return fmt.Sprintf("datadog handler: %s: %v", e.Reason, e.Err)
}

// Unwrap 返回底层错误，供 errors.Is / errors.As 使用。
func (e *ConfigurationError) Unwrap() error { return e.Err }

// DeliveryError 表示一次投递失败：网络错误（Err 非空）或非 2xx 响应。
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

// Error 实现 error。
func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("datadog handler: deliver log record: %v", e.Err)
	}
	return fmt.Sprintf("datadog handler: deliver log record: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Unwrap 返回网络层错误；非 2xx 响应时为 nil。
func (e *DeliveryError) Unwrap() error { return e.Err }
