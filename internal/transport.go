package internal

import (
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"time"
)

// ErrInsecureTransport 表示 transport 配置了 InsecureSkipVerify。
var ErrInsecureTransport = errors.New("tls certificate verification must not be disabled")

const (
	// DefaultTimeout 为单次投递（含读取响应体）的整体超时。
	DefaultTimeout = 10 * time.Second

	defaultDialerTimeout         = 5 * time.Second
	defaultDialerKeepAlive       = 30 * time.Second
	defaultIdleConnTimeout       = 90 * time.Second
	defaultResponseHeaderTimeout = 10 * time.Second
	defaultTLSHandshakeTimeout   = 5 * time.Second
)

// HTTPTimeouts 覆盖 transport 的各阶段超时，nil 字段使用默认值。
type HTTPTimeouts struct {
	Dialer                  *time.Duration
	TransportResponseHeader *time.Duration
	TransportTLSHandshake   *time.Duration
}

// NewHTTPTransport 构造一个开启证书校验的 transport。
func NewHTTPTransport(timeouts HTTPTimeouts) *http.Transport {
	dialer := &net.Dialer{
		Timeout:   timeoutOrDefault(timeouts.Dialer, defaultDialerTimeout),
		KeepAlive: defaultDialerKeepAlive,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     true,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		IdleConnTimeout:       defaultIdleConnTimeout,
		ResponseHeaderTimeout: timeoutOrDefault(timeouts.TransportResponseHeader, defaultResponseHeaderTimeout),
		TLSHandshakeTimeout:   timeoutOrDefault(timeouts.TransportTLSHandshake, defaultTLSHandshakeTimeout),
	}
}

// NewHTTPClient 返回带显式超时的 client；timeout <= 0 时使用 DefaultTimeout。
func NewHTTPClient(timeout time.Duration, timeouts HTTPTimeouts) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout, Transport: NewHTTPTransport(timeouts)}
}

// ErrOpaqueTransport 表示 RoundTripper 无法检查，不能确认证书校验是否开启。
var ErrOpaqueTransport = errors.New("cannot verify tls settings of http transport")

// SecureClient 检查并复制 client，使调用方之后对 transport 的修改不影响返回值。
//
// 只有 *http.Transport 可以被检查；其他 RoundTripper 在 allowOpaque 为 false 时返回
// ErrOpaqueTransport，为 true 时原样使用并返回 opaque=true。
func SecureClient(client *http.Client, allowOpaque bool) (secured *http.Client, opaque bool, err error) {
	out := *client
	rt := client.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	t, ok := rt.(*http.Transport)
	if !ok {
		if !allowOpaque {
			return nil, false, ErrOpaqueTransport
		}
		return &out, true, nil
	}
	if t.TLSClientConfig != nil && t.TLSClientConfig.InsecureSkipVerify {
		return nil, false, ErrInsecureTransport
	}

	// Clone 同时复制 TLSClientConfig。
	out.Transport = t.Clone()
	return &out, false, nil
}

func timeoutOrDefault(timeout *time.Duration, defaultTimeout time.Duration) time.Duration {
	if timeout != nil {
		return *timeout
	}
	return defaultTimeout
}
