package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/fireflycore/go-datadog-logger/internal"
	"go.uber.org/zap"
)

// maxResponseBody 是读取响应体的上限，超出部分丢弃。
const maxResponseBody = 4 << 10

// Handler 把日志记录同步投递到 Datadog。
//
// 每条满足级别的记录触发一次阻塞的 HTTP POST，没有重试、缓冲或批量。
// 构造后配置不可变，可被多个 goroutine 并发使用。
type Handler struct {
	apiKey     string
	attrs      Attributes
	level      Level
	bubble     bool
	endpoint   *url.URL
	hostname   string
	client     *http.Client
	formatter  Formatter
	processors []Processor
	diag       *zap.Logger
	onError    func(error)
}

// NewHandler 创建 Handler。apiKey 为空、client 不可用、地址非 https
// 或关闭了证书校验时返回 *ConfigurationError。
func NewHandler(apiKey string, opts ...Option) (*Handler, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Reason: "missing api key", Err: ErrMissingAPIKey}
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	client, err := resolveClient(o)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(o.endpoint)
	if err != nil {
		return nil, &ConfigurationError{Reason: "invalid endpoint", Err: err}
	}
	if u.Scheme != "https" || u.Host == "" {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("invalid endpoint %q", o.endpoint), Err: ErrInsecureEndpoint}
	}

	hostname := o.hostname
	if hostname == "" && o.attrs.Hostname == "" {
		if hostname, err = os.Hostname(); err != nil {
			o.diag.Warn("could not resolve hostname", zap.Error(err))
		}
	}

	formatter := o.formatter
	if formatter == nil {
		formatter = JSONFormatter{}
	}

	// 级别映射必须先于任何自定义处理器执行。
	processors := append([]Processor{NewLevelMapper(o.diag)}, o.processors...)

	return &Handler{
		apiKey:     apiKey,
		attrs:      o.attrs,
		level:      o.level,
		bubble:     o.bubble,
		endpoint:   u,
		hostname:   hostname,
		client:     client,
		formatter:  formatter,
		processors: processors,
		diag:       o.diag,
		onError:    o.onError,
	}, nil
}

func resolveClient(o options) (*http.Client, error) {
	if !o.clientSet {
		return internal.NewHTTPClient(o.timeout, internal.HTTPTimeouts{}), nil
	}
	if o.client == nil {
		return nil, &ConfigurationError{Reason: "http client unavailable", Err: ErrMissingHTTPClient}
	}
	client, opaque, err := internal.SecureClient(o.client, o.allowOpaque)
	if err != nil {
		return nil, &ConfigurationError{Reason: "refusing http client", Err: err}
	}
	if opaque {
		o.diag.Warn("tls verification of http transport cannot be checked, trusting caller",
			zap.String("transport", fmt.Sprintf("%T", o.client.Transport)),
		)
	}
	if client.Timeout == 0 {
		client.Timeout = o.timeout
	}
	return client, nil
}

// IsHandling 判断该级别的记录是否会被投递。
func (h *Handler) IsHandling(level Level) bool {
	return level >= h.level
}

// Bubble 返回记录处理后是否继续传递给后续 handler。
func (h *Handler) Bubble() bool {
	return h.bubble
}

// Handle 处理一条记录：低于阈值时返回 (false, nil)；否则映射级别、格式化并投递。
// 投递失败时返回 *DeliveryError。
func (h *Handler) Handle(ctx context.Context, r Record) (bool, error) {
	if !h.IsHandling(r.Level) {
		return false, nil
	}

	for _, p := range h.processors {
		r = p(r)
	}
	r = withTraceContext(ctx, r)

	body, err := h.formatter.Format(r)
	if err != nil {
		return true, h.fail(fmt.Errorf("datadog handler: format record: %w", err))
	}

	return true, h.Send(ctx, body)
}

// Send 把已格式化的 JSON 记录 POST 到接收地址。
func (h *Handler) Send(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.requestURL(body), bytes.NewReader(body))
	if err != nil {
		return h.fail(&DeliveryError{Err: err})
	}
	req.Header.Set("Content-Type", "application/json")
	// 直接赋值以保留 DD-API-KEY 原始大小写。
	req.Header["DD-API-KEY"] = []string{h.apiKey}

	resp, err := h.client.Do(req)
	if err != nil {
		return h.fail(&DeliveryError{Err: err})
	}
	defer resp.Body.Close()

	// 只保留有限长度的响应体，用于错误信息。
	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return h.fail(&DeliveryError{StatusCode: resp.StatusCode, Err: err})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return h.fail(&DeliveryError{StatusCode: resp.StatusCode, Body: string(payload)})
	}

	return nil
}

// requestURL 按 ddsource、service、hostname 的固定顺序追加查询参数，
// 保留接收地址自带的查询参数。
func (h *Handler) requestURL(body []byte) string {
	query := fmt.Sprintf("ddsource=%s&service=%s&hostname=%s",
		url.QueryEscape(h.source()),
		url.QueryEscape(h.service(body)),
		url.QueryEscape(h.resolveHostname()),
	)

	u := *h.endpoint
	if u.RawQuery != "" {
		query = u.RawQuery + "&" + query
	}
	u.RawQuery = query
	return u.String()
}

func (h *Handler) source() string {
	if h.attrs.Source != "" {
		return h.attrs.Source
	}
	return DefaultSource
}

func (h *Handler) service(body []byte) string {
	if h.attrs.Service != "" {
		return h.attrs.Service
	}
	channel, err := ChannelOf(body)
	if err != nil {
		h.diag.Warn("could not decode channel from record", zap.Error(err))
		return ""
	}
	return channel
}

func (h *Handler) resolveHostname() string {
	if h.attrs.Hostname != "" {
		return h.attrs.Hostname
	}
	return h.hostname
}

func (h *Handler) fail(err error) error {
	h.diag.Error("datadog log delivery failed", zap.Error(err))
	if h.onError != nil {
		h.onError(err)
	}
	return err
}
