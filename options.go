package logger

import (
	"net/http"
	"time"

	"github.com/fireflycore/go-datadog-logger/internal"
	"go.uber.org/zap"
)

// DefaultEndpoint 是 Datadog 日志 HTTP 接收地址。
const DefaultEndpoint = "https://http-intake.logs.datadoghq.com/api/v2/logs"

// DefaultSource 为未配置 source 时上报的 ddsource，标识产生日志的运行时。
const DefaultSource = "go"

// Attributes 为可选的请求参数覆盖；为空的字段按默认规则解析。
type Attributes struct {
	Source   string `json:"source"`
	Service  string `json:"service"`
	Hostname string `json:"hostname"`
}

type options struct {
	attrs       Attributes
	level       Level
	bubble      bool
	timeout     time.Duration
	client      *http.Client
	clientSet   bool
	allowOpaque bool
	endpoint    string
	hostname    string
	formatter   Formatter
	processors  []Processor
	diag        *zap.Logger
	onError     func(error)
}

func defaultOptions() options {
	return options{
		level:     LevelDebug,
		bubble:    true,
		timeout:   internal.DefaultTimeout,
		endpoint:  DefaultEndpoint,
		formatter: JSONFormatter{},
		diag:      zap.NewNop(),
	}
}

// Option 配置 Handler。
type Option func(*options)

// WithAttributes 设置 source / service / hostname 覆盖。
func WithAttributes(attrs Attributes) Option {
	return func(o *options) { o.attrs = attrs }
}

// WithLevel 设置触发投递的最低级别，默认 DEBUG。
func WithLevel(level Level) Option {
	return func(o *options) { o.level = level }
}

// WithBubble 设置处理后的记录是否继续交给后续 handler，默认 true。
func WithBubble(bubble bool) Option {
	return func(o *options) { o.bubble = bubble }
}

// WithTimeout 设置单次投递的超时，默认 10s。
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) { o.timeout = timeout }
}

// WithHTTPClient 使用自定义 client。client 的 Timeout 为 0 时使用 WithTimeout 的值。
//
// 关闭了证书校验的 client 会被 NewHandler 拒绝。
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.client = client
		o.clientSet = true
	}
}

// WithUncheckedTransport 允许 WithHTTPClient 传入无法检查证书校验设置的
// RoundTripper（例如链路追踪包装）。启用后每次构造都会输出一条 Warn 诊断日志，
// 调用方需自行保证被包装的 transport 没有关闭证书校验。
func WithUncheckedTransport() Option {
	return func(o *options) { o.allowOpaque = true }
}

// WithEndpoint 替换接收地址（例如 EU 站点），必须为 https。
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithDefaultHostname 设置未配置 hostname 属性时使用的主机名。
// 不设置时在构造阶段读取一次 os.Hostname。
func WithDefaultHostname(hostname string) Option {
	return func(o *options) { o.hostname = hostname }
}

// WithFormatter 替换默认的 JSONFormatter。
func WithFormatter(f Formatter) Option {
	return func(o *options) { o.formatter = f }
}

// WithProcessors 追加在级别映射之后执行的处理器。
func WithProcessors(processors ...Processor) Option {
	return func(o *options) { o.processors = append(o.processors, processors...) }
}

// WithDiagnostics 设置本库自身的诊断 logger，默认不输出。
func WithDiagnostics(diag *zap.Logger) Option {
	return func(o *options) {
		if diag != nil {
			o.diag = diag
		}
	}
}

// WithErrorHandler 设置投递失败回调，在错误返回给调用方的同时触发。
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}
