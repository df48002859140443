package logger

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// 环境变量名。
const (
	EnvAPIKey   = "DD_API_KEY"
	EnvSource   = "DD_SOURCE"
	EnvService  = "DD_SERVICE"
	EnvHostname = "DD_HOSTNAME"
	EnvLevel    = "DD_LOG_LEVEL"
	EnvBubble   = "DD_LOG_BUBBLE"
	EnvTimeout  = "DD_LOG_TIMEOUT"
)

// Config 是 Handler 的可序列化配置。
//
// 从 JSON 解码时未出现的字段保留 DefaultConfig 的值（例如 bubble 默认为 true）。
type Config struct {
	APIKey     string        `json:"api_key"`
	Attributes Attributes    `json:"attributes"`
	Level      Level         `json:"level"`
	Bubble     bool          `json:"bubble"`
	Timeout    time.Duration `json:"timeout"`
}

// DefaultConfig 返回默认配置：DEBUG、bubble、10s 超时。
func DefaultConfig() Config {
	o := defaultOptions()
	return Config{
		Level:   o.level,
		Bubble:  o.bubble,
		Timeout: o.timeout,
	}
}

// UnmarshalJSON 在 DefaultConfig 的基础上解码。
func (c *Config) UnmarshalJSON(b []byte) error {
	type plain Config
	p := plain(DefaultConfig())
	if err := jsonAPI.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = Config(p)
	return nil
}

// ConfigFromEnv 从环境变量读取配置，未设置的变量保留默认值。
// lookup 为 nil 时使用 os.LookupEnv。
func ConfigFromEnv(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	c := DefaultConfig()
	c.APIKey, _ = lookup(EnvAPIKey)
	c.Attributes.Source, _ = lookup(EnvSource)
	c.Attributes.Service, _ = lookup(EnvService)
	c.Attributes.Hostname, _ = lookup(EnvHostname)

	if v, ok := lookup(EnvLevel); ok && v != "" {
		l, err := ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLevel, err)
		}
		c.Level = l
	}
	if v, ok := lookup(EnvBubble); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvBubble, err)
		}
		c.Bubble = b
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}

	return c, nil
}

// Options 把配置转换为 NewHandler 的选项。
func (c Config) Options() []Option {
	opts := []Option{
		WithAttributes(c.Attributes),
		WithLevel(c.Level),
		WithBubble(c.Bubble),
	}
	if c.Timeout > 0 {
		opts = append(opts, WithTimeout(c.Timeout))
	}
	return opts
}

// NewHandlerFromConfig 按配置创建 Handler，opts 在配置之后应用。
func NewHandlerFromConfig(c Config, opts ...Option) (*Handler, error) {
	return NewHandler(c.APIKey, append(c.Options(), opts...)...)
}
