package logger

import (
	"context"
	"log/slog"
	"slices"
)

// SlogHandler 是把 slog 记录交给 Sink 的 slog.Handler。
// 使用 NewSlogHandler 创建；零值不可用。
type SlogHandler struct {
	sink    Sink
	channel string
	// WithGroup / WithAttrs 的调用序列，由外到内。
	goas []groupOrAttrs
}

type groupOrAttrs struct {
	group string
	attrs []slog.Attr
}

// NewSlogHandler 创建 SlogHandler，记录的 channel 固定为 channel。
func NewSlogHandler(sink Sink, channel string) *SlogHandler {
	return &SlogHandler{sink: sink, channel: channel}
}

// Enabled 实现 [slog.Handler.Enabled]。
func (h *SlogHandler) Enabled(_ context.Context, l slog.Level) bool {
	return h.sink.IsHandling(LevelFromSlog(l))
}

// Handle 实现 [slog.Handler.Handle]。
func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	goas := h.goas
	if r.NumAttrs() == 0 {
		// 没有属性的尾部分组不输出。
		for len(goas) > 0 && goas[len(goas)-1].group != "" {
			goas = goas[:len(goas)-1]
		}
	}

	fields := make(map[string]any)
	cur := fields
	for _, g := range goas {
		if g.group != "" {
			next := make(map[string]any)
			cur[g.group] = next
			cur = next
			continue
		}
		for _, a := range g.attrs {
			addAttr(cur, a)
		}
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(cur, a)
		return true
	})

	_, err := h.sink.Handle(ctx, Record{
		Level:    LevelFromSlog(r.Level),
		Channel:  h.channel,
		Message:  r.Message,
		Context:  fields,
		Datetime: r.Time,
	})
	return err
}

// WithAttrs 实现 [slog.Handler.WithAttrs]。
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(groupOrAttrs{attrs: slices.Clone(attrs)})
}

// WithGroup 实现 [slog.Handler.WithGroup]。
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(groupOrAttrs{group: name})
}

func (h *SlogHandler) with(g groupOrAttrs) *SlogHandler {
	r := *h
	r.goas = append(slices.Clone(h.goas), g)
	return &r
}

func addAttr(m map[string]any, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() != slog.KindGroup {
		v := a.Value.Any()
		// error 序列化为 JSON 时会丢失内容，这里提前转成字符串。
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		m[a.Key] = v
		return
	}

	attrs := a.Value.Group()
	if len(attrs) == 0 {
		return
	}
	// 空 key 的分组直接内联到当前层级。
	if a.Key == "" {
		for _, ga := range attrs {
			addAttr(m, ga)
		}
		return
	}
	sub := make(map[string]any, len(attrs))
	for _, ga := range attrs {
		addAttr(sub, ga)
	}
	m[a.Key] = sub
}
