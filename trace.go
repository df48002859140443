package logger

import (
	"context"
	"maps"
	"strconv"

	"github.com/DataDog/dd-trace-go/v2/ddtrace/ext"
	"github.com/DataDog/dd-trace-go/v2/ddtrace/tracer"
)

// withTraceContext 在 ctx 携带 span 时把 dd.trace_id / dd.span_id 写入 Extra，
// 使 Datadog 能够关联日志与链路。
func withTraceContext(ctx context.Context, r Record) Record {
	if ctx == nil {
		return r
	}
	span, ok := tracer.SpanFromContext(ctx)
	if !ok || span == nil {
		return r
	}

	sc := span.Context()
	traceID := sc.TraceID()
	if traceID == tracer.TraceIDZero {
		traceID = strconv.FormatUint(sc.TraceIDLower(), 10)
	}

	extra := make(map[string]any, len(r.Extra)+2)
	maps.Copy(extra, r.Extra)
	extra[ext.LogKeyTraceID] = traceID
	extra[ext.LogKeySpanID] = strconv.FormatUint(sc.SpanID(), 10)
	r.Extra = extra
	return r
}
