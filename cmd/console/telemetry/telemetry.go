// Package telemetry sets up the OpenTelemetry tracer used around mutations.
// Finished spans are written to the structured log; there is no collector.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"locker-console/internal/logger"
)

// NewTracerProvider 는 끝난 span 을 debug 로그로 내보내는 provider 를 만든다.
// 종료 시 Shutdown 을 호출해야 남은 span 이 flush 된다.
func NewTracerProvider(serviceName string) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSyncer(LogExporter{}),
	)
}

// LogExporter 는 span 하나를 로그 한 줄로 남기는 SpanExporter 다.
type LogExporter struct{}

func (LogExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		fields := logger.Fields{
			"span_name": s.Name(),
			"trace_id":  s.SpanContext().TraceID().String(),
			"span_id":   s.SpanContext().SpanID().String(),
			"duration":  s.EndTime().Sub(s.StartTime()).String(),
		}
		for _, kv := range s.Attributes() {
			fields[string(kv.Key)] = kv.Value.Emit()
		}
		if st := s.Status(); st.Code == codes.Error {
			fields["status"] = "error"
			fields["status_description"] = st.Description
			logger.WarnWithFields("span finished", fields)
			continue
		}
		logger.DebugWithFields("span finished", fields)
	}
	return nil
}

func (LogExporter) Shutdown(context.Context) error { return nil }
