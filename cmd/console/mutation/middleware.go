package mutation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"locker-console/internal/logger"
)

const instrumentationName = "locker-console/cmd/console/mutation"

// WithLogging logs every dispatched request with its result.
func WithLogging() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req Request) Outcome {
			start := time.Now()
			out := next(ctx, req)

			fields := logger.Fields{
				"request_id": req.ID,
				"page":       req.Page,
				"kind":       string(req.Kind),
				"action":     string(out.Action),
				"record_key": req.RecordKey,
				"result":     string(out.Result),
				"duration":   time.Since(start).String(),
			}
			switch out.Result {
			case Succeeded:
				logger.InfoWithFields("mutation dispatched", fields)
			case Refused:
				fields["error"] = out.Err.Error()
				logger.WarnWithFields("mutation refused", fields)
			default:
				// 백엔드 실패는 httpclient 경계에서 이미 에러로 남긴다.
				fields["error"] = out.Err.Error()
				logger.InfoWithFields("mutation failed", fields)
			}
			return out
		}
	}
}

// WithTracing opens a span per request. A nil provider disables it.
func WithTracing(tp trace.TracerProvider) Middleware {
	if tp == nil {
		return func(next Handler) Handler { return next }
	}
	tracer := tp.Tracer(instrumentationName)

	return func(next Handler) Handler {
		return func(ctx context.Context, req Request) Outcome {
			ctx, span := tracer.Start(ctx, "mutation "+label(req),
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					attribute.String("console.page", req.Page),
					attribute.String("console.mutation.kind", string(req.Kind)),
					attribute.String("console.mutation.id", req.ID),
					attribute.String("console.record_key", req.RecordKey),
				),
			)
			defer span.End()

			out := next(ctx, req)
			span.SetAttributes(attribute.String("console.mutation.result", string(out.Result)))
			if out.Err != nil {
				span.RecordError(out.Err)
				span.SetStatus(codes.Error, out.Err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return out
		}
	}
}
