// Package tracer provides distributed tracing built on OpenTelemetry.
//
// It wraps the OpenTelemetry SDK behind a small API for the operations
// services actually perform: starting spans, recording errors, attaching
// attributes, and carrying trace context across process boundaries in W3C
// Trace Context form.
//
// # Usage
//
//	cfg := tracer.Config{
//		ServiceName:  "order-consumer",
//		AppEnv:       "production",
//		EnableExport: true,
//	}
//
//	t := tracer.NewClient(cfg, logger)
//
//	ctx, span := t.StartSpan(ctx, "decode-message")
//	defer span.End()
//
//	value, err := sd.DecodeTagged(ctx, msg.Value)
//	if err != nil {
//		t.RecordErrorOnSpan(span, err)
//		return err
//	}
//
// # Export
//
// With EnableExport set, spans are batched to an OTLP HTTP collector. The
// collector endpoint and headers come from the standard
// OTEL_EXPORTER_OTLP_* environment variables. Without export the provider
// still creates valid spans, which keeps trace IDs flowing into logs (see
// v1/logger's EnableTracing) at zero network cost.
//
// # Propagation
//
// GetCarrier and SetCarrierOnContext move trace context through message
// headers so consumer spans join the producer's trace:
//
//	// producer
//	headers := t.GetCarrier(ctx)
//
//	// consumer
//	ctx = t.SetCarrierOnContext(context.Background(), headers)
//	ctx, span := t.StartSpan(ctx, "handle-message")
//
// # FX Module
//
// The FX module provides the tracer and shuts the provider down on
// application stop, flushing pending spans:
//
//	app := fx.New(
//		tracer.FXModule,
//		fx.Provide(func() tracer.Config {
//			return tracer.Config{ServiceName: "order-consumer"}
//		}),
//	)
package tracer
