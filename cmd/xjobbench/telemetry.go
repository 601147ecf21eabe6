package main

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/omeyang/xjob/pkg/observability/xmetrics"
)

// telemetry 持有进程内的 OTel provider，压测结束后从 ManualReader 读取指标总数。
type telemetry struct {
	reader        *sdkmetric.ManualReader
	meterProvider *sdkmetric.MeterProvider
	traceProvider *sdktrace.TracerProvider
	observer      xmetrics.Observer
	queueMetrics  *xmetrics.QueueMetrics
}

func newTelemetry() (*telemetry, error) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	// 不配置 exporter：span 只用于驱动 observer，结束即丢弃。
	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.NeverSample()))

	opts := []xmetrics.Option{
		xmetrics.WithInstrumentationName("github.com/omeyang/xjob/cmd/xjobbench"),
		xmetrics.WithMeterProvider(mp),
		xmetrics.WithTracerProvider(tp),
	}
	observer, err := xmetrics.NewOTelObserver(opts...)
	if err != nil {
		return nil, err
	}
	qm, err := xmetrics.NewQueueMetrics(opts...)
	if err != nil {
		return nil, err
	}

	return &telemetry{
		reader:        reader,
		meterProvider: mp,
		traceProvider: tp,
		observer:      observer,
		queueMetrics:  qm,
	}, nil
}

// collect 读取计数器总数写入 rep。
func (t *telemetry) collect(ctx context.Context, rep *report) error {
	var rm metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &rm); err != nil {
		return err
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch m.Name {
				case "xjob.invoke.total":
					rep.OTel.Invoked += uint64(dp.Value)
					if status(dp.Attributes, "status") == "panic" {
						rep.OTel.Panics += uint64(dp.Value)
					}
				case "xjob.queue.push":
					if status(dp.Attributes, "result") == "accepted" {
						rep.OTel.PushAccepted += uint64(dp.Value)
					}
				case "xjob.queue.cancel":
					if status(dp.Attributes, "result") == "removed" {
						rep.OTel.CancelRemoved += uint64(dp.Value)
					}
				case "xjob.queue.pop":
					rep.OTel.Popped += uint64(dp.Value)
				}
			}
		}
	}
	return nil
}

func (t *telemetry) shutdown(ctx context.Context) {
	_ = t.meterProvider.Shutdown(ctx)
	_ = t.traceProvider.Shutdown(ctx)
}

func status(set attribute.Set, key attribute.Key) string {
	v, ok := set.Value(key)
	if !ok {
		return ""
	}
	return v.AsString()
}
