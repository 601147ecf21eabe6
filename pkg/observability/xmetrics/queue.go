package xmetrics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricQueuePush   = "xjob.queue.push"
	metricQueueCancel = "xjob.queue.cancel"
	metricQueuePop    = "xjob.queue.pop"
	metricQueueDepth  = "xjob.queue.depth"
)

// QueueMetrics 记录队列级别的指标。
//
// nil *QueueMetrics 是合法值，所有方法都是空操作。
// 所有方法并发安全。
type QueueMetrics struct {
	meter  metric.Meter
	push   metric.Int64Counter
	cancel metric.Int64Counter
	pop    metric.Int64Counter
	depth  metric.Int64ObservableGauge
}

// NewQueueMetrics 创建基于 OpenTelemetry 的队列指标记录器。
// 只使用 Option 中的 MeterProvider 与 instrumentation 名称。
func NewQueueMetrics(opts ...Option) (*QueueMetrics, error) {
	cfg := newOTelConfig(opts)
	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	push, err := meter.Int64Counter(metricQueuePush,
		metric.WithDescription("job push attempts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateCounter, err)
	}
	cancel, err := meter.Int64Counter(metricQueueCancel,
		metric.WithDescription("job cancel attempts"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateCounter, err)
	}
	pop, err := meter.Int64Counter(metricQueuePop,
		metric.WithDescription("jobs handed to consumers"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateCounter, err)
	}
	depth, err := meter.Int64ObservableGauge(metricQueueDepth,
		metric.WithDescription("live jobs waiting in the queue"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateGauge, err)
	}

	return &QueueMetrics{
		meter:  meter,
		push:   push,
		cancel: cancel,
		pop:    pop,
		depth:  depth,
	}, nil
}

// RecordPush 记录一次入队尝试。
func (m *QueueMetrics) RecordPush(queue string, accepted bool) {
	if m == nil {
		return
	}
	result := "accepted"
	if !accepted {
		result = "rejected"
	}
	m.push.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("queue", queue),
		attribute.String("result", result),
	))
}

// RecordCancel 记录一次取消尝试。
func (m *QueueMetrics) RecordCancel(queue string, removed bool) {
	if m == nil {
		return
	}
	result := "removed"
	if !removed {
		result = "missing"
	}
	m.cancel.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("queue", queue),
		attribute.String("result", result),
	))
}

// RecordPop 记录交给消费者的任务数。n <= 0 时不记录。
func (m *QueueMetrics) RecordPop(queue string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pop.Add(context.Background(), int64(n), metric.WithAttributes(
		attribute.String("queue", queue),
	))
}

// ObserveDepth 为队列注册深度 gauge 回调，返回注销函数（幂等）。
// m 为 nil 或 depth 为 nil 时返回 nil。
func (m *QueueMetrics) ObserveDepth(queue string, depth func() int) (unregister func()) {
	if m == nil || depth == nil {
		return nil
	}
	attrs := metric.WithAttributes(attribute.String("queue", queue))
	reg, err := m.meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(m.depth, int64(depth()), attrs)
		return nil
	}, m.depth)
	if err != nil {
		return nil
	}
	var once sync.Once
	return func() {
		once.Do(func() {
			_ = reg.Unregister()
		})
	}
}
