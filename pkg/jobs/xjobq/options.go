package xjobq

import (
	"log/slog"

	"github.com/omeyang/xjob/pkg/observability/xmetrics"
)

// Option 定义 Queue 可选配置函数类型。
type Option func(*options)

type options struct {
	name    string
	logger  *slog.Logger
	metrics *xmetrics.QueueMetrics
}

func defaultOptions() options {
	return options{
		name:   "xjobq",
		logger: slog.Default(),
	}
}

// WithName 设置队列名称，用于日志和指标中区分多个队列。
// 默认为 "xjobq"。空字符串将被忽略。
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger 设置自定义日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics 设置队列指标记录器。
// 默认不记录指标。
func WithMetrics(m *xmetrics.QueueMetrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
