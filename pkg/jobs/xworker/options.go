package xworker

import (
	"log/slog"

	"github.com/omeyang/xjob/pkg/observability/xmetrics"
	"github.com/omeyang/xjob/pkg/util/xsys"
)

// Option 定义 worker 可选配置函数类型。
// 线程相关选项（WithPriority、WithOnBegin、WithOnEnd）仅对 ThreadWorker 生效。
type Option func(*options)

type options struct {
	name        string
	logger      *slog.Logger
	observer    xmetrics.Observer
	priority    xsys.Priority
	prioritySet bool
	onBegin     func()
	onEnd       func()
}

func defaultOptions(name string) options {
	return options{
		name:   name,
		logger: slog.Default(),
	}
}

// WithName 设置 worker 名称，用于日志、指标以及 ThreadWorker 的线程名。
// 空字符串将被忽略。
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

// WithObserver 设置任务执行的观测器。默认不观测。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithPriority 设置 ThreadWorker 后台线程的调度优先级。
// 未设置时不修改线程优先级。
func WithPriority(p xsys.Priority) Option {
	return func(o *options) {
		o.priority = p
		o.prioritySet = true
	}
}

// WithOnBegin 设置 ThreadWorker 后台线程启动后、处理任务前调用一次的回调。
func WithOnBegin(fn func()) Option {
	return func(o *options) {
		o.onBegin = fn
	}
}

// WithOnEnd 设置 ThreadWorker 后台线程退出前调用一次的回调。
func WithOnEnd(fn func()) Option {
	return func(o *options) {
		o.onEnd = fn
	}
}

func applyOptions(name string, opts []Option) options {
	o := defaultOptions(name)
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
