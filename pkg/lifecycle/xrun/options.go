package xrun

import (
	"log/slog"
	"os"
	"syscall"

	"github.com/omeyang/xjob/pkg/observability/xmetrics"
)

// DefaultSignals 返回默认监听的系统信号列表（SIGINT、SIGTERM）。
// 每次调用返回新的切片，调用者可安全修改。
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// Option 配置 Session 的选项函数。
type Option func(*sessionOptions)

type sessionOptions struct {
	logger          *slog.Logger
	name            string
	signals         []os.Signal
	noSignalHandler bool
	observer        xmetrics.Observer
}

func defaultOptions() *sessionOptions {
	return &sessionOptions{
		logger: slog.Default(),
		name:   "xrun",
	}
}

// WithLogger 设置日志记录器，同时作为 Session 创建的 worker 的默认日志记录器。
// 默认使用 slog.Default()。传入 nil 将被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *sessionOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Session 名称，用于日志和 worker 默认名称前缀。默认 "xrun"。
func WithName(name string) Option {
	return func(o *sessionOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSignals 设置监听的信号列表。空列表等价于 DefaultSignals()。
func WithSignals(signals []os.Signal) Option {
	// 设计决策: 在创建时拷贝，避免调用方后续修改切片导致配置漂移。
	copied := append([]os.Signal(nil), signals...)
	return func(o *sessionOptions) {
		o.signals = copied
	}
}

// WithoutSignalHandler 禁用自动信号处理。
func WithoutSignalHandler() Option {
	return func(o *sessionOptions) {
		o.noSignalHandler = true
	}
}

// WithObserver 设置 Session 创建的 worker 的默认观测器。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *sessionOptions) {
		o.observer = observer
	}
}
