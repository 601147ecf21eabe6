package xworker

import "errors"

var (
	// ErrNilQueue 表示 queue 参数为 nil。
	ErrNilQueue = errors.New("xworker: queue cannot be nil")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xworker: nil context")

	// ErrInvalidInterval 表示 Run 的周期参数无效（必须为正数）。
	ErrInvalidInterval = errors.New("xworker: interval must be positive")
)
