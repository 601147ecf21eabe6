package xsys

import "errors"

var (
	// ErrInvalidThreadName 表示线程名称为空。
	ErrInvalidThreadName = errors.New("xsys: thread name must not be empty")

	// ErrInvalidPriority 表示优先级取值无效。
	ErrInvalidPriority = errors.New("xsys: invalid thread priority")

	// ErrUnsupportedPlatform 表示当前平台不支持此操作。
	ErrUnsupportedPlatform = errors.New("xsys: unsupported platform")
)
