package xlog

import "errors"

var (
	// ErrInvalidLevel 表示无法解析的日志级别。
	ErrInvalidLevel = errors.New("xlog: invalid level")

	// ErrInvalidFormat 表示未知的输出格式。
	ErrInvalidFormat = errors.New("xlog: invalid format")

	// ErrInvalidRotation 表示轮转参数无效。
	ErrInvalidRotation = errors.New("xlog: invalid rotation config")
)
