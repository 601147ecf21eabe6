package xjobq

import "errors"

var (
	// ErrStopped 表示队列已停止且没有剩余任务。
	// 仅由 PopContext 返回；其余方法使用哨兵值表达同样的含义。
	ErrStopped = errors.New("xjobq: queue is stopped")

	// ErrNilContext 表示 context 参数为 nil。
	ErrNilContext = errors.New("xjobq: nil context")
)
