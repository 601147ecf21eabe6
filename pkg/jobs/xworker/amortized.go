package xworker

import (
	"context"
	"time"

	"github.com/omeyang/xjob/pkg/jobs/xjobq"
)

// AmortizedWorker 在调用方 goroutine 上非阻塞地执行任务。
// 由调用方的周期性循环驱动（每个周期调用一次 Process），把队列消化分摊到时间上。
//
// Process 与 Terminate 可以从多个 goroutine 并发调用，任务会在各自调用方的 goroutine 上执行。
type AmortizedWorker struct {
	Base
	opts options
}

// NewAmortized 创建绑定到 q 的 AmortizedWorker。q 为 nil 时返回 [ErrNilQueue]。
func NewAmortized(q xjobq.Queue, opts ...Option) (*AmortizedWorker, error) {
	if q == nil {
		return nil, ErrNilQueue
	}
	return &AmortizedWorker{
		Base: NewBase(q),
		opts: applyOptions("xworker-amortized", opts),
	}, nil
}

// Process 取出并执行任务，从不阻塞：
//
//   - jobCount == 0：空操作
//   - jobCount == 1：一次非阻塞 Pop
//   - jobCount > 1 或 < 0：一次 PopBatch(jobCount)，负数表示当前所有可用任务
//
// 任务按取出顺序在当前 goroutine 上执行。
func (w *AmortizedWorker) Process(jobCount int) {
	switch {
	case jobCount == 0:
		return
	case jobCount == 1:
		if job := w.queue.Pop(false); job != nil {
			invoke(&w.opts, job)
		}
	default:
		for _, job := range w.queue.PopBatch(jobCount) {
			invoke(&w.opts, job)
		}
	}
}

// Terminate 停止队列，然后在当前 goroutine 上执行一次 Process(-1)，
// 尽力执行停止时刻仍在队列中的任务。幂等。
func (w *AmortizedWorker) Terminate() {
	w.Base.Terminate()
	w.Process(-1)
}

// Run 是调用方没有自己的周期循环时使用的便捷循环：
// 每隔 interval 调用一次 Process(jobCount)。
//
// ctx 取消时返回 ctx.Err()；队列停止且没有剩余任务时返回 nil。
// interval 必须为正数，否则返回 [ErrInvalidInterval]。
func (w *AmortizedWorker) Run(ctx context.Context, interval time.Duration, jobCount int) error {
	if ctx == nil {
		return ErrNilContext
	}
	if interval <= 0 {
		return ErrInvalidInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Process(jobCount)
			if w.queue.Stopped() && w.queue.Len() == 0 {
				return nil
			}
		}
	}
}

// Name 返回 worker 名称。
func (w *AmortizedWorker) Name() string {
	return w.opts.name
}
