package xworker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/omeyang/xjob/pkg/jobs/xjobq"
	"github.com/omeyang/xjob/pkg/observability/xmetrics"
)

//go:generate mockgen -destination=queue_mock_test.go -package=xworker github.com/omeyang/xjob/pkg/jobs/xjobq Queue

// Worker 是队列消费者的统一接口。
type Worker interface {
	// Process 执行最多 jobCount 个任务，语义由具体策略决定。
	Process(jobCount int)

	// Terminate 停止队列并完成策略相关的收尾。幂等。
	Terminate()
}

// Base 提供 Worker 的默认行为，供具体策略嵌入。
// Process 默认为空操作，Terminate 默认只停止队列。
type Base struct {
	queue xjobq.Queue
}

// NewBase 创建绑定到 q 的 Base。
func NewBase(q xjobq.Queue) Base {
	return Base{queue: q}
}

// Queue 返回 worker 绑定的队列。
func (b *Base) Queue() xjobq.Queue {
	return b.queue
}

// Process 默认为空操作。
func (b *Base) Process(int) {}

// Terminate 停止队列。
func (b *Base) Terminate() {
	b.queue.Stop()
}

// invoke 执行单个任务：开启观测跨度，恢复 panic 并记录日志。
func invoke(o *options, job xjobq.Job) {
	_, span := xmetrics.Start(context.Background(), o.observer, xmetrics.SpanOptions{
		Component: o.name,
		Operation: "invoke",
		Kind:      xmetrics.KindConsumer,
	})

	result := xmetrics.Result{Status: xmetrics.StatusOK}
	defer func() {
		if r := recover(); r != nil {
			result.Status = xmetrics.StatusPanic
			result.Attrs = []xmetrics.Attr{xmetrics.String("panic", fmt.Sprint(r))}
			o.logger.Error("xworker: job panic recovered",
				slog.String("worker", o.name),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
		span.End(result)
	}()

	job()
}

// 编译期接口检查。
var (
	_ Worker = (*Base)(nil)
	_ Worker = (*AmortizedWorker)(nil)
	_ Worker = (*ThreadWorker)(nil)
)
