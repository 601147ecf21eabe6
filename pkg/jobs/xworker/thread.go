package xworker

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"github.com/omeyang/xjob/pkg/jobs/xjobq"
	"github.com/omeyang/xjob/pkg/util/xsys"
)

// ThreadWorker 独占一个后台 OS 线程，阻塞等待并逐个执行任务，
// 直到队列停止且耗尽。
type ThreadWorker struct {
	Base
	opts options
	done chan struct{}
}

// NewThread 创建绑定到 q 的 ThreadWorker 并立即启动后台线程。
// q 为 nil 时返回 [ErrNilQueue]。
//
// 后台线程依次：设置线程名与优先级、调用 OnBegin、循环阻塞取任务并执行、
// 在队列停止且耗尽后调用 OnEnd 并退出。
func NewThread(q xjobq.Queue, opts ...Option) (*ThreadWorker, error) {
	if q == nil {
		return nil, ErrNilQueue
	}
	w := &ThreadWorker{
		Base: NewBase(q),
		opts: applyOptions("xworker", opts),
		done: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *ThreadWorker) loop() {
	defer close(w.done)

	// 不调用 UnlockOSThread：goroutine 退出时被改过名称/优先级的线程随之销毁，
	// 不会被运行时复用给其他 goroutine。
	runtime.LockOSThread()
	w.applyThreadAttrs()

	w.opts.logger.Debug("xworker: thread started", slog.String("worker", w.opts.name))
	if w.opts.onBegin != nil {
		w.opts.onBegin()
	}

	for {
		job := w.queue.Pop(true)
		if job == nil {
			break
		}
		invoke(&w.opts, job)
	}

	if w.opts.onEnd != nil {
		w.opts.onEnd()
	}
	w.opts.logger.Debug("xworker: thread stopped", slog.String("worker", w.opts.name))
}

func (w *ThreadWorker) applyThreadAttrs() {
	w.logThreadErr("name", xsys.SetThreadName(w.opts.name))
	if w.opts.prioritySet {
		w.logThreadErr("priority", xsys.SetThreadPriority(w.opts.priority))
	}
}

func (w *ThreadWorker) logThreadErr(attr string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, xsys.ErrUnsupportedPlatform):
		w.opts.logger.Debug("xworker: thread attribute not supported",
			slog.String("worker", w.opts.name),
			slog.String("attr", attr),
		)
	default:
		w.opts.logger.Warn("xworker: set thread attribute failed",
			slog.String("worker", w.opts.name),
			slog.String("attr", attr),
			slog.Any("error", err),
		)
	}
}

// Terminate 停止队列并等待后台线程执行完剩余任务后退出。幂等。
// 不可在本 worker 执行的任务内调用。
func (w *ThreadWorker) Terminate() {
	w.Base.Terminate()
	<-w.done
}

// Shutdown 停止队列并等待后台线程退出，支持 ctx 超时/取消。
// ctx 到期后立即返回 ctx.Err()，后台线程仍会继续执行剩余任务直到耗尽，
// 调用方可通过 Done 等待其最终退出。
func (w *ThreadWorker) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	w.Base.Terminate()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done 返回在后台线程退出后关闭的 channel。
func (w *ThreadWorker) Done() <-chan struct{} {
	return w.done
}

// Name 返回 worker 名称。
func (w *ThreadWorker) Name() string {
	return w.opts.name
}
