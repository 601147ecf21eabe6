package xrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xjob/pkg/jobs/xjobq"
	"github.com/omeyang/xjob/pkg/jobs/xworker"
)

// Session 管理一个队列及其 worker 的运行周期。
//
// AddThread、AddAmortized、Stop、Cancel 可安全地从多个 goroutine 并发调用。
// Wait 应仅调用一次。
type Session struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	queue    xjobq.Queue
	opts     *sessionOptions

	mu        sync.Mutex
	closed    bool
	amortized []*xworker.AmortizedWorker
	threads   []*xworker.ThreadWorker
	seq       int
}

// NewSession 创建绑定到 q 的 Session，并启动信号监听与收尾 goroutine。
// q 为 nil 时返回 [ErrNilQueue]。
func NewSession(ctx context.Context, q xjobq.Queue, opts ...Option) (*Session, error) {
	if q == nil {
		return nil, ErrNilQueue
	}
	// 设计决策: nil context 归一化为 context.Background()，
	// 防止 context.WithCancelCause(nil) panic。
	if ctx == nil {
		ctx = context.Background()
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)

	s := &Session{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		queue:    q,
		opts:     options,
	}

	if !options.noSignalHandler {
		signals := options.signals
		if len(signals) == 0 {
			signals = DefaultSignals()
		}
		eg.Go(func() error { return s.watchSignals(signals) })
	}
	eg.Go(s.supervise)

	options.logger.Debug("xrun: session started",
		slog.String("session", options.name),
		slog.String("queue", q.Name()),
	)
	return s, nil
}

// AddThread 启动一个绑定到 Session 队列的 ThreadWorker。
// 未通过 opts 指定名称时使用 "<session>-thread-<n>"。
func (s *Session) AddThread(opts ...xworker.Option) (*xworker.ThreadWorker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	s.seq++
	w, err := xworker.NewThread(s.queue, s.workerOptions(fmt.Sprintf("%s-thread-%d", s.opts.name, s.seq), opts)...)
	if err != nil {
		return nil, err
	}
	s.threads = append(s.threads, w)
	return w, nil
}

// AddAmortized 启动一个每隔 interval 执行 Process(batch) 的 AmortizedWorker。
// 未通过 opts 指定名称时使用 "<session>-amortized-<n>"。
func (s *Session) AddAmortized(interval time.Duration, batch int, opts ...xworker.Option) (*xworker.AmortizedWorker, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	s.seq++
	w, err := xworker.NewAmortized(s.queue, s.workerOptions(fmt.Sprintf("%s-amortized-%d", s.opts.name, s.seq), opts)...)
	if err != nil {
		return nil, err
	}
	s.amortized = append(s.amortized, w)
	s.eg.Go(func() error {
		err := w.Run(s.ctx, interval, batch)
		if errors.Is(err, context.Canceled) {
			// 收尾由 supervise 负责，取消本身不是错误。
			return nil
		}
		return err
	})
	return w, nil
}

// Queue 返回 Session 管理的队列。
func (s *Session) Queue() xjobq.Queue {
	return s.queue
}

// Context 返回 Session 的 context，收尾开始时被取消。
func (s *Session) Context() context.Context {
	return s.ctx
}

// Stop 触发正常收尾，Wait 返回 nil。
func (s *Session) Stop() {
	s.cancel(nil)
}

// Cancel 以 cause 为退出原因触发收尾，Wait 返回 cause。
//
// cause 不应包装 context.Canceled，否则 Wait 会将其视为普通取消而过滤掉。
func (s *Session) Cancel(cause error) {
	s.cancel(cause)
}

// Wait 等待收尾完成，返回退出原因。
func (s *Session) Wait() error {
	defer s.cancel(nil)

	err := s.eg.Wait()

	if errors.Is(err, context.Canceled) || err == nil {
		if s.causeCtx.Err() != nil {
			if cause := context.Cause(s.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
				return cause
			}
			return nil
		}
	}
	return err
}

// ----------------------------------------------------------------------------
// 内部实现
// ----------------------------------------------------------------------------

// workerOptions 在调用方选项前插入 Session 级默认值，调用方选项优先。
func (s *Session) workerOptions(name string, opts []xworker.Option) []xworker.Option {
	merged := make([]xworker.Option, 0, len(opts)+3)
	merged = append(merged,
		xworker.WithName(name),
		xworker.WithLogger(s.opts.logger),
	)
	if s.opts.observer != nil {
		merged = append(merged, xworker.WithObserver(s.opts.observer))
	}
	return append(merged, opts...)
}

// supervise 等待取消后恰好执行一次收尾。
func (s *Session) supervise() error {
	<-s.ctx.Done()

	s.mu.Lock()
	s.closed = true
	amortized := s.amortized
	threads := s.threads
	s.mu.Unlock()

	s.opts.logger.Debug("xrun: terminating workers",
		slog.String("session", s.opts.name),
		slog.Int("amortized", len(amortized)),
		slog.Int("threads", len(threads)),
	)

	// 没有任何 worker 时也要停止队列，保证 Wait 返回后不再接受任务。
	s.queue.Stop()
	for _, w := range amortized {
		w.Terminate()
	}
	for _, w := range threads {
		w.Terminate()
	}

	st := s.queue.Stats()
	s.opts.logger.Info("xrun: session stopped",
		slog.String("session", s.opts.name),
		slog.String("queue", s.queue.Name()),
		slog.Uint64("pushed", st.Pushed),
		slog.Uint64("popped", st.Popped),
		slog.Uint64("cancelled", st.Cancelled),
		slog.Uint64("rejected", st.Rejected),
		slog.Int("left", st.Live),
	)
	return nil
}

func (s *Session) watchSignals(signals []os.Signal) error {
	testc := testSigChan(s.ctx)
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)
	defer signal.Stop(sigCh)

	var sig os.Signal
	select {
	case sig = <-testc:
	case sig = <-sigCh:
	case <-s.ctx.Done():
		return nil
	}

	s.opts.logger.Info("xrun: received signal",
		slog.String("session", s.opts.name),
		slog.String("signal", sig.String()),
	)
	s.cancel(&SignalError{Signal: sig})
	return nil
}

// 设计决策: 测试信号通道通过 context 注入，定义在非测试文件中，
// 避免测试中向进程发送真实信号。生产环境只多一次 context.Value 查找。
type testSigChanKey struct{}

func testSigChan(ctx context.Context) <-chan os.Signal {
	c, _ := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	return c
}

func withTestSigChan(ctx context.Context, c <-chan os.Signal) context.Context {
	return context.WithValue(ctx, testSigChanKey{}, c)
}
