package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/fsnotify/fsnotify"
)

// ReloadFunc 在配置文件变更并重载后调用。
// err 非 nil 时 cfg 为 nil，Loader 保留原配置。
type ReloadFunc func(cfg *RuntimeConfig, err error)

// WatchOption 监视器配置选项。
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce   time.Duration
	attempts   int
	retryDelay time.Duration
}

// WithDebounce 设置防抖时间，时间窗口内的多次变更只触发一次重载。默认 100ms。
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithRetry 设置单次重载的最大尝试次数与重试间隔。默认 3 次、50ms。
//
// 只有读取或解析失败会重试：写入方截断文件后尚未写完、或 rename 替换的间隙里
// 文件短暂缺失，都会表现为这两类错误。校验失败不重试，直接回调。
// attempts <= 0 或 delay < 0 的参数被忽略。
func WithRetry(attempts int, delay time.Duration) WatchOption {
	return func(o *watchOptions) {
		if attempts > 0 {
			o.attempts = attempts
		}
		if delay >= 0 {
			o.retryDelay = delay
		}
	}
}

// Watcher 监视配置文件并在变更后重载。
type Watcher struct {
	loader   *Loader
	fs       *fsnotify.Watcher
	onReload ReloadFunc
	debounce time.Duration

	attempts   int
	retryDelay time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// Watch 为 l 创建并启动监视器，ctx 取消或调用 Stop 后停止。
//
// 监视的是配置文件所在目录而非文件本身：编辑器原子写入（写临时文件再 rename）
// 会替换 inode，直接监视文件会丢失后续事件。
func Watch(ctx context.Context, l *Loader, onReload ReloadFunc, opts ...WatchOption) (*Watcher, error) {
	if l == nil || l.fromBytes {
		return nil, ErrNotFromFile
	}

	o := watchOptions{
		debounce:   100 * time.Millisecond,
		attempts:   3,
		retryDelay: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: create watcher: %w", err)
	}
	dir := filepath.Dir(l.path)
	if err := fs.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("xconf: watch %s: %w", dir, err), fs.Close())
	}

	wctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		loader:   l,
		fs:       fs,
		onReload: onReload,
		debounce: o.debounce,

		attempts:   o.attempts,
		retryDelay: o.retryDelay,

		ctx:    wctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Stop 停止监视并等待事件循环退出。幂等。
// Stop 返回后不会再有新的重载开始。
func (w *Watcher) Stop() error {
	w.cancel()
	<-w.done

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	return w.fs.Close()
}

func (w *Watcher) run() {
	defer close(w.done)
	name := filepath.Base(w.loader.path)

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.notify(nil, fmt.Errorf("xconf: watch: %w", err))
		}
	}
}

// schedule 重置防抖定时器。
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if w.ctx.Err() != nil {
			return
		}
		cfg, err := w.reload()
		if w.ctx.Err() != nil {
			return
		}
		w.notify(cfg, err)
	})
}

// reload 执行一次带重试的 Reload。
func (w *Watcher) reload() (*RuntimeConfig, error) {
	var cfg *RuntimeConfig
	err := retry.New(
		retry.Context(w.ctx),
		retry.Attempts(uint(max(w.attempts, 1))),
		retry.Delay(w.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	).Do(func() error {
		var err error
		cfg, err = w.loader.Reload()
		return err
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// isTransient 判断重载错误是否可能在文件写完后自行消失。
func isTransient(err error) bool {
	return errors.Is(err, ErrLoadFailed) || errors.Is(err, ErrParseFailed)
}

func (w *Watcher) notify(cfg *RuntimeConfig, err error) {
	if w.onReload != nil {
		w.onReload(cfg, err)
	}
}
