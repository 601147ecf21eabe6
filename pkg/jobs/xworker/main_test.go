package xworker

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/omeyang/xjob/pkg/observability/xmetrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// syncBuffer 是并发安全的日志缓冲区，ThreadWorker 在后台线程写日志。
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func bufferLogger(buf *syncBuffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// recordingObserver 记录每个跨度的选项与结果。
type recordingObserver struct {
	mu      sync.Mutex
	starts  []xmetrics.SpanOptions
	results []xmetrics.Result
}

func (o *recordingObserver) Start(ctx context.Context, opts xmetrics.SpanOptions) (context.Context, xmetrics.Span) {
	o.mu.Lock()
	o.starts = append(o.starts, opts)
	o.mu.Unlock()
	return ctx, recordingSpan{o: o}
}

func (o *recordingObserver) snapshot() ([]xmetrics.SpanOptions, []xmetrics.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]xmetrics.SpanOptions(nil), o.starts...), append([]xmetrics.Result(nil), o.results...)
}

type recordingSpan struct {
	o *recordingObserver
}

func (s recordingSpan) End(result xmetrics.Result) {
	s.o.mu.Lock()
	s.o.results = append(s.o.results, result)
	s.o.mu.Unlock()
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}
