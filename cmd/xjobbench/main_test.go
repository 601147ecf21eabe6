package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xjob/pkg/config/xconf"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), append([]string{"xjobbench"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_DefaultConfig(t *testing.T) {
	code, out, errOut := runCLI(t, "--producers", "3", "--jobs", "500", "--log-level", "error")
	require.Equal(t, 0, code, "stderr: %s", errOut)

	assert.Contains(t, out, "pushed")
	assert.Contains(t, out, "1500")
	assert.Contains(t, out, "otel invoked")
}

func TestRun_WithCancellationAndMixedWorkers(t *testing.T) {
	code, out, errOut := runCLI(t,
		"--producers", "4",
		"--jobs", "1000",
		"--cancel-percent", "40",
		"--thread-workers", "2",
		"--amortized-batch", "16",
		"--amortized-interval", "1ms",
		"--log-level", "error",
	)
	require.Equal(t, 0, code, "stdout: %s\nstderr: %s", out, errOut)
	assert.Contains(t, out, "cancelled")
}

func TestRun_ConfigFileAndLogFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "xjob.yaml")
	logPath := filepath.Join(dir, "bench.log")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
queue:
  name: bench-q
threads:
  - name: bg
    priority: background
    count: 2
log:
  level: info
  format: json
`), 0o600))

	code, out, errOut := runCLI(t, "-c", cfgPath, "--log-file", logPath, "-p", "2", "-n", "100")
	require.Equal(t, 0, code, "stderr: %s", errOut)
	assert.Contains(t, out, "bench-q")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id"`)
	assert.Contains(t, string(data), "conservation check passed")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero producers", []string{"--producers", "0"}, "--producers"},
		{"negative jobs", []string{"--jobs=-1"}, "--jobs"},
		{"cancel percent range", []string{"--cancel-percent", "101"}, "--cancel-percent"},
		{"no workers", []string{"--thread-workers", "0"}, "no workers"},
		{"invalid log format", []string{"--log-format", "xml"}, "log.format"},
		{"watch without config", []string{"--watch", "-n", "1"}, "--watch requires --config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, tt.args...)
			assert.Equal(t, 2, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	code, _, errOut := runCLI(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "failed to load config")
}

func TestRun_Watch(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "xjob.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o600))

	code, _, errOut := runCLI(t, "-c", cfgPath, "--watch", "-p", "1", "-n", "10")
	assert.Equal(t, 0, code, "stderr: %s", errOut)
}

func TestRunBench_Conservation(t *testing.T) {
	cfg := xconf.Default()
	cfg.Threads = []xconf.ThreadConfig{{Name: "w", Count: 3}}
	cfg.Amortized = xconf.AmortizedConfig{Enabled: true, Batch: -1, Interval: time.Millisecond}

	bo := benchOptions{Producers: 5, JobsPerProducer: 800, CancelPercent: 25, Seed: 7}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rep, err := runBench(context.Background(), cfg, bo, logger)
	require.NoError(t, err)
	require.NotNil(t, rep)

	assert.Empty(t, rep.verify())
	assert.Equal(t, uint64(4000), rep.Expected)
	assert.Equal(t, rep.Pushed-rep.Cancelled, rep.Invoked)
	assert.Positive(t, rep.Dropped, "reserved slots should be cancelled")
	assert.True(t, rep.Stats.Stopped)
	assert.False(t, rep.Interrupted)
}

func TestProduce_Deterministic(t *testing.T) {
	// 没有消费者时取消一定成功，计数只取决于种子。
	bo := benchOptions{JobsPerProducer: 200, CancelPercent: 50, Seed: 42}
	noop := func() {}

	tally := func() producerTally {
		q := newQueueForTest()
		defer q.Stop()
		return produce(context.Background(), q, noop, bo, 3)
	}

	a, b := tally(), tally()
	assert.Equal(t, a, b)
	assert.Equal(t, uint64(200), a.pushed+a.dropped+a.rejected)
	assert.Zero(t, a.rejected)
}

func TestProduce_StopsOnContextCancel(t *testing.T) {
	q := newQueueForTest()
	defer q.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tally := produce(ctx, q, func() {}, benchOptions{JobsPerProducer: 100}, 0)
	assert.Equal(t, producerTally{}, tally)
}

func TestReport_VerifyDetectsMismatch(t *testing.T) {
	rep := &report{Expected: 10, Pushed: 10, Invoked: 9}
	rep.Stats.Pushed = 10
	rep.Stats.Popped = 9
	rep.OTel.PushAccepted = 10
	rep.OTel.Popped = 9
	rep.OTel.Invoked = 9

	problems := rep.verify()
	require.Len(t, problems, 1)
	assert.True(t, strings.HasPrefix(problems[0], "invoked:"))
}

func TestReport_Print(t *testing.T) {
	rep := &report{Queue: "q", Pushed: 3, Invoked: 3, Elapsed: time.Second, Interrupted: true}
	rep.OTel.Panics = 1

	var buf bytes.Buffer
	rep.print(&buf)
	out := buf.String()
	assert.Contains(t, out, "throughput")
	assert.Contains(t, out, "3 jobs/s")
	assert.Contains(t, out, "otel panics")
	assert.Contains(t, out, "interrupted")
}
