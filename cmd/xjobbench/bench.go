package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xjob/pkg/config/xconf"
	"github.com/omeyang/xjob/pkg/jobs/xjobq"
	"github.com/omeyang/xjob/pkg/lifecycle/xrun"
)

type benchOptions struct {
	Producers       int
	JobsPerProducer int
	CancelPercent   int
	Seed            uint64
	JobWork         time.Duration
}

// producerTally 是单个生产者的计数，汇总后写入 report。
type producerTally struct {
	pushed    uint64 // 成功入队
	cancelled uint64 // 入队后成功取消
	dropped   uint64 // 预留后取消、未入队
	rejected  uint64 // 队列已停止被拒绝
}

// runBench 启动 Session 与生产者，生产结束后收尾并返回统计。
// Session 因信号提前结束时仍返回已收集的统计，错误包装 xrun.ErrSignal。
func runBench(ctx context.Context, cfg *xconf.RuntimeConfig, bo benchOptions, logger *slog.Logger) (*report, error) {
	tel, err := newTelemetry()
	if err != nil {
		return nil, err
	}
	defer tel.shutdown(context.WithoutCancel(ctx))

	q := xjobq.New(
		xjobq.WithName(cfg.Queue.Name),
		xjobq.WithLogger(logger),
		xjobq.WithMetrics(tel.queueMetrics),
	)
	s, err := xrun.NewSession(ctx, q,
		xrun.WithName("xjobbench"),
		xrun.WithLogger(logger),
		xrun.WithObserver(tel.observer),
	)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(cfg); err != nil {
		s.Cancel(err)
		_ = s.Wait()
		return nil, err
	}

	logger.Info("xjobbench: started",
		slog.String("queue", q.Name()),
		slog.Int("threads", cfg.ThreadCount()),
		slog.Bool("amortized", cfg.Amortized.Enabled),
		slog.Int("producers", bo.Producers),
		slog.Int("jobs_per_producer", bo.JobsPerProducer),
		slog.Int("cancel_percent", bo.CancelPercent),
	)

	var invoked atomic.Uint64
	job := func() {
		if bo.JobWork > 0 {
			time.Sleep(bo.JobWork)
		}
		invoked.Add(1)
	}

	start := time.Now()
	tallies := make([]producerTally, bo.Producers)
	g, gctx := errgroup.WithContext(s.Context())
	for p := range bo.Producers {
		g.Go(func() error {
			tallies[p] = produce(gctx, q, job, bo, uint64(p))
			return nil
		})
	}
	_ = g.Wait()

	s.Stop()
	waitErr := s.Wait()
	elapsed := time.Since(start)

	rep := &report{
		Queue:    q.Name(),
		Invoked:  invoked.Load(),
		Elapsed:  elapsed,
		Expected: uint64(bo.Producers) * uint64(bo.JobsPerProducer),
	}
	for _, t := range tallies {
		rep.Pushed += t.pushed
		rep.Cancelled += t.cancelled
		rep.Dropped += t.dropped
		rep.Rejected += t.rejected
	}
	rep.Stats = q.Stats()

	if err := tel.collect(ctx, rep); err != nil {
		return rep, fmt.Errorf("collect metrics: %w", err)
	}

	if waitErr != nil && !errors.Is(waitErr, xrun.ErrSignal) {
		return rep, waitErr
	}
	rep.Interrupted = waitErr != nil
	return rep, waitErr
}

// produce 入队 JobsPerProducer 个任务。偶数序号走 Push，奇数序号走 IssueJobID + PushIssued；
// 被选中取消的任务分别在入队后或预留后取消。ctx 取消后提前返回。
func produce(ctx context.Context, q xjobq.Queue, job xjobq.Job, bo benchOptions, stream uint64) producerTally {
	var t producerTally
	rng := rand.New(rand.NewPCG(bo.Seed, stream))

	for i := range bo.JobsPerProducer {
		if ctx.Err() != nil {
			return t
		}
		cancel := bo.CancelPercent > 0 && rng.IntN(100) < bo.CancelPercent

		if i%2 == 0 {
			id := q.Push(job)
			if !id.Valid() {
				t.rejected++
				continue
			}
			t.pushed++
			// worker 可能已取出该任务，此时 Cancel 返回 false，任务照常执行。
			if cancel && q.Cancel(id) {
				t.cancelled++
			}
			continue
		}

		id := q.IssueJobID()
		if !id.Valid() {
			t.rejected++
			continue
		}
		if cancel && q.Cancel(id) {
			t.dropped++
		}
		if q.PushIssued(job, id).Valid() {
			t.pushed++
		} else if !cancel {
			t.rejected++
		}
	}
	return t
}
