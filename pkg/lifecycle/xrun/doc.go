// Package xrun 管理一个任务队列及其 worker 的运行周期，基于 errgroup + context 实现。
//
// # 概述
//
// [Session] 持有一个 xjobq.Queue 和绑定到它的若干 worker：
//   - AddThread 启动 ThreadWorker（独占 OS 线程）
//   - AddAmortized 启动由固定周期驱动的 AmortizedWorker
//
// 当 context 被取消、收到终止信号（默认 SIGINT、SIGTERM）或调用 Stop/Cancel 时，
// Session 恰好执行一次收尾：停止队列，在收尾 goroutine 上清空 AmortizedWorker，
// 依次等待每个 ThreadWorker 执行完剩余任务并退出。Wait 在收尾完成后返回退出原因。
//
// # 快速开始
//
//	q := xjobq.New(xjobq.WithName("assets"))
//	s, err := xrun.NewSession(ctx, q, xrun.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if _, err := s.AddThread(xworker.WithName("decode"), xworker.WithPriority(xsys.PriorityBackground)); err != nil {
//	    return err
//	}
//	// ... 生产者向 q 入队 ...
//	s.Stop()
//	if err := s.Wait(); err != nil {
//	    var sigErr *xrun.SignalError
//	    if errors.As(err, &sigErr) {
//	        log.Printf("received signal: %v", sigErr.Signal)
//	    }
//	}
//
// # 错误处理
//
// Wait 的返回值：
//   - 通过 Stop、Cancel(nil) 或父 context 正常取消时返回 nil
//   - 收到信号时返回 *SignalError（errors.Is(err, ErrSignal) 为 true）
//   - Cancel(cause) 时返回 cause
//
// # 设计决策
//
// 1. 队列被外部直接 Stop 不会结束 Session：ThreadWorker 会自行退出，
// 但收尾仍需由 context 取消、信号或 Stop 触发，保证所有 worker 都被 Terminate 一次。
//
// 2. 信号处理默认开启，可通过 WithSignals 自定义或 WithoutSignalHandler 关闭。
// 嵌入到已有信号处理的进程时应关闭。
package xrun
