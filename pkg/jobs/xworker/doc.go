// Package xworker 提供消费 xjobq.Queue 的两种 worker 策略。
//
// # 策略
//
//   - [AmortizedWorker]：在调用方自己的 goroutine 上非阻塞地取出并执行任务，
//     适用于调用方已经有周期性循环（如每帧一次）的场景，把队列消化分摊到每个周期
//   - [ThreadWorker]：独占一个后台 OS 线程，阻塞等待任务并逐个执行，直到队列停止且耗尽
//
// 多个 worker（任意策略组合）可以同时消费同一个队列，
// 所有 worker 合计的任务执行次数等于成功入队且未被取消的任务数。
//
// # 生命周期
//
// Terminate 先停止队列（拒绝新任务并唤醒阻塞的 Pop），再做策略相关的收尾：
//
//   - AmortizedWorker：在调用方 goroutine 上执行一次 Process(-1)，尽力清空剩余任务
//   - ThreadWorker：等待后台线程执行完剩余任务并退出
//
// Terminate 幂等，可重复调用。
//
// # 注意事项
//
//   - 任务 panic 会被恢复并记录日志（含堆栈），该任务被丢弃，worker 继续运行
//   - ThreadWorker.Terminate/Shutdown 不可在该 worker 自己执行的任务内调用，否则会死锁
//   - 设置线程名称或优先级失败只记录日志，不影响 worker 运行
package xworker
