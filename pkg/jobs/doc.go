// Package jobs 提供进程内任务队列与消费者相关的子包。
//
// 子包列表：
//   - xjobq: 线程安全的 FIFO 任务队列，支持预分配 id、惰性取消与优雅停止
//   - xworker: 队列消费策略，分摊执行（AmortizedWorker）与专用线程（ThreadWorker）
//
// 典型组合见 lifecycle/xrun：Session 把一个队列与多个 worker 绑定到同一生命周期。
package jobs
