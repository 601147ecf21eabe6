// Package xjobq 提供线程安全、可取消的 FIFO 任务队列。
//
// Queue 用于把无参数、无返回值的延迟任务（[Job]）从任意数量的生产者
// goroutine 交给一个或多个消费者（见 xworker 包）。
//
// # 特性
//
//   - FIFO：仅在存活任务之间保证插入顺序，不支持优先级
//   - 惰性取消：Cancel 只从 id→job 映射中删除，顺序序列中的残留 id
//     在下一次 Pop/PopBatch 时被跳过
//   - 预分配 id：IssueJobID 先占位，之后可 PushIssued 填充或 Cancel 放弃，
//     不会与并发 Push 产生竞态
//   - 阻塞 / 非阻塞 / 批量三种消费方式可混用
//   - Stop 幂等：拒绝后续 Push，唤醒所有阻塞的 Pop，已入队任务仍可被取出
//
// # 返回值约定
//
// 热路径不返回 error，统一使用哨兵值：
//
//   - Push/PushIssued 返回 [InvalidJobID] 表示被拒绝（已停止、预分配 id 已取消、job 为 nil）
//   - Pop 返回 nil 表示没有取到任务：阻塞模式下意味着队列已停止且耗尽，
//     非阻塞模式下意味着暂时没有任务
//   - PopBatch 永不返回 nil，空切片表示没有可用任务
//   - Cancel 返回是否真的移除了一个条目
//
// # 注意事项
//
//   - 同一个预分配 id 只能 PushIssued 一次，重复填充会 panic（调用方契约错误）
//   - id 计数器从 0 单调递增，不复用；计数器溢出到 [InvalidJobID] 视为不变量被破坏，会 panic
//   - Queue 只能通过 [New] 创建；所有生产者和消费者共享同一个实例
//
// # 使用示例
//
//	q := xjobq.New(xjobq.WithName("upload"))
//	id := q.IssueJobID()
//	q.Push(func() { compileShader() })
//	q.PushIssued(func() { uploadTexture() }, id)
//
//	for _, job := range q.PopBatch(-1) {
//	    job()
//	}
//	q.Stop()
package xjobq
