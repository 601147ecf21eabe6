package xjobq

import (
	"context"
	"math"
	"strconv"
)

// Job 是一个无参数、无返回值的延迟任务。
// nil 表示"没有任务"，可与任何有效任务区分。
type Job func()

// JobID 标识队列中的一个任务槽位。
type JobID uint64

// InvalidJobID 是表示"无效/无"的哨兵 id，永远不会被分配。
const InvalidJobID JobID = math.MaxUint64

// Valid 报告 id 是否不是哨兵值。
func (id JobID) Valid() bool {
	return id != InvalidJobID
}

// String 返回 id 的十进制表示，哨兵值返回 "invalid"。
func (id JobID) String() string {
	if id == InvalidJobID {
		return "invalid"
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Stats 是队列状态的瞬时快照，仅用于监控和调试。
type Stats struct {
	// Pushed 成功入队的任务总数。
	Pushed uint64
	// Rejected 被拒绝的 Push 总数。
	Rejected uint64
	// Popped 被取出交给消费者的任务总数。
	Popped uint64
	// Cancelled 成功取消的条目总数（包括尚未填充的预分配槽位）。
	Cancelled uint64
	// Live 当前可被取出的任务数。
	Live int
	// Reserved 已预分配但尚未填充的槽位数。
	Reserved int
	// Pending 顺序序列长度，包含已被取消但尚未跳过的 id。
	Pending int
	// Stopped 队列是否已停止。
	Stopped bool
}

// Queue 是线程安全的可取消 FIFO 任务队列。
// 所有方法都是并发安全的。
type Queue interface {
	// Push 入队一个任务并返回新分配的 id。
	// 队列已停止或 job 为 nil 时返回 [InvalidJobID]，队列不变。
	Push(job Job) JobID

	// PushIssued 把 job 填充到 IssueJobID 预分配的槽位并入队，成功时返回 id 本身。
	// id 为 [InvalidJobID] 时等价于 Push。
	// 槽位已被取消（或 id 从未分配过）时返回 [InvalidJobID]，job 被静默丢弃。
	//
	// 同一个 id 只能填充一次，重复填充会 panic。
	PushIssued(job Job, id JobID) JobID

	// Pop 取出队首的存活任务。
	// block 为 true 时等待直到有任务或队列停止；返回 nil 表示队列已停止且耗尽。
	// block 为 false 时立即返回；返回 nil 表示暂时没有任务。
	Pop(block bool) Job

	// PopContext 阻塞式取出队首的存活任务，支持 ctx 取消。
	// 队列已停止且耗尽时返回 [ErrStopped]；ctx 取消时返回 ctx.Err()。
	// ctx 不得为 nil，否则返回 [ErrNilContext]。
	PopContext(ctx context.Context) (Job, error)

	// PopBatch 非阻塞地一次取出多个存活任务，按入队顺序排列。
	// maxJobs 为 0 时不加锁直接返回空切片；为负数时取出全部存活任务。
	// 已取消的 id 不计入数量。返回值永不为 nil。
	PopBatch(maxJobs int) []Job

	// IssueJobID 预分配一个空槽位并返回其 id，不进入顺序序列。
	// 该 id 之后可以用 PushIssued 填充，也可以直接 Cancel。
	// 队列已停止时返回 [InvalidJobID]。
	IssueJobID() JobID

	// Cancel 取消尚未被取出的任务（或尚未填充的预分配槽位）。
	// 返回 true 表示确实移除了一个条目；已执行、已取消或不存在时返回 false。
	Cancel(id JobID) bool

	// Stop 停止队列：拒绝后续 Push 并唤醒所有阻塞中的 Pop。
	// 已入队的任务仍然可以被取出。幂等。
	Stop()

	// Stopped 报告 Stop 是否已被调用。
	Stopped() bool

	// Len 返回当前可被取出的任务数（不含预分配的空槽位）。
	Len() int

	// Name 返回队列名称。
	Name() string

	// Stats 返回队列状态快照。
	Stats() Stats
}

// New 创建一个新的 Queue。
//
// 设计决策: 返回接口而非导出结构体，实现类型不导出，
// 保证队列只能通过 New 创建并以引用方式在生产者与消费者之间共享。
func New(opts ...Option) Queue {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return newJobQueue(o)
}
