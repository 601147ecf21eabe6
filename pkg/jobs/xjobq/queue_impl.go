package xjobq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// compactThreshold 是顺序序列头部空洞的压缩阈值。
const compactThreshold = 256

const errIDExhausted = "xjobq: job id counter exhausted"

// jobQueue 是 Queue 的实现。
//
// jobs 是 id→job 的映射，值为 nil 表示已预分配但尚未填充的槽位；
// order 是入队顺序，order[head:] 为待处理部分，其中的 id 可能已被 Cancel
// 从 jobs 中删除（惰性取消），出队时以"是否仍在 jobs 中"判断存活。
// 以上字段全部由 mu 保护，cond 在每次成功入队时 Signal，在 Stop/ctx 取消时 Broadcast。
type jobQueue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	jobs     map[JobID]Job
	order    []JobID
	head     int
	nextID   JobID
	reserved int
	stopping bool

	pushed    uint64
	rejected  uint64
	popped    uint64
	cancelled uint64

	opts          options
	stopDepthObsv func()
}

func newJobQueue(o options) *jobQueue {
	q := &jobQueue{
		jobs: make(map[JobID]Job),
		opts: o,
	}
	q.cond = sync.NewCond(&q.mu)
	q.stopDepthObsv = o.metrics.ObserveDepth(o.name, q.Len)
	return q
}

func (q *jobQueue) Push(job Job) JobID {
	return q.PushIssued(job, InvalidJobID)
}

func (q *jobQueue) PushIssued(job Job, id JobID) JobID {
	if job == nil {
		q.reject()
		return InvalidJobID
	}

	q.mu.Lock()
	if q.stopping {
		q.rejected++
		q.mu.Unlock()
		q.opts.metrics.RecordPush(q.opts.name, false)
		return InvalidJobID
	}

	if id == InvalidJobID {
		var ok bool
		if id, ok = q.generateIDLocked(); !ok {
			q.mu.Unlock()
			panic(errIDExhausted)
		}
	} else {
		slot, ok := q.jobs[id]
		if !ok {
			// 预分配的槽位已被取消（或 id 不是本队列分配的）。
			q.rejected++
			q.mu.Unlock()
			q.opts.metrics.RecordPush(q.opts.name, false)
			q.opts.logger.Debug("xjobq: pre-issued job dropped",
				slog.String("queue", q.opts.name),
				slog.String("job_id", id.String()),
			)
			return InvalidJobID
		}
		if slot != nil {
			q.mu.Unlock()
			panic(fmt.Sprintf("xjobq: job %s pushed more than once", id))
		}
		q.reserved--
	}
	q.jobs[id] = job
	q.order = append(q.order, id)
	q.pushed++
	q.mu.Unlock()

	q.cond.Signal()
	q.opts.metrics.RecordPush(q.opts.name, true)
	return id
}

func (q *jobQueue) Pop(block bool) Job {
	q.mu.Lock()
	if block {
		for q.pendingLocked() == 0 && !q.stopping {
			q.cond.Wait()
		}
	}
	// 非阻塞模式下跳过已取消的 id 只是遍历已有条目，不会等待；
	// 阻塞模式下若跳过后序列为空，需要重新等待。
	for {
		job := q.popLiveLocked()
		if job != nil || !block || q.stopping {
			q.mu.Unlock()
			q.recordPop(job)
			return job
		}
		for q.pendingLocked() == 0 && !q.stopping {
			q.cond.Wait()
		}
	}
}

func (q *jobQueue) PopContext(ctx context.Context) (Job, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// ctx 取消时在锁内 Broadcast，避免等待方在检查 ctx.Err() 与进入 Wait 之间错过唤醒。
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	for {
		for q.pendingLocked() == 0 && !q.stopping && ctx.Err() == nil {
			q.cond.Wait()
		}
		if job := q.popLiveLocked(); job != nil {
			q.mu.Unlock()
			q.recordPop(job)
			return job, nil
		}
		if q.stopping {
			q.mu.Unlock()
			return nil, ErrStopped
		}
		if err := ctx.Err(); err != nil {
			q.mu.Unlock()
			return nil, err
		}
	}
}

func (q *jobQueue) PopBatch(maxJobs int) []Job {
	if maxJobs == 0 {
		return []Job{}
	}

	q.mu.Lock()
	want := q.pendingLocked()
	if maxJobs > 0 && maxJobs < want {
		want = maxJobs
	}
	jobs := make([]Job, 0, want)
	for len(jobs) < want {
		job := q.popLiveLocked()
		if job == nil {
			break
		}
		jobs = append(jobs, job)
	}
	q.mu.Unlock()

	q.opts.metrics.RecordPop(q.opts.name, len(jobs))
	return jobs
}

func (q *jobQueue) IssueJobID() JobID {
	q.mu.Lock()
	// 设计决策: 停止后不再分配 id，保证"停止后 jobs 不再增长"。
	if q.stopping {
		q.mu.Unlock()
		return InvalidJobID
	}
	id, ok := q.generateIDLocked()
	if !ok {
		q.mu.Unlock()
		panic(errIDExhausted)
	}
	q.jobs[id] = nil
	q.reserved++
	q.mu.Unlock()
	return id
}

func (q *jobQueue) Cancel(id JobID) bool {
	q.mu.Lock()
	job, ok := q.jobs[id]
	if ok {
		delete(q.jobs, id)
		if job == nil {
			q.reserved--
		}
		q.cancelled++
	}
	q.mu.Unlock()

	q.opts.metrics.RecordCancel(q.opts.name, ok)
	return ok
}

func (q *jobQueue) Stop() {
	q.mu.Lock()
	if q.stopping {
		q.mu.Unlock()
		return
	}
	q.stopping = true
	live := len(q.jobs) - q.reserved
	q.mu.Unlock()

	q.cond.Broadcast()
	if q.stopDepthObsv != nil {
		q.stopDepthObsv()
	}
	q.opts.logger.Debug("xjobq: queue stopped",
		slog.String("queue", q.opts.name),
		slog.Int("live", live),
	)
}

func (q *jobQueue) Stopped() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stopping
}

func (q *jobQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs) - q.reserved
}

func (q *jobQueue) Name() string {
	return q.opts.name
}

func (q *jobQueue) Stats() Stats {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Stats{
		Pushed:    q.pushed,
		Rejected:  q.rejected,
		Popped:    q.popped,
		Cancelled: q.cancelled,
		Live:      len(q.jobs) - q.reserved,
		Reserved:  q.reserved,
		Pending:   q.pendingLocked(),
		Stopped:   q.stopping,
	}
}

// ----------------------------------------------------------------------------
// 内部辅助函数（调用方必须持有 mu）
// ----------------------------------------------------------------------------

// generateIDLocked 分配下一个 id；计数器已到达哨兵值时返回 false。
// 调用方需先释放锁再 panic，避免队列在 recover 后永久锁死。
func (q *jobQueue) generateIDLocked() (JobID, bool) {
	id := q.nextID
	if id == InvalidJobID {
		return InvalidJobID, false
	}
	q.nextID++
	return id, true
}

// pendingLocked 返回顺序序列中待处理 id 的数量。
func (q *jobQueue) pendingLocked() int {
	return len(q.order) - q.head
}

// popLiveLocked 从顺序序列头部依次出队，跳过已取消的 id，
// 返回第一个存活任务并将其从 jobs 中删除；序列耗尽时返回 nil。
func (q *jobQueue) popLiveLocked() Job {
	for q.pendingLocked() > 0 {
		id := q.order[q.head]
		q.head++
		q.compactLocked()

		job, ok := q.jobs[id]
		if !ok {
			continue
		}
		delete(q.jobs, id)
		q.popped++
		return job
	}
	return nil
}

// compactLocked 回收顺序序列头部已出队的空间。
func (q *jobQueue) compactLocked() {
	switch {
	case q.head == len(q.order):
		q.order = q.order[:0]
		q.head = 0
	case q.head >= compactThreshold && q.head*2 >= len(q.order):
		n := copy(q.order, q.order[q.head:])
		q.order = q.order[:n]
		q.head = 0
	}
}

func (q *jobQueue) reject() {
	q.mu.Lock()
	q.rejected++
	q.mu.Unlock()
	q.opts.metrics.RecordPush(q.opts.name, false)
}

func (q *jobQueue) recordPop(job Job) {
	if job != nil {
		q.opts.metrics.RecordPop(q.opts.name, 1)
	}
}

// 编译期接口检查。
var _ Queue = (*jobQueue)(nil)
