package dispatch

import "sync/atomic"

// ============================================================================
//                              分发统计
// ============================================================================

// Stats 分发统计快照
type Stats struct {
	Submitted int64 // 提交的任务总数
	Accepted  int64 // 被池接纳的任务数
	Retries   int64 // 池耗尽触发的重试次数
	Failed    int64 // 终态失败的任务数
}

// statsCounter 原子计数器
type statsCounter struct {
	submitted atomic.Int64
	accepted  atomic.Int64
	retries   atomic.Int64
	failed    atomic.Int64
}

// Snapshot 读取当前快照
func (c *statsCounter) Snapshot() Stats {
	return Stats{
		Submitted: c.submitted.Load(),
		Accepted:  c.accepted.Load(),
		Retries:   c.retries.Load(),
		Failed:    c.failed.Load(),
	}
}

// Reset 重置所有计数
func (c *statsCounter) Reset() {
	c.submitted.Store(0)
	c.accepted.Store(0)
	c.retries.Store(0)
	c.failed.Store(0)
}
