package dispatch

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/lib/log"
	"github.com/dep2p/go-localbus/pkg/types"
)

var logger = log.Logger("core/dispatch")

// ============================================================================
//                              BoundedDispatcher
// ============================================================================

// BoundedDispatcher 有界分发器
//
// 将调用包装为任务提交到固定容量工作池。准入循环在提交方
// 所在协程上运行；授权查询在任务内部的工作协程上执行，
// 从不在提交路径上阻塞外部协作方。
type BoundedDispatcher struct {
	pool interfaces.WorkerPool
	auth interfaces.Authorizer

	// 池耗尽重试之间的让步；0 表示纯自旋重试
	clk        clock.Clock
	retryYield time.Duration

	stats statsCounter
}

// NewDispatcher 创建有界分发器
//
// clk 为空时使用真实时钟。
func NewDispatcher(pool interfaces.WorkerPool, auth interfaces.Authorizer, clk clock.Clock, retryYield time.Duration) *BoundedDispatcher {
	if clk == nil {
		clk = clock.New()
	}
	return &BoundedDispatcher{
		pool:       pool,
		auth:       auth,
		clk:        clk,
		retryYield: retryYield,
	}
}

// 确保实现接口
var _ interfaces.Dispatcher = (*BoundedDispatcher)(nil)

// submit 准入循环
//
// 契约：仅在池耗尽时重试，耗尽永不上报给调用方；
// 等待失败或其他执行失败终止并原样返回。
func (d *BoundedDispatcher) submit(task interfaces.Task) types.Status {
	for {
		if st := d.pool.WaitForAvailableWorker(); !st.IsOK() {
			return st
		}
		st := d.pool.Execute(task)
		if st == types.StatusPoolExhausted {
			// 输掉了空位竞争，可恢复：让步后重试
			d.stats.retries.Add(1)
			if d.retryYield > 0 {
				d.clk.Sleep(d.retryYield)
			}
			continue
		}
		return st
	}
}

// DispatchMethodCall 分发一次方法调用
//
// 返回 StatusOK 表示任务已被池接纳；授权拒绝由任务自行处理，
// 不是分发失败。
func (d *BoundedDispatcher) DispatchMethodCall(ep interfaces.LocalEndpoint, entry *types.MethodEntry, msg *types.Message, permStr string) types.Status {
	if msg == nil {
		return types.StatusBusEmptyMessage
	}
	if ep == nil || entry == nil || entry.Handler == nil {
		return types.StatusBadArg
	}

	d.stats.submitted.Add(1)
	st := d.submit(&methodCallTask{
		auth:    d.auth,
		ep:      ep,
		entry:   entry,
		msg:     msg,
		permStr: permStr,
	})
	if st.IsOK() {
		d.stats.accepted.Add(1)
	} else {
		d.stats.failed.Add(1)
		logger.Error("method call dispatch failed",
			"sender", msg.Sender, "member", msg.Member, "status", st.String())
	}
	return st
}

// DispatchSignal 分发一次信号投递
//
// 每个订阅者回调作为独立任务分别走完整的准入循环；
// 单个订阅者的饱和或终态失败只影响它自己，不中止对其他
// 订阅者的投递尝试。返回最后一次失败的状态。
func (d *BoundedDispatcher) DispatchSignal(ep interfaces.LocalEndpoint, subscribers []*types.SignalEntry, msg *types.Message, permStr string) types.Status {
	if msg == nil {
		return types.StatusBusEmptyMessage
	}
	if ep == nil {
		return types.StatusBadArg
	}

	status := types.StatusOK
	for _, sub := range subscribers {
		if sub == nil || sub.Handler == nil {
			continue
		}
		d.stats.submitted.Add(1)
		st := d.submit(&signalCallTask{
			auth:    d.auth,
			ep:      ep,
			sub:     sub,
			msg:     msg,
			permStr: permStr,
		})
		if !st.IsOK() {
			d.stats.failed.Add(1)
			logger.Error("signal dispatch failed",
				"sender", msg.Sender, "member", msg.Member, "status", st.String())
			status = st
			continue
		}
		d.stats.accepted.Add(1)
	}
	return status
}

// Stats 返回分发统计快照
func (d *BoundedDispatcher) Stats() Stats {
	return d.stats.Snapshot()
}
