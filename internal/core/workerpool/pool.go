// Package workerpool 实现固定容量的工作池
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/lib/log"
	"github.com/dep2p/go-localbus/pkg/types"
)

var logger = log.Logger("core/workerpool")

// ============================================================================
//                              Pool
// ============================================================================

// Pool 固定容量工作池
//
// 用加权信号量做空位记账。准入是两阶段的：
// WaitForAvailableWorker 只探测可用性、不做预留，
// Execute 原子竞争空位；两个提交方可能先后通过等待阶段
// 再竞争同一空位，落败方收到 StatusPoolExhausted 后重试。
type Pool struct {
	capacity int
	sem      *semaphore.Weighted

	closeMu sync.RWMutex
	closed  bool

	running atomic.Int32
	wg      sync.WaitGroup

	// ctx 取消表示池正在停止，用于打断等待中的准入
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool 创建工作池
func NewPool(workers int) (*Pool, error) {
	if workers <= 0 {
		return nil, types.ErrInvalidPoolSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		capacity: workers,
		sem:      semaphore.NewWeighted(int64(workers)),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// 确保实现接口
var _ interfaces.WorkerPool = (*Pool)(nil)

// WaitForAvailableWorker 阻塞直至池中可能有空闲工作协程
//
// 探测式等待：取到空位立即归还，不保证随后的 Execute 成功。
// 池停止时返回 StatusPoolStopping。
func (p *Pool) WaitForAvailableWorker() types.Status {
	if err := p.sem.Acquire(p.ctx, 1); err != nil {
		return types.StatusPoolStopping
	}
	p.sem.Release(1)
	return types.StatusOK
}

// Execute 尝试在池中执行任务
//
// 竞争空位失败返回 StatusPoolExhausted（可恢复）；
// 池停止返回 StatusPoolStopping（终态）。任务在独立协程上
// 运行，完成后归还空位。
func (p *Pool) Execute(task interfaces.Task) types.Status {
	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if p.closed {
		return types.StatusPoolStopping
	}
	if !p.sem.TryAcquire(1) {
		return types.StatusPoolExhausted
	}

	p.wg.Add(1)
	p.running.Add(1)
	go func() {
		defer func() {
			p.running.Add(-1)
			p.sem.Release(1)
			p.wg.Done()
		}()
		task.Run()
	}()
	return types.StatusOK
}

// Capacity 池容量
func (p *Pool) Capacity() int {
	return p.capacity
}

// Running 当前正在执行的任务数
func (p *Pool) Running() int {
	return int(p.running.Load())
}

// Close 停止接收新任务并等待在途任务完成
//
// 幂等：重复关闭返回 nil。
func (p *Pool) Close() error {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return nil
	}
	p.closed = true
	p.closeMu.Unlock()

	// 打断等待中的准入
	p.cancel()
	p.wg.Wait()
	logger.Debug("worker pool closed", "capacity", p.capacity)
	return nil
}
