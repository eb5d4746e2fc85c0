// Package interfaces 定义 LocalBus 公共接口
//
// 本文件定义工作池的准入契约。
package interfaces

import "github.com/dep2p/go-localbus/pkg/types"

// Task 可在工作协程上执行的一个延迟工作单元
//
// 任务一经提交即归工作池独占，执行完毕后销毁。
type Task interface {
	// Run 在工作协程上执行任务
	Run()
}

// WorkerPool 固定容量工作池
//
// 准入是两阶段的：WaitForAvailableWorker 只等待"可能有空位"，
// 不做预留；Execute 原子地竞争空位。两个提交方可能同时通过
// 等待阶段再在执行阶段竞争同一空位，落败方收到
// StatusPoolExhausted，这是可恢复的背压信号，调用方应重试。
type WorkerPool interface {
	// WaitForAvailableWorker 阻塞直至池中可能有空闲工作协程
	//
	// 池正在停止时立即返回 StatusPoolStopping。
	// 返回 StatusOK 不保证随后的 Execute 一定成功。
	WaitForAvailableWorker() types.Status

	// Execute 尝试在池中执行任务
	//
	// 无空位时返回 StatusPoolExhausted（可恢复，应重试）；
	// 池正在停止时返回 StatusPoolStopping（终态）。
	Execute(task Task) types.Status

	// Capacity 池容量（工作协程上限）
	Capacity() int

	// Running 当前正在执行的任务数
	Running() int

	// Close 停止接收新任务并等待在途任务完成
	Close() error
}
