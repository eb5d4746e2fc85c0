// Package interfaces 定义 LocalBus 公共接口
//
// 本文件定义有界分发器接口。
package interfaces

import "github.com/dep2p/go-localbus/pkg/types"

// Dispatcher 有界分发器
//
// 投递路径的唯一公共入口。将调用包装为任务提交到固定容量
// 工作池：池耗尽时透明重试，其他失败终止并上报。授权查询
// 在任务内部的工作协程上执行，从不在提交路径上阻塞。
type Dispatcher interface {
	// DispatchMethodCall 分发一次方法调用
	//
	// 返回 StatusOK 表示任务已被池接纳（不代表已执行完毕）。
	// 授权拒绝不是分发失败，由任务自行处理。
	DispatchMethodCall(ep LocalEndpoint, entry *types.MethodEntry, msg *types.Message, permStr string) types.Status

	// DispatchSignal 分发一次信号投递
	//
	// 每个订阅者回调作为独立任务分别提交；单个订阅者的
	// 饱和或失败不影响对其他订阅者的投递。
	DispatchSignal(ep LocalEndpoint, subscribers []*types.SignalEntry, msg *types.Message, permStr string) types.Status
}
