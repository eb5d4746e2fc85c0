// Package interfaces 定义 LocalBus 公共接口
//
// 本文件定义本地端点及其协作方接口。
package interfaces

import (
	"context"

	"github.com/dep2p/go-localbus/pkg/types"
)

// DaemonProxy 本地守护进程代理
//
// 端点经由代理向守护进程发起同步查询。
type DaemonProxy interface {
	// GetConnectionUser 查询指定总线名连接的底层用户身份
	GetConnectionUser(ctx context.Context, busName string) (uint32, error)
}

// MessageSink 出站消息槽
//
// 端点合成的应答消息经槽位送往传输层。
type MessageSink interface {
	// PushMessage 推送一条出站消息
	PushMessage(msg *types.Message) types.Status
}

// LocalEndpoint 本地端点
//
// 持有方法表与信号表，承接投递路径与调用任务的回调。
type LocalEndpoint interface {
	PeerIdentityResolver

	// UniqueName 端点的唯一总线名
	UniqueName() string

	// RegisterMethod 注册方法处理函数
	RegisterMethod(objectPath, iface, member string, handler types.MethodHandler) error

	// UnregisterMethod 注销方法处理函数
	UnregisterMethod(objectPath, iface, member string)

	// LookupMethod 查找方法表条目
	LookupMethod(objectPath, iface, member string) (*types.MethodEntry, bool)

	// SubscribeSignal 订阅信号
	SubscribeSignal(iface, member, sourcePath string, handler types.SignalHandler) error

	// SignalSubscribers 返回匹配的信号订阅条目
	SignalSubscribers(iface, member string) []*types.SignalEntry

	// InvokeMethodHandler 在当前协程上调用方法处理函数
	InvokeMethodHandler(entry *types.MethodEntry, msg *types.Message)

	// SendErrorReply 为调用合成并发送错误应答
	SendErrorReply(msg *types.Message, errName, errMsg string) types.Status

	// HandleInboundCall 投递路径入口：将收到的调用交给分发器
	HandleInboundCall(msg *types.Message, permStr string) types.Status

	// Close 关闭端点
	Close() error
}
