// Package types 定义 LocalBus 的基础类型
//
// 本文件定义所有公共错误类型。
package types

import "errors"

// ============================================================================
//                              总线相关错误
// ============================================================================

var (
	// ErrBusClosed 总线已关闭
	ErrBusClosed = errors.New("bus closed")

	// ErrBusNotStarted 总线尚未启动
	ErrBusNotStarted = errors.New("bus not started")

	// ErrEmptyBusName 空总线名
	ErrEmptyBusName = errors.New("empty bus name")

	// ErrEmptyMessage 空消息
	ErrEmptyMessage = errors.New("empty message")
)

// ============================================================================
//                              注册相关错误
// ============================================================================

var (
	// ErrMethodAlreadyRegistered 方法已注册
	ErrMethodAlreadyRegistered = errors.New("method already registered")

	// ErrNoSuchMethod 方法未注册
	ErrNoSuchMethod = errors.New("no such method")

	// ErrNilHandler 处理函数为空
	ErrNilHandler = errors.New("nil handler")
)

// ============================================================================
//                              工作池相关错误
// ============================================================================

var (
	// ErrPoolClosed 工作池已关闭
	ErrPoolClosed = errors.New("worker pool closed")

	// ErrInvalidPoolSize 工作池容量无效
	ErrInvalidPoolSize = errors.New("invalid worker pool size")
)

// ============================================================================
//                              身份解析相关错误
// ============================================================================

var (
	// ErrUnknownPeer 未知对端
	ErrUnknownPeer = errors.New("unknown peer")

	// ErrNoDaemonProxy 未配置守护进程代理
	ErrNoDaemonProxy = errors.New("no daemon proxy configured")
)
