// Package types 定义 LocalBus 的基础类型
//
// 本文件定义方法表与信号表条目。
package types

// MethodHandler 方法调用处理函数
type MethodHandler func(entry *MethodEntry, msg *Message)

// SignalHandler 信号处理函数
//
// member 为信号成员名，sourcePath 为信号源对象路径。
type SignalHandler func(member, sourcePath string, msg *Message)

// ============================================================================
//                              方法表 / 信号表条目
// ============================================================================

// MethodEntry 方法表条目
//
// 注册后条目不再变更，可被多个工作协程并发读取。
type MethodEntry struct {
	ObjectPath string        // 对象路径
	Interface  string        // 接口名
	Member     string        // 方法名
	Handler    MethodHandler // 应用注册的处理函数
}

// SignalEntry 信号订阅条目
type SignalEntry struct {
	Member     string        // 信号成员名
	ObjectPath string        // 订阅的源对象路径（空表示任意）
	Handler    SignalHandler // 订阅者的处理函数
}
