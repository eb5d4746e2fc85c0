package endpoint

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/types"
)

// ============================================================================
//                              本地端点
// ============================================================================

// methodKey 方法表键
type methodKey struct {
	objectPath string
	iface      string
	member     string
}

// signalKey 信号表键
type signalKey struct {
	iface  string
	member string
}

// localEndpoint 本地端点实现
//
// 持有方法表与信号表，承接投递路径入口并将调用交给分发器。
// 表的读写走读写锁；投递路径只读。
type localEndpoint struct {
	interfaces.PeerIdentityResolver

	uniqueName string
	dispatcher interfaces.Dispatcher
	sink       interfaces.MessageSink

	mu      sync.RWMutex
	methods map[methodKey]*types.MethodEntry
	signals map[signalKey][]*types.SignalEntry

	// 出站应答序列号
	serial atomic.Uint32

	closed atomic.Bool
}

// 确保实现接口
var _ interfaces.LocalEndpoint = (*localEndpoint)(nil)

// NewEndpoint 创建本地端点
//
// dispatcher 承接投递路径；sink 可为空，此时错误应答被丢弃
// 并返回 StatusBusNoRoute。
func NewEndpoint(resolver interfaces.PeerIdentityResolver, dispatcher interfaces.Dispatcher, sink interfaces.MessageSink) interfaces.LocalEndpoint {
	return &localEndpoint{
		PeerIdentityResolver: resolver,
		uniqueName:           allocUniqueName(),
		dispatcher:           dispatcher,
		sink:                 sink,
		methods:              make(map[methodKey]*types.MethodEntry),
		signals:              make(map[signalKey][]*types.SignalEntry),
	}
}

// allocUniqueName 分配唯一总线名
//
// 形如 ":1a2b3c4d5e6f.1"，前缀取自随机 UUID。
func allocUniqueName() string {
	u := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ":" + u[:12] + ".1"
}

// UniqueName 端点的唯一总线名
func (e *localEndpoint) UniqueName() string {
	return e.uniqueName
}

// ============================================================================
// 方法表
// ============================================================================

// RegisterMethod 注册方法处理函数
func (e *localEndpoint) RegisterMethod(objectPath, iface, member string, handler types.MethodHandler) error {
	if e.closed.Load() {
		return types.ErrBusClosed
	}
	if handler == nil {
		return types.ErrNilHandler
	}

	key := methodKey{objectPath, iface, member}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.methods[key]; exists {
		return types.ErrMethodAlreadyRegistered
	}
	e.methods[key] = &types.MethodEntry{
		ObjectPath: objectPath,
		Interface:  iface,
		Member:     member,
		Handler:    handler,
	}

	logger.Debug("method registered",
		"path", objectPath, "interface", iface, "member", member)
	return nil
}

// UnregisterMethod 注销方法处理函数
func (e *localEndpoint) UnregisterMethod(objectPath, iface, member string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.methods, methodKey{objectPath, iface, member})
}

// LookupMethod 查找方法表条目
func (e *localEndpoint) LookupMethod(objectPath, iface, member string) (*types.MethodEntry, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	entry, ok := e.methods[methodKey{objectPath, iface, member}]
	return entry, ok
}

// ============================================================================
// 信号表
// ============================================================================

// SubscribeSignal 订阅信号
//
// sourcePath 为空表示订阅任意源对象路径。
func (e *localEndpoint) SubscribeSignal(iface, member, sourcePath string, handler types.SignalHandler) error {
	if e.closed.Load() {
		return types.ErrBusClosed
	}
	if handler == nil {
		return types.ErrNilHandler
	}

	key := signalKey{iface, member}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.signals[key] = append(e.signals[key], &types.SignalEntry{
		Member:     member,
		ObjectPath: sourcePath,
		Handler:    handler,
	})
	return nil
}

// SignalSubscribers 返回匹配的信号订阅条目
//
// 返回切片副本，调用方可随意持有。
func (e *localEndpoint) SignalSubscribers(iface, member string) []*types.SignalEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	subs := e.signals[signalKey{iface, member}]
	if len(subs) == 0 {
		return nil
	}
	out := make([]*types.SignalEntry, len(subs))
	copy(out, subs)
	return out
}

// ============================================================================
// 调用任务回调
// ============================================================================

// InvokeMethodHandler 在当前协程上调用方法处理函数
func (e *localEndpoint) InvokeMethodHandler(entry *types.MethodEntry, msg *types.Message) {
	if entry == nil || entry.Handler == nil || msg == nil {
		return
	}
	entry.Handler(entry, msg)
}

// SendErrorReply 为调用合成并发送错误应答
func (e *localEndpoint) SendErrorReply(msg *types.Message, errName, errMsg string) types.Status {
	if msg == nil {
		return types.StatusBusEmptyMessage
	}
	if e.sink == nil {
		logger.Warn("no outbound sink, error reply dropped",
			"errorName", errName, "replySerial", msg.Serial)
		return types.StatusBusNoRoute
	}
	reply := types.NewErrorReply(msg, errName, errMsg, e.serial.Add(1))
	return e.sink.PushMessage(reply)
}

// ============================================================================
// 投递路径入口
// ============================================================================

// HandleInboundCall 投递路径入口
//
// 按消息类型查表并交给分发器。方法调用无匹配条目且期待应答时
// 合成错误应答；信号无订阅者时静默丢弃。
func (e *localEndpoint) HandleInboundCall(msg *types.Message, permStr string) types.Status {
	if e.closed.Load() {
		return types.StatusBusEndpointClosing
	}
	if msg == nil {
		return types.StatusBusEmptyMessage
	}
	if e.dispatcher == nil {
		return types.StatusBusNotConnected
	}

	switch msg.Type {
	case types.MessageMethodCall:
		entry, ok := e.LookupMethod(msg.ObjectPath, msg.Interface, msg.Member)
		if !ok {
			logger.Warn("no such method",
				"path", msg.ObjectPath, "interface", msg.Interface, "member", msg.Member)
			if msg.ReplyExpected() {
				errName := types.ErrorNamePrefix + types.StatusBusNoSuchMember.String()
				e.SendErrorReply(msg, errName, msg.Description())
			}
			return types.StatusBusNoSuchMember
		}
		return e.dispatcher.DispatchMethodCall(e, entry, msg, permStr)

	case types.MessageSignal:
		subs := e.SignalSubscribers(msg.Interface, msg.Member)
		matched := subs[:0]
		for _, sub := range subs {
			if sub.ObjectPath == "" || sub.ObjectPath == msg.ObjectPath {
				matched = append(matched, sub)
			}
		}
		if len(matched) == 0 {
			return types.StatusOK
		}
		return e.dispatcher.DispatchSignal(e, matched, msg, permStr)

	default:
		return types.StatusBusNotAllowed
	}
}

// Close 关闭端点
//
// 幂等。关闭后投递路径与注册接口均被拒绝。
func (e *localEndpoint) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.mu.Lock()
	e.methods = make(map[methodKey]*types.MethodEntry)
	e.signals = make(map[signalKey][]*types.SignalEntry)
	e.mu.Unlock()
	logger.Info("endpoint closed", "uniqueName", e.uniqueName)
	return nil
}
