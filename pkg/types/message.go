// Package types 定义 LocalBus 的基础类型
//
// 本文件定义总线消息。消息在进入本层之前已由线格式层解析完成，
// 这里只承载解析后的只读字段与少量访问辅助方法。
package types

import "fmt"

// ============================================================================
//                              MessageType - 消息类型
// ============================================================================

// MessageType 消息类型
type MessageType int

const (
	// MessageInvalid 无效消息
	MessageInvalid MessageType = iota
	// MessageMethodCall 方法调用
	MessageMethodCall
	// MessageMethodReply 方法应答
	MessageMethodReply
	// MessageError 错误应答
	MessageError
	// MessageSignal 信号
	MessageSignal
)

// String 返回消息类型的字符串表示
func (t MessageType) String() string {
	switch t {
	case MessageMethodCall:
		return "METHOD_CALL"
	case MessageMethodReply:
		return "METHOD_RET"
	case MessageError:
		return "ERROR"
	case MessageSignal:
		return "SIGNAL"
	default:
		return "INVALID"
	}
}

// ============================================================================
//                              MessageFlags - 消息标志
// ============================================================================

// MessageFlags 消息头标志位
type MessageFlags uint8

const (
	// FlagNoReplyExpected 发送者不期待应答
	FlagNoReplyExpected MessageFlags = 0x01
	// FlagAutoStart 允许守护进程按需启动服务
	FlagAutoStart MessageFlags = 0x02
)

// ============================================================================
//                              Message - 总线消息
// ============================================================================

// Message 已解析的总线消息
//
// 本层只读取消息字段，从不修改；每条消息在被调用任务执行完毕
// 之前归该任务独占。
type Message struct {
	Type        MessageType  // 消息类型
	Sender      string       // 发送者的总线名
	Destination string       // 目的端点的总线名
	ObjectPath  string       // 对象路径
	Interface   string       // 接口名
	Member      string       // 方法或信号名
	ErrorName   string       // 错误名（仅 ERROR 消息）
	Serial      uint32       // 本次调用的序列号
	ReplySerial uint32       // 所应答调用的序列号（仅应答消息）
	Flags       MessageFlags // 头标志位
	Body        []byte       // 消息体（已序列化的参数）
}

// Signature 返回消息的调用签名
//
// 序列号不参与签名。
func (m *Message) Signature() CallSignature {
	return CallSignature{
		Sender:     m.Sender,
		ObjectPath: m.ObjectPath,
		Interface:  m.Interface,
		Member:     m.Member,
	}
}

// ReplyExpected 发送者是否期待应答
//
// 仅方法调用可能期待应答；信号永远没有应答通道。
func (m *Message) ReplyExpected() bool {
	return m.Type == MessageMethodCall && m.Flags&FlagNoReplyExpected == 0
}

// Description 返回消息的一行可读描述
func (m *Message) Description() string {
	return fmt.Sprintf("%s[%d] %s.%s", m.Type, m.Serial, m.Interface, m.Member)
}

// ErrorNamePrefix 总线合成错误应答的错误名命名空间前缀
//
// 完整错误名为前缀加状态码名称，例如
// "net.dep2p.Bus.AccessPermissionError"。
const ErrorNamePrefix = "net.dep2p.Bus."

// ============================================================================
//                              构造函数
// ============================================================================

// NewMethodCall 构造方法调用消息
func NewMethodCall(sender, dest, objectPath, iface, member string, serial uint32, body []byte) *Message {
	return &Message{
		Type:        MessageMethodCall,
		Sender:      sender,
		Destination: dest,
		ObjectPath:  objectPath,
		Interface:   iface,
		Member:      member,
		Serial:      serial,
		Body:        body,
	}
}

// NewSignal 构造信号消息
func NewSignal(sender, objectPath, iface, member string, serial uint32, body []byte) *Message {
	return &Message{
		Type:       MessageSignal,
		Sender:     sender,
		ObjectPath: objectPath,
		Interface:  iface,
		Member:     member,
		Serial:     serial,
		Flags:      FlagNoReplyExpected,
		Body:       body,
	}
}

// NewErrorReply 为方法调用构造错误应答
//
// 应答发往原调用的发送者，携带错误名与描述文本。
func NewErrorReply(call *Message, errName, errMsg string, serial uint32) *Message {
	return &Message{
		Type:        MessageError,
		Sender:      call.Destination,
		Destination: call.Sender,
		ErrorName:   errName,
		Serial:      serial,
		ReplySerial: call.Serial,
		Body:        []byte(errMsg),
	}
}
