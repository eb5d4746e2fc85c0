// Package types 定义 LocalBus 的基础类型
//
// 本文件定义全局状态码表。状态码是平坦的枚举，按所属子系统划分
// 数值区段：通用错误位于 0x0 区段，公共子系统位于 0x1000 区段，
// 总线协议位于 0x9000 区段。StatusOK（零值）是唯一的成功值。
package types

import (
	"errors"
	"fmt"
)

// Status 全局状态码
type Status uint32

// ============================================================================
//                              通用区段 (0x0 - 0x1D)
// ============================================================================

const (
	// StatusOK 成功
	StatusOK Status = 0x0
	// StatusFail 一般性失败
	StatusFail Status = 0x1
	// StatusInvalidData 数据无效
	StatusInvalidData Status = 0x2
	// StatusBufferTooSmall 缓冲区空间不足
	StatusBufferTooSmall Status = 0x3
	// StatusOSError 底层操作系统报告错误
	StatusOSError Status = 0x4
	// StatusInitFailed 初始化失败
	StatusInitFailed Status = 0x5
	// StatusWouldBlock 非阻塞资源上的 I/O 操作将会阻塞
	StatusWouldBlock Status = 0x6
	// StatusNotImplemented 功能未实现
	StatusNotImplemented Status = 0x7
	// StatusTimeout 操作超时
	StatusTimeout Status = 0x8
	// StatusRemoteClosed 对端已关闭
	StatusRemoteClosed Status = 0x9
	// StatusBadArg 函数调用参数无效
	StatusBadArg Status = 0xa
	// StatusInvalidAddress 地址为空或无效
	StatusInvalidAddress Status = 0xb
	// StatusReadError 一般性读取错误
	StatusReadError Status = 0xc
	// StatusWriteError 一般性写入错误
	StatusWriteError Status = 0xd
	// StatusOpenFailed 一般性打开失败
	StatusOpenFailed Status = 0xe
	// StatusParseError 一般性解析失败
	StatusParseError Status = 0xf
	// StatusEndOfData 数据结束
	StatusEndOfData Status = 0x10
	// StatusConnRefused 连接被拒绝，无人监听
	StatusConnRefused Status = 0x11
	// StatusWarning 一般性警告
	StatusWarning Status = 0x12
)

// ============================================================================
//                              公共子系统区段 (0x1000+)
// ============================================================================

const (
	// StatusCommonErrors 公共子系统错误区段起始
	StatusCommonErrors Status = 0x1000
	// StatusStoppingThread 操作被停止信号中断
	StatusStoppingThread Status = 0x1001
	// StatusAlertedThread 操作被唤醒信号中断
	StatusAlertedThread Status = 0x1002
	// StatusAuthFail 认证失败
	StatusAuthFail Status = 0x1003
	// StatusAuthUserReject 认证被用户拒绝
	StatusAuthUserReject Status = 0x1004
	// StatusInvalidGUID 字符串不是合法的 GUID
	StatusInvalidGUID Status = 0x101e
	// StatusPoolExhausted 工作池已达到并发上限
	StatusPoolExhausted Status = 0x101f
	// StatusPoolStopping 工作池正在停止，不能提交任务
	StatusPoolStopping Status = 0x1020

	// StatusNone 无错误可报告（哨兵值）
	StatusNone Status = 0xffff
)

// ============================================================================
//                              总线协议区段 (0x9000+)
// ============================================================================

const (
	// StatusBusErrors 总线协议错误区段起始
	StatusBusErrors Status = 0x9000
	// StatusBusReadError 总线读取错误
	StatusBusReadError Status = 0x9001
	// StatusBusWriteError 总线写入错误
	StatusBusWriteError Status = 0x9002
	// StatusBusBadSignature 类型签名格式错误
	StatusBusBadSignature Status = 0x9005
	// StatusBusBadObjPath 对象路径包含非法字符
	StatusBusBadObjPath Status = 0x9006
	// StatusBusBadMemberName 成员名包含非法字符
	StatusBusBadMemberName Status = 0x9007
	// StatusBusBadInterfaceName 接口名包含非法字符
	StatusBusBadInterfaceName Status = 0x9008
	// StatusBusBadErrorName 错误名包含非法字符
	StatusBusBadErrorName Status = 0x9009
	// StatusBusBadBusName 总线名包含非法字符
	StatusBusBadBusName Status = 0x900a
	// StatusBusNameTooLong 名称超过允许的长度
	StatusBusNameTooLong Status = 0x900b
	// StatusBusUnknownSerial 方法响应中的序列号未知
	StatusBusUnknownSerial Status = 0x9011
	// StatusBusUnknownPath 方法调用或信号中的路径未知
	StatusBusUnknownPath Status = 0x9012
	// StatusBusUnknownInterface 方法调用或信号中的接口未知
	StatusBusUnknownInterface Status = 0x9013
	// StatusBusNoSuchObject 对象不存在
	StatusBusNoSuchObject Status = 0x901c
	// StatusBusNoSuchMember 对象没有请求的成员
	StatusBusNoSuchMember Status = 0x901d
	// StatusBusNoRoute 消息无法路由到目的地
	StatusBusNoRoute Status = 0x9028
	// StatusBusNoEndpoint 找不到指定名称的端点
	StatusBusNoEndpoint Status = 0x9029
	// StatusBusEmptyMessage 尝试投递空消息
	StatusBusEmptyMessage Status = 0x902e
	// StatusBusNotOwner 发送者不拥有该总线名
	StatusBusNotOwner Status = 0x902f
	// StatusBusNotAllowed 操作不被允许
	StatusBusNotAllowed Status = 0x9036
	// StatusBusWriteQueueFull 写队列已满
	StatusBusWriteQueueFull Status = 0x9037
	// StatusBusEndpointClosing 端点正在关闭，操作不允许
	StatusBusEndpointClosing Status = 0x9038
	// StatusBusNotConnected 总线附着点尚未连接到守护进程
	StatusBusNotConnected Status = 0x9045
	// StatusBusNoCallForReply 应答消息没有对应的方法调用
	StatusBusNoCallForReply Status = 0x9059
	// StatusBusPolicyViolation 消息不符合策略限制
	StatusBusPolicyViolation Status = 0x905b
	// StatusBusStopping 总线正在停止
	StatusBusStopping Status = 0x9062
	// StatusBusMethodCallAborted 方法调用被中止
	StatusBusMethodCallAborted Status = 0x9063
	// StatusAccessPermissionWarning 没有权限使用受限传输
	StatusAccessPermissionWarning Status = 0x90a3
	// StatusAccessPermissionError 没有权限访问对端服务
	StatusAccessPermissionError Status = 0x90a4
	// StatusBusNotAuthorized 操作未被授权
	StatusBusNotAuthorized Status = 0x90a8
	// StatusBusNoSuchMessage 消息不存在
	StatusBusNoSuchMessage Status = 0x90ee
)

// statusEntry 状态码表条目
type statusEntry struct {
	name string
	desc string
}

// statusTable 状态码 -> 名称与描述
//
// 只读常量表，进程启动后不再变更。
var statusTable = map[Status]statusEntry{
	StatusOK:             {"OK", "success"},
	StatusFail:           {"Fail", "generic failure"},
	StatusInvalidData:    {"InvalidData", "generic invalid data error"},
	StatusBufferTooSmall: {"BufferTooSmall", "not enough space in buffer for operation"},
	StatusOSError:        {"OSError", "underlying OS has indicated an error"},
	StatusInitFailed:     {"InitFailed", "initialization failed"},
	StatusWouldBlock:     {"WouldBlock", "an I/O attempt on non-blocking resource would block"},
	StatusNotImplemented: {"NotImplemented", "feature not implemented"},
	StatusTimeout:        {"Timeout", "operation timed out"},
	StatusRemoteClosed:   {"RemoteClosed", "other end closed the connection"},
	StatusBadArg:         {"BadArg", "function call argument is invalid"},
	StatusInvalidAddress: {"InvalidAddress", "address is empty or invalid"},
	StatusReadError:      {"ReadError", "generic read error"},
	StatusWriteError:     {"WriteError", "generic write error"},
	StatusOpenFailed:     {"OpenFailed", "generic open failure"},
	StatusParseError:     {"ParseError", "generic parse failure"},
	StatusEndOfData:      {"EndOfData", "generic end-of-data error"},
	StatusConnRefused:    {"ConnRefused", "connection was refused because no one is listening"},
	StatusWarning:        {"Warning", "generic warning"},

	StatusCommonErrors:   {"CommonErrors", "error code block for the common subsystem"},
	StatusStoppingThread: {"StoppingThread", "operation interrupted by stop signal"},
	StatusAlertedThread:  {"AlertedThread", "operation interrupted by alert signal"},
	StatusAuthFail:       {"AuthFail", "authentication failed"},
	StatusAuthUserReject: {"AuthUserReject", "authentication was rejected by user"},
	StatusInvalidGUID:    {"InvalidGUID", "string is not a hex encoded GUID string"},
	StatusPoolExhausted:  {"PoolExhausted", "worker pool has reached its specified concurrency"},
	StatusPoolStopping:   {"PoolStopping", "cannot execute a task on a stopping worker pool"},
	StatusNone:           {"None", "no error code to report"},

	StatusBusErrors:               {"BusErrors", "error code block for the bus protocol"},
	StatusBusReadError:            {"BusReadError", "error attempting to read"},
	StatusBusWriteError:           {"BusWriteError", "error attempting to write"},
	StatusBusBadSignature:         {"BusBadSignature", "type signature was badly formed"},
	StatusBusBadObjPath:           {"BusBadObjPath", "object path contained an illegal character"},
	StatusBusBadMemberName:        {"BusBadMemberName", "a member name contained an illegal character"},
	StatusBusBadInterfaceName:     {"BusBadInterfaceName", "an interface name contained an illegal character"},
	StatusBusBadErrorName:         {"BusBadErrorName", "an error name contained an illegal character"},
	StatusBusBadBusName:           {"BusBadBusName", "a bus name contained an illegal character"},
	StatusBusNameTooLong:          {"BusNameTooLong", "a name exceeded the permitted length"},
	StatusBusUnknownSerial:        {"BusUnknownSerial", "serial number in a method response was unknown"},
	StatusBusUnknownPath:          {"BusUnknownPath", "path in a method call or signal was unknown"},
	StatusBusUnknownInterface:     {"BusUnknownInterface", "interface in a method call or signal was unknown"},
	StatusBusNoSuchObject:         {"BusNoSuchObject", "object does not exist"},
	StatusBusNoSuchMember:         {"BusNoSuchMember", "object does not have the requested member"},
	StatusBusNoRoute:              {"BusNoRoute", "message cannot be routed to destination"},
	StatusBusNoEndpoint:           {"BusNoEndpoint", "an endpoint with given name cannot be found"},
	StatusBusEmptyMessage:         {"BusEmptyMessage", "attempt to deliver an empty message"},
	StatusBusNotOwner:             {"BusNotOwner", "sender does not own the bus name"},
	StatusBusNotAllowed:           {"BusNotAllowed", "the operation attempted is not allowed"},
	StatusBusWriteQueueFull:       {"BusWriteQueueFull", "write failed because write queue is full"},
	StatusBusEndpointClosing:      {"BusEndpointClosing", "operation not permitted on endpoint in process of closing"},
	StatusBusNotConnected:         {"BusNotConnected", "attempt to use a bus attachment that is not connected to a daemon"},
	StatusBusNoCallForReply:       {"BusNoCallForReply", "a reply is only allowed in response to a method call"},
	StatusBusPolicyViolation:      {"BusPolicyViolation", "message does not meet policy restrictions"},
	StatusBusStopping:             {"BusStopping", "the bus is stopping"},
	StatusBusMethodCallAborted:    {"BusMethodCallAborted", "the method call was aborted"},
	StatusAccessPermissionWarning: {"AccessPermissionWarning", "no permission to use restricted transport"},
	StatusAccessPermissionError:   {"AccessPermissionError", "no permission to access peer service"},
	StatusBusNotAuthorized:        {"BusNotAuthorized", "operation was not authorized"},
	StatusBusNoSuchMessage:        {"BusNoSuchMessage", "message not found"},
}

// String 返回状态码的名称
//
// StatusText(StatusOK) 返回 "OK"。未知状态码返回十六进制表示。
func (s Status) String() string {
	if e, ok := statusTable[s]; ok {
		return e.name
	}
	return fmt.Sprintf("Status(0x%x)", uint32(s))
}

// Description 返回状态码的一行人类可读描述
func (s Status) Description() string {
	if e, ok := statusTable[s]; ok {
		return e.desc
	}
	return "unknown status code"
}

// IsOK 是否为成功状态
func (s Status) IsOK() bool {
	return s == StatusOK
}

// Err 将状态码桥接为 error
//
// StatusOK 返回 nil，其余返回携带状态码的错误值。
func (s Status) Err() error {
	if s == StatusOK {
		return nil
	}
	return &StatusError{Status: s}
}

// StatusText 返回状态码的名称（查表函数形式）
func StatusText(s Status) string {
	return s.String()
}

// ============================================================================
//                              StatusError
// ============================================================================

// StatusError 携带状态码的错误值
type StatusError struct {
	Status Status
}

// Error 实现 error 接口
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status.String(), e.Status.Description())
}

// StatusFromError 从错误中提取状态码
//
// 非状态错误映射为 StatusFail；nil 映射为 StatusOK。
func StatusFromError(err error) Status {
	if err == nil {
		return StatusOK
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return StatusFail
}
