// Package dispatch 实现有界分发器与调用任务
package dispatch

import (
	"context"

	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/types"
)

// ============================================================================
//                              方法调用任务
// ============================================================================

// methodCallTask 方法调用任务
//
// 在工作协程上先执行权威授权查询，放行则调用注册的处理函数；
// 拒绝且原调用期待应答时合成一条错误应答，否则仅记录日志。
// 任务独占其捕获的消息，直到执行完毕。
type methodCallTask struct {
	auth    interfaces.Authorizer
	ep      interfaces.LocalEndpoint
	entry   *types.MethodEntry
	msg     *types.Message
	permStr string
}

// 确保实现接口
var _ interfaces.Task = (*methodCallTask)(nil)

// Run 在工作协程上执行
func (t *methodCallTask) Run() {
	verdict := t.auth.Inquire(context.Background(), t.msg, t.permStr)
	if verdict == types.VerdictAllowed {
		t.ep.InvokeMethodHandler(t.entry, t.msg)
		return
	}

	logger.Warn("endpoint has no permission to call method",
		"sender", t.msg.Sender,
		"interface", t.msg.Interface,
		"member", t.msg.Member,
		"status", types.StatusAccessPermissionError.String())

	if !t.msg.ReplyExpected() {
		return
	}
	errName := types.ErrorNamePrefix + types.StatusAccessPermissionError.String()
	if st := t.ep.SendErrorReply(t.msg, errName, t.msg.Description()); !st.IsOK() {
		logger.Error("send error reply failed",
			"sender", t.msg.Sender, "status", st.String())
	}
}

// ============================================================================
//                              信号调用任务
// ============================================================================

// signalCallTask 信号调用任务
//
// 放行则调用订阅者的处理函数；拒绝时静默丢弃——信号没有
// 应答通道，不合成错误应答。
type signalCallTask struct {
	auth    interfaces.Authorizer
	ep      interfaces.LocalEndpoint
	sub     *types.SignalEntry
	msg     *types.Message
	permStr string
}

// 确保实现接口
var _ interfaces.Task = (*signalCallTask)(nil)

// Run 在工作协程上执行
func (t *signalCallTask) Run() {
	verdict := t.auth.Inquire(context.Background(), t.msg, t.permStr)
	if verdict == types.VerdictAllowed {
		t.sub.Handler(t.sub.Member, t.msg.ObjectPath, t.msg)
		return
	}

	logger.Warn("endpoint has no permission to deliver signal, dropped",
		"sender", t.msg.Sender,
		"interface", t.msg.Interface,
		"member", t.msg.Member,
		"status", types.StatusAccessPermissionError.String())
}
