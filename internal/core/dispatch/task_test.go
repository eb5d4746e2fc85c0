package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-localbus/pkg/types"
)

// ============================================================================
// 方法调用任务测试
// ============================================================================

// TestMethodTaskAllowed 放行则调用处理函数，不产生应答
func TestMethodTaskAllowed(t *testing.T) {
	ep := &fakeEndpoint{}
	task := &methodCallTask{
		auth:    &fakeAuth{verdict: types.VerdictAllowed},
		ep:      ep,
		entry:   methodEntry(),
		msg:     methodCall(),
		permStr: "net;admin",
	}

	task.Run()
	require.Len(t, ep.invoked, 1)
	require.Empty(t, ep.replies)
}

// TestMethodTaskDeniedReplyExpected 拒绝且期待应答时恰好合成一条错误应答
func TestMethodTaskDeniedReplyExpected(t *testing.T) {
	ep := &fakeEndpoint{}
	msg := methodCall()
	task := &methodCallTask{
		auth:    &fakeAuth{verdict: types.VerdictDenied},
		ep:      ep,
		entry:   methodEntry(),
		msg:     msg,
		permStr: "net;admin",
	}

	task.Run()
	require.Empty(t, ep.invoked, "拒绝的调用不得进入处理函数")
	require.Len(t, ep.replies, 1)

	reply := ep.replies[0]
	require.Equal(t, types.MessageError, reply.Type)
	require.True(t, strings.HasSuffix(reply.ErrorName, types.StatusAccessPermissionError.String()),
		"错误名 %q 应以固定状态名结尾", reply.ErrorName)
	require.Equal(t, "net.dep2p.Bus.AccessPermissionError", reply.ErrorName)
	require.Equal(t, msg.Serial, reply.ReplySerial)
}

// TestMethodTaskDeniedNoReply 拒绝且不期待应答时零应答
func TestMethodTaskDeniedNoReply(t *testing.T) {
	ep := &fakeEndpoint{}
	msg := methodCall()
	msg.Flags |= types.FlagNoReplyExpected

	task := &methodCallTask{
		auth:  &fakeAuth{verdict: types.VerdictDenied},
		ep:    ep,
		entry: methodEntry(),
		msg:   msg,
	}

	task.Run()
	require.Empty(t, ep.invoked)
	require.Empty(t, ep.replies)
}

// TestMethodTaskPendingTreatedAsDenied 未决判定按拒绝处理
func TestMethodTaskPendingTreatedAsDenied(t *testing.T) {
	ep := &fakeEndpoint{}
	task := &methodCallTask{
		auth:  &fakeAuth{verdict: types.VerdictPending},
		ep:    ep,
		entry: methodEntry(),
		msg:   methodCall(),
	}

	task.Run()
	require.Empty(t, ep.invoked)
	require.Len(t, ep.replies, 1)
}

// TestMethodTaskReplyFailureSwallowed 应答发送失败不影响任务完成
func TestMethodTaskReplyFailureSwallowed(t *testing.T) {
	ep := &fakeEndpoint{replySt: types.StatusBusStopping}
	task := &methodCallTask{
		auth:  &fakeAuth{verdict: types.VerdictDenied},
		ep:    ep,
		entry: methodEntry(),
		msg:   methodCall(),
	}

	// 不 panic 即为通过
	task.Run()
	require.Len(t, ep.replies, 1)
}

// ============================================================================
// 信号调用任务测试
// ============================================================================

// TestSignalTaskAllowed 放行时以成员名与源路径调用订阅回调
func TestSignalTaskAllowed(t *testing.T) {
	var gotMember, gotPath string
	sub := &types.SignalEntry{
		Member: "Changed",
		Handler: func(member, sourcePath string, _ *types.Message) {
			gotMember, gotPath = member, sourcePath
		},
	}
	task := &signalCallTask{
		auth: &fakeAuth{verdict: types.VerdictAllowed},
		ep:   &fakeEndpoint{},
		sub:  sub,
		msg:  types.NewSignal("peerA", "/app", "com.example.I", "Changed", 9, nil),
	}

	task.Run()
	require.Equal(t, "Changed", gotMember)
	require.Equal(t, "/app", gotPath)
}

// TestSignalTaskDeniedDropsSilently 拒绝的信号静默丢弃，零回调零应答
func TestSignalTaskDeniedDropsSilently(t *testing.T) {
	ep := &fakeEndpoint{}
	invoked := 0
	sub := &types.SignalEntry{
		Member: "Changed",
		Handler: func(_, _ string, _ *types.Message) {
			invoked++
		},
	}
	task := &signalCallTask{
		auth: &fakeAuth{verdict: types.VerdictDenied},
		ep:   ep,
		sub:  sub,
		msg:  types.NewSignal("peerA", "/app", "com.example.I", "Changed", 9, nil),
	}

	task.Run()
	require.Zero(t, invoked, "拒绝的信号不得触达订阅者")
	require.Empty(t, ep.replies, "信号没有应答通道")
}
