package types

import (
	"strings"
	"testing"
)

// ============================================================================
//                              Message 测试
// ============================================================================

func TestMessageSignature(t *testing.T) {
	msg := NewMethodCall(":1.7", ":1.2", "/app", "com.example.I", "DoThing", 42, nil)

	sig := msg.Signature()
	want := CallSignature{Sender: ":1.7", ObjectPath: "/app", Interface: "com.example.I", Member: "DoThing"}
	if sig != want {
		t.Errorf("Signature() = %+v, want %+v", sig, want)
	}

	// 序列号不参与签名
	other := NewMethodCall(":1.7", ":1.2", "/app", "com.example.I", "DoThing", 99, nil)
	if other.Signature() != sig {
		t.Error("不同序列号的同类调用应产生相同签名")
	}
}

func TestMessageReplyExpected(t *testing.T) {
	call := NewMethodCall(":1.7", ":1.2", "/app", "com.example.I", "DoThing", 1, nil)
	if !call.ReplyExpected() {
		t.Error("默认方法调用应期待应答")
	}

	call.Flags |= FlagNoReplyExpected
	if call.ReplyExpected() {
		t.Error("置位 NoReplyExpected 后不应期待应答")
	}

	sig := NewSignal(":1.7", "/app", "com.example.I", "Changed", 2, nil)
	if sig.ReplyExpected() {
		t.Error("信号永远没有应答通道")
	}
}

func TestMessageDescription(t *testing.T) {
	msg := NewMethodCall(":1.7", ":1.2", "/app", "com.example.I", "DoThing", 42, nil)
	desc := msg.Description()
	if !strings.Contains(desc, "METHOD_CALL") || !strings.Contains(desc, "com.example.I.DoThing") {
		t.Errorf("Description() = %q，应包含消息类型与接口成员", desc)
	}
}

func TestNewErrorReply(t *testing.T) {
	call := NewMethodCall(":1.7", ":1.2", "/app", "com.example.I", "DoThing", 42, nil)
	errName := ErrorNamePrefix + StatusAccessPermissionError.String()

	reply := NewErrorReply(call, errName, call.Description(), 100)

	if reply.Type != MessageError {
		t.Errorf("应答类型 = %v, want MessageError", reply.Type)
	}
	if reply.Destination != call.Sender {
		t.Errorf("应答目的地 = %q, want %q", reply.Destination, call.Sender)
	}
	if reply.ReplySerial != call.Serial {
		t.Errorf("ReplySerial = %d, want %d", reply.ReplySerial, call.Serial)
	}
	if reply.ErrorName != "net.dep2p.Bus.AccessPermissionError" {
		t.Errorf("ErrorName = %q", reply.ErrorName)
	}
	if string(reply.Body) != call.Description() {
		t.Error("错误应答消息体应携带原调用的描述")
	}
}
