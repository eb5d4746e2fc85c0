package localbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-localbus/internal/core/endpoint"
	"github.com/dep2p/go-localbus/pkg/types"
)

// collectSink 收集出站消息的替身
type collectSink struct {
	mu     sync.Mutex
	pushed []*types.Message
}

func (s *collectSink) PushMessage(msg *types.Message) types.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushed = append(s.pushed, msg)
	return types.StatusOK
}

func (s *collectSink) messages() []*types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*types.Message, len(s.pushed))
	copy(out, s.pushed)
	return out
}

func startBus(t *testing.T, opts ...Option) *Bus {
	t.Helper()
	bus, err := New(opts...)
	require.NoError(t, err)
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { bus.Close() })
	return bus
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("等待条件超时")
}

func TestBusLifecycle(t *testing.T) {
	bus, err := New()
	require.NoError(t, err)
	require.Equal(t, StateIdle, bus.State())

	require.NoError(t, bus.Start(context.Background()))
	require.Equal(t, StateRunning, bus.State())
	require.NotNil(t, bus.Endpoint())
	require.NotNil(t, bus.Dispatcher())
	require.NotNil(t, bus.Authorizer())
	require.NotNil(t, bus.PermissionStore())

	require.NoError(t, bus.Start(context.Background()), "重复启动应为空操作")

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close(), "重复关闭应幂等")
	require.Equal(t, StateStopped, bus.State())
}

func TestOptionValidation(t *testing.T) {
	_, err := New(WithWorkers(0))
	require.Error(t, err)
	_, err = New(WithRetryYield(-time.Second))
	require.Error(t, err)
	_, err = New(WithLogLevel("loud"))
	require.Error(t, err)
	_, err = New(WithVerifier(nil))
	require.Error(t, err)
}

// TestAllowedCallReachesHandler 授权放行的调用到达处理函数
func TestAllowedCallReachesHandler(t *testing.T) {
	proxy := endpoint.NewStaticDaemonProxy()
	require.NoError(t, proxy.RegisterConnection(":1.7", 1000))

	bus := startBus(t, WithDaemonProxy(proxy), WithWorkers(2))
	bus.PermissionStore().Grant(1000, "net", "admin")

	var mu sync.Mutex
	var got []*types.Message
	ep := bus.Endpoint()
	require.NoError(t, ep.RegisterMethod("/app", "com.example.I", "DoThing",
		func(_ *types.MethodEntry, msg *types.Message) {
			mu.Lock()
			got = append(got, msg)
			mu.Unlock()
		}))

	msg := types.NewMethodCall(":1.7", ep.UniqueName(), "/app", "com.example.I", "DoThing", 1, nil)
	require.Equal(t, types.StatusOK, ep.HandleInboundCall(msg, "net;admin"))

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	})
}

// TestDeniedCallProducesErrorReply 拒绝的调用合成访问权限错误应答
func TestDeniedCallProducesErrorReply(t *testing.T) {
	proxy := endpoint.NewStaticDaemonProxy()
	require.NoError(t, proxy.RegisterConnection(":1.7", 1000))
	sink := &collectSink{}

	bus := startBus(t, WithDaemonProxy(proxy), WithMessageSink(sink))
	// 只授予 net，不授予 admin

	bus.PermissionStore().Grant(1000, "net")

	handled := false
	ep := bus.Endpoint()
	require.NoError(t, ep.RegisterMethod("/app", "com.example.I", "DoThing",
		func(_ *types.MethodEntry, _ *types.Message) { handled = true }))

	msg := types.NewMethodCall(":1.7", ep.UniqueName(), "/app", "com.example.I", "DoThing", 2, nil)
	require.Equal(t, types.StatusOK, ep.HandleInboundCall(msg, "net;admin"))

	waitFor(t, func() bool { return len(sink.messages()) == 1 })
	require.False(t, handled, "拒绝的调用不得进入处理函数")

	reply := sink.messages()[0]
	require.Equal(t, types.MessageError, reply.Type)
	require.Equal(t, "net.dep2p.Bus.AccessPermissionError", reply.ErrorName)
	require.Equal(t, uint32(2), reply.ReplySerial)

	// 裁决已写入缓存
	waitFor(t, func() bool {
		return bus.Authorizer().CachedVerdict(msg.Signature()) == types.VerdictDenied
	})
}

// TestUnknownPeerFailsOpen 身份解析失败时放行
func TestUnknownPeerFailsOpen(t *testing.T) {
	bus := startBus(t) // 静态代理内无任何登记

	var mu sync.Mutex
	invoked := 0
	ep := bus.Endpoint()
	require.NoError(t, ep.RegisterMethod("/app", "com.example.I", "DoThing",
		func(_ *types.MethodEntry, _ *types.Message) {
			mu.Lock()
			invoked++
			mu.Unlock()
		}))

	msg := types.NewMethodCall(":9.9", ep.UniqueName(), "/app", "com.example.I", "DoThing", 3, nil)
	require.Equal(t, types.StatusOK, ep.HandleInboundCall(msg, "net"))

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return invoked == 1
	})
}

// TestSignalDelivery 信号扇出到全部订阅者
func TestSignalDelivery(t *testing.T) {
	proxy := endpoint.NewStaticDaemonProxy()
	require.NoError(t, proxy.RegisterConnection(":1.7", 1000))

	bus := startBus(t, WithDaemonProxy(proxy))
	bus.PermissionStore().Grant(1000, "net")

	var mu sync.Mutex
	delivered := 0
	ep := bus.Endpoint()
	for i := 0; i < 3; i++ {
		require.NoError(t, ep.SubscribeSignal("com.example.I", "Changed", "",
			func(_, _ string, _ *types.Message) {
				mu.Lock()
				delivered++
				mu.Unlock()
			}))
	}

	sig := types.NewSignal(":1.7", "/app", "com.example.I", "Changed", 4, nil)
	require.Equal(t, types.StatusOK, ep.HandleInboundCall(sig, "net"))

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return delivered == 3
	})
}

// TestStopRejectsNewCalls 停止后端点拒绝投递
func TestStopRejectsNewCalls(t *testing.T) {
	bus := startBus(t)
	ep := bus.Endpoint()

	require.NoError(t, bus.Stop(context.Background()))

	msg := types.NewMethodCall(":1.7", ep.UniqueName(), "/app", "com.example.I", "DoThing", 5, nil)
	require.Equal(t, types.StatusBusEndpointClosing, ep.HandleInboundCall(msg, ""))
}
