package endpoint

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-localbus/pkg/types"
)

// countingProxy 记录往返次数的代理替身
type countingProxy struct {
	mu    sync.Mutex
	users map[string]uint32
	calls int
	err   error
}

func (p *countingProxy) GetConnectionUser(_ context.Context, busName string) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	uid, ok := p.users[busName]
	if !ok {
		return 0, types.ErrUnknownPeer
	}
	return uid, nil
}

func TestResolverRoundTrip(t *testing.T) {
	proxy := &countingProxy{users: map[string]uint32{":1.7": 1000}}
	r, err := NewResolver(proxy, 16)
	require.NoError(t, err)

	uid, st := r.ResolvePeerUser(context.Background(), ":1.7")
	require.Equal(t, types.StatusOK, st)
	require.Equal(t, uint32(1000), uid)
}

// TestResolverCachesIdentity 命中缓存不再发起代理往返
func TestResolverCachesIdentity(t *testing.T) {
	proxy := &countingProxy{users: map[string]uint32{":1.7": 1000}}
	r, err := NewResolver(proxy, 16)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, st := r.ResolvePeerUser(context.Background(), ":1.7")
		require.Equal(t, types.StatusOK, st)
	}
	require.Equal(t, 1, proxy.calls, "后续解析应命中缓存")
}

// TestResolverInvalidate 失效后重新走代理往返
func TestResolverInvalidate(t *testing.T) {
	proxy := &countingProxy{users: map[string]uint32{":1.7": 1000}}
	r, err := NewResolver(proxy, 16)
	require.NoError(t, err)

	r.ResolvePeerUser(context.Background(), ":1.7")
	r.Invalidate(":1.7")
	proxy.mu.Lock()
	proxy.users[":1.7"] = 2000
	proxy.mu.Unlock()

	uid, st := r.ResolvePeerUser(context.Background(), ":1.7")
	require.Equal(t, types.StatusOK, st)
	require.Equal(t, uint32(2000), uid)
	require.Equal(t, 2, proxy.calls)
}

// TestResolverFailures 各类失败路径的状态码
func TestResolverFailures(t *testing.T) {
	r, err := NewResolver(&countingProxy{err: errors.New("daemon down")}, 16)
	require.NoError(t, err)

	_, st := r.ResolvePeerUser(context.Background(), "")
	require.Equal(t, types.StatusBusBadBusName, st)

	_, st = r.ResolvePeerUser(context.Background(), ":1.9")
	require.Equal(t, types.StatusBusNoEndpoint, st)

	noProxy, err := NewResolver(nil, 16)
	require.NoError(t, err)
	_, st = noProxy.ResolvePeerUser(context.Background(), ":1.9")
	require.Equal(t, types.StatusBusNotConnected, st)
}

// TestResolverFailureNotCached 解析失败不污染缓存
func TestResolverFailureNotCached(t *testing.T) {
	proxy := &countingProxy{users: map[string]uint32{}}
	r, err := NewResolver(proxy, 16)
	require.NoError(t, err)

	_, st := r.ResolvePeerUser(context.Background(), ":1.8")
	require.Equal(t, types.StatusBusNoEndpoint, st)

	proxy.mu.Lock()
	proxy.users[":1.8"] = 500
	proxy.mu.Unlock()

	uid, st := r.ResolvePeerUser(context.Background(), ":1.8")
	require.Equal(t, types.StatusOK, st)
	require.Equal(t, uint32(500), uid)
}

// ============================================================================
// 进程内守护进程代理测试
// ============================================================================

func TestStaticDaemonProxy(t *testing.T) {
	proxy := NewStaticDaemonProxy()
	require.ErrorIs(t, proxy.RegisterConnection("", 1), types.ErrEmptyBusName)
	require.NoError(t, proxy.RegisterConnection(":1.5", 1000))

	uid, err := proxy.GetConnectionUser(context.Background(), ":1.5")
	require.NoError(t, err)
	require.Equal(t, uint32(1000), uid)

	proxy.RemoveConnection(":1.5")
	_, err = proxy.GetConnectionUser(context.Background(), ":1.5")
	require.ErrorIs(t, err, types.ErrUnknownPeer)
}
