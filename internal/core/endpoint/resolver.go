// Package endpoint 实现本地端点与对端身份解析
package endpoint

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/lib/log"
	"github.com/dep2p/go-localbus/pkg/types"
)

var logger = log.Logger("core/endpoint")

// ============================================================================
//                              对端身份解析器
// ============================================================================

// Resolver 对端身份解析器
//
// 经守护进程代理将发送者总线名解析为底层用户身份。
// 代理往返是同步阻塞调用，只应在工作协程上执行；
// 已解析的身份进入有界 LRU 缓存——连接存活期间其
// 用户身份不会变化，连接移除时须显式失效。
type Resolver struct {
	proxy interfaces.DaemonProxy
	cache *lru.Cache[string, uint32]
}

// 确保实现接口
var _ interfaces.PeerIdentityResolver = (*Resolver)(nil)

// NewResolver 创建身份解析器
//
// proxy 可为空，此时所有解析请求返回 StatusBusNotConnected。
func NewResolver(proxy interfaces.DaemonProxy, cacheSize int) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[string, uint32](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		proxy: proxy,
		cache: cache,
	}, nil
}

// ResolvePeerUser 解析发送者的本地用户身份
func (r *Resolver) ResolvePeerUser(ctx context.Context, sender string) (uint32, types.Status) {
	if sender == "" {
		return 0, types.StatusBusBadBusName
	}
	if uid, ok := r.cache.Get(sender); ok {
		return uid, types.StatusOK
	}
	if r.proxy == nil {
		return 0, types.StatusBusNotConnected
	}

	uid, err := r.proxy.GetConnectionUser(ctx, sender)
	if err != nil {
		logger.Debug("resolve peer user failed",
			"sender", sender, "error", err)
		return 0, types.StatusBusNoEndpoint
	}

	r.cache.Add(sender, uid)
	return uid, types.StatusOK
}

// Invalidate 使指定发送者的缓存身份失效
//
// 连接移除后调用，避免总线名复用时串用旧身份。
func (r *Resolver) Invalidate(sender string) {
	r.cache.Remove(sender)
}

// Purge 清空身份缓存
func (r *Resolver) Purge() {
	r.cache.Purge()
}
