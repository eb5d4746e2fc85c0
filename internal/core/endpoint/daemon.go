package endpoint

import (
	"context"
	"fmt"
	"sync"

	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/types"
)

// ============================================================================
//                              进程内守护进程代理
// ============================================================================

// StaticDaemonProxy 进程内守护进程代理
//
// 维护总线名到用户身份的静态登记表，供单进程部署与测试使用。
// 对接真实守护进程时替换为跨进程实现。
type StaticDaemonProxy struct {
	mu    sync.RWMutex
	users map[string]uint32
}

// 确保实现接口
var _ interfaces.DaemonProxy = (*StaticDaemonProxy)(nil)

// NewStaticDaemonProxy 创建进程内守护进程代理
func NewStaticDaemonProxy() *StaticDaemonProxy {
	return &StaticDaemonProxy{
		users: make(map[string]uint32),
	}
}

// RegisterConnection 登记一条连接的用户身份
func (p *StaticDaemonProxy) RegisterConnection(busName string, uid uint32) error {
	if busName == "" {
		return types.ErrEmptyBusName
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[busName] = uid
	return nil
}

// RemoveConnection 移除一条连接
func (p *StaticDaemonProxy) RemoveConnection(busName string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.users, busName)
}

// GetConnectionUser 查询指定总线名连接的用户身份
func (p *StaticDaemonProxy) GetConnectionUser(_ context.Context, busName string) (uint32, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	uid, ok := p.users[busName]
	if !ok {
		return 0, fmt.Errorf("%w: %s", types.ErrUnknownPeer, busName)
	}
	return uid, nil
}
