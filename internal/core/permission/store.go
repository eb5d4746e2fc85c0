package permission

import (
	"sync"

	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/types"
)

// ============================================================================
//                              Store
// ============================================================================

// Store 进程内权限库
//
// 记录本地用户身份 -> 已授予权限令牌集合的映射，
// 实现外部权限校验机构接口。默认拒绝：未登记的用户
// 不持有任何令牌。
type Store struct {
	mu     sync.RWMutex
	grants map[uint32]types.PermissionSet
}

// NewStore 创建权限库
func NewStore() *Store {
	return &Store{
		grants: make(map[uint32]types.PermissionSet),
	}
}

// 确保实现接口
var _ interfaces.PermissionVerifier = (*Store)(nil)

// Grant 为用户授予权限令牌
func (s *Store) Grant(uid uint32, tokens ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.grants[uid]
	if !ok {
		set = make(types.PermissionSet)
		s.grants[uid] = set
	}
	for _, tok := range tokens {
		set.Add(tok)
	}
}

// Revoke 撤销用户的指定权限令牌
func (s *Store) Revoke(uid uint32, tokens ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.grants[uid]
	if !ok {
		return
	}
	for _, tok := range tokens {
		delete(set, tok)
	}
	if len(set) == 0 {
		delete(s.grants, uid)
	}
}

// RevokeAll 撤销用户的全部权限
func (s *Store) RevokeAll(uid uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, uid)
}

// Granted 返回用户已授予令牌的副本
func (s *Store) Granted(uid uint32) types.PermissionSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(types.PermissionSet, len(s.grants[uid]))
	for tok := range s.grants[uid] {
		out.Add(tok)
	}
	return out
}

// VerifyPeerPermissions 校验用户是否持有全部所需令牌
//
// required 为空集时恒放行。
func (s *Store) VerifyPeerPermissions(uid uint32, required types.PermissionSet) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grants[uid].ContainsAll(required)
}
