package permission

import (
	"sync"
	"testing"

	"github.com/dep2p/go-localbus/pkg/types"
)

func TestStoreGrantVerify(t *testing.T) {
	s := NewStore()
	s.Grant(1000, "net", "admin")

	if !s.VerifyPeerPermissions(1000, types.ParsePermissionString("net")) {
		t.Error("已授予的单个令牌应放行")
	}
	if !s.VerifyPeerPermissions(1000, types.ParsePermissionString("net;admin")) {
		t.Error("已授予的全部令牌应放行")
	}
	if s.VerifyPeerPermissions(1000, types.ParsePermissionString("net;camera")) {
		t.Error("缺少任一令牌应拒绝")
	}
}

func TestStoreDefaultDeny(t *testing.T) {
	s := NewStore()

	if s.VerifyPeerPermissions(9999, types.ParsePermissionString("net")) {
		t.Error("未登记用户不持有任何令牌")
	}
	// 空要求集恒放行，即使用户未登记
	if !s.VerifyPeerPermissions(9999, types.ParsePermissionString("")) {
		t.Error("空要求集应放行")
	}
}

func TestStoreRevoke(t *testing.T) {
	s := NewStore()
	s.Grant(1000, "net", "admin")

	s.Revoke(1000, "admin")
	if s.VerifyPeerPermissions(1000, types.ParsePermissionString("admin")) {
		t.Error("已撤销的令牌应拒绝")
	}
	if !s.VerifyPeerPermissions(1000, types.ParsePermissionString("net")) {
		t.Error("未撤销的令牌应保留")
	}

	s.RevokeAll(1000)
	if s.VerifyPeerPermissions(1000, types.ParsePermissionString("net")) {
		t.Error("RevokeAll 后应拒绝")
	}
}

func TestStoreGrantedCopy(t *testing.T) {
	s := NewStore()
	s.Grant(1000, "net")

	granted := s.Granted(1000)
	granted.Add("admin")

	// 返回副本，外部修改不影响权限库
	if s.VerifyPeerPermissions(1000, types.ParsePermissionString("admin")) {
		t.Error("Granted 应返回副本")
	}
}

func TestStoreConcurrent(t *testing.T) {
	s := NewStore()
	required := types.ParsePermissionString("net")

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			uid := uint32(g)
			for i := 0; i < 100; i++ {
				s.Grant(uid, "net")
				s.VerifyPeerPermissions(uid, required)
				s.Revoke(uid, "net")
			}
		}(g)
	}
	wg.Wait()
}
