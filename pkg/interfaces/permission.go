// Package interfaces 定义 LocalBus 公共接口
//
// 本文件定义授权查询与权限校验接口。
package interfaces

import (
	"context"

	"github.com/dep2p/go-localbus/pkg/types"
)

// PermissionVerifier 外部权限校验机构
//
// 给定对端的本地用户身份与一组所需权限令牌，判定是否放行。
type PermissionVerifier interface {
	// VerifyPeerPermissions 校验 uid 是否持有 required 中的全部令牌
	VerifyPeerPermissions(uid uint32, required types.PermissionSet) bool
}

// PeerIdentityResolver 对端身份解析器
//
// 向本地守护进程发起同步往返，将发送者总线名解析为
// 底层操作系统用户身份。阻塞调用，只应在工作协程上执行。
type PeerIdentityResolver interface {
	// ResolvePeerUser 解析发送者的本地用户身份
	ResolvePeerUser(ctx context.Context, sender string) (uint32, types.Status)
}

// Authorizer 对端授权查询
//
// Inquire 是权威路径：每次调用都重新执行完整查询并刷新缓存，
// 从不读缓存短路。CanPeerDoCall 是快速路径：只读缓存、不阻塞、
// 结果可能过期，VerdictPending 表示尚无缓存裁决。
type Authorizer interface {
	// Inquire 执行权威授权查询并将裁决写入缓存
	//
	// 身份解析失败时放行（fail-open）：权限检查只约束
	// 本地身份可知的调用方，身份不可知不属于本检查范围。
	Inquire(ctx context.Context, msg *types.Message, permStr string) types.Verdict

	// CanPeerDoCall 只读缓存的快速查询
	//
	// 调用方不得仅依据该结果调用处理函数。
	CanPeerDoCall(msg *types.Message) types.Verdict

	// CachedVerdict 按签名查询缓存裁决
	CachedVerdict(sig types.CallSignature) types.Verdict

	// FlushVerdicts 清空整个裁决缓存
	FlushVerdicts()
}
