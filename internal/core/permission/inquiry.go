package permission

import (
	"context"

	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/lib/log"
	"github.com/dep2p/go-localbus/pkg/types"
)

var logger = log.Logger("core/permission")

// ============================================================================
//                              Inquirer
// ============================================================================

// Inquirer 对端授权查询器
//
// 权威路径 Inquire 与快速路径 CanPeerDoCall 刻意分离：
// Inquire 每次都重新执行完整查询并刷新缓存，从不读缓存短路；
// 缓存只服务于不能阻塞的快速路径，其结果可能过期。
type Inquirer struct {
	cache    *verdictCache
	resolver interfaces.PeerIdentityResolver
	verifier interfaces.PermissionVerifier
}

// NewInquirer 创建授权查询器
//
// capacity 为裁决缓存容量，不为正时使用 MaxCheckedCallEntries。
func NewInquirer(capacity int, resolver interfaces.PeerIdentityResolver, verifier interfaces.PermissionVerifier) *Inquirer {
	return &Inquirer{
		cache:    newVerdictCache(capacity),
		resolver: resolver,
		verifier: verifier,
	}
}

// 确保实现接口
var _ interfaces.Authorizer = (*Inquirer)(nil)

// Inquire 执行权威授权查询
//
// 流程：解析权限要求字符串 -> 同步解析发送者身份 ->
// 校验权限 -> 按调用签名写入缓存 -> 返回裁决。
//
// 身份解析是阻塞往返，在调用方所在协程（通常是工作协程，
// 从不是 I/O 协程）上执行。解析失败时放行（fail-open）：
// 权限检查只约束本地身份可知的调用方。
func (q *Inquirer) Inquire(ctx context.Context, msg *types.Message, permStr string) types.Verdict {
	required := types.ParsePermissionString(permStr)

	allowed := true
	uid, st := q.resolver.ResolvePeerUser(ctx, msg.Sender)
	if st.IsOK() {
		allowed = q.verifier.VerifyPeerPermissions(uid, required)
		logger.Debug("verify peer permissions",
			"sender", msg.Sender, "uid", uid, "required", permStr, "allowed", allowed)
	} else {
		logger.Debug("peer identity unknown, fail open",
			"sender", msg.Sender, "status", st.String())
	}

	q.cache.Record(msg.Signature(), allowed)
	return types.VerdictOf(allowed)
}

// CanPeerDoCall 只读缓存的快速查询
//
// 不阻塞、不触发权威查询；未命中返回 VerdictPending。
// 缓存按调用签名为键，不区分同一签名下不同的权限要求
// 字符串，结果只能作为参考。
func (q *Inquirer) CanPeerDoCall(msg *types.Message) types.Verdict {
	return q.cache.Query(msg.Signature())
}

// CachedVerdict 按签名查询缓存裁决
func (q *Inquirer) CachedVerdict(sig types.CallSignature) types.Verdict {
	return q.cache.Query(sig)
}

// FlushVerdicts 清空整个裁决缓存
//
// 端点断开或权限库变更后由守护进程触发。
func (q *Inquirer) FlushVerdicts() {
	q.cache.Clear()
}

// CachedCount 当前缓存条目数
func (q *Inquirer) CachedCount() int {
	return q.cache.Len()
}
