// Package permission 实现对端授权查询与裁决缓存
package permission

import (
	"sync"

	"github.com/dep2p/go-localbus/pkg/types"
)

// MaxCheckedCallEntries 裁决缓存的默认容量上限
//
// 缓存是防御性的：超过上限时整表清空后再写入，
// 不做逐条 LRU 淘汰，也没有后台清理协程。
const MaxCheckedCallEntries = 500

// ============================================================================
//                              verdictCache
// ============================================================================

// verdictCache 调用签名 -> 授权裁决的有界缓存
//
// 单把粗粒度锁保护整个映射。Record 持锁完成
// "读大小-可能清空-写入"的完整序列。裁决一经缓存即视为
// 权威，直到整表被清空；不带版本号也不带时间戳。
type verdictCache struct {
	mu       sync.Mutex
	capacity int
	verdicts map[types.CallSignature]bool
}

// newVerdictCache 创建裁决缓存
//
// capacity 不为正时回落到 MaxCheckedCallEntries。
func newVerdictCache(capacity int) *verdictCache {
	if capacity <= 0 {
		capacity = MaxCheckedCallEntries
	}
	return &verdictCache{
		capacity: capacity,
		verdicts: make(map[types.CallSignature]bool),
	}
}

// Lookup 查询缓存裁决
//
// 只读，无副作用。第二个返回值表示是否命中。
func (c *verdictCache) Lookup(sig types.CallSignature) (allowed bool, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	allowed, ok = c.verdicts[sig]
	return allowed, ok
}

// Record 写入裁决
//
// 超过容量时先整表清空再写入。同一签名的覆盖写是合法且
// 预期的：后写者胜，不同调用请求的令牌集之间不做合并。
func (c *verdictCache) Record(sig types.CallSignature, allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.verdicts) > c.capacity {
		c.verdicts = make(map[types.CallSignature]bool)
	}
	c.verdicts[sig] = allowed
}

// Query 只读快速查询
//
// 未命中返回 VerdictPending：调用方不得据此假定任一结果，
// 也不得仅依据该结果调用处理函数。
//
// 极性约定：缓存值 true 恒表示允许。
func (c *verdictCache) Query(sig types.CallSignature) types.Verdict {
	c.mu.Lock()
	defer c.mu.Unlock()
	allowed, ok := c.verdicts[sig]
	if !ok {
		return types.VerdictPending
	}
	return types.VerdictOf(allowed)
}

// Clear 清空整个缓存
func (c *verdictCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verdicts = make(map[types.CallSignature]bool)
}

// Len 当前缓存条目数
func (c *verdictCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.verdicts)
}
