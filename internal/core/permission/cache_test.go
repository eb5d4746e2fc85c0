package permission

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dep2p/go-localbus/pkg/types"
)

func sigN(n int) types.CallSignature {
	return types.CallSignature{
		Sender:     fmt.Sprintf(":1.%d", n),
		ObjectPath: "/app",
		Interface:  "com.example.I",
		Member:     "DoThing",
	}
}

// ============================================================================
// 基础读写测试
// ============================================================================

func TestCacheRecordLookup(t *testing.T) {
	c := newVerdictCache(8)

	sig := sigN(1)
	if _, ok := c.Lookup(sig); ok {
		t.Error("空缓存不应命中")
	}

	c.Record(sig, true)
	allowed, ok := c.Lookup(sig)
	if !ok || !allowed {
		t.Errorf("Lookup = (%v, %v), want (true, true)", allowed, ok)
	}

	// 覆盖写：后写者胜
	c.Record(sig, false)
	allowed, ok = c.Lookup(sig)
	if !ok || allowed {
		t.Errorf("覆盖后 Lookup = (%v, %v), want (false, true)", allowed, ok)
	}
	if c.Len() != 1 {
		t.Errorf("覆盖写不应增加条目数, Len = %d", c.Len())
	}
}

// TestCacheQueryPolarityPinned 钉住快速路径的极性约定
//
// 缓存值 true 恒表示允许，与其他所有消费方一致。
func TestCacheQueryPolarityPinned(t *testing.T) {
	c := newVerdictCache(8)

	if got := c.Query(sigN(1)); got != types.VerdictPending {
		t.Errorf("未命中应返回 Pending, got %v", got)
	}

	c.Record(sigN(1), true)
	if got := c.Query(sigN(1)); got != types.VerdictAllowed {
		t.Errorf("缓存 true 应返回 Allowed, got %v", got)
	}

	c.Record(sigN(2), false)
	if got := c.Query(sigN(2)); got != types.VerdictDenied {
		t.Errorf("缓存 false 应返回 Denied, got %v", got)
	}
}

// ============================================================================
// 淘汰策略测试
// ============================================================================

// TestCacheClearOnOverflow 超过容量时整表清空而非逐条淘汰
func TestCacheClearOnOverflow(t *testing.T) {
	const capacity = 4
	c := newVerdictCache(capacity)

	// 填到容量之上：写入第 capacity+1 条时 len == capacity，
	// 未超过容量，不触发清空
	for i := 0; i < capacity+1; i++ {
		c.Record(sigN(i), true)
	}
	if c.Len() != capacity+1 {
		t.Fatalf("Len = %d, want %d", c.Len(), capacity+1)
	}

	// 再写一条：len > capacity，先整表清空再写入
	c.Record(sigN(capacity+1), false)
	if c.Len() != 1 {
		t.Fatalf("清空后 Len = %d, want 1", c.Len())
	}

	// 仅清空后写入的条目存活
	if _, ok := c.Lookup(sigN(0)); ok {
		t.Error("清空前的条目不应存活")
	}
	allowed, ok := c.Lookup(sigN(capacity + 1))
	if !ok || allowed {
		t.Errorf("清空后写入的条目应存活, Lookup = (%v, %v)", allowed, ok)
	}

	// 未重新写入的签名一律未命中
	for i := 0; i < capacity+1; i++ {
		if got := c.Query(sigN(i)); got != types.VerdictPending {
			t.Errorf("签名 %d 应为 Pending, got %v", i, got)
		}
	}
}

func TestCacheClear(t *testing.T) {
	c := newVerdictCache(8)
	c.Record(sigN(1), true)
	c.Record(sigN(2), false)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Clear 后 Len = %d, want 0", c.Len())
	}
}

func TestCacheZeroCapacityFallback(t *testing.T) {
	c := newVerdictCache(0)
	if c.capacity != MaxCheckedCallEntries {
		t.Errorf("容量不为正时应回落到默认值, got %d", c.capacity)
	}
}

// ============================================================================
// 并发测试
// ============================================================================

// TestCacheConcurrentAccess 并发读写不丢失不变量
//
// 同一签名的并发写允许后写者胜；任何时刻读到的值
// 要么未命中要么是某次完整写入的结果。
func TestCacheConcurrentAccess(t *testing.T) {
	c := newVerdictCache(32)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				sig := sigN(i % 48)
				c.Record(sig, i%2 == 0)
				c.Query(sig)
				c.Lookup(sig)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 48 {
		t.Errorf("条目数不应超过写入的签名种类数, Len = %d", c.Len())
	}
}
