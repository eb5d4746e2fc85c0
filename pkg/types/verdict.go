package types

// ============================================================================
//                              Verdict - 授权裁决
// ============================================================================

// Verdict 对端调用的授权裁决
//
// 缓存中 true 恒表示允许；所有消费方使用同一极性。
type Verdict int

const (
	// VerdictPending 尚无缓存裁决，调用方不得据此假定任一结果
	VerdictPending Verdict = iota
	// VerdictAllowed 允许
	VerdictAllowed
	// VerdictDenied 拒绝
	VerdictDenied
)

// String 返回裁决的字符串表示
func (v Verdict) String() string {
	switch v {
	case VerdictAllowed:
		return "allowed"
	case VerdictDenied:
		return "denied"
	default:
		return "pending"
	}
}

// VerdictOf 将布尔授权结果转换为裁决
func VerdictOf(allowed bool) Verdict {
	if allowed {
		return VerdictAllowed
	}
	return VerdictDenied
}
