// Package types 定义 LocalBus 的基础类型
//
// 本文件定义调用签名与权限令牌集合。
package types

import "strings"

// ============================================================================
//                              CallSignature - 调用签名
// ============================================================================

// CallSignature 调用签名
//
// 以 (发送者, 对象路径, 接口, 成员) 四元组标识一类调用。
// 同一签名的两次调用视为"同一类调用"；每次调用的序列号
// 刻意不参与签名，授权结果按调用类别缓存，而非按单次调用。
//
// 值类型，可直接比较，可作为 map 键。
type CallSignature struct {
	Sender     string // 发起调用的端点名
	ObjectPath string // 调用的对象路径
	Interface  string // 调用的接口名
	Member     string // 方法或信号名
}

// Compare 按 (Sender, ObjectPath, Interface, Member) 字典序比较
//
// 返回 -1、0、1，可用于有序容器。
func (s CallSignature) Compare(other CallSignature) int {
	if c := strings.Compare(s.Sender, other.Sender); c != 0 {
		return c
	}
	if c := strings.Compare(s.ObjectPath, other.ObjectPath); c != 0 {
		return c
	}
	if c := strings.Compare(s.Interface, other.Interface); c != 0 {
		return c
	}
	return strings.Compare(s.Member, other.Member)
}

// Less 字典序小于
func (s CallSignature) Less(other CallSignature) bool {
	return s.Compare(other) < 0
}

// String 返回签名的可读表示
func (s CallSignature) String() string {
	return s.Sender + ":" + s.ObjectPath + ":" + s.Interface + "." + s.Member
}

// ============================================================================
//                              PermissionSet - 权限令牌集合
// ============================================================================

// PermissionSet 权限令牌集合
//
// 集合语义：重复与顺序无关。
type PermissionSet map[string]struct{}

// ParsePermissionString 解析权限要求字符串
//
// 权限字符串形如 "PERM0;PERM1;..."，以 ";" 分隔。
// 空令牌被丢弃。
func ParsePermissionString(permStr string) PermissionSet {
	set := make(PermissionSet)
	for _, tok := range strings.Split(permStr, ";") {
		if tok == "" {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Has 是否包含指定令牌
func (p PermissionSet) Has(token string) bool {
	_, ok := p[token]
	return ok
}

// Add 加入令牌
func (p PermissionSet) Add(token string) {
	p[token] = struct{}{}
}

// Len 令牌数量
func (p PermissionSet) Len() int {
	return len(p)
}

// ContainsAll 是否包含 required 中的全部令牌
func (p PermissionSet) ContainsAll(required PermissionSet) bool {
	for tok := range required {
		if !p.Has(tok) {
			return false
		}
	}
	return true
}

// Tokens 返回令牌列表（无序）
func (p PermissionSet) Tokens() []string {
	out := make([]string, 0, len(p))
	for tok := range p {
		out = append(out, tok)
	}
	return out
}
