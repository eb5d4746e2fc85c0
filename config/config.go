// Package config 定义 LocalBus 的配置结构
//
// 按关注点划分子配置，提供默认值与验证。
package config

import "time"

// ============================================================================
//                              子配置
// ============================================================================

// PoolConfig 工作池配置
type PoolConfig struct {
	// Workers 工作协程上限（池容量）
	Workers int
}

// PermissionConfig 权限子系统配置
type PermissionConfig struct {
	// CacheCapacity 裁决缓存容量
	//
	// 超过容量时整表清空（粗粒度淘汰，不是 LRU）。
	CacheCapacity int

	// IdentityCacheSize 身份解析缓存容量（LRU）
	IdentityCacheSize int
}

// DispatchConfig 分发器配置
type DispatchConfig struct {
	// RetryYield 池耗尽重试之间的让步时长
	//
	// 0 表示不让步（纯自旋重试）。
	RetryYield time.Duration
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别：debug / info / warn / error
	Level string

	// JSON 是否使用 JSON 输出格式
	JSON bool
}

// ============================================================================
//                              Config
// ============================================================================

// Config LocalBus 总配置
type Config struct {
	Pool       PoolConfig
	Permission PermissionConfig
	Dispatch   DispatchConfig
	Log        LogConfig
}

// 默认值
const (
	// DefaultWorkers 默认工作池容量
	DefaultWorkers = 4

	// DefaultCacheCapacity 默认裁决缓存容量
	DefaultCacheCapacity = 500

	// DefaultIdentityCacheSize 默认身份缓存容量
	DefaultIdentityCacheSize = 128

	// DefaultRetryYield 默认重试让步时长
	DefaultRetryYield = 100 * time.Microsecond
)

// DefaultConfig 返回带默认值的配置
func DefaultConfig() *Config {
	return &Config{
		Pool: PoolConfig{
			Workers: DefaultWorkers,
		},
		Permission: PermissionConfig{
			CacheCapacity:     DefaultCacheCapacity,
			IdentityCacheSize: DefaultIdentityCacheSize,
		},
		Dispatch: DispatchConfig{
			RetryYield: DefaultRetryYield,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
