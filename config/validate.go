package config

import (
	"errors"
	"fmt"
)

// Validate 验证整个配置的有效性
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Pool.Workers <= 0 {
		return fmt.Errorf("pool: workers must be positive, got %d", c.Pool.Workers)
	}
	if c.Permission.CacheCapacity <= 0 {
		return fmt.Errorf("permission: cache capacity must be positive, got %d", c.Permission.CacheCapacity)
	}
	if c.Permission.IdentityCacheSize <= 0 {
		return fmt.Errorf("permission: identity cache size must be positive, got %d", c.Permission.IdentityCacheSize)
	}
	if c.Dispatch.RetryYield < 0 {
		return fmt.Errorf("dispatch: retry yield must not be negative, got %v", c.Dispatch.RetryYield)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	return nil
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 该函数会：
//  1. 对可修复的问题自动应用默认值
//  2. 重新验证修复后的配置
//
// 可修复的问题示例：
//   - 容量为零或为负 -> 使用默认值
//   - 让步时长为负 -> 使用默认值
//   - 空日志级别 -> "info"
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return DefaultConfig(), nil
	}

	if c.Pool.Workers <= 0 {
		c.Pool.Workers = DefaultWorkers
	}
	if c.Permission.CacheCapacity <= 0 {
		c.Permission.CacheCapacity = DefaultCacheCapacity
	}
	if c.Permission.IdentityCacheSize <= 0 {
		c.Permission.IdentityCacheSize = DefaultIdentityCacheSize
	}
	if c.Dispatch.RetryYield < 0 {
		c.Dispatch.RetryYield = DefaultRetryYield
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}
