package localbus

import (
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-localbus/config"
	"github.com/dep2p/go-localbus/pkg/interfaces"
)

// Option 用户配置选项函数
type Option func(*busConfig) error

// busConfig 内部选项结构
type busConfig struct {
	// config 总线配置
	config *config.Config

	// 协作方（空则使用进程内默认实现）
	proxy    interfaces.DaemonProxy
	verifier interfaces.PermissionVerifier
	sink     interfaces.MessageSink

	// clk 分发器时钟（测试用）
	clk clock.Clock

	// userFxOptions 用户扩展
	userFxOptions []fx.Option
}

// newBusConfig 创建默认选项结构
func newBusConfig() *busConfig {
	return &busConfig{
		config: config.DefaultConfig(),
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              容量选项
// ════════════════════════════════════════════════════════════════════════════

// WithWorkers 设置工作池容量
func WithWorkers(n int) Option {
	return func(c *busConfig) error {
		if n <= 0 {
			return fmt.Errorf("workers must be positive, got %d", n)
		}
		c.config.Pool.Workers = n
		return nil
	}
}

// WithCacheCapacity 设置裁决缓存容量
func WithCacheCapacity(n int) Option {
	return func(c *busConfig) error {
		if n <= 0 {
			return fmt.Errorf("cache capacity must be positive, got %d", n)
		}
		c.config.Permission.CacheCapacity = n
		return nil
	}
}

// WithIdentityCacheSize 设置身份解析缓存容量
func WithIdentityCacheSize(n int) Option {
	return func(c *busConfig) error {
		if n <= 0 {
			return fmt.Errorf("identity cache size must be positive, got %d", n)
		}
		c.config.Permission.IdentityCacheSize = n
		return nil
	}
}

// WithRetryYield 设置池耗尽重试之间的让步时长
//
// 0 表示不让步（纯自旋重试）。
func WithRetryYield(d time.Duration) Option {
	return func(c *busConfig) error {
		if d < 0 {
			return fmt.Errorf("retry yield must not be negative, got %v", d)
		}
		c.config.Dispatch.RetryYield = d
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              协作方选项
// ════════════════════════════════════════════════════════════════════════════

// WithDaemonProxy 设置守护进程代理
//
// 不设置时使用进程内静态登记表。
func WithDaemonProxy(proxy interfaces.DaemonProxy) Option {
	return func(c *busConfig) error {
		if proxy == nil {
			return fmt.Errorf("daemon proxy must not be nil")
		}
		c.proxy = proxy
		return nil
	}
}

// WithVerifier 设置外部权限校验机构
//
// 不设置时使用进程内权限库，经 Bus.PermissionStore() 管理授权。
func WithVerifier(v interfaces.PermissionVerifier) Option {
	return func(c *busConfig) error {
		if v == nil {
			return fmt.Errorf("verifier must not be nil")
		}
		c.verifier = v
		return nil
	}
}

// WithMessageSink 设置出站消息槽
//
// 端点合成的错误应答经此槽位送出。不设置时应答被丢弃。
func WithMessageSink(sink interfaces.MessageSink) Option {
	return func(c *busConfig) error {
		if sink == nil {
			return fmt.Errorf("message sink must not be nil")
		}
		c.sink = sink
		return nil
	}
}

// WithClock 设置分发器时钟
//
// 测试中注入 mock 时钟以控制重试让步。
func WithClock(clk clock.Clock) Option {
	return func(c *busConfig) error {
		if clk == nil {
			return fmt.Errorf("clock must not be nil")
		}
		c.clk = clk
		return nil
	}
}

// ════════════════════════════════════════════════════════════════════════════
//                              日志与扩展选项
// ════════════════════════════════════════════════════════════════════════════

// WithLogLevel 设置日志级别
//
// 支持 debug / info / warn / error。
func WithLogLevel(level string) Option {
	return func(c *busConfig) error {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "error":
			c.config.Log.Level = strings.ToLower(level)
			return nil
		default:
			return fmt.Errorf("unknown log level: %s", level)
		}
	}
}

// WithJSONLog 使用 JSON 日志输出
func WithJSONLog() Option {
	return func(c *busConfig) error {
		c.config.Log.JSON = true
		return nil
	}
}

// WithFxOptions 追加用户自定义 Fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(c *busConfig) error {
		c.userFxOptions = append(c.userFxOptions, opts...)
		return nil
	}
}
