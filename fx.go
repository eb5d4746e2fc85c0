package localbus

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/benbjohnson/clock"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/dep2p/go-localbus/config"
	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/lib/log"

	"github.com/dep2p/go-localbus/internal/core/dispatch"
	"github.com/dep2p/go-localbus/internal/core/endpoint"
	"github.com/dep2p/go-localbus/internal/core/permission"
	"github.com/dep2p/go-localbus/internal/core/workerpool"
)

// buildFxApp 构建 Fx 应用
//
// 组装顺序（按依赖）：
//  1. 配置与协作方（守护进程代理、校验机构、时钟）
//  2. 身份解析器 → 授权查询 → 工作池 → 分发器 → 端点
//  3. 用户扩展与组件注入
func buildFxApp(cfg *busConfig, bus *Bus) (*fx.App, error) {
	if err := cfg.config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	applyLogConfig(cfg.config.Log)

	modules := []fx.Option{
		// 配置注入
		fx.Supply(cfg.config),

		// 协作方
		fx.Provide(provideClock(cfg)),
		fx.Provide(provideDaemonProxy(cfg)),
		fx.Provide(provideVerifier(cfg)),

		// 核心模块（端点最后注册，停止时最先关闭以拒绝新调用）
		permission.Module(),
		workerpool.Module(),
		dispatch.Module(),
		endpoint.Module(),
	}

	// 出站槽（可选协作方，不设置时端点丢弃应答）
	if cfg.sink != nil {
		modules = append(modules, fx.Provide(func() interfaces.MessageSink {
			return cfg.sink
		}))
	}

	// 用户扩展
	if len(cfg.userFxOptions) > 0 {
		modules = append(modules, cfg.userFxOptions...)
	}

	// Bus 组件注入
	modules = append(modules, fx.Invoke(injectBusComponents(bus)))

	// 禁用 Fx 日志输出（避免干扰用户日志）
	modules = append(modules,
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: zap.NewNop()}
		}),
		fx.NopLogger,
	)

	return fx.New(modules...), nil
}

// ════════════════════════════════════════════════════════════════════════════
// 协作方提供函数
// ════════════════════════════════════════════════════════════════════════════

// provideClock 提供分发器时钟
func provideClock(cfg *busConfig) func() clock.Clock {
	return func() clock.Clock {
		if cfg.clk != nil {
			return cfg.clk
		}
		return clock.New()
	}
}

// provideDaemonProxy 提供守护进程代理
//
// 未配置时使用进程内静态登记表。
func provideDaemonProxy(cfg *busConfig) func() interfaces.DaemonProxy {
	return func() interfaces.DaemonProxy {
		if cfg.proxy != nil {
			return cfg.proxy
		}
		return endpoint.NewStaticDaemonProxy()
	}
}

// provideVerifier 提供权限校验机构
//
// 未配置外部机构时创建进程内权限库并一并暴露；
// 配置了外部机构时权限库为空。
func provideVerifier(cfg *busConfig) func() (interfaces.PermissionVerifier, *permission.Store) {
	return func() (interfaces.PermissionVerifier, *permission.Store) {
		if cfg.verifier != nil {
			return cfg.verifier, nil
		}
		store := permission.NewStore()
		return store, store
	}
}

// ════════════════════════════════════════════════════════════════════════════
// 组件注入
// ════════════════════════════════════════════════════════════════════════════

// busInjectParams Bus 组件注入参数
type busInjectParams struct {
	fx.In

	Endpoint   interfaces.LocalEndpoint
	Dispatcher interfaces.Dispatcher
	Authorizer interfaces.Authorizer
	Proxy      interfaces.DaemonProxy
	Store      *permission.Store
}

// injectBusComponents 将 Fx 构建的组件写回 Bus
func injectBusComponents(bus *Bus) func(busInjectParams) {
	return func(p busInjectParams) {
		bus.endpoint = p.Endpoint
		bus.dispatcher = p.Dispatcher
		bus.authorizer = p.Authorizer
		bus.proxy = p.Proxy
		bus.store = p.Store
	}
}

// ════════════════════════════════════════════════════════════════════════════
// 日志配置
// ════════════════════════════════════════════════════════════════════════════

// applyLogConfig 应用日志配置
func applyLogConfig(lc config.LogConfig) {
	level := parseLogLevel(lc.Level)
	if lc.JSON {
		log.SetDefault(log.NewJSON(os.Stderr, &slog.HandlerOptions{Level: level}))
		return
	}
	log.SetOutputWithLevel(os.Stderr, level)
}

// parseLogLevel 解析日志级别字符串
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
