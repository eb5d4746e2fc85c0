// Package localbus 提供进程内消息总线的授权投递核心
package localbus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/dep2p/go-localbus/internal/core/permission"
	"github.com/dep2p/go-localbus/pkg/interfaces"
	"github.com/dep2p/go-localbus/pkg/lib/log"
	"github.com/dep2p/go-localbus/pkg/types"
)

var logger = log.Logger("localbus")

// Version 当前版本
const Version = "v0.1.0"

// ════════════════════════════════════════════════════════════════════════════
//                              总线状态
// ════════════════════════════════════════════════════════════════════════════

// BusState 总线状态
type BusState int

const (
	// StateIdle 空闲状态（已创建，未启动）
	StateIdle BusState = iota

	// StateStarting 启动中
	StateStarting

	// StateRunning 运行中
	StateRunning

	// StateStopping 停止中
	StateStopping

	// StateStopped 已停止
	StateStopped
)

// String 返回状态的字符串表示
func (s BusState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// 启动 / 停止超时
const (
	startTimeout = 15 * time.Second
	stopTimeout  = 15 * time.Second
)

// ════════════════════════════════════════════════════════════════════════════
//                              Bus
// ════════════════════════════════════════════════════════════════════════════

// Bus 进程内消息总线
//
// Bus 是用户与投递核心交互的主入口，聚合本地端点、授权查询、
// 有界分发器与权限库。
//
// 使用示例：
//
//	bus, err := localbus.New(
//	    localbus.WithWorkers(8),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
//
//	if err := bus.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	ep := bus.Endpoint()
//	ep.RegisterMethod("/app", "com.example.I", "DoThing", handler)
type Bus struct {
	// config 总线配置
	config *busConfig

	// app Fx 应用
	app *fx.App

	// 核心组件（由 Fx 注入）
	endpoint   interfaces.LocalEndpoint
	dispatcher interfaces.Dispatcher
	authorizer interfaces.Authorizer
	proxy      interfaces.DaemonProxy

	// store 进程内权限库；使用外部校验机构时为空
	store *permission.Store

	// 生命周期状态
	mu      sync.RWMutex
	state   BusState
	started bool
	closed  bool
}

// ════════════════════════════════════════════════════════════════════════════
//                              构造函数
// ════════════════════════════════════════════════════════════════════════════

// New 创建总线
//
// 创建但不启动，需要调用 Start() 启动。
func New(opts ...Option) (*Bus, error) {
	cfg := newBusConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}

	bus := &Bus{
		config: cfg,
		state:  StateIdle,
	}

	var err error
	bus.app, err = buildFxApp(cfg, bus)
	if err != nil {
		return nil, fmt.Errorf("build fx app: %w", err)
	}
	return bus, nil
}

// Start 启动总线
func (b *Bus) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return types.ErrBusClosed
	}
	if b.started {
		b.mu.Unlock()
		return nil
	}
	b.state = StateStarting
	b.mu.Unlock()

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := b.app.Start(startCtx); err != nil {
		b.mu.Lock()
		b.state = StateIdle
		b.mu.Unlock()
		return fmt.Errorf("start bus: %w", err)
	}

	b.mu.Lock()
	b.started = true
	b.state = StateRunning
	b.mu.Unlock()

	logger.Info("bus started",
		"uniqueName", b.endpoint.UniqueName(),
		"workers", b.config.config.Pool.Workers)
	return nil
}

// Stop 停止总线
//
// 组件按注册逆序停止：端点先拒绝新调用，随后工作池排空。
func (b *Bus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.started || b.state == StateStopped {
		b.mu.Unlock()
		return nil
	}
	b.state = StateStopping
	b.mu.Unlock()

	stopCtx, cancel := context.WithTimeout(ctx, stopTimeout)
	defer cancel()
	err := b.app.Stop(stopCtx)

	b.mu.Lock()
	b.state = StateStopped
	b.mu.Unlock()

	if err != nil {
		return fmt.Errorf("stop bus: %w", err)
	}
	logger.Info("bus stopped")
	return nil
}

// Close 关闭总线
//
// 幂等。聚合停止过程中各组件产生的错误。
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	needStop := b.started && b.state != StateStopped
	b.mu.Unlock()

	var errs error
	if needStop {
		ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		errs = multierr.Append(errs, b.app.Stop(ctx))
		cancel()
		b.mu.Lock()
		b.state = StateStopped
		b.mu.Unlock()
	}
	return errs
}

// ════════════════════════════════════════════════════════════════════════════
//                              访问器
// ════════════════════════════════════════════════════════════════════════════

// State 返回当前总线状态
func (b *Bus) State() BusState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Endpoint 返回本地端点
func (b *Bus) Endpoint() interfaces.LocalEndpoint {
	return b.endpoint
}

// Dispatcher 返回有界分发器
func (b *Bus) Dispatcher() interfaces.Dispatcher {
	return b.dispatcher
}

// Authorizer 返回授权查询器
func (b *Bus) Authorizer() interfaces.Authorizer {
	return b.authorizer
}

// PermissionStore 返回进程内权限库
//
// 配置了外部校验机构时返回 nil。
func (b *Bus) PermissionStore() *permission.Store {
	return b.store
}

// DaemonProxy 返回守护进程代理
func (b *Bus) DaemonProxy() interfaces.DaemonProxy {
	return b.proxy
}
