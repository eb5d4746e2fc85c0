// Package workerpool 实现固定容量的工作池
package workerpool

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-localbus/config"
	"github.com/dep2p/go-localbus/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Pool interfaces.WorkerPool
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("workerpool",
		fx.Provide(ProvidePool),
		fx.Invoke(registerLifecycle),
	)
}

// ProvidePool 提供 WorkerPool 实例
func ProvidePool(cfg *config.Config) (Result, error) {
	pool, err := NewPool(cfg.Pool.Workers)
	if err != nil {
		return Result{}, err
	}
	return Result{Pool: pool}, nil
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC   fx.Lifecycle
	Pool interfaces.WorkerPool
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.Pool.Close()
		},
	})
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "workerpool"
	// Description 模块描述
	Description = "固定容量工作池，提供两阶段准入与背压"
)
