// Package dispatch 实现有界分发器与调用任务
package dispatch

import (
	"github.com/benbjohnson/clock"
	"go.uber.org/fx"

	"github.com/dep2p/go-localbus/config"
	"github.com/dep2p/go-localbus/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// Params Fx 模块输入参数
type Params struct {
	fx.In

	Config     *config.Config
	Pool       interfaces.WorkerPool
	Authorizer interfaces.Authorizer
	Clock      clock.Clock
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Dispatcher interfaces.Dispatcher
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("dispatch",
		fx.Provide(ProvideDispatcher),
	)
}

// ProvideDispatcher 提供 Dispatcher 实例
func ProvideDispatcher(p Params) Result {
	return Result{
		Dispatcher: NewDispatcher(p.Pool, p.Authorizer, p.Clock, p.Config.Dispatch.RetryYield),
	}
}

// ============================================================================
// 模块元信息
// ============================================================================

const (
	// Version 模块版本
	Version = "1.0.0"
	// Name 模块名称
	Name = "dispatch"
	// Description 模块描述
	Description = "有界分发器模块，提供带背压的调用任务提交"
)
