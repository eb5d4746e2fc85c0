package endpoint

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-localbus/config"
	"github.com/dep2p/go-localbus/pkg/interfaces"
)

// ============================================================================
// Fx 模块
// ============================================================================

// ResolverParams 身份解析器输入参数
type ResolverParams struct {
	fx.In

	Config *config.Config
	Proxy  interfaces.DaemonProxy `optional:"true"`
}

// ResolverResult 身份解析器输出结果
type ResolverResult struct {
	fx.Out

	Resolver interfaces.PeerIdentityResolver
}

// Params 端点输入参数
//
// 解析器与端点分开提供：授权模块依赖解析器，
// 分发器依赖授权模块，端点依赖分发器。
type Params struct {
	fx.In

	Resolver   interfaces.PeerIdentityResolver
	Dispatcher interfaces.Dispatcher
	Sink       interfaces.MessageSink `optional:"true"`
}

// Result 端点输出结果
type Result struct {
	fx.Out

	Endpoint interfaces.LocalEndpoint
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("endpoint",
		fx.Provide(ProvideResolver),
		fx.Provide(ProvideEndpoint),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideResolver 提供 PeerIdentityResolver 实例
func ProvideResolver(p ResolverParams) (ResolverResult, error) {
	resolver, err := NewResolver(p.Proxy, p.Config.Permission.IdentityCacheSize)
	if err != nil {
		return ResolverResult{}, err
	}
	return ResolverResult{Resolver: resolver}, nil
}

// ProvideEndpoint 提供 LocalEndpoint 实例
func ProvideEndpoint(p Params) Result {
	return Result{
		Endpoint: NewEndpoint(p.Resolver, p.Dispatcher, p.Sink),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC       fx.Lifecycle
	Endpoint interfaces.LocalEndpoint
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return input.Endpoint.Close()
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
	Name = "endpoint"
	// Description 模块描述
	Description = "本地端点模块，提供方法表、信号表与对端身份解析"
)
