// Package permission 实现对端授权查询与裁决缓存
package permission

import (
	"context"

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

	Config   *config.Config
	Resolver interfaces.PeerIdentityResolver
	Verifier interfaces.PermissionVerifier
}

// Result Fx 模块输出结果
type Result struct {
	fx.Out

	Authorizer interfaces.Authorizer
}

// Module 返回 Fx 模块
func Module() fx.Option {
	return fx.Module("permission",
		fx.Provide(ProvideAuthorizer),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideAuthorizer 提供 Authorizer 实例
func ProvideAuthorizer(p Params) Result {
	return Result{
		Authorizer: NewInquirer(p.Config.Permission.CacheCapacity, p.Resolver, p.Verifier),
	}
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC         fx.Lifecycle
	Authorizer interfaces.Authorizer
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			// 关停时丢弃全部缓存裁决
			input.Authorizer.FlushVerdicts()
			return nil
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
	Name = "permission"
	// Description 模块描述
	Description = "对端授权模块，提供权威授权查询、裁决缓存与权限库"
)
