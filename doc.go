// Package localbus 提供进程内消息总线的授权投递核心
//
// LocalBus 将发往本地端点的方法调用与信号投递收敛到一条
// 有界并发的授权路径上：每次投递先在工作协程上执行权威
// 授权查询，放行后才进入应用注册的处理函数。
//
// # 核心概念
//
// LocalBus 围绕四个核心概念构建：
//
//   - Bus: 总线装配体，用户交互的主入口
//   - LocalEndpoint: 本地端点，持有方法表与信号表
//   - Authorizer: 授权查询器，裁决缓存 + 权威查询
//   - Dispatcher: 有界分发器，固定容量工作池上的任务提交
//
// # 快速开始
//
//	import "github.com/dep2p/go-localbus"
//
//	// 1. 创建并启动总线
//	bus, err := localbus.New(localbus.WithWorkers(8))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer bus.Close()
//	if err := bus.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// 2. 注册方法并授予权限
//	ep := bus.Endpoint()
//	ep.RegisterMethod("/app", "com.example.I", "DoThing", handler)
//	bus.PermissionStore().Grant(1000, "net")
//
//	// 3. 投递调用
//	msg := types.NewMethodCall(":1.7", ep.UniqueName(),
//	    "/app", "com.example.I", "DoThing", 1, nil)
//	st := ep.HandleInboundCall(msg, "net")
//
// # 投递路径
//
//	HandleInboundCall → 查方法表 / 信号表
//	    → Dispatcher 准入循环（池耗尽透明重试）
//	    → 工作协程: Authorizer.Inquire（解析身份 → 校验权限 → 刷新缓存）
//	    → 放行: 处理函数 / 拒绝: 错误应答或静默丢弃
package localbus
