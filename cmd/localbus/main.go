// Package main 提供 localbus 演示入口
//
// 在进程内装配一条总线，注册方法与信号订阅，授予一个合成
// 对端部分权限，随后投递放行与拒绝两类调用并打印结果。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dep2p/go-localbus"
	"github.com/dep2p/go-localbus/internal/core/endpoint"
	"github.com/dep2p/go-localbus/pkg/types"
)

var (
	workers  = flag.Int("workers", 4, "工作池容量")
	logLevel = flag.String("log-level", "warn", "日志级别 (debug/info/warn/error)")
)

// printSink 把出站应答打印到标准输出
type printSink struct{}

func (printSink) PushMessage(msg *types.Message) types.Status {
	fmt.Printf("  <- 错误应答: %s (%s)\n", msg.ErrorName, msg.Description())
	return types.StatusOK
}

func main() {
	flag.Parse()
	fmt.Println("=== LocalBus 演示 ===")
	fmt.Println()

	ctx := context.Background()

	// 守护进程代理：登记一个合成对端 :1.7，用户 1000
	proxy := endpoint.NewStaticDaemonProxy()
	if err := proxy.RegisterConnection(":1.7", 1000); err != nil {
		fmt.Printf("登记连接失败: %v\n", err)
		os.Exit(1)
	}

	bus, err := localbus.New(
		localbus.WithWorkers(*workers),
		localbus.WithDaemonProxy(proxy),
		localbus.WithMessageSink(printSink{}),
		localbus.WithLogLevel(*logLevel),
	)
	if err != nil {
		fmt.Printf("创建总线失败: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = bus.Close() }()

	if err := bus.Start(ctx); err != nil {
		fmt.Printf("启动总线失败: %v\n", err)
		os.Exit(1)
	}

	ep := bus.Endpoint()
	fmt.Printf("端点唯一名: %s\n", ep.UniqueName())
	fmt.Println()

	// 注册方法与信号订阅
	err = ep.RegisterMethod("/app", "com.example.Demo", "Ping",
		func(_ *types.MethodEntry, msg *types.Message) {
			fmt.Printf("  -> Ping 处理函数: 来自 %s, serial=%d\n", msg.Sender, msg.Serial)
		})
	if err != nil {
		fmt.Printf("注册方法失败: %v\n", err)
		os.Exit(1)
	}
	err = ep.RegisterMethod("/app", "com.example.Demo", "Reset",
		func(_ *types.MethodEntry, msg *types.Message) {
			fmt.Printf("  -> Reset 处理函数: 来自 %s\n", msg.Sender)
		})
	if err != nil {
		fmt.Printf("注册方法失败: %v\n", err)
		os.Exit(1)
	}
	err = ep.SubscribeSignal("com.example.Demo", "Tick", "",
		func(member, sourcePath string, _ *types.Message) {
			fmt.Printf("  -> 信号订阅者: %s 来自 %s\n", member, sourcePath)
		})
	if err != nil {
		fmt.Printf("订阅信号失败: %v\n", err)
		os.Exit(1)
	}

	// 对端只获得 net 权限
	bus.PermissionStore().Grant(1000, "net")

	// 放行：要求 net
	fmt.Println("投递 Ping（要求 net，已授予）:")
	call := types.NewMethodCall(":1.7", ep.UniqueName(), "/app", "com.example.Demo", "Ping", 1, nil)
	fmt.Printf("  状态: %s\n", ep.HandleInboundCall(call, "net"))

	// 拒绝：要求 net;admin
	fmt.Println("投递 Reset（要求 net;admin，缺 admin）:")
	denied := types.NewMethodCall(":1.7", ep.UniqueName(), "/app", "com.example.Demo", "Reset", 2, nil)
	fmt.Printf("  状态: %s\n", ep.HandleInboundCall(denied, "net;admin"))

	// 信号投递
	fmt.Println("投递 Tick 信号:")
	sig := types.NewSignal(":1.7", "/app", "com.example.Demo", "Tick", 3, nil)
	fmt.Printf("  状态: %s\n", ep.HandleInboundCall(sig, "net"))

	// 等待工作协程完成
	time.Sleep(200 * time.Millisecond)
	fmt.Println()

	// 缓存裁决
	fmt.Printf("缓存裁决（放行调用）: %s\n", bus.Authorizer().CachedVerdict(call.Signature()))
	fmt.Println()
	fmt.Println("演示结束")
}
