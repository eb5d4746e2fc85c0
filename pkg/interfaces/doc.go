// Package interfaces 定义 LocalBus 的公共接口
//
// 接口按关注点分文件组织，采用扁平命名：
//
//   - pool.go        - 工作池准入契约
//   - dispatcher.go  - 有界分发器（投递路径的唯一入口）
//   - permission.go  - 授权查询与权限校验
//   - endpoint.go    - 本地端点、守护进程代理、出站消息槽
//
// 实现位于 internal/core 下的同名模块。
package interfaces
