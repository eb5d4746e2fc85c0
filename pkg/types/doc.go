// Package types 定义 LocalBus 的基础类型
//
// 包含全局状态码表、调用签名、授权裁决、总线消息以及
// 方法表/信号表条目。这些类型被所有其他组件消费，
// 自身不含业务逻辑，也不需要并发控制。
package types
