// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xsys: 线程级系统调用封装，线程命名与调度优先级
//
// 设计原则：
//   - 平台相关实现用 build tag 隔离，非 Linux 平台降级为返回 ErrUnsupportedPlatform
package util
