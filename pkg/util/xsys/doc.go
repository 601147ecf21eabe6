// Package xsys 提供 worker 线程使用的操作系统线程设施。
//
// # 功能概览
//
//   - [SetThreadName]: 设置调用线程的显示名称（Linux 通过 prctl(PR_SET_NAME)，最长 15 字节，超出部分截断）
//   - [SetThreadPriority]: 设置调用线程的调度优先级（Linux 通过 setpriority 设置线程 nice 值）
//   - [Priority]: 平台无关的优先级枚举，[ParsePriority] 从配置字符串解析
//
// # 使用约束
//
// 两个函数都作用于"当前 OS 线程"。调用方必须先 runtime.LockOSThread()，
// 否则 goroutine 可能被调度到其他线程，设置会落到不相关的线程上。
//
// # 平台支持
//
// 仅 Linux 生效；其他平台在参数校验通过后返回 [ErrUnsupportedPlatform]。
// 参数校验在所有平台上行为一致。
package xsys
