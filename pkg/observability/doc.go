// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog，内置 lumberjack 文件轮转与动态级别
//   - xmetrics: 统一观测接口与 OpenTelemetry 实现，覆盖任务执行与队列指标
//
// 设计原则：
//   - 遵循 OpenTelemetry 语义规范
//   - nil 观测器与 nil 指标记录器都是合法值，调用方无需判空
package observability
