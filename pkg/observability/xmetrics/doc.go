// Package xmetrics 提供任务队列与 worker 的可观测性（metrics + tracing）。
//
// # 组成
//
//   - Observer/Span：任务调用级别的观测跨度，worker 每执行一个任务开启一个跨度
//   - QueueMetrics：队列级别的计数器与深度 gauge
//
// 两者都有空实现：nil Observer 通过 [Start] 兜底为 [NoopObserver]，
// nil *QueueMetrics 的所有方法都是空操作，调用方无需判空。
//
// # 使用示例
//
//	obs, _ := xmetrics.NewOTelObserver()
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "shader-worker",
//		Operation: "invoke",
//		Kind:      xmetrics.KindConsumer,
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 指标命名
//
//   - xjob.invoke.total / xjob.invoke.duration（属性：component / operation / status）
//   - xjob.queue.push（属性：queue / result=accepted|rejected）
//   - xjob.queue.cancel（属性：queue / result=removed|missing）
//   - xjob.queue.pop（属性：queue）
//   - xjob.queue.depth（属性：queue）
package xmetrics
