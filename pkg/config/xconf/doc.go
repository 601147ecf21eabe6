// Package xconf 加载 xjob 运行时配置，基于 koanf 实现。
//
// 配置描述一个队列及其消费者：队列名称、若干组 ThreadWorker（名称、优先级、数量）、
// 可选的 AmortizedWorker（每周期批量与周期间隔）以及日志输出。
//
// # 支持的格式
//
//   - YAML（默认，推荐）：.yaml, .yml
//   - JSON：.json
//
// # 默认值与校验
//
// 缺省字段取 [Default] 中的值；Runtime 在反序列化后调用 [RuntimeConfig.Validate]，
// 校验失败返回包装了 [ErrInvalidConfig] 的错误。
//
// 时间间隔支持字符串写法（如 "16ms"），由 koanf 的 mapstructure 钩子转换。
//
// # 并发安全
//
// Loader 的所有方法并发安全。Reload 失败时保留上一次成功加载的配置。
//
// # 配置监视
//
// [Watch] 基于 fsnotify 监视配置文件所在目录，变更后防抖重载并回调新的 RuntimeConfig。
// 读取或解析失败会按 [WithRetry] 的设置重试（写入方尚未写完时常见），校验失败直接回调。
// 从字节数据创建的 Loader 不支持 Reload 与监视。
package xconf
