package xconf

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/omeyang/xjob/pkg/util/xsys"
)

// Format 定义配置文件格式。
type Format string

// 支持的配置格式。
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// RuntimeConfig 描述一个队列以及消费它的 worker。
type RuntimeConfig struct {
	Queue     QueueConfig     `koanf:"queue"`
	Threads   []ThreadConfig  `koanf:"threads"`
	Amortized AmortizedConfig `koanf:"amortized"`
	Log       LogConfig       `koanf:"log"`
}

// QueueConfig 队列配置。
type QueueConfig struct {
	// Name 队列名称，用于日志与指标。
	Name string `koanf:"name"`
}

// ThreadConfig 描述一组同构的 ThreadWorker。
type ThreadConfig struct {
	// Name 线程名前缀；Count > 1 时追加序号。
	Name string `koanf:"name"`
	// Priority 调度优先级：normal、background/low、elevated/high。空表示不修改。
	Priority string `koanf:"priority"`
	// Count 线程数量，0 表示不启动。
	Count int `koanf:"count"`
}

// AmortizedConfig 描述由周期循环驱动的 AmortizedWorker。
type AmortizedConfig struct {
	Enabled bool `koanf:"enabled"`
	// Batch 每个周期最多执行的任务数，负数表示每周期清空队列。
	Batch int `koanf:"batch"`
	// Interval 周期间隔。
	Interval time.Duration `koanf:"interval"`
}

// LogConfig 日志输出配置。
type LogConfig struct {
	// Level 日志级别：debug、info、warn、error。
	Level string `koanf:"level"`
	// Format 输出格式：text 或 json。
	Format string `koanf:"format"`
	// File 日志文件路径，为空时输出到 stderr。
	File string `koanf:"file"`
	// MaxSizeMB 单个日志文件的最大大小（MB），超过后轮转。
	MaxSizeMB int `koanf:"max_size_mb"`
	// MaxBackups 保留的轮转文件数量。
	MaxBackups int `koanf:"max_backups"`
}

// Default 返回默认配置：一个普通优先级的 ThreadWorker，不启用 AmortizedWorker，
// info 级别文本日志输出到 stderr。
func Default() *RuntimeConfig {
	return &RuntimeConfig{
		Queue: QueueConfig{Name: "xjob"},
		Threads: []ThreadConfig{
			{Name: "xjob-worker", Count: 1},
		},
		Amortized: AmortizedConfig{
			Batch:    -1,
			Interval: 16 * time.Millisecond,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// Validate 校验配置值，返回的错误包装 [ErrInvalidConfig]，多个问题用 errors.Join 合并。
func (c *RuntimeConfig) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if strings.TrimSpace(c.Queue.Name) == "" {
		invalid("queue.name is empty")
	}

	for i, tc := range c.Threads {
		if tc.Count < 0 {
			invalid("threads[%d].count %d is negative", i, tc.Count)
		}
		if _, err := tc.ParsedPriority(); err != nil {
			invalid("threads[%d].priority: %v", i, err)
		}
	}

	if c.Amortized.Enabled {
		if c.Amortized.Interval <= 0 {
			invalid("amortized.interval %s must be positive", c.Amortized.Interval)
		}
		if c.Amortized.Batch == 0 {
			invalid("amortized.batch must not be 0")
		}
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		invalid("log.level: %v", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		invalid("log.format %q (want text or json)", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 {
		invalid("log.max_size_mb %d is negative", c.Log.MaxSizeMB)
	}
	if c.Log.MaxBackups < 0 {
		invalid("log.max_backups %d is negative", c.Log.MaxBackups)
	}

	return errors.Join(errs...)
}

// ThreadCount 返回所有线程组的线程总数。
func (c *RuntimeConfig) ThreadCount() int {
	n := 0
	for _, tc := range c.Threads {
		n += tc.Count
	}
	return n
}

// ParsedPriority 解析 Priority 字段，空字符串解析为 xsys.PriorityNormal。
func (tc ThreadConfig) ParsedPriority() (xsys.Priority, error) {
	return xsys.ParsePriority(tc.Priority)
}

// HasPriority 报告是否显式配置了优先级。
func (tc ThreadConfig) HasPriority() bool {
	return strings.TrimSpace(tc.Priority) != ""
}

// SlogLevel 将 Level 解析为 slog.Level。空字符串视为 info。
func (lc LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(lc.Level) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(lc.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
