package xlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 轮转默认值。
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 3
)

// Config 日志配置。
type Config struct {
	// Level 日志级别：debug、info、warn、error，空表示 info。
	Level string
	// Format 输出格式：text 或 json，空表示 text。
	Format string
	// File 日志文件路径。为空时输出到 Output（默认 stderr）。
	File string
	// MaxSizeMB 单个日志文件最大大小（MB），0 表示 DefaultMaxSizeMB。
	MaxSizeMB int
	// MaxBackups 保留的轮转文件数量，0 表示全部保留。
	MaxBackups int
	// Output 未配置 File 时的输出目标，nil 表示 os.Stderr。
	Output io.Writer
}

// Logger 是带动态级别和资源释放的 slog.Logger。
type Logger struct {
	*slog.Logger

	level  *slog.LevelVar
	closer io.Closer
	once   sync.Once
}

// New 根据 cfg 构建 Logger。配置了 File 时写入 lumberjack 轮转文件，
// 调用方需在退出前调用 Close。
func New(cfg Config) (*Logger, error) {
	lv := new(slog.LevelVar)
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	lv.Set(level)

	var (
		out    io.Writer = os.Stderr
		closer io.Closer
	)
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.File != "" {
		rot, err := newRotator(cfg)
		if err != nil {
			return nil, err
		}
		out, closer = rot, rot
	}

	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "text":
		h = slog.NewTextHandler(out, opts)
	case "json":
		h = slog.NewJSONHandler(out, opts)
	default:
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, cfg.Format)
	}

	return &Logger{Logger: slog.New(h), level: lv, closer: closer}, nil
}

// SetLevel 动态调整日志级别，对所有派生 logger 立即生效。
func (l *Logger) SetLevel(s string) error {
	level, err := ParseLevel(s)
	if err != nil {
		return err
	}
	l.level.Set(level)
	return nil
}

// Level 返回当前日志级别。
func (l *Logger) Level() slog.Level {
	return l.level.Level()
}

// Close 关闭日志文件。幂等；未配置文件时为空操作。
func (l *Logger) Close() error {
	var err error
	l.once.Do(func() {
		if l.closer != nil {
			err = l.closer.Close()
		}
	})
	return err
}

// ParseLevel 解析日志级别（大小写不敏感，支持 warning 别名）。空字符串解析为 info。
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
}

func newRotator(cfg Config) (*lumberjack.Logger, error) {
	if cfg.MaxSizeMB < 0 || cfg.MaxBackups < 0 {
		return nil, fmt.Errorf("%w: max_size_mb=%d max_backups=%d",
			ErrInvalidRotation, cfg.MaxSizeMB, cfg.MaxBackups)
	}
	size := cfg.MaxSizeMB
	if size == 0 {
		size = DefaultMaxSizeMB
	}
	// lumberjack 首次写入时自动创建父目录（0755）和文件（0600）。
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    size,
		MaxBackups: cfg.MaxBackups,
	}, nil
}
