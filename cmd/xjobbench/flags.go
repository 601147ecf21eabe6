package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/xjob/pkg/config/xconf"
	"github.com/omeyang/xjob/pkg/lifecycle/xrun"
	"github.com/omeyang/xjob/pkg/observability/xlog"
)

func benchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径（.yaml/.yml/.json），为空时使用默认配置",
			Sources: cli.EnvVars("XJOB_CONFIG"),
		},
		&cli.BoolFlag{
			Name:  "watch",
			Usage: "监视配置文件，变更后动态调整日志级别",
		},
		&cli.IntFlag{
			Name:    "producers",
			Aliases: []string{"p"},
			Usage:   "生产者 goroutine 数量",
			Value:   4,
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"n"},
			Usage:   "每个生产者入队的任务数",
			Value:   10000,
		},
		&cli.IntFlag{
			Name:  "cancel-percent",
			Usage: "取消任务的百分比（0~100）",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "取消选择的随机种子，相同种子得到相同的取消序列",
			Value: 1,
		},
		&cli.DurationFlag{
			Name:  "job-work",
			Usage: "每个任务的模拟耗时",
		},
		&cli.IntFlag{
			Name:  "thread-workers",
			Usage: "覆盖配置：ThreadWorker 数量（单个线程组）",
		},
		&cli.IntFlag{
			Name:  "amortized-batch",
			Usage: "覆盖配置：启用 AmortizedWorker 并设置每周期批量（负数表示清空）",
		},
		&cli.DurationFlag{
			Name:  "amortized-interval",
			Usage: "覆盖配置：AmortizedWorker 周期",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "覆盖配置：日志级别（debug/info/warn/error）",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "覆盖配置：日志格式（text/json）",
		},
		&cli.StringFlag{
			Name:  "log-file",
			Usage: "覆盖配置：日志文件（按大小轮转）",
		},
	}
}

// loadConfig 加载配置并应用命令行覆盖。返回的 Loader 用于 --watch。
func loadConfig(cmd *cli.Command) (*xconf.RuntimeConfig, *xconf.Loader, error) {
	var (
		loader *xconf.Loader
		err    error
	)
	if path := cmd.String("config"); path != "" {
		loader, err = xconf.Load(path)
	} else {
		loader, err = xconf.LoadBytes(nil, xconf.FormatYAML)
	}
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loader.Runtime()
	if err != nil {
		return nil, nil, err
	}

	if cmd.IsSet("thread-workers") {
		name := "xjobbench-worker"
		if len(cfg.Threads) > 0 && cfg.Threads[0].Name != "" {
			name = cfg.Threads[0].Name
		}
		cfg.Threads = []xconf.ThreadConfig{{Name: name, Count: cmd.Int("thread-workers")}}
	}
	if cmd.IsSet("amortized-batch") {
		cfg.Amortized.Enabled = true
		cfg.Amortized.Batch = cmd.Int("amortized-batch")
	}
	if cmd.IsSet("amortized-interval") {
		cfg.Amortized.Enabled = true
		cfg.Amortized.Interval = cmd.Duration("amortized-interval")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, &usageError{msg: err.Error()}
	}
	if cfg.ThreadCount() == 0 && !cfg.Amortized.Enabled {
		return nil, nil, usagef("no workers configured: need thread workers or an amortized worker")
	}
	return cfg, loader, nil
}

func benchOptionsFrom(cmd *cli.Command) (benchOptions, error) {
	bo := benchOptions{
		Producers:       cmd.Int("producers"),
		JobsPerProducer: cmd.Int("jobs"),
		CancelPercent:   cmd.Int("cancel-percent"),
		Seed:            cmd.Uint64("seed"),
		JobWork:         cmd.Duration("job-work"),
	}
	switch {
	case bo.Producers <= 0:
		return bo, usagef("--producers must be positive, got %d", bo.Producers)
	case bo.JobsPerProducer < 0:
		return bo, usagef("--jobs must not be negative, got %d", bo.JobsPerProducer)
	case bo.CancelPercent < 0 || bo.CancelPercent > 100:
		return bo, usagef("--cancel-percent must be within 0~100, got %d", bo.CancelPercent)
	case bo.JobWork < 0:
		return bo, usagef("--job-work must not be negative, got %s", bo.JobWork)
	}
	return bo, nil
}

func benchAction(ctx context.Context, cmd *cli.Command) error {
	bo, err := benchOptionsFrom(cmd)
	if err != nil {
		return err
	}
	cfg, loader, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lg, err := xlog.New(xlog.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		Output:     cmd.Root().ErrWriter,
	})
	if err != nil {
		return err
	}
	defer func() { _ = lg.Close() }()

	logger := lg.With(slog.String("run_id", uuid.NewString()))

	if cmd.Bool("watch") {
		stop, err := watchLogLevel(ctx, loader, lg, logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	rep, runErr := runBench(ctx, cfg, bo, logger)
	if rep != nil {
		rep.print(cmd.Root().Writer)
	}

	switch {
	case errors.Is(runErr, xrun.ErrSignal):
		return &exitError{code: 130}
	case runErr != nil:
		return runErr
	}
	if problems := rep.verify(); len(problems) > 0 {
		for _, p := range problems {
			logger.Error("xjobbench: conservation check failed", slog.String("problem", p))
		}
		return &exitError{code: 1}
	}
	logger.Info("xjobbench: conservation check passed",
		slog.Uint64("invoked", rep.Invoked),
		slog.Duration("elapsed", rep.Elapsed.Round(time.Millisecond)),
	)
	return nil
}

// watchLogLevel 在配置文件变更后动态调整日志级别。
func watchLogLevel(ctx context.Context, loader *xconf.Loader, lg *xlog.Logger, logger *slog.Logger) (func(), error) {
	if loader.Path() == "" {
		return nil, usagef("--watch requires --config")
	}
	w, err := xconf.Watch(ctx, loader, func(cfg *xconf.RuntimeConfig, err error) {
		if err != nil {
			logger.Warn("xjobbench: config reload failed", slog.Any("error", err))
			return
		}
		if err := lg.SetLevel(cfg.Log.Level); err != nil {
			logger.Warn("xjobbench: apply log level failed", slog.Any("error", err))
			return
		}
		logger.Info("xjobbench: log level reloaded", slog.String("level", cfg.Log.Level))
	})
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	return func() { _ = w.Stop() }, nil
}
