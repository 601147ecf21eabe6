// xjobbench 对 xjob 队列与 worker 做端到端压测，并校验任务守恒。
//
// 用法:
//
//	xjobbench [选项]
//
// 流程:
//
//	按配置（--config 或默认值）启动一组 ThreadWorker/AmortizedWorker，
//	由 --producers 个生产者各入队 --jobs 个计数任务，其中约 --cancel-percent%
//	的任务被取消（一半通过 Push 后 Cancel，一半通过 IssueJobID 预留后 Cancel）。
//	生产结束后停止 Session，等待所有 worker 收尾，打印统计并校验：
//
//	invoked == pushed - cancelled
//
// 以及 OpenTelemetry 指标总数与实际计数一致。
//
// 退出码:
//
//	0: 校验通过
//	1: 校验失败或运行错误
//	2: 参数错误
//	130: 收到 SIGINT/SIGTERM 提前结束（仍会打印统计）
//
// 示例:
//
//	xjobbench --producers 8 --jobs 100000 --cancel-percent 10
//	xjobbench -c xjob.yaml --watch --log-file /var/log/xjobbench.log
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// exitError 表示输出已完成、只需设置退出码的场景。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 表示参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xjobbench",
		Usage:     "xjob 队列压测与守恒校验",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     benchFlags(),
		Action:    benchAction,
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，由 run() 统一映射退出码。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, _ error) {},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)

	if err := app.Run(ctx, args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	return 0
}
