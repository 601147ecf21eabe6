package xrun

import (
	"fmt"

	"github.com/omeyang/xjob/pkg/config/xconf"
	"github.com/omeyang/xjob/pkg/jobs/xworker"
)

// Apply 按配置向 Session 添加 worker：每个线程组启动 Count 个 ThreadWorker，
// 启用时再添加一个 AmortizedWorker。
//
// 线程组 Count > 1 时线程名追加序号（"decode-0"、"decode-1"）。
// 部分 worker 启动后出错时，已启动的 worker 仍由 Session 收尾。
func (s *Session) Apply(cfg *xconf.RuntimeConfig) error {
	if cfg == nil {
		return ErrNilConfig
	}

	for i, tc := range cfg.Threads {
		var opts []xworker.Option
		if tc.HasPriority() {
			p, err := tc.ParsedPriority()
			if err != nil {
				return fmt.Errorf("xrun: threads[%d]: %w", i, err)
			}
			opts = append(opts, xworker.WithPriority(p))
		}
		for n := range tc.Count {
			name := tc.Name
			if name != "" && tc.Count > 1 {
				name = fmt.Sprintf("%s-%d", tc.Name, n)
			}
			if _, err := s.AddThread(append(opts, xworker.WithName(name))...); err != nil {
				return err
			}
		}
	}

	if cfg.Amortized.Enabled {
		if _, err := s.AddAmortized(cfg.Amortized.Interval, cfg.Amortized.Batch); err != nil {
			return err
		}
	}
	return nil
}
