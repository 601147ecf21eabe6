package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/omeyang/xjob/pkg/jobs/xjobq"
)

// report 是一次压测的统计结果。
type report struct {
	Queue       string
	Expected    uint64 // producers × jobs
	Pushed      uint64
	Cancelled   uint64
	Dropped     uint64
	Rejected    uint64
	Invoked     uint64
	Elapsed     time.Duration
	Interrupted bool
	Stats       xjobq.Stats

	OTel struct {
		PushAccepted  uint64
		CancelRemoved uint64
		Popped        uint64
		Invoked       uint64
		Panics        uint64
	}
}

// verify 返回所有不满足的守恒关系，空表示通过。
func (r *report) verify() []string {
	var problems []string
	check := func(name string, got, want uint64) {
		if got != want {
			problems = append(problems, fmt.Sprintf("%s: got %d, want %d", name, got, want))
		}
	}

	check("invoked", r.Invoked, r.Pushed-r.Cancelled)
	check("queue.pushed", r.Stats.Pushed, r.Pushed)
	check("queue.popped", r.Stats.Popped, r.Invoked)
	check("queue.cancelled", r.Stats.Cancelled, r.Cancelled+r.Dropped)
	check("queue.live", uint64(r.Stats.Live), 0)
	check("otel.push_accepted", r.OTel.PushAccepted, r.Pushed)
	check("otel.cancel_removed", r.OTel.CancelRemoved, r.Cancelled+r.Dropped)
	check("otel.popped", r.OTel.Popped, r.Invoked)
	check("otel.invoked", r.OTel.Invoked, r.Invoked)
	if !r.Interrupted {
		check("attempted", r.Pushed+r.Dropped+r.Rejected, r.Expected)
	}
	return problems
}

func (r *report) print(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rate := 0.0
	if r.Elapsed > 0 {
		rate = float64(r.Invoked) / r.Elapsed.Seconds()
	}

	fmt.Fprintf(tw, "queue\t%s\n", r.Queue)
	fmt.Fprintf(tw, "pushed\t%d\n", r.Pushed)
	fmt.Fprintf(tw, "cancelled\t%d\n", r.Cancelled)
	fmt.Fprintf(tw, "dropped (reserved)\t%d\n", r.Dropped)
	fmt.Fprintf(tw, "rejected\t%d\n", r.Rejected)
	fmt.Fprintf(tw, "invoked\t%d\n", r.Invoked)
	fmt.Fprintf(tw, "elapsed\t%s\n", r.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(tw, "throughput\t%.0f jobs/s\n", rate)
	fmt.Fprintf(tw, "otel push accepted\t%d\n", r.OTel.PushAccepted)
	fmt.Fprintf(tw, "otel cancel removed\t%d\n", r.OTel.CancelRemoved)
	fmt.Fprintf(tw, "otel popped\t%d\n", r.OTel.Popped)
	fmt.Fprintf(tw, "otel invoked\t%d\n", r.OTel.Invoked)
	if r.OTel.Panics > 0 {
		fmt.Fprintf(tw, "otel panics\t%d\n", r.OTel.Panics)
	}
	if r.Interrupted {
		fmt.Fprintf(tw, "interrupted\ttrue\n")
	}
	_ = tw.Flush()
}
