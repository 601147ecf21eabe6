package main

import "github.com/omeyang/xjob/pkg/jobs/xjobq"

func newQueueForTest() xjobq.Queue {
	return xjobq.New(xjobq.WithName("test"))
}
