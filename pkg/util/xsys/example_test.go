package xsys_test

import (
	"fmt"
	"runtime"

	"github.com/omeyang/xjob/pkg/util/xsys"
)

func ExampleSetThreadName() {
	done := make(chan struct{})
	go func() {
		defer close(done)
		// 必须先锁定 OS 线程，设置才会作用在当前 goroutine 所在的线程上。
		runtime.LockOSThread()
		if err := xsys.SetThreadName("upload-worker"); err != nil {
			fmt.Println("设置线程名失败:", err)
		}
	}()
	<-done
}

func ExampleParsePriority() {
	p, err := xsys.ParsePriority("background")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p)
	// Output:
	// background
}
