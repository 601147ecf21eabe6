//go:build linux

package xsys

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// 系统调用函数变量，支持测试中 mock 替换以覆盖错误路径。
// 注意：mock 测试不可使用 t.Parallel()，因为替换包级变量会引发竞态。
var (
	prctl       = unix.Prctl
	setpriority = unix.Setpriority
	gettid      = unix.Gettid
)

// SetThreadName 设置调用线程的名称。
// 超过 15 字节的名称会被截断。调用方需持有 runtime.LockOSThread。
func SetThreadName(name string) error {
	if err := validateThreadName(name); err != nil {
		return err
	}
	p, err := unix.BytePtrFromString(truncateThreadName(name))
	if err != nil {
		return fmt.Errorf("xsys: thread name %q: %w", name, err)
	}
	err = prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(p)), 0, 0, 0)
	runtime.KeepAlive(p)
	if err != nil {
		return fmt.Errorf("xsys: prctl PR_SET_NAME: %w", err)
	}
	return nil
}

// SetThreadPriority 设置调用线程的 nice 值。
// Linux 上 setpriority(PRIO_PROCESS, tid) 只作用于单个线程。
// 降低 nice 值（PriorityElevated）需要 CAP_SYS_NICE，否则返回 EACCES/EPERM。
func SetThreadPriority(p Priority) error {
	if err := validatePriority(p); err != nil {
		return err
	}
	if err := setpriority(unix.PRIO_PROCESS, gettid(), p.nice()); err != nil {
		return fmt.Errorf("xsys: setpriority %s: %w", p, err)
	}
	return nil
}
