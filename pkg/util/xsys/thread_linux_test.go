//go:build linux

package xsys

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// onFreshThread 在独占的 OS 线程上执行 fn；goroutine 结束时不解锁，
// 线程随之销毁，名称与优先级的修改不会泄漏到其他测试。
func onFreshThread(fn func(tid int)) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		runtime.LockOSThread()
		fn(unix.Gettid())
	}()
	<-done
}

func readComm(tid int) (string, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/self/task/%d/comm", tid))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// readNice 从 /proc/self/task/<tid>/stat 读取第 19 个字段（nice）。
func readNice(tid int) (int, error) {
	data, err := os.ReadFile(fmt.Sprintf("/proc/self/task/%d/stat", tid))
	if err != nil {
		return 0, err
	}
	// comm 字段可能包含空格，从最后一个 ')' 之后开始解析，首个字段是第 3 个字段（state）。
	rest := string(data[strings.LastIndexByte(string(data), ')')+1:])
	fields := strings.Fields(rest)
	if len(fields) < 17 {
		return 0, fmt.Errorf("short stat line: %q", data)
	}
	return strconv.Atoi(fields[16])
}

func TestSetThreadName(t *testing.T) {
	var (
		setErr, readErr error
		comm            string
	)
	onFreshThread(func(tid int) {
		setErr = SetThreadName("xjob-test-worker")
		comm, readErr = readComm(tid)
	})
	require.NoError(t, setErr)
	require.NoError(t, readErr)
	assert.Equal(t, "xjob-test-worke", comm)
}

func TestSetThreadName_Empty(t *testing.T) {
	require.ErrorIs(t, SetThreadName(""), ErrInvalidThreadName)
}

func TestSetThreadPriority_Background(t *testing.T) {
	var (
		setErr, readErr error
		nice            int
	)
	onFreshThread(func(tid int) {
		setErr = SetThreadPriority(PriorityBackground)
		nice, readErr = readNice(tid)
	})
	require.NoError(t, setErr)
	require.NoError(t, readErr)
	assert.Equal(t, PriorityBackground.nice(), nice)
}

func TestSetThreadPriority_Invalid(t *testing.T) {
	require.ErrorIs(t, SetThreadPriority(Priority(42)), ErrInvalidPriority)
}

// 不可 t.Parallel()：替换包级变量 prctl。
func TestSetThreadName_PrctlError(t *testing.T) {
	orig := prctl
	defer func() { prctl = orig }()

	mockErr := errors.New("mock prctl error")
	prctl = func(_ int, _, _, _, _ uintptr) error { return mockErr }

	err := SetThreadName("worker")
	require.ErrorIs(t, err, mockErr)
	assert.Contains(t, err.Error(), "PR_SET_NAME")
}

// 不可 t.Parallel()：替换包级变量 setpriority / gettid。
func TestSetThreadPriority_UsesThreadID(t *testing.T) {
	origSet, origTid := setpriority, gettid
	defer func() { setpriority, gettid = origSet, origTid }()

	var gotWhich, gotWho, gotPrio int
	setpriority = func(which, who, prio int) error {
		gotWhich, gotWho, gotPrio = which, who, prio
		return nil
	}
	gettid = func() int { return 4242 }

	require.NoError(t, SetThreadPriority(PriorityElevated))
	assert.Equal(t, unix.PRIO_PROCESS, gotWhich)
	assert.Equal(t, 4242, gotWho)
	assert.Equal(t, -5, gotPrio)
}

// 不可 t.Parallel()：替换包级变量 setpriority。
func TestSetThreadPriority_PermissionDenied(t *testing.T) {
	orig := setpriority
	defer func() { setpriority = orig }()

	setpriority = func(_, _, _ int) error { return unix.EACCES }

	err := SetThreadPriority(PriorityElevated)
	require.ErrorIs(t, err, unix.EACCES)
	assert.Contains(t, err.Error(), "elevated")
}
