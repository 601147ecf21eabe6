package xsys

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority 表示线程调度优先级。
// 零值为 [PriorityNormal]。
type Priority int

const (
	// PriorityNormal 普通优先级（nice 0）。
	PriorityNormal Priority = iota
	// PriorityBackground 后台优先级，让出 CPU 给交互线程（nice 10）。
	PriorityBackground
	// PriorityElevated 提升优先级（nice -5），非特权进程通常会失败。
	PriorityElevated
)

// maxThreadNameLen 是 Linux 线程名的最大字节数（不含结尾 NUL）。
const maxThreadNameLen = 15

// String 返回优先级名称。
func (p Priority) String() string {
	switch p {
	case PriorityNormal:
		return "normal"
	case PriorityBackground:
		return "background"
	case PriorityElevated:
		return "elevated"
	default:
		return "Priority(" + strconv.Itoa(int(p)) + ")"
	}
}

// Valid 报告 p 是否是已定义的优先级。
func (p Priority) Valid() bool {
	return p >= PriorityNormal && p <= PriorityElevated
}

// nice 返回优先级对应的 nice 值。
func (p Priority) nice() int {
	switch p {
	case PriorityBackground:
		return 10
	case PriorityElevated:
		return -5
	default:
		return 0
	}
}

// ParsePriority 从字符串解析优先级（不区分大小写，忽略首尾空白）。
// 空字符串解析为 [PriorityNormal]。
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return PriorityNormal, nil
	case "background", "low":
		return PriorityBackground, nil
	case "elevated", "high":
		return PriorityElevated, nil
	default:
		return PriorityNormal, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
}

func validateThreadName(name string) error {
	if name == "" {
		return ErrInvalidThreadName
	}
	return nil
}

func validatePriority(p Priority) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return nil
}

// truncateThreadName 截断到内核允许的长度，且不切断多字节 UTF-8 字符。
func truncateThreadName(name string) string {
	if len(name) <= maxThreadNameLen {
		return name
	}
	cut := maxThreadNameLen
	for cut > 0 && !isRuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
