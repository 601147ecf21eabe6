//go:build !linux

package xsys

// SetThreadName 在非 Linux 平台上返回 [ErrUnsupportedPlatform]。
// 参数校验仍然执行，以保持跨平台行为一致。
func SetThreadName(name string) error {
	if err := validateThreadName(name); err != nil {
		return err
	}
	return ErrUnsupportedPlatform
}

// SetThreadPriority 在非 Linux 平台上返回 [ErrUnsupportedPlatform]。
func SetThreadPriority(p Priority) error {
	if err := validatePriority(p); err != nil {
		return err
	}
	return ErrUnsupportedPlatform
}
