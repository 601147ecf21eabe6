package xconf

import (
	"errors"
	"testing"
)

// FuzzLoadBytes 确保任意输入都不会 panic，且成功返回的配置总是通过校验。
func FuzzLoadBytes(f *testing.F) {
	f.Add([]byte(sampleYAML), true)
	f.Add([]byte(sampleJSON), false)
	f.Add([]byte("threads: 3"), true)
	f.Add([]byte(`{"amortized": {"interval": -1}}`), false)

	f.Fuzz(func(t *testing.T, data []byte, yaml bool) {
		format := FormatJSON
		if yaml {
			format = FormatYAML
		}
		l, err := LoadBytes(data, format)
		if err != nil {
			if !errors.Is(err, ErrParseFailed) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		cfg, err := l.Runtime()
		if err != nil {
			return
		}
		if verr := cfg.Validate(); verr != nil {
			t.Fatalf("Runtime returned invalid config: %v", verr)
		}
	})
}
