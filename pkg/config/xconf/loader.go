package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Loader 从文件或字节数据加载 RuntimeConfig。
type Loader struct {
	mu        sync.RWMutex
	k         *koanf.Koanf
	path      string
	format    Format
	fromBytes bool

	reloadMu sync.Mutex // 序列化并发 Reload，防止配置回退
}

// Load 从文件路径创建 Loader，根据扩展名检测格式（.yaml/.yml 或 .json）。
func Load(path string) (*Loader, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	k, err := readFile(path, format)
	if err != nil {
		return nil, err
	}
	return &Loader{k: k, path: path, format: format}, nil
}

// LoadBytes 从字节数据创建 Loader，需要显式指定格式。
// 空数据得到空配置，Runtime 返回 [Default]。
func LoadBytes(data []byte, format Format) (*Loader, error) {
	if !isValidFormat(format) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	k := koanf.New(".")
	if len(data) > 0 {
		if err := parseInto(k, data, format); err != nil {
			return nil, err
		}
	}
	return &Loader{k: k, format: format, fromBytes: true}, nil
}

// Runtime 以 [Default] 为基础反序列化配置并校验。
func (l *Loader) Runtime() (*RuntimeConfig, error) {
	l.mu.RLock()
	k := l.k
	l.mu.RUnlock()
	return decode(k)
}

// Reload 重新读取配置文件，成功后替换当前配置并返回新的 RuntimeConfig。
// 读取、解析或校验失败时保留原配置。
func (l *Loader) Reload() (*RuntimeConfig, error) {
	if l.fromBytes {
		return nil, ErrNotFromFile
	}

	l.reloadMu.Lock()
	defer l.reloadMu.Unlock()

	k, err := readFile(l.path, l.format)
	if err != nil {
		return nil, err
	}
	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.k = k
	l.mu.Unlock()
	return cfg, nil
}

// Path 返回配置文件路径，从字节数据创建时为空。
func (l *Loader) Path() string {
	return l.path
}

// Format 返回配置格式。
func (l *Loader) Format() Format {
	return l.format
}

// =============================================================================
// 内部辅助函数
// =============================================================================

func decode(k *koanf.Koanf) (*RuntimeConfig, error) {
	cfg := Default()
	// 显式配置了 threads 时整体替换默认线程组，而不是按下标合并。
	if k.Exists("threads") {
		cfg.Threads = nil
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string, format Format) (*koanf.Koanf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	k := koanf.New(".")
	if err := parseInto(k, data, format); err != nil {
		return nil, err
	}
	return k, nil
}

func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

func isValidFormat(format Format) bool {
	return format == FormatYAML || format == FormatJSON
}

func parseInto(k *koanf.Koanf, data []byte, format Format) error {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return ErrUnsupportedFormat
	}
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return nil
}
