// Package logging sets up the session debug log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Options 日志配置 / Log options
type Options struct {
	Path  string // 空值时使用 ~/.snippad/snippad.log / defaults to ~/.snippad/snippad.log
	Level string // trace/debug/info/warn/error, 默认 warn / default warn
}

// New 创建写入文件的结构化日志器。TUI 独占 stdout，日志只进文件。
// 返回的 close 函数在进程退出前调用。
// New creates a file-backed structured logger. The TUI owns stdout, so log
// output goes to the file only. Call the returned close func before exit.
func New(opts Options) (zerolog.Logger, func() error, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("resolve home: %w", err)
		}
		path = filepath.Join(home, ".snippad", "snippad.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || opts.Level == "" {
		level = zerolog.WarnLevel
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f.Close, nil
}
