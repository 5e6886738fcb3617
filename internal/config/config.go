package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ProviderConfig AI 网关连接配置
// ProviderConfig holds AI gateway connection settings
type ProviderConfig struct {
	BaseURL   string `json:"base_url"`
	Model     string `json:"model"`
	APIKey    string `json:"api_key"`
	TimeoutMS int    `json:"timeout_ms"`
}

// SessionConfig 会话默认值
// SessionConfig holds per-session defaults
type SessionConfig struct {
	// DefaultLanguage 生成/纠错时无语言提示的兜底语言
	// DefaultLanguage is the fallback language when no hint is available
	DefaultLanguage string `json:"default_language"`
	// DefaultFilename 生成流程未填文件名时使用
	// DefaultFilename is used when the generate flow has no filename
	DefaultFilename string `json:"default_filename"`
	// HistoryTokenLimit 状态栏 token 估算的上限基准
	// HistoryTokenLimit is the baseline for the status-line token estimate
	HistoryTokenLimit int `json:"history_token_limit"`
}

// LogConfig 调试日志配置
// LogConfig holds debug log settings
type LogConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"`
}

type Config struct {
	Provider ProviderConfig `json:"provider"`
	Session  SessionConfig  `json:"session"`
	Log      LogConfig      `json:"log"`
	Locale   string         `json:"locale"`
}

type fileConfig struct {
	Provider *ProviderConfig `json:"provider"`
	Session  *SessionConfig  `json:"session"`
	Log      *LogConfig      `json:"log"`
	Locale   *string         `json:"locale"`
}

// Default 返回内置默认配置
// Default returns the built-in defaults
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			Model:     "gpt-4o-mini",
			TimeoutMS: 60000,
		},
		Session: SessionConfig{
			DefaultLanguage:   "python",
			DefaultFilename:   "generated_script.py",
			HistoryTokenLimit: 24000,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load 按 全局 → 项目 → 环境变量 的优先级加载配置。
// 所有文件均可缺失；缺失时落回默认值。
// Load resolves config with global → project → env precedence. Every file is
// optional; missing files fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	for _, globalPath := range globalConfigPaths() {
		if err := mergeFromFile(&cfg, globalPath); err != nil {
			return Config{}, err
		}
	}

	resolvedPath := strings.TrimSpace(path)
	if envPath := strings.TrimSpace(os.Getenv("SNIPPAD_CONFIG_PATH")); envPath != "" {
		resolvedPath = envPath
	}
	if resolvedPath == "" {
		resolvedPath = findProjectConfigPath()
	}
	if err := mergeFromFile(&cfg, resolvedPath); err != nil {
		return Config{}, err
	}

	normalize(&cfg)
	return applyEnv(cfg), nil
}

func globalConfigPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".snippad", "config.json"),
		filepath.Join(home, ".snippad", "config.jsonc"),
	}
}

func findProjectConfigPath() string {
	candidates := []string{
		"snippad.config.json",
		"snippad.config.jsonc",
		".snippad/config.json",
		".snippad/config.jsonc",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

func mergeFromFile(cfg *Config, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %q: %w", path, err)
	}

	cleaned := stripJSONComments(data)
	var fc fileConfig
	if err := json.Unmarshal(cleaned, &fc); err != nil {
		return fmt.Errorf("parse config %q: %w", path, err)
	}

	if fc.Provider != nil {
		cfg.Provider = mergeProvider(cfg.Provider, *fc.Provider)
	}
	if fc.Session != nil {
		cfg.Session = mergeSession(cfg.Session, *fc.Session)
	}
	if fc.Log != nil {
		if strings.TrimSpace(fc.Log.Path) != "" {
			cfg.Log.Path = fc.Log.Path
		}
		if strings.TrimSpace(fc.Log.Level) != "" {
			cfg.Log.Level = fc.Log.Level
		}
	}
	if fc.Locale != nil && strings.TrimSpace(*fc.Locale) != "" {
		cfg.Locale = *fc.Locale
	}
	return nil
}

func mergeProvider(base, override ProviderConfig) ProviderConfig {
	if strings.TrimSpace(override.BaseURL) != "" {
		base.BaseURL = override.BaseURL
	}
	if strings.TrimSpace(override.Model) != "" {
		base.Model = override.Model
	}
	if strings.TrimSpace(override.APIKey) != "" {
		base.APIKey = override.APIKey
	}
	if override.TimeoutMS > 0 {
		base.TimeoutMS = override.TimeoutMS
	}
	return base
}

func mergeSession(base, override SessionConfig) SessionConfig {
	if strings.TrimSpace(override.DefaultLanguage) != "" {
		base.DefaultLanguage = override.DefaultLanguage
	}
	if strings.TrimSpace(override.DefaultFilename) != "" {
		base.DefaultFilename = override.DefaultFilename
	}
	if override.HistoryTokenLimit > 0 {
		base.HistoryTokenLimit = override.HistoryTokenLimit
	}
	return base
}

func normalize(cfg *Config) {
	def := Default()
	if strings.TrimSpace(cfg.Provider.Model) == "" {
		cfg.Provider.Model = def.Provider.Model
	}
	if cfg.Provider.TimeoutMS <= 0 {
		cfg.Provider.TimeoutMS = def.Provider.TimeoutMS
	}
	cfg.Session.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.Session.DefaultLanguage))
	if cfg.Session.DefaultLanguage == "" {
		cfg.Session.DefaultLanguage = def.Session.DefaultLanguage
	}
	if strings.TrimSpace(cfg.Session.DefaultFilename) == "" {
		cfg.Session.DefaultFilename = def.Session.DefaultFilename
	}
	if cfg.Session.HistoryTokenLimit <= 0 {
		cfg.Session.HistoryTokenLimit = def.Session.HistoryTokenLimit
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = def.Log.Level
	}
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("SNIPPAD_BASE_URL")); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("SNIPPAD_MODEL")); v != "" {
		cfg.Provider.Model = v
	}
	if v := strings.TrimSpace(os.Getenv("SNIPPAD_API_KEY")); v != "" {
		cfg.Provider.APIKey = v
	} else if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" && cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv("SNIPPAD_LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("SNIPPAD_LOCALE")); v != "" {
		cfg.Locale = v
	}
	return cfg
}

// stripJSONComments 去除 // 与 /* */ 注释，字符串字面量内的内容保持原样
// stripJSONComments removes // and /* */ comments while leaving string
// literals untouched
func stripJSONComments(data []byte) []byte {
	const (
		stateNormal = iota
		stateString
		stateLineComment
		stateBlockComment
	)

	state := stateNormal
	escaped := false
	out := bytes.Buffer{}

	for i := 0; i < len(data); i++ {
		c := data[i]
		next := byte(0)
		if i+1 < len(data) {
			next = data[i+1]
		}

		switch state {
		case stateNormal:
			if c == '"' {
				state = stateString
				out.WriteByte(c)
				continue
			}
			if c == '/' && next == '/' {
				state = stateLineComment
				i++
				continue
			}
			if c == '/' && next == '*' {
				state = stateBlockComment
				i++
				continue
			}
			out.WriteByte(c)
		case stateString:
			out.WriteByte(c)
			if escaped {
				escaped = false
				continue
			}
			if c == '\\' {
				escaped = true
				continue
			}
			if c == '"' {
				state = stateNormal
			}
		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out.WriteByte(c)
			}
		case stateBlockComment:
			if c == '*' && next == '/' {
				state = stateNormal
				i++
			}
		}
	}

	return out.Bytes()
}
