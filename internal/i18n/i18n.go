// Package i18n resolves UI strings against per-locale message catalogs.
// i18n 包将 UI 字符串解析到按 locale 划分的消息目录。
package i18n

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// catalogs 已注册的消息目录，按规范化 locale 索引
// catalogs holds the registered message catalogs, keyed by normalized locale
var catalogs = map[string]map[string]string{
	"en":    EnMessages,
	"zh-CN": ZhCNMessages,
}

// I18n 按目录链查找消息：先查 locale 自己的目录，再落回英文。
// 目录构造后不再修改，实例可被并发读取。
// I18n resolves messages through a catalog chain: the locale's own catalog
// first, then the English fallback. Catalogs are never mutated after
// construction, so instances are safe for concurrent reads.
type I18n struct {
	locale string
	chain  []map[string]string
}

var (
	global     *I18n
	globalOnce sync.Once
)

// Global 返回全局 i18n 实例
// Global returns the global i18n instance
func Global() *I18n {
	globalOnce.Do(func() {
		if global == nil {
			global = New("")
		}
	})
	return global
}

// Init 初始化全局 i18n 实例
// Init initializes the global i18n instance
func Init(locale string) {
	global = New(locale)
}

// T 全局翻译快捷函数
// T is a global translation shortcut
func T(key string, args ...any) string {
	return Global().T(key, args...)
}

// New 创建 i18n 实例；locale 为空时从环境检测
// New creates an i18n instance; an empty locale is detected from the
// environment
func New(locale string) *I18n {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DetectLocale()
	}
	locale = normalizeLocale(locale)

	chain := make([]map[string]string, 0, 2)
	if cat, ok := catalogs[locale]; ok && locale != "en" {
		chain = append(chain, cat)
	}
	chain = append(chain, EnMessages)

	return &I18n{locale: locale, chain: chain}
}

// T 沿目录链查找 key；全链未命中时原样返回 key
// T walks the catalog chain for key; a full miss returns the key verbatim
func (i *I18n) T(key string, args ...any) string {
	for _, cat := range i.chain {
		tmpl, ok := cat[key]
		if !ok {
			continue
		}
		if len(args) == 0 {
			return tmpl
		}
		return fmt.Sprintf(tmpl, args...)
	}
	return key
}

// Locale 返回当前 locale
// Locale returns current locale
func (i *I18n) Locale() string {
	return i.locale
}

// DetectLocale 从环境变量检测 locale
// DetectLocale detects the locale from environment variables
func DetectLocale() string {
	for _, env := range []string{"SNIPPAD_LANG", "LANG", "LC_ALL", "LC_MESSAGES"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return normalizeLocale(v)
		}
	}
	return "en"
}

// normalizeLocale 统一 locale 写法：去编码后缀、下划线转连字符，
// 中文统一到 zh-CN
// normalizeLocale canonicalizes a locale string: strips the encoding suffix,
// converts underscores to hyphens and folds Chinese variants into zh-CN
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "en"
	}
	s, _, _ = strings.Cut(s, ".")
	s = strings.ReplaceAll(s, "_", "-")

	switch lower := strings.ToLower(s); {
	case strings.HasPrefix(lower, "zh"):
		return "zh-CN"
	case strings.HasPrefix(lower, "en"):
		return "en"
	default:
		return s
	}
}
