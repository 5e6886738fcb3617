// Package extract pulls fenced code regions out of free-form model output.
package extract

import (
	"strings"
	"unicode"
)

// fenceMarker 围栏定界符 / fence delimiter
const fenceMarker = "```"

// Block 从模型回复中提取出的一段代码
// Block is one code region extracted from a model reply
type Block struct {
	Language string // 语言提示（小写）或调用方默认值 / lowercased hint or caller default
	Content  string // 去除首尾空白后的代码 / trimmed code content
}

// HasFence 判断文本是否包含围栏标记
// HasFence reports whether the text contains a fence marker at all
func HasFence(text string) bool {
	return strings.Contains(text, fenceMarker)
}

// regions 用双状态扫描器（栏外/栏内）切出所有围栏内区段。
// 未闭合的尾部围栏同样产出一个区段；相邻的两个标记产出空区段。
// regions walks the text with a two-state scanner (outside-fence / inside-fence)
// and collects every inside segment. An unterminated trailing fence still
// yields a region; two adjacent markers yield an empty one.
func regions(text string) []string {
	var out []string
	inside := false
	rest := text
	for {
		i := strings.Index(rest, fenceMarker)
		if i < 0 {
			if inside {
				out = append(out, rest)
			}
			return out
		}
		if inside {
			out = append(out, rest[:i])
		}
		inside = !inside
		rest = rest[i+len(fenceMarker):]
	}
}

// splitHint 按首行拆出语言提示；首行不是合法提示时整段视为代码。
// splitHint separates a language hint on the region's first line; if the first
// line is not a valid hint the whole region is treated as code.
func splitHint(region, defaultLang string) Block {
	first, rest, found := strings.Cut(region, "\n")
	if found {
		hint := strings.ToLower(strings.TrimSpace(first))
		if isLanguageHint(hint) {
			return Block{Language: hint, Content: strings.TrimSpace(rest)}
		}
	}
	return Block{Language: defaultLang, Content: strings.TrimSpace(region)}
}

// isLanguageHint 判断是否为语言提示：短的字母开头 token，且不含
// 空格、冒号、分号、大括号、小括号、井号。
// isLanguageHint reports whether s looks like a language hint: a short token
// starting with a letter and free of space, colon, semicolon, braces,
// parentheses and hash.
func isLanguageHint(s string) bool {
	if s == "" || len(s) > 32 {
		return false
	}
	for _, r := range s {
		switch r {
		case ' ', ':', ';', '{', '}', '(', ')', '#':
			return false
		}
	}
	r := []rune(s)[0]
	return unicode.IsLetter(r)
}

// First 返回第一个围栏区段（generate 流程）。文本完全不含围栏时，
// 整个去空白后的文本作为内容返回。该函数从不失败。
// First returns the first fenced region (generate flow). When the text has no
// fence marker at all the whole trimmed text is returned as content. Never
// fails.
func First(text, defaultLang string) Block {
	regs := regions(text)
	if len(regs) == 0 {
		return Block{Language: defaultLang, Content: strings.TrimSpace(text)}
	}
	return splitHint(regs[0], defaultLang)
}

// FirstNonEmpty 返回第一个提取内容非空的围栏区段（correct 流程），
// 空区段被跳过。没有可用区段时 ok 为 false。
// FirstNonEmpty returns the first fenced region whose extracted content is
// non-empty (correct flow); empty regions are skipped. ok is false when no
// usable region exists.
func FirstNonEmpty(text, defaultLang string) (Block, bool) {
	for _, reg := range regions(text) {
		b := splitHint(reg, defaultLang)
		if b.Content != "" {
			return b, true
		}
	}
	return Block{}, false
}

// Ext 返回语言对应的常见文件扩展名
// Ext maps a language to its typical file extension
func Ext(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "go", "golang":
		return "go"
	case "python", "py":
		return "py"
	case "bash", "shell", "sh":
		return "sh"
	case "javascript", "js":
		return "js"
	case "typescript", "ts":
		return "ts"
	case "rust":
		return "rs"
	case "c":
		return "c"
	case "cpp", "c++":
		return "cpp"
	case "java":
		return "java"
	case "ruby", "rb":
		return "rb"
	case "html":
		return "html"
	case "css":
		return "css"
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "sql":
		return "sql"
	default:
		return "txt"
	}
}
