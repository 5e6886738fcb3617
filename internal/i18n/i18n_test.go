package i18n

import "testing"

func TestEnglishFallback(t *testing.T) {
	i := New("en")
	if got := i.T("panel.chat"); got != "Chat" {
		t.Fatalf("got %q", got)
	}
	// 未知 key 原样返回 / unknown keys are returned verbatim
	if got := i.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("got %q", got)
	}
}

func TestChineseOverlay(t *testing.T) {
	i := New("zh_CN.UTF-8")
	if i.Locale() != "zh-CN" {
		t.Fatalf("locale=%q", i.Locale())
	}
	if got := i.T("panel.chat"); got != "对话" {
		t.Fatalf("got %q", got)
	}
	// 中文目录缺失的 key 落回英文 / keys missing in zh fall back to English
	if got := i.T("repl.help"); got == "repl.help" {
		t.Fatal("expected English fallback for repl.help")
	}
}

func TestFormatArgs(t *testing.T) {
	i := New("en")
	got := i.T("result.exported", 3, "code_snippets.zip")
	if got != "Wrote 3 snippet(s) to code_snippets.zip" {
		t.Fatalf("got %q", got)
	}
}

func TestUnknownLocaleUsesEnglish(t *testing.T) {
	i := New("fr_FR.UTF-8")
	if got := i.T("panel.chat"); got != "Chat" {
		t.Fatalf("got %q", got)
	}
	if i.Locale() != "fr-FR" {
		t.Fatalf("locale=%q", i.Locale())
	}
}
