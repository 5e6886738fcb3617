package extract

import "testing"

func TestFirstWithLanguageHint(t *testing.T) {
	text := "Here:\n```python\nprint(1)\n```\nDone"
	b := First(text, "unknown")
	if b.Language != "python" {
		t.Fatalf("language=%q", b.Language)
	}
	if b.Content != "print(1)" {
		t.Fatalf("content=%q", b.Content)
	}
}

func TestFirstNoFence(t *testing.T) {
	b := First("  just plain text  ", "python")
	if b.Language != "python" {
		t.Fatalf("language=%q", b.Language)
	}
	if b.Content != "just plain text" {
		t.Fatalf("content=%q", b.Content)
	}
}

func TestFirstHintNotStrippedWhenNotAToken(t *testing.T) {
	// 首行含括号，不是语言提示，应整段保留
	// First line contains parentheses, not a hint, whole region kept
	text := "```\nprint(1)\nprint(2)\n```"
	b := First(text, "unknown")
	if b.Language != "unknown" {
		t.Fatalf("language=%q", b.Language)
	}
	if b.Content != "print(1)\nprint(2)" {
		t.Fatalf("content=%q", b.Content)
	}
}

func TestFirstSingleLineRegion(t *testing.T) {
	b := First("```x = 1```", "unknown")
	if b.Content != "x = 1" {
		t.Fatalf("content=%q", b.Content)
	}
	if b.Language != "unknown" {
		t.Fatalf("language=%q", b.Language)
	}
}

func TestFirstHintIsLowercased(t *testing.T) {
	b := First("```Go\nfmt.Println(1)\n```", "unknown")
	if b.Language != "go" {
		t.Fatalf("language=%q", b.Language)
	}
	if b.Content != "fmt.Println(1)" {
		t.Fatalf("content=%q", b.Content)
	}
}

func TestFirstNonEmptySkipsEmptyRegion(t *testing.T) {
	text := "empty first: ``````\nthen ```go\nreturn 1\n```"
	b, ok := FirstNonEmpty(text, "python")
	if !ok {
		t.Fatal("expected a non-empty region")
	}
	if b.Language != "go" || b.Content != "return 1" {
		t.Fatalf("got %+v", b)
	}
}

func TestFirstNonEmptyAllEmpty(t *testing.T) {
	if _, ok := FirstNonEmpty("`````` and ``` \n```", "python"); ok {
		t.Fatal("expected no usable region")
	}
}

func TestFirstNonEmptyNoFence(t *testing.T) {
	if _, ok := FirstNonEmpty("no code here", "python"); ok {
		t.Fatal("expected no region for prose-only text")
	}
}

func TestUnterminatedFence(t *testing.T) {
	// 未闭合围栏，尾部仍作为代码区段
	// Unterminated fence: the trailing segment still counts as a region
	b := First("start\n```python\nx = 1", "unknown")
	if b.Language != "python" || b.Content != "x = 1" {
		t.Fatalf("got %+v", b)
	}
}

func TestMultipleRegionsFirstWins(t *testing.T) {
	text := "```python\na = 1\n```\nmiddle\n```go\nb := 2\n```"
	b := First(text, "unknown")
	if b.Language != "python" || b.Content != "a = 1" {
		t.Fatalf("got %+v", b)
	}
}

func TestIsLanguageHint(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"python", true},
		{"go", true},
		{"c++", true},
		{"", false},
		{"python console", false},
		{"x = (1)", false},
		{"# comment", false},
		{"key: value", false},
		{"123", false},
		{"averyveryveryverylongtokenthatcannotbealanguage", false},
	}
	for _, c := range cases {
		if got := isLanguageHint(c.in); got != c.want {
			t.Fatalf("isLanguageHint(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestExt(t *testing.T) {
	if Ext("Python") != "py" {
		t.Fatalf("python ext=%q", Ext("Python"))
	}
	if Ext("weirdlang") != "txt" {
		t.Fatalf("fallback ext=%q", Ext("weirdlang"))
	}
}
