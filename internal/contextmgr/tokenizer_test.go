package contextmgr

import (
	"testing"

	"snippad/internal/chat"
)

func TestCountTextNonZero(t *testing.T) {
	tok := NewTokenizer("cl100k_base")
	if tok.CountText("hello world, this is a test") == 0 {
		t.Fatal("expected non-zero count")
	}
	if tok.CountText("") != 0 {
		t.Fatal("empty text must count zero")
	}
}

func TestCountMessagesIncludesOverhead(t *testing.T) {
	tok := NewTokenizer("cl100k_base")
	msgs := []chat.Message{
		chat.NewUserMessage("generate a quicksort"),
		chat.NewModelMessage("```python\nprint(1)\n```"),
	}
	single := tok.Count(msgs[:1])
	both := tok.Count(msgs)
	if single <= 0 || both <= single {
		t.Fatalf("single=%d both=%d", single, both)
	}
}

func TestHeuristicFallback(t *testing.T) {
	tok := &Tokenizer{fallback: true}
	if tok.IsPrecise() {
		t.Fatal("fallback tokenizer must not report precise")
	}
	en := tok.CountText("four chars per token roughly")
	if en == 0 {
		t.Fatal("expected non-zero heuristic count")
	}
	// CJK 字符估算应高于等长 ASCII / CJK estimate exceeds equal-length ASCII
	cjk := tok.CountText("代码片段助手")
	ascii := tok.CountText("abcdef")
	if cjk <= ascii {
		t.Fatalf("cjk=%d ascii=%d", cjk, ascii)
	}
}

func TestModelToEncoding(t *testing.T) {
	if modelToEncoding("gpt-4o-mini") != "o200k_base" {
		t.Fatal("gpt-4o should map to o200k_base")
	}
	if modelToEncoding("") != "cl100k_base" {
		t.Fatal("empty model should use cl100k_base")
	}
}
