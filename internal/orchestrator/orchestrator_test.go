package orchestrator

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"snippad/internal/chat"
	"snippad/internal/provider"
	"snippad/internal/snippet"
)

type fakeProvider struct {
	reply       string
	err         error
	lastPrompt  string
	lastHistory []chat.Message
	calls       int
	model       string
}

func (f *fakeProvider) Generate(_ context.Context, prompt string, history []chat.Message) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	f.lastHistory = history
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) ListModels(context.Context) ([]provider.ModelInfo, error) { return nil, nil }
func (f *fakeProvider) Name() string                                             { return "fake" }
func (f *fakeProvider) CurrentModel() string                                     { return f.model }
func (f *fakeProvider) SetModel(m string) error                                  { f.model = m; return nil }

func newTestSession(fake *fakeProvider) *Session {
	return New(Options{
		Provider:        fake,
		DefaultLanguage: "python",
		DefaultFilename: "generated_script.py",
		Now:             func() time.Time { return time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC) },
	})
}

func TestGenerateSnippet(t *testing.T) {
	fake := &fakeProvider{reply: "```python\nprint(1)\n```"}
	s := newTestSession(fake)

	sn, err := s.GenerateSnippet(context.Background(), "print the number one", "one.py", "Python")
	if err != nil {
		t.Fatal(err)
	}
	if sn.Content != "print(1)" {
		t.Fatalf("content=%q", sn.Content)
	}
	if sn.Filename != "one.py" || sn.Language != "python" {
		t.Fatalf("snippet=%+v", sn)
	}
	if !strings.HasPrefix(sn.Description, "Generated from prompt: print the number one") {
		t.Fatalf("description=%q", sn.Description)
	}
	if !s.IsSelected(sn.ID) {
		t.Fatal("new snippet must be auto-selected")
	}
	if !strings.Contains(fake.lastPrompt, "Language: python") {
		t.Fatalf("prompt=%q", fake.lastPrompt)
	}
	// 生成流程不写会话记录 / the generate flow does not log
	if len(s.History()) != 0 {
		t.Fatalf("history=%d", len(s.History()))
	}
}

func TestGenerateSnippetNoFenceStoresWholeReply(t *testing.T) {
	fake := &fakeProvider{reply: "  print(42)\n"}
	s := newTestSession(fake)

	sn, err := s.GenerateSnippet(context.Background(), "answer", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if sn.Content != "print(42)" {
		t.Fatalf("content=%q", sn.Content)
	}
	// 默认值兜底 / defaults kick in
	if sn.Filename != "generated_script.py" || sn.Language != "python" {
		t.Fatalf("snippet=%+v", sn)
	}
}

func TestGenerateSnippetEmptyFenceIsNoCode(t *testing.T) {
	fake := &fakeProvider{reply: "``````"}
	s := newTestSession(fake)

	_, err := s.GenerateSnippet(context.Background(), "anything", "", "")
	if !errors.Is(err, ErrNoCode) {
		t.Fatalf("err=%v", err)
	}
	if len(s.Snippets()) != 0 {
		t.Fatal("no snippet must be created")
	}
}

func TestGenerateSnippetEmptyPrompt(t *testing.T) {
	s := newTestSession(&fakeProvider{})
	if _, err := s.GenerateSnippet(context.Background(), "  ", "", ""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("err=%v", err)
	}
}

func TestUnconfiguredSessionRejectsAIOps(t *testing.T) {
	s := New(Options{})
	if _, err := s.GenerateSnippet(context.Background(), "p", "", ""); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("generate err=%v", err)
	}
	if _, err := s.Explain(context.Background(), "code"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("explain err=%v", err)
	}
	if _, err := s.SendChatTurn(context.Background(), "hi", ModeCorrect); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("chat err=%v", err)
	}

	// Configure 之后恢复 / recovers after Configure
	s.Configure(&fakeProvider{reply: "ok"})
	if _, err := s.Explain(context.Background(), "code"); err != nil {
		t.Fatal(err)
	}
}

func TestInFlightTurnIsRejected(t *testing.T) {
	s := newTestSession(&fakeProvider{reply: "ok"})
	s.state = StateAwaitingAIResponse

	if _, err := s.Explain(context.Background(), "code"); !errors.Is(err, ErrBusy) {
		t.Fatalf("err=%v", err)
	}
	s.state = StateIdle
	if _, err := s.Explain(context.Background(), "code"); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateIdle {
		t.Fatal("session must return to idle")
	}
}

func TestExplainWrapsCodeInFence(t *testing.T) {
	fake := &fakeProvider{reply: "It prints one."}
	s := newTestSession(fake)

	text, err := s.Explain(context.Background(), "print(1)")
	if err != nil {
		t.Fatal(err)
	}
	if text != "It prints one." {
		t.Fatalf("text=%q", text)
	}
	if !strings.Contains(fake.lastPrompt, "```\nprint(1)\n```") {
		t.Fatalf("prompt=%q", fake.lastPrompt)
	}
	if len(s.History()) != 0 || len(s.Snippets()) != 0 {
		t.Fatal("explain must not touch log or store")
	}
}

func TestCorrectTurnEmbedsSubjectAndExtractsSnippet(t *testing.T) {
	fake := &fakeProvider{reply: "Try this instead:\n```go\nreturn nil\n```\nThat fixes it."}
	s := newTestSession(fake)
	s.store.Append(snippet.Snippet{ID: "a1", Filename: "a.go", Language: "go", Content: "return err"})

	res, err := s.SendChatTurn(context.Background(), "fix the return", ModeCorrect)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.lastPrompt, "filename: a.go") || !strings.Contains(fake.lastPrompt, "return err") {
		t.Fatalf("prompt=%q", fake.lastPrompt)
	}
	if fake.lastHistory != nil {
		t.Fatal("correct mode must not pass history alongside embedded context")
	}
	if res.Snippet == nil {
		t.Fatal("expected corrected snippet")
	}
	if res.Snippet.Filename != "corrected_150405.go" {
		t.Fatalf("filename=%q", res.Snippet.Filename)
	}
	if res.Snippet.Language != "go" || res.Snippet.Content != "return nil" {
		t.Fatalf("snippet=%+v", res.Snippet)
	}
	if res.Snippet.Description != "Corrected/refined via chat" {
		t.Fatalf("description=%q", res.Snippet.Description)
	}
	if !s.IsSelected(res.Snippet.ID) {
		t.Fatal("corrected snippet must be auto-selected")
	}

	history := s.History()
	if len(history) != 2 {
		t.Fatalf("history=%d", len(history))
	}
	if history[0].Role != chat.RoleUser || history[1].Role != chat.RoleModel {
		t.Fatalf("roles=%q,%q", history[0].Role, history[1].Role)
	}
}

func TestCorrectTurnPrefersMostRecentlySelectedSubject(t *testing.T) {
	fake := &fakeProvider{reply: "no code here"}
	s := newTestSession(fake)
	s.store.Append(snippet.Snippet{ID: "a1", Filename: "a.py", Language: "python", Content: "aaa"})
	s.store.Append(snippet.Snippet{ID: "a2", Filename: "b.py", Language: "python", Content: "bbb"})
	s.store.SetSelected("a1", true)

	if _, err := s.SendChatTurn(context.Background(), "fix it", ModeCorrect); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.lastPrompt, "filename: a.py") {
		t.Fatalf("prompt=%q", fake.lastPrompt)
	}
}

func TestCorrectTurnWithoutSnippetsUsesPlainPrompt(t *testing.T) {
	fake := &fakeProvider{reply: "General advice."}
	s := newTestSession(fake)

	res, err := s.SendChatTurn(context.Background(), "what is a slice", ModeCorrect)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(fake.lastPrompt, "No specific code snippet context") {
		t.Fatalf("prompt=%q", fake.lastPrompt)
	}
	if res.Snippet != nil {
		t.Fatal("no snippet expected from prose reply")
	}
}

func TestCorrectTurnProseOnlyReplyAddsNoSnippet(t *testing.T) {
	fake := &fakeProvider{reply: "The code already looks correct."}
	s := newTestSession(fake)
	s.store.Append(snippet.Snippet{ID: "a1", Filename: "a.py", Language: "python", Content: "x"})

	res, err := s.SendChatTurn(context.Background(), "check it", ModeCorrect)
	if err != nil {
		t.Fatal(err)
	}
	if res.Snippet != nil {
		t.Fatal("prose-only reply must not add a snippet")
	}
	if len(s.Snippets()) != 1 {
		t.Fatalf("snippets=%d", len(s.Snippets()))
	}
}

func TestPlainChatTurnPassesPriorHistory(t *testing.T) {
	fake := &fakeProvider{reply: "second answer"}
	s := newTestSession(fake)
	if _, err := s.SendChatTurn(context.Background(), "first question", ModeGenerate); err != nil {
		t.Fatal(err)
	}
	if len(fake.lastHistory) != 0 {
		t.Fatalf("first turn history=%d", len(fake.lastHistory))
	}
	if _, err := s.SendChatTurn(context.Background(), "second question", ModeGenerate); err != nil {
		t.Fatal(err)
	}
	// 第二回合带上第一回合的两条消息 / second turn carries both prior messages
	if len(fake.lastHistory) != 2 {
		t.Fatalf("second turn history=%d", len(fake.lastHistory))
	}
	if fake.lastHistory[0].Text() != "first question" {
		t.Fatalf("history[0]=%q", fake.lastHistory[0].Text())
	}
}

func TestGatewayFailureAppendsApology(t *testing.T) {
	fake := &fakeProvider{err: errors.New("boom")}
	s := newTestSession(fake)
	s.store.Append(snippet.Snippet{ID: "a1", Filename: "a.py", Language: "python", Content: "x"})

	_, err := s.SendChatTurn(context.Background(), "fix it", ModeCorrect)
	if err == nil {
		t.Fatal("expected error")
	}

	history := s.History()
	modelMsgs := 0
	for _, m := range history {
		if m.Role == chat.RoleModel {
			modelMsgs++
			if m.Text() != ApologyText {
				t.Fatalf("model text=%q", m.Text())
			}
		}
	}
	if modelMsgs != 1 {
		t.Fatalf("model messages=%d", modelMsgs)
	}
	if len(s.Snippets()) != 1 {
		t.Fatal("store must be unchanged on failure")
	}
	if s.State() != StateIdle {
		t.Fatal("session must return to idle after failure")
	}
}

func TestBuildDownload(t *testing.T) {
	s := newTestSession(&fakeProvider{})
	if _, err := s.BuildDownload(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("err=%v", err)
	}

	s.store.Append(snippet.Snippet{ID: "a1", Filename: "a.py", Language: "python", Content: "print(1)"})
	s.store.Append(snippet.Snippet{ID: "a2", Filename: "b.py", Language: "python", Content: "print(2)"})
	s.ToggleSelection("a2", false)

	data, err := s.BuildDownload()
	if err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	if len(zr.File) != 1 || zr.File[0].Name != "a.py" {
		t.Fatalf("entries=%v", zr.File)
	}
}
