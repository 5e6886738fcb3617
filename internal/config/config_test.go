package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	work := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	globalDir := filepath.Join(home, ".snippad")
	if err := os.MkdirAll(globalDir, 0o755); err != nil {
		t.Fatal(err)
	}
	globalCfg := `{
  // global
  "provider": {"model": "global-model", "timeout_ms": 1000},
  "session": {"default_language": "Go"}
}`
	if err := os.WriteFile(filepath.Join(globalDir, "config.json"), []byte(globalCfg), 0o644); err != nil {
		t.Fatal(err)
	}
	projectCfg := `{
  "provider": {"model": "project-model"}
}`
	if err := os.WriteFile("snippad.config.json", []byte(projectCfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider.Model != "project-model" {
		t.Fatalf("model=%q", cfg.Provider.Model)
	}
	if cfg.Provider.TimeoutMS != 1000 {
		t.Fatalf("timeout=%d", cfg.Provider.TimeoutMS)
	}
	// 语言归一化为小写 / language is lowercased
	if cfg.Session.DefaultLanguage != "go" {
		t.Fatalf("language=%q", cfg.Session.DefaultLanguage)
	}
}

func TestLoadDefaultsWhenNoFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Session.DefaultLanguage != "python" {
		t.Fatalf("language=%q", cfg.Session.DefaultLanguage)
	}
	if cfg.Session.DefaultFilename != "generated_script.py" {
		t.Fatalf("filename=%q", cfg.Session.DefaultFilename)
	}
	if cfg.Provider.TimeoutMS != 60000 {
		t.Fatalf("timeout=%d", cfg.Provider.TimeoutMS)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SNIPPAD_MODEL", "env-model")
	t.Setenv("SNIPPAD_API_KEY", "env-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider.Model != "env-model" {
		t.Fatalf("model=%q", cfg.Provider.Model)
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Fatalf("api key=%q", cfg.Provider.APIKey)
	}
}

func TestOpenAIKeyFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SNIPPAD_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "oa-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider.APIKey != "oa-key" {
		t.Fatalf("api key=%q", cfg.Provider.APIKey)
	}
}

func TestStripJSONComments(t *testing.T) {
	in := []byte(`{
  // line comment
  "a": "http://not-a-comment", /* block */ "b": 1
}`)
	got := string(stripJSONComments(in))
	if !strings.Contains(got, `"http://not-a-comment"`) {
		t.Fatalf("string literal mangled: %s", got)
	}
	if strings.Contains(got, "line comment") || strings.Contains(got, "block") {
		t.Fatalf("comment survived: %s", got)
	}
}
