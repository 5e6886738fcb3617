package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// LineInput 一行输入的来源：readline 编辑器或普通 reader 兜底
// LineInput is a source of input lines: the readline editor, or a plain
// reader fallback
type LineInput interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// NewLineInput 优先 readline，打不开终端时退回基本输入
// NewLineInput prefers readline and falls back to basic input when no
// terminal can be opened
func NewLineInput(historyPath string) (LineInput, error) {
	rl, err := openEditor(historyPath)
	if err != nil {
		return NewBasicLineInput(os.Stdin, os.Stdout), err
	}
	return &editorInput{rl: rl}, nil
}

func openEditor(historyPath string) (*readline.Instance, error) {
	if historyPath != "" {
		if err := os.MkdirAll(filepath.Dir(historyPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}
	return readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyPath,
		HistorySearchFold: true,
	})
}

type editorInput struct {
	rl *readline.Instance
}

func (e *editorInput) ReadLine(prompt string) (string, error) {
	e.rl.SetPrompt(prompt)
	return e.rl.Readline()
}

func (e *editorInput) Close() error {
	if e == nil || e.rl == nil {
		return nil
	}
	return e.rl.Close()
}

// plainInput 逐行扫描，无编辑能力；测试用脚本也走这条路径
// plainInput scans line by line with no editing; scripted tests use this
// path too
type plainInput struct {
	sc  *bufio.Scanner
	out io.Writer
}

// NewBasicLineInput 创建无行编辑能力的兜底输入
// NewBasicLineInput creates the fallback input without line editing
func NewBasicLineInput(in io.Reader, out io.Writer) LineInput {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &plainInput{sc: sc, out: out}
}

func (p *plainInput) ReadLine(prompt string) (string, error) {
	if p.out != nil {
		fmt.Fprint(p.out, prompt)
	}
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(p.sc.Text(), "\r"), nil
}

func (p *plainInput) Close() error { return nil }
