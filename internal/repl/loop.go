// Package repl provides the plain-terminal front end: a readline loop with
// slash commands over one snippet session.
// repl 包提供纯终端前端：基于 readline 的命令循环，操作单个片段会话。
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"snippad/internal/archive"
	"snippad/internal/i18n"
	"snippad/internal/orchestrator"
)

// Loop 持有 REPL 状态：会话、输入源与当前模式
// Loop holds REPL state: the session, input source and current mode
type Loop struct {
	session   *orchestrator.Session
	in        LineInput
	out       io.Writer
	errOut    io.Writer
	mode      orchestrator.Mode
	exportDir string
}

// New 创建 REPL 循环
// New creates a REPL loop
func New(session *orchestrator.Session, in LineInput, out, errOut io.Writer, exportDir string) *Loop {
	if exportDir == "" {
		exportDir = "."
	}
	return &Loop{
		session:   session,
		in:        in,
		out:       out,
		errOut:    errOut,
		mode:      orchestrator.ModeGenerate,
		exportDir: exportDir,
	}
}

// Run 运行循环直到 /quit 或 EOF
// Run runs the loop until /quit or EOF
func (l *Loop) Run(ctx context.Context) error {
	fmt.Fprintln(l.out, i18n.T("repl.welcome"))

	for {
		line, err := l.in.ReadLine(fmt.Sprintf("[%s] > ", l.mode))
		if err != nil {
			switch {
			case errors.Is(err, readline.ErrInterrupt):
				fmt.Fprintln(l.out)
				continue
			case errors.Is(err, io.EOF):
				fmt.Fprintln(l.out, i18n.T("repl.bye"))
				return nil
			default:
				return fmt.Errorf("read input: %w", err)
			}
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			exit := l.handleCommand(input)
			if exit {
				fmt.Fprintln(l.out, i18n.T("repl.bye"))
				return nil
			}
			continue
		}

		l.runTurn(ctx, input)
	}
}

// handleCommand 处理斜杠命令，返回是否退出
// handleCommand handles a slash command and reports whether to exit
func (l *Loop) handleCommand(input string) (exit bool) {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(l.out, i18n.T("repl.help"))
	case "/mode":
		l.cmdMode(args)
	case "/list":
		l.cmdList()
	case "/select":
		l.cmdSelect(args)
	case "/export":
		l.cmdExport(args)
	case "/model":
		l.cmdModel(args)
	default:
		fmt.Fprintf(l.errOut, "unknown command: %s\n", cmd)
		fmt.Fprintln(l.out, i18n.T("repl.help"))
	}
	return false
}

func (l *Loop) cmdMode(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(l.out, "%s: %s\n", i18n.T("status.mode"), l.mode)
		return
	}
	switch strings.ToLower(args[0]) {
	case string(orchestrator.ModeGenerate):
		l.mode = orchestrator.ModeGenerate
	case string(orchestrator.ModeExplain):
		l.mode = orchestrator.ModeExplain
	case string(orchestrator.ModeCorrect):
		l.mode = orchestrator.ModeCorrect
	default:
		fmt.Fprintf(l.errOut, "unknown mode: %s\n", args[0])
		return
	}
	fmt.Fprintf(l.out, "%s: %s\n", i18n.T("status.mode"), l.mode)
}

func (l *Loop) cmdList() {
	snippets := l.session.Snippets()
	if len(snippets) == 0 {
		fmt.Fprintln(l.out, i18n.T("snippets.empty"))
		return
	}
	for i, sn := range snippets {
		box := " "
		if l.session.IsSelected(sn.ID) {
			box = "x"
		}
		fmt.Fprintf(l.out, "%2d [%s] %s (%s)", i+1, box, sn.Filename, sn.Language)
		if sn.Description != "" {
			fmt.Fprintf(l.out, "  %s", sn.Description)
		}
		fmt.Fprintln(l.out)
	}
}

func (l *Loop) cmdSelect(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(l.errOut, "usage: /select <n> [on|off]")
		return
	}
	n, err := strconv.Atoi(args[0])
	snippets := l.session.Snippets()
	if err != nil || n < 1 || n > len(snippets) {
		fmt.Fprintf(l.errOut, "no such snippet: %s\n", args[0])
		return
	}
	id := snippets[n-1].ID
	selected := !l.session.IsSelected(id)
	if len(args) > 1 {
		selected = strings.EqualFold(args[1], "on")
	}
	l.session.ToggleSelection(id, selected)
	l.cmdList()
}

func (l *Loop) cmdExport(args []string) {
	data, err := l.session.BuildDownload()
	if err != nil {
		l.printError(err)
		return
	}
	path := filepath.Join(l.exportDir, archive.Filename)
	if len(args) > 0 {
		path = args[0]
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(l.errOut, "write archive: %v\n", err)
		return
	}
	count := 0
	for _, sn := range l.session.Snippets() {
		if l.session.IsSelected(sn.ID) {
			count++
		}
	}
	fmt.Fprintln(l.out, i18n.T("result.exported", count, path))
}

func (l *Loop) cmdModel(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(l.out, "%s: %s\n", i18n.T("status.model"), l.session.CurrentModel())
		return
	}
	if err := l.session.SetModel(args[0]); err != nil {
		l.printError(err)
		return
	}
	fmt.Fprintf(l.out, "%s: %s\n", i18n.T("status.model"), l.session.CurrentModel())
}

// runTurn 按当前模式分发一次非命令输入
// runTurn dispatches one non-command input according to the current mode
func (l *Loop) runTurn(ctx context.Context, input string) {
	switch l.mode {
	case orchestrator.ModeGenerate:
		sn, err := l.session.GenerateSnippet(ctx, input, "", "")
		if err != nil {
			l.printError(err)
			return
		}
		fmt.Fprintln(l.out, i18n.T("result.generated", sn.Filename))
		fmt.Fprintf(l.out, "```%s\n%s\n```\n", sn.Language, sn.Content)
	case orchestrator.ModeExplain:
		text, err := l.session.Explain(ctx, input)
		if err != nil {
			l.printError(err)
			return
		}
		fmt.Fprintln(l.out, i18n.T("result.explanation"))
		fmt.Fprintln(l.out, text)
	default:
		res, err := l.session.SendChatTurn(ctx, input, l.mode)
		if err != nil {
			l.printError(err)
			fmt.Fprintln(l.out, orchestrator.ApologyText)
			return
		}
		fmt.Fprintln(l.out, res.Reply)
		if res.Snippet != nil {
			fmt.Fprintln(l.out, i18n.T("result.corrected", res.Snippet.Filename))
		}
	}
}

func (l *Loop) printError(err error) {
	switch {
	case errors.Is(err, orchestrator.ErrNotConfigured):
		fmt.Fprintln(l.errOut, i18n.T("error.not_configured"))
	case errors.Is(err, orchestrator.ErrBusy):
		fmt.Fprintln(l.errOut, i18n.T("error.busy"))
	case errors.Is(err, orchestrator.ErrNoSelection):
		fmt.Fprintln(l.errOut, i18n.T("error.no_selection"))
	case errors.Is(err, orchestrator.ErrNoCode):
		fmt.Fprintln(l.errOut, i18n.T("result.no_code"))
	default:
		fmt.Fprintln(l.errOut, i18n.T("error.gateway", err))
	}
}
