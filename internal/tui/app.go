package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"snippad/internal/archive"
	"snippad/internal/contextmgr"
	"snippad/internal/i18n"
	"snippad/internal/orchestrator"
)

// PanelID 面板标识
// PanelID identifies a panel
type PanelID int

const (
	PanelChat PanelID = iota
	PanelSnippets
)

// --- Tea Messages ---

// TurnDoneMsg 聊天回合完成
// TurnDoneMsg indicates a chat turn finished
type TurnDoneMsg struct {
	Result orchestrator.TurnResult
	Err    error
}

// GenerateDoneMsg 生成流程完成
// GenerateDoneMsg indicates the generate flow finished
type GenerateDoneMsg struct {
	Filename string
	Err      error
}

// ExplainDoneMsg 解释流程完成
// ExplainDoneMsg indicates the explain flow finished
type ExplainDoneMsg struct {
	Text string
	Err  error
}

// ExportDoneMsg 导出完成
// ExportDoneMsg indicates the archive export finished
type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}

// ConfigureFunc 由入口注入：用运行期输入的 API Key 构建网关
// ConfigureFunc is injected by the entrypoint: builds a gateway from an API
// key entered at runtime
type ConfigureFunc func(apiKey string) error

// App Bubble Tea 主 Model
// App is the main Bubble Tea model
type App struct {
	session   *orchestrator.Session
	configure ConfigureFunc

	// 布局 / Layout
	width  int
	height int

	// 面板 / Panels
	activePanel PanelID
	chatView    viewport.Model
	input       textarea.Model
	cursor      int

	// 状态 / State
	mode        orchestrator.Mode
	thinking    bool
	enteringKey bool
	lastNotice  string
	lastError   string
	tokenLimit  int
	exportDir   string

	// 纯字符串而非 strings.Builder：model 按值在 Update 间复制，
	// Builder 的复制检查会在第二次写入时 panic
	// A plain string, not strings.Builder: the model is copied by value
	// between Updates and Builder's copy check panics on the second write
	chatContent string

	theme  Theme
	keys   KeyMap
	locale *i18n.I18n
}

// NewApp 创建 TUI 应用。session 未配置网关时先进入 API Key 输入状态。
// NewApp creates the TUI application. When the session has no gateway it
// starts in API-key entry state.
func NewApp(session *orchestrator.Session, configure ConfigureFunc, tokenLimit int, exportDir string) App {
	ta := textarea.New()
	ta.Placeholder = i18n.T("input.placeholder")
	ta.CharLimit = 8192
	ta.SetHeight(3)
	ta.Focus()

	enteringKey := !session.Configured()
	if enteringKey {
		ta.Placeholder = i18n.T("input.api_key")
	}
	if tokenLimit <= 0 {
		tokenLimit = 24000
	}

	return App{
		session:     session,
		configure:   configure,
		activePanel: PanelChat,
		input:       ta,
		mode:        orchestrator.ModeGenerate,
		enteringKey: enteringKey,
		tokenLimit:  tokenLimit,
		exportDir:   exportDir,
		theme:       DarkTheme(),
		keys:        DefaultKeyMap(),
		locale:      i18n.Global(),
	}
}

func (a App) Init() tea.Cmd {
	return textarea.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.SwitchPanel):
			a.activePanel = (a.activePanel + 1) % 2
			return a, nil
		case key.Matches(msg, a.keys.SwitchMode):
			a.mode = nextMode(a.mode)
			return a, nil
		case key.Matches(msg, a.keys.Export):
			return a, a.exportCmd()
		}
		if a.activePanel == PanelSnippets {
			return a.updateSnippetPanel(msg)
		}
		if key.Matches(msg, a.keys.Submit) {
			return a.submit()
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.relayout()
		return a, nil

	case GenerateDoneMsg:
		a.thinking = false
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.lastNotice = a.locale.T("result.generated", msg.Filename)
		}
		return a, nil

	case ExplainDoneMsg:
		a.thinking = false
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.appendChat("\n" + a.theme.TitleStyle.Render(a.locale.T("result.explanation")) + "\n" + RenderMarkdown(msg.Text, a.chatWidth()))
		}
		return a, nil

	case TurnDoneMsg:
		a.thinking = false
		if msg.Err != nil {
			a.setError(msg.Err)
			a.appendChat("\n" + a.theme.ModelStyle.Render("model:") + " " + orchestrator.ApologyText)
		} else {
			a.appendChat("\n" + a.theme.ModelStyle.Render("model:") + "\n" + RenderMarkdown(msg.Result.Reply, a.chatWidth()))
			if msg.Result.Snippet != nil {
				a.lastNotice = a.locale.T("result.corrected", msg.Result.Snippet.Filename)
			}
		}
		return a, nil

	case ExportDoneMsg:
		if msg.Err != nil {
			a.setError(msg.Err)
		} else {
			a.lastNotice = a.locale.T("result.exported", msg.Count, msg.Path)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// updateSnippetPanel 片段面板按键：上下移动光标、空格切换勾选
// updateSnippetPanel handles snippet panel keys: cursor movement and
// selection toggling
func (a App) updateSnippetPanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snippets := a.session.Snippets()
	switch {
	case key.Matches(msg, a.keys.RowUp):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, a.keys.RowDown):
		if a.cursor < len(snippets)-1 {
			a.cursor++
		}
	case key.Matches(msg, a.keys.Toggle):
		if a.cursor >= 0 && a.cursor < len(snippets) {
			id := snippets[a.cursor].ID
			a.session.ToggleSelection(id, !a.session.IsSelected(id))
		}
	}
	return a, nil
}

func (a App) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.input.Value())
	if text == "" {
		return a, nil
	}
	a.input.Reset()
	a.lastError = ""
	a.lastNotice = ""

	if a.enteringKey {
		if err := a.configure(text); err != nil {
			a.setError(err)
			return a, nil
		}
		a.enteringKey = false
		a.input.Placeholder = a.locale.T("input.placeholder")
		a.lastNotice = a.locale.T("status.ready")
		return a, nil
	}

	a.thinking = true
	session := a.session
	mode := a.mode
	switch mode {
	case orchestrator.ModeGenerate:
		a.appendChat("\n" + a.theme.UserStyle.Render("you:") + " " + text)
		return a, func() tea.Msg {
			sn, err := session.GenerateSnippet(context.Background(), text, "", "")
			return GenerateDoneMsg{Filename: sn.Filename, Err: err}
		}
	case orchestrator.ModeExplain:
		a.appendChat("\n" + a.theme.UserStyle.Render("you:") + " " + a.locale.T("mode.explain") + " …")
		return a, func() tea.Msg {
			out, err := session.Explain(context.Background(), text)
			return ExplainDoneMsg{Text: out, Err: err}
		}
	default:
		a.appendChat("\n" + a.theme.UserStyle.Render("you:") + " " + text)
		return a, func() tea.Msg {
			res, err := session.SendChatTurn(context.Background(), text, mode)
			return TurnDoneMsg{Result: res, Err: err}
		}
	}
}

// exportCmd 把选中片段写成 zip 文件
// exportCmd writes the selected snippets as a zip file
func (a App) exportCmd() tea.Cmd {
	session := a.session
	dir := a.exportDir
	return func() tea.Msg {
		data, err := session.BuildDownload()
		if err != nil {
			return ExportDoneMsg{Err: err}
		}
		path := filepath.Join(dir, archive.Filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return ExportDoneMsg{Err: err}
		}
		count := 0
		for _, sn := range session.Snippets() {
			if session.IsSelected(sn.ID) {
				count++
			}
		}
		return ExportDoneMsg{Path: path, Count: count}
	}
}

func (a *App) setError(err error) {
	a.lastError = a.locale.T("error.gateway", err)
	switch {
	case err == nil:
		a.lastError = ""
	case errors.Is(err, orchestrator.ErrNotConfigured):
		a.lastError = a.locale.T("error.not_configured")
	case errors.Is(err, orchestrator.ErrBusy):
		a.lastError = a.locale.T("error.busy")
	case errors.Is(err, orchestrator.ErrNoSelection):
		a.lastError = a.locale.T("error.no_selection")
	case errors.Is(err, orchestrator.ErrNoCode):
		a.lastError = a.locale.T("result.no_code")
	}
}

func (a *App) appendChat(s string) {
	a.chatContent += s
	a.chatView.SetContent(a.chatContent)
	a.chatView.GotoBottom()
}

func (a *App) relayout() {
	inputHeight := 5
	panelHeight := a.height - inputHeight - 3
	if panelHeight < 3 {
		panelHeight = 3
	}
	a.chatView = viewport.New(a.chatWidth(), panelHeight)
	a.chatView.SetContent(a.chatContent)
	a.input.SetWidth(a.width - 4)
}

func (a App) chatWidth() int {
	w := a.width * 2 / 3
	if w <= 0 {
		w = 80
	}
	return w - 4
}

func (a App) View() string {
	title := a.theme.TitleStyle.Render("snippad")

	chatPanel := a.theme.PanelStyle
	snipPanel := a.theme.PanelStyle
	if a.activePanel == PanelChat {
		chatPanel = a.theme.ActivePanel
	} else {
		snipPanel = a.theme.ActivePanel
	}

	chat := chatPanel.Width(a.chatWidth()).Render(
		a.theme.TitleStyle.Render(a.locale.T("panel.chat")) + "\n" + a.chatView.View())

	listWidth := a.width - a.chatWidth() - 6
	if listWidth < 20 {
		listWidth = 20
	}
	list := a.locale.T("panel.snippets") + "\n" +
		RenderSnippetList(a.session.Snippets(), a.session.IsSelected, a.cursor, a.theme)
	snips := snipPanel.Width(listWidth).Render(list)

	body := lipgloss.JoinHorizontal(lipgloss.Top, chat, snips)

	status := a.statusLine()
	if a.lastError != "" {
		status = a.theme.ErrorStyle.Render(a.lastError)
	} else if a.lastNotice != "" {
		status = a.theme.SuccessStyle.Render(a.lastNotice)
	}

	return strings.Join([]string{title, body, a.input.View(), status}, "\n")
}

// statusLine 状态栏：模式、模型、token 估算
// statusLine renders mode, model and the token estimate
func (a App) statusLine() string {
	state := a.locale.T("status.ready")
	if a.thinking {
		state = a.locale.T("status.thinking")
	}
	tokens := contextmgr.EstimateTokens(a.session.History())
	return a.theme.StatusBarStyle.Render(fmt.Sprintf(
		"%s · %s: %s · %s: %s · %s: %d/%d",
		state,
		a.locale.T("status.mode"), a.locale.T("mode."+string(a.mode)),
		a.locale.T("status.model"), a.session.CurrentModel(),
		a.locale.T("status.tokens"), tokens, a.tokenLimit,
	))
}

func nextMode(m orchestrator.Mode) orchestrator.Mode {
	switch m {
	case orchestrator.ModeGenerate:
		return orchestrator.ModeExplain
	case orchestrator.ModeExplain:
		return orchestrator.ModeCorrect
	default:
		return orchestrator.ModeGenerate
	}
}
