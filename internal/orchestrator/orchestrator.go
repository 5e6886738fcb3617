// Package orchestrator glues the snippet store, conversation log and AI
// gateway together for one interactive session.
package orchestrator

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"snippad/internal/archive"
	"snippad/internal/chat"
	"snippad/internal/provider"
	"snippad/internal/snippet"
)

// Session 单个用户会话的上下文对象：独占持有片段集合、会话记录与
// 网关客户端，所有状态随会话结束而消失。
// Session is the context object for one user session. It exclusively owns the
// snippet store, conversation log and gateway client; all state dies with the
// session.
type Session struct {
	provider provider.Provider
	store    *snippet.Store
	log      *chat.Log

	defaultLanguage string
	defaultFilename string
	logger          zerolog.Logger
	now             func() time.Time

	mu    sync.Mutex
	state State
}

// Options 会话构造参数 / Session construction options
type Options struct {
	// Provider 可为 nil；此时所有 AI 操作返回 ErrNotConfigured，
	// 直到 Configure 安装网关
	// Provider may be nil; all AI operations return ErrNotConfigured until
	// Configure installs a gateway
	Provider        provider.Provider
	DefaultLanguage string
	DefaultFilename string
	Logger          zerolog.Logger
	// Now 供测试注入时钟 / Now lets tests inject a clock
	Now func() time.Time
}

// New 创建空会话
// New creates an empty session
func New(opts Options) *Session {
	lang := opts.DefaultLanguage
	if lang == "" {
		lang = "python"
	}
	filename := opts.DefaultFilename
	if filename == "" {
		filename = "generated_script.py"
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		provider:        opts.Provider,
		store:           snippet.NewStore(),
		log:             chat.NewLog(),
		defaultLanguage: lang,
		defaultFilename: filename,
		logger:          opts.Logger,
		now:             now,
	}
}

// Configure 安装（或替换）网关客户端，恢复被禁用的 AI 功能
// Configure installs (or replaces) the gateway client, re-enabling AI
// features
func (s *Session) Configure(p provider.Provider) {
	s.mu.Lock()
	s.provider = p
	s.mu.Unlock()
}

// Configured 返回网关是否可用
// Configured reports whether a gateway is available
func (s *Session) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider != nil
}

// State 返回当前状态 / State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// begin 进入 AwaitingAIResponse；已有请求时拒绝
// begin enters AwaitingAIResponse; rejected while a turn is in flight
func (s *Session) begin() (provider.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return nil, ErrBusy
	}
	if s.provider == nil {
		return nil, ErrNotConfigured
	}
	s.state = StateAwaitingAIResponse
	return s.provider, nil
}

func (s *Session) finish() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

// Snippets 返回全部片段（创建顺序）
// Snippets returns every snippet in creation order
func (s *Session) Snippets() []snippet.Snippet {
	return s.store.All()
}

// IsSelected 返回片段的选择标记
// IsSelected reports a snippet's selection flag
func (s *Session) IsSelected(id string) bool {
	return s.store.IsSelected(id)
}

// ToggleSelection 设置片段的选择标记；未知 ID 为 no-op
// ToggleSelection sets a snippet's selection flag; unknown ids are a no-op
func (s *Session) ToggleSelection(id string, selected bool) {
	s.store.SetSelected(id, selected)
}

// History 返回会话记录快照
// History returns a snapshot of the conversation log
func (s *Session) History() []chat.Message {
	return s.log.Messages()
}

// CurrentModel 返回网关当前模型；未配置时为空
// CurrentModel returns the gateway's current model, empty when unconfigured
func (s *Session) CurrentModel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provider == nil {
		return ""
	}
	return s.provider.CurrentModel()
}

// SetModel 切换网关模型
// SetModel switches the gateway model
func (s *Session) SetModel(model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.provider == nil {
		return ErrNotConfigured
	}
	return s.provider.SetModel(model)
}

// BuildDownload 将当前选中的片段打包为 zip 字节流。
// 未选中任何片段时返回 ErrNoSelection。
// BuildDownload packs the currently selected snippets into zip bytes. Returns
// ErrNoSelection when nothing is selected.
func (s *Session) BuildDownload() ([]byte, error) {
	selected := s.store.Selected()
	if len(selected) == 0 {
		return nil, ErrNoSelection
	}
	data, err := archive.Build(selected)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int("snippets", len(selected)).Int("bytes", len(data)).Msg("archive built")
	return data, nil
}
