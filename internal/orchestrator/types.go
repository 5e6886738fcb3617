package orchestrator

import (
	"errors"

	"snippad/internal/snippet"
)

// Mode 一次用户交互的处理模式
// Mode selects how a user turn is handled
type Mode string

const (
	ModeGenerate Mode = "generate"
	ModeExplain  Mode = "explain"
	ModeCorrect  Mode = "correct"
)

// State 会话状态机：Idle → AwaitingAIResponse → Idle，不允许并发请求
// State is the session state machine: Idle → AwaitingAIResponse → Idle, with
// no overlapping in-flight requests
type State int

const (
	StateIdle State = iota
	StateAwaitingAIResponse
)

// ApologyText 网关失败时写入会话记录的固定致歉文本
// ApologyText is the fixed fallback recorded in the log on gateway failure
const ApologyText = "Sorry, I encountered an issue."

var (
	// ErrBusy 已有请求进行中 / a turn is already in flight
	ErrBusy = errors.New("a request is already in flight")
	// ErrNotConfigured 网关凭证缺失，AI 功能不可用
	// ErrNotConfigured: gateway credential missing, AI features disabled
	ErrNotConfigured = errors.New("ai gateway is not configured")
	// ErrNoCode 回复中没有可用的代码块
	// ErrNoCode: the reply contained no usable code block
	ErrNoCode = errors.New("no usable code block in reply")
	// ErrNoSelection 未选中任何片段 / no snippets are selected
	ErrNoSelection = errors.New("no snippets selected")
	// ErrEmptyInput 用户输入为空 / the user input is empty
	ErrEmptyInput = errors.New("input is empty")
)

// TurnResult 一次聊天回合的结果：模型回复文本，以及 correct 模式下
// 可能新增的片段
// TurnResult is the outcome of one chat turn: the model's reply text plus the
// snippet a correct-mode turn may have added
type TurnResult struct {
	Reply   string
	Snippet *snippet.Snippet
}
