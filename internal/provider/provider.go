package provider

import (
	"context"

	"snippad/internal/chat"
)

// ModelInfo 模型基本信息
// ModelInfo describes a model
type ModelInfo struct {
	ID      string
	OwnedBy string
}

// Provider 文本生成后端接口。接受一段 prompt 与可选的会话历史，
// 返回文本或失败。任何实现此契约的后端均可替换。
// Provider is the text-generation backend interface. It takes a prompt plus
// optional conversation history and returns text or fails. Any backend
// implementing this contract is substitutable.
type Provider interface {
	// Generate 发送 prompt（附带可选历史）并返回模型文本
	// Generate sends the prompt (with optional history) and returns model text
	Generate(ctx context.Context, prompt string, history []chat.Message) (string, error)

	// ListModels 列出可用模型
	// ListModels lists available models
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// Name 返回 provider 名称
	// Name returns the provider name
	Name() string

	// CurrentModel 返回当前活跃模型
	// CurrentModel returns the current active model
	CurrentModel() string

	// SetModel 切换活跃模型
	// SetModel switches the active model
	SetModel(model string) error
}
