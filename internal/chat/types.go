package chat

import "strings"

// 消息角色常量 / Message role constants
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message 会话中的一条消息，parts 为有序文本片段
// Message is a single conversation message; parts is an ordered list of text segments
type Message struct {
	Role  string   `json:"role"`
	Parts []string `json:"parts"`
}

// NewUserMessage 构造用户消息
// NewUserMessage builds a user message
func NewUserMessage(text string) Message {
	return Message{Role: RoleUser, Parts: []string{text}}
}

// NewModelMessage 构造模型消息
// NewModelMessage builds a model message
func NewModelMessage(text string) Message {
	return Message{Role: RoleModel, Parts: []string{text}}
}

// Text 将消息的所有片段拼接为单个字符串
// Text joins all parts of the message into one string
func (m Message) Text() string {
	if len(m.Parts) == 1 {
		return m.Parts[0]
	}
	return strings.Join(m.Parts, "\n")
}
