package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"snippad/internal/chat"
	"snippad/internal/extract"
	"snippad/internal/snippet"
)

// GenerateSnippet 生成流程：构造 prompt、调用网关、提取第一个代码区段，
// 作为新片段入库（默认勾选）。回复中没有可用代码时返回 ErrNoCode，
// 不创建片段。生成流程不写会话记录。
// GenerateSnippet is the generate flow: build the prompt, call the gateway,
// extract the first code region and append it as a new auto-selected snippet.
// Returns ErrNoCode without creating a snippet when the reply holds no usable
// code. The generate flow does not touch the conversation log.
func (s *Session) GenerateSnippet(ctx context.Context, prompt, filename, language string) (snippet.Snippet, error) {
	if strings.TrimSpace(prompt) == "" {
		return snippet.Snippet{}, ErrEmptyInput
	}
	gw, err := s.begin()
	if err != nil {
		return snippet.Snippet{}, err
	}
	defer s.finish()

	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = s.defaultLanguage
	}
	if strings.TrimSpace(filename) == "" {
		filename = s.defaultFilename
	}

	text, err := gw.Generate(ctx, generatePrompt(language, prompt), nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("generate: gateway failed")
		return snippet.Snippet{}, fmt.Errorf("generate snippet: %w", err)
	}

	block := extract.First(text, language)
	if block.Content == "" {
		return snippet.Snippet{}, ErrNoCode
	}

	sn := snippet.Snippet{
		Filename:    filename,
		Language:    language,
		Content:     block.Content,
		Description: "Generated from prompt: " + truncateDescription(prompt),
	}
	sn.ID = s.store.Append(sn)
	s.logger.Debug().Str("id", sn.ID).Str("filename", sn.Filename).Msg("snippet generated")
	return sn, nil
}

// Explain 解释流程：把粘贴的代码包进围栏发给网关，返回解释文本。
// 不写会话记录，也不产生片段。
// Explain wraps the pasted code in a fence, sends it to the gateway and
// returns the explanation text. Neither the log nor the store is touched.
func (s *Session) Explain(ctx context.Context, code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", ErrEmptyInput
	}
	gw, err := s.begin()
	if err != nil {
		return "", err
	}
	defer s.finish()

	text, err := gw.Generate(ctx, explainPrompt(code), nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("explain: gateway failed")
		return "", fmt.Errorf("explain code: %w", err)
	}
	return text, nil
}

// SendChatTurn 处理一次聊天回合。用户消息先入会话记录；correct 模式
// 下按三级回退选出主题片段并嵌入 prompt，成功后从回复中提取第一个
// 非空代码区段作为新片段。网关失败时记录固定致歉消息，片段集合不变。
// SendChatTurn handles one chat turn. The user message is logged first; in
// correct mode the subject snippet is picked via the three-tier fallback and
// embedded into the prompt, and on success the first non-empty code region of
// the reply becomes a new snippet. On gateway failure the fixed apology is
// logged and the store is left untouched.
func (s *Session) SendChatTurn(ctx context.Context, userText string, mode Mode) (TurnResult, error) {
	if strings.TrimSpace(userText) == "" {
		return TurnResult{}, ErrEmptyInput
	}
	gw, err := s.begin()
	if err != nil {
		return TurnResult{}, err
	}
	defer s.finish()

	s.log.Append(chat.NewUserMessage(userText))

	prompt := userText
	var history []chat.Message
	if mode == ModeCorrect {
		// 主题片段直接嵌入 prompt，与网关的历史参数互斥使用
		// The subject is embedded into the prompt; history is not passed
		// alongside it
		if subject, ok := s.store.CorrectionSubject(); ok {
			prompt = correctionPrompt(subject, userText)
		} else {
			prompt = plainChatPrompt(userText)
		}
	} else {
		// 普通聊天回合带上之前的会话历史（不含本条用户消息）
		// Plain chat turns carry the prior history (without this user message)
		msgs := s.log.Messages()
		history = msgs[:len(msgs)-1]
	}

	text, err := gw.Generate(ctx, prompt, history)
	if err != nil {
		s.log.Append(chat.NewModelMessage(ApologyText))
		s.logger.Debug().Err(err).Str("mode", string(mode)).Msg("chat turn: gateway failed")
		return TurnResult{}, fmt.Errorf("chat turn: %w", err)
	}
	s.log.Append(chat.NewModelMessage(text))

	result := TurnResult{Reply: text}
	if mode == ModeCorrect {
		if block, ok := extract.FirstNonEmpty(text, s.defaultLanguage); ok {
			sn := snippet.Snippet{
				Filename:    fmt.Sprintf("corrected_%s.%s", s.now().Format("150405"), extract.Ext(block.Language)),
				Language:    block.Language,
				Content:     block.Content,
				Description: "Corrected/refined via chat",
			}
			sn.ID = s.store.Append(sn)
			s.logger.Debug().Str("id", sn.ID).Str("filename", sn.Filename).Msg("corrected snippet added")
			result.Snippet = &sn
		}
	}
	return result, nil
}
