package orchestrator

import (
	"fmt"

	"snippad/internal/snippet"
)

func generatePrompt(language, task string) string {
	return fmt.Sprintf(
		"Generate a code snippet for the following task. Provide only the code, no explanations before or after the code block. Language: %s\nTask: %s",
		language, task)
}

func explainPrompt(code string) string {
	return fmt.Sprintf(
		"Explain the following code snippet. Be concise and clear:\n\n```\n%s\n```",
		code)
}

// correctionPrompt 将主题片段嵌入纠错请求
// correctionPrompt embeds the subject snippet into the correction request
func correctionPrompt(subject snippet.Snippet, userText string) string {
	return fmt.Sprintf(
		"Regarding the following %s code snippet (filename: %s):\n"+
			"```\n%s\n```\n\n"+
			"User request: %s\n\n"+
			"Please provide a corrected version if needed, and an explanation of the changes or your thoughts."+
			" If providing corrected code, ensure it's in a markdown code block.",
		subject.Language, subject.Filename, subject.Content, userText)
}

// plainChatPrompt 没有可引用片段时的兜底 prompt
// plainChatPrompt is the fallback when no snippet context exists
func plainChatPrompt(userText string) string {
	return fmt.Sprintf("User request: %s. (No specific code snippet context provided by the app).", userText)
}

// truncateDescription 截断生成描述里的原始 prompt
// truncateDescription shortens the originating prompt for the description
func truncateDescription(prompt string) string {
	const max = 50
	runes := []rune(prompt)
	if len(runes) > max {
		runes = runes[:max]
	}
	return string(runes) + "..."
}
