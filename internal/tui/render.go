package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"snippad/internal/i18n"
	"snippad/internal/snippet"
)

// RenderMarkdown 使用 Glamour 渲染 markdown 文本
// RenderMarkdown renders markdown text using Glamour
func RenderMarkdown(content string, width int) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimRight(rendered, "\n")
}

// SnippetRow 渲染片段列表的一行：勾选框、文件名、语言
// SnippetRow renders one snippet list row: checkbox, filename, language
func SnippetRow(sn snippet.Snippet, selected bool) string {
	box := "[ ]"
	if selected {
		box = "[x]"
	}
	row := fmt.Sprintf("%s %s (%s)", box, sn.Filename, sn.Language)
	if sn.Description != "" {
		row += " · " + sn.Description
	}
	return row
}

// RenderSnippetList 渲染整张片段列表，cursor 行高亮
// RenderSnippetList renders the snippet list with the cursor row highlighted
func RenderSnippetList(snippets []snippet.Snippet, isSelected func(string) bool, cursor int, theme Theme) string {
	if len(snippets) == 0 {
		return theme.MutedStyle.Render(i18n.T("snippets.empty"))
	}
	var b strings.Builder
	for i, sn := range snippets {
		row := SnippetRow(sn, isSelected(sn.ID))
		if i == cursor {
			row = theme.SelectedRow.Render(row)
		}
		b.WriteString(row)
		if i < len(snippets)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
