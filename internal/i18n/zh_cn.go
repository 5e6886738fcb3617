package i18n

// ZhCNMessages 简体中文消息目录
// ZhCNMessages Simplified Chinese message catalog
var ZhCNMessages = map[string]string{
	// UI - 面板标题
	"panel.chat":     "对话",
	"panel.snippets": "代码片段",

	// UI - 状态栏
	"status.ready":    "就绪",
	"status.thinking": "思考中...",
	"status.model":    "模型",
	"status.tokens":   "Token",
	"status.mode":     "模式",

	// UI - 模式
	"mode.generate": "生成",
	"mode.explain":  "解释",
	"mode.correct":  "纠错",

	// UI - 输入
	"input.placeholder": "描述想要的代码、粘贴待解释的代码，或提出修改要求...",
	"input.api_key":     "输入 API Key 以启用 AI 功能：",
	"input.filename":    "文件名",
	"input.language":    "语言",

	// UI - 片段列表
	"snippets.empty":    "还没有生成或管理任何代码片段。",
	"snippets.selected": "已选",
	"snippets.export":   "导出选中片段 (.zip)",

	// UI - 结果
	"result.generated":   "代码已生成：%s",
	"result.explanation": "代码解释",
	"result.corrected":   "纠正后的片段 %q 已加入列表。",
	"result.exported":    "已写出 %d 个片段到 %s",
	"result.no_code":     "回复中没有可用的代码块。",

	// 错误
	"error.not_configured": "API Key 未配置。请设置 SNIPPAD_API_KEY 或现在输入。",
	"error.busy":           "已有请求进行中，请稍候。",
	"error.gateway":        "AI 服务响应失败：%v",
	"error.no_selection":   "请先选中至少一个片段再导出。",
	"error.empty_prompt":   "输入内容为空。",

	// REPL
	"repl.welcome": "snippad — 生成、解释、纠正代码片段。输入 /help 查看命令。",
	"repl.bye":     "再见。",
}
