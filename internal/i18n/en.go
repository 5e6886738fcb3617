package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// UI - Panel titles
	"panel.chat":     "Chat",
	"panel.snippets": "Snippets",

	// UI - Status bar
	"status.ready":    "Ready",
	"status.thinking": "Thinking...",
	"status.model":    "Model",
	"status.tokens":   "Tokens",
	"status.mode":     "Mode",

	// UI - Modes
	"mode.generate": "generate",
	"mode.explain":  "explain",
	"mode.correct":  "correct",

	// UI - Input
	"input.placeholder": "Describe the code you want, paste code to explain, or ask for a fix...",
	"input.api_key":     "Enter your API key to enable AI features:",
	"input.filename":    "Filename",
	"input.language":    "Language",

	// UI - Snippet list
	"snippets.empty":    "No code snippets generated or managed yet.",
	"snippets.selected": "selected",
	"snippets.export":   "Export selected snippets (.zip)",

	// UI - Results
	"result.generated":   "Code generated: %s",
	"result.explanation": "Code Explanation",
	"result.corrected":   "Corrected code snippet %q added to list.",
	"result.exported":    "Wrote %d snippet(s) to %s",
	"result.no_code":     "The reply contained no usable code block.",

	// Errors
	"error.not_configured": "API key is not configured. Set SNIPPAD_API_KEY or enter it now.",
	"error.busy":           "A request is already in flight, please wait.",
	"error.gateway":        "The AI service failed to respond: %v",
	"error.no_selection":   "Select one or more snippets to export.",
	"error.empty_prompt":   "Prompt is empty.",

	// REPL
	"repl.welcome": "snippad — generate, explain and correct code snippets. /help for commands.",
	"repl.help": `Commands:
  /mode [generate|explain|correct]  show or switch mode
  /list                             list snippets with selection state
  /select <n> [on|off]              toggle snippet n
  /export [path]                    write selected snippets as zip
  /model [name]                     show or switch model
  /quit                             exit`,
	"repl.bye": "Bye.",
}
