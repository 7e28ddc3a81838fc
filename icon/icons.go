package icon

// Icon identifies a single renderable UI symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Mark
	Link
	Question
)

// icons is the global registry mapping identifiers to their per-variant representations.
var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "+",
		kaomoji: "(•̀ᴗ•́)و",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "x",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "*",
		kaomoji: "(￣ω￣;)",
		squares: "🟨",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(⌐■_■)",
		squares: "🟦",
	},
	Mark: {
		emoji:   "🦐",
		nerd:    "",
		plain:   "*",
		kaomoji: "(✓)",
		squares: "🟪",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "~",
		kaomoji: "(=^･ω･^=)",
		squares: "🟫",
	},
	Question: {
		emoji:   "❓",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・・?)",
		squares: "⬜",
	},
}
