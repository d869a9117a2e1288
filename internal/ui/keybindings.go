package ui

// Action is what a key press does to the layout.
type Action string

const (
	ActionNone        Action = ""
	ActionPrev        Action = "prev"
	ActionNext        Action = "next"
	ActionNarrow      Action = "narrow"
	ActionWiden       Action = "widen"
	ActionMoveLeft    Action = "move_left"
	ActionMoveRight   Action = "move_right"
	ActionCycleMode   Action = "cycle_mode"
	ActionToggleBleed Action = "toggle_bleed"
	ActionReset       Action = "reset"
	ActionCopy        Action = "copy"
	ActionHelp        Action = "help"
	ActionQuit        Action = "quit"
)

// KeyBindings maps key strings, as reported by tea.KeyPressMsg.String, to
// actions.
var KeyBindings = map[string]Action{
	"up":          ActionPrev,
	"k":           ActionPrev,
	"down":        ActionNext,
	"j":           ActionNext,
	"left":        ActionNarrow,
	"h":           ActionNarrow,
	"-":           ActionNarrow,
	"right":       ActionWiden,
	"l":           ActionWiden,
	"+":           ActionWiden,
	"=":           ActionWiden,
	"shift+left":  ActionMoveLeft,
	"<":           ActionMoveLeft,
	"H":           ActionMoveLeft,
	"shift+right": ActionMoveRight,
	">":           ActionMoveRight,
	"L":           ActionMoveRight,
	"m":           ActionCycleMode,
	"tab":         ActionCycleMode,
	"b":           ActionToggleBleed,
	"r":           ActionReset,
	"y":           ActionCopy,
	"?":           ActionHelp,
	"f1":          ActionHelp,
	"q":           ActionQuit,
	"esc":         ActionQuit,
	"ctrl+c":      ActionQuit,
}

// ActionFor returns the action bound to key.
func ActionFor(key string) Action {
	return KeyBindings[key]
}

type keyHelp struct {
	keys  string
	label string
}

// shortHelp is the footer, longHelp the help panel.
var (
	shortHelp = []keyHelp{
		{"↑/↓", "select"},
		{"←/→", "resize"},
		{"</>", "move"},
		{"m", "mode"},
		{"?", "help"},
		{"q", "quit"},
	}
	longHelp = []keyHelp{
		{"↑ k / ↓ j", "select the previous or next column"},
		{"← h - / → l +", "narrow or widen the selected column; in flex mode change its flex grow"},
		{"< H / > L", "move the selected column left or right"},
		{"m tab", "cycle standard, flex and force modes"},
		{"b", "let force mode overflow instead of shrinking"},
		{"r", "restore the configured columns"},
		{"y", "copy the columns as configuration YAML"},
		{"? f1", "toggle this help"},
		{"q esc", "quit"},
	}
)
