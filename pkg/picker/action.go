package picker

// Action is the resolved outcome of one picker invocation. Exactly one is
// produced per frame; anything missing or garbled resolves to ActionCancel.
type Action int

const (
	// ActionCancel ends the session (Escape, picker death, lost signal).
	ActionCancel Action = iota
	// ActionEnter confirms the highlighted entry.
	ActionEnter
	// ActionUp ascends to the parent directory.
	ActionUp
	// ActionDown descends into the highlighted directory.
	ActionDown
	// ActionSearch opens the global search overlay.
	ActionSearch
	// ActionInto descends into an overlay result without ending the session.
	ActionInto
)

// verbs carried through the side channel. The picker binding writes one of
// these followed by a tab and the highlighted line's token.
const (
	verbEnter  = "enter"
	verbUp     = "up"
	verbDown   = "down"
	verbSearch = "search"
	verbInto   = "into"
)

var verbActions = map[string]Action{
	verbEnter:  ActionEnter,
	verbUp:     ActionUp,
	verbDown:   ActionDown,
	verbSearch: ActionSearch,
	verbInto:   ActionInto,
}

func (a Action) String() string {
	switch a {
	case ActionEnter:
		return "enter"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionSearch:
		return "search"
	case ActionInto:
		return "into"
	default:
		return "cancel"
	}
}

// Result carries the decoded action plus the selected opaque path token. The
// token is empty when no entry was highlighted (e.g., an empty directory).
type Result struct {
	Action Action
	Token  string
}
