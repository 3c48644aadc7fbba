package shelf

import "fmt"

// Action is a per-item command sent by the view.
type Action string

const (
	ActionOpen        Action = "open"
	ActionReveal      Action = "reveal"
	ActionCopyPath    Action = "copy_path"
	ActionTogglePin   Action = "toggle_pin"
	ActionRemove      Action = "remove"
	ActionForceRemove Action = "force_remove"
)

// ParseAction validates an action name coming from the view.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionOpen, ActionReveal, ActionCopyPath, ActionTogglePin, ActionRemove, ActionForceRemove:
		return a, nil
	}
	return "", fmt.Errorf("unknown item action %q", s)
}
