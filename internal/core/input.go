package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow - move left
	ActionRight          // D, Right arrow - move right
	ActionJump           // Space, W, Up - jump
	ActionRestart        // R - restart after game over
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions active during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Intent is the held movement state read by a movement engine each tick.
// Input handlers only ever flip these flags; the engine never writes them.
type Intent struct {
	Left  bool
	Right bool
	Up    bool
}

// Intent extracts the movement intent carried by the frame.
func (f InputFrame) Intent() Intent {
	return Intent{
		Left:  f.Has(ActionLeft),
		Right: f.Has(ActionRight),
		Up:    f.Has(ActionJump),
	}
}

// Idle reports whether no movement is requested.
func (i Intent) Idle() bool {
	return !i.Left && !i.Right && !i.Up
}
