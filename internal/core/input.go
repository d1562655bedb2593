package core

// Action is a host-independent intent. Hosts translate keys, clicks and
// touches into actions so games never see raw input.
type Action uint8

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space: launch, the "tap to begin" signal
	ActionConfirm        // Enter, click: start or restart
	ActionBack           // B, Esc
	ActionRestart        // R after a finished run
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Left", "Right", "Jump", "Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// Pointer is the last pointer (mouse or touch) position in screen cells.
type Pointer struct {
	X, Y  int
	Valid bool // false when no pointer event arrived this frame
}

// InputFrame collects what happened during one tick. Actions are a bit
// set, so a frame is a plain value with no allocation.
type InputFrame struct {
	actions uint16
	Pointer Pointer
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks a as triggered this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.actions |= 1 << a
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.actions&(1<<a) != 0
}

// Empty reports whether the frame carries no action and no pointer.
func (f InputFrame) Empty() bool {
	return f.actions == 0 && !f.Pointer.Valid
}

// MovePointer records the latest pointer position of the frame.
func (f *InputFrame) MovePointer(x, y int) {
	f.Pointer = Pointer{X: x, Y: y, Valid: true}
}

// Clear readies the frame for the next tick.
func (f *InputFrame) Clear() {
	*f = InputFrame{}
}
