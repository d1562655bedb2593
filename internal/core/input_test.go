package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionPause)
	f.Set(ActionNone)

	if !f.Has(ActionLeft) || !f.Has(ActionPause) {
		t.Error("set actions should be reported")
	}
	if f.Has(ActionRight) || f.Has(ActionNone) {
		t.Error("unset actions should not be reported")
	}
	if f.Has(Action(200)) {
		t.Error("out-of-range action should not be reported")
	}

	f.MovePointer(12, 3)
	if f.Pointer != (Pointer{X: 12, Y: 3, Valid: true}) {
		t.Errorf("Pointer = %+v", f.Pointer)
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("frame after Clear = %+v, want empty", f)
	}
}

func TestInputFrameIsValue(t *testing.T) {
	a := NewInputFrame()
	a.Set(ActionJump)
	b := a
	b.Set(ActionQuit)

	if a.Has(ActionQuit) {
		t.Error("copies should not share action state")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "None"},
		{ActionConfirm, "Confirm"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
