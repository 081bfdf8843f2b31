package core

import "testing"

func TestInputProcessKeyFiresOnChange(t *testing.T) {
	InputInitialize()
	EventInitialize()
	defer InputShutdown()
	defer EventShutdown()

	spy := &listenerSpy{}
	EventRegister(EVENT_CODE_KEY_PRESSED, spy, spy.onEvent)
	defer EventUnregister(EVENT_CODE_KEY_PRESSED, spy)

	InputProcessKey(KEY_ESCAPE, true)
	if spy.calls != 1 {
		t.Fatalf("press fired %d events, want 1", spy.calls)
	}
	if !InputIsKeyDown(KEY_ESCAPE) {
		t.Error("escape should be down")
	}

	// A repeated press with no state change fires nothing.
	InputProcessKey(KEY_ESCAPE, true)
	if spy.calls != 1 {
		t.Errorf("repeat press fired %d events, want 1", spy.calls)
	}

	InputProcessKey(KEY_ESCAPE, false)
	if InputIsKeyDown(KEY_ESCAPE) {
		t.Error("escape should be up")
	}
}

func TestInputUpdateRollsState(t *testing.T) {
	InputInitialize()
	EventInitialize()
	defer InputShutdown()
	defer EventShutdown()

	InputProcessKey(KEY_SPACE, true)
	if InputWasKeyDown(KEY_SPACE) {
		t.Error("previous state should not see the press yet")
	}
	InputUpdate(0.016)
	if !InputWasKeyDown(KEY_SPACE) {
		t.Error("previous state should see the press after update")
	}
	InputProcessKey(KEY_SPACE, false)
}

func TestInputMousePosition(t *testing.T) {
	InputInitialize()
	EventInitialize()
	defer InputShutdown()
	defer EventShutdown()

	InputProcessMouseMove(12.5, 7.25)
	x, y := InputGetMousePosition()
	if x != 12.5 || y != 7.25 {
		t.Errorf("mouse position = (%v, %v)", x, y)
	}
}
