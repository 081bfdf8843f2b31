package core

import "testing"

type listenerSpy struct {
	calls   int
	handled bool
}

func (l *listenerSpy) onEvent(ctx EventContext, listener interface{}) bool {
	l.calls++
	return l.handled
}

func TestEventRegisterFire(t *testing.T) {
	EventInitialize()
	defer EventShutdown()

	spy := &listenerSpy{}
	if !EventRegister(EVENT_CODE_MOUSE_WHEEL, spy, spy.onEvent) {
		t.Fatal("register failed")
	}
	if EventRegister(EVENT_CODE_MOUSE_WHEEL, spy, spy.onEvent) {
		t.Error("duplicate registration accepted")
	}

	EventFire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL, Data: &MouseEvent{WheelY: 1}})
	if spy.calls != 1 {
		t.Errorf("listener called %d times, want 1", spy.calls)
	}

	// Other codes do not reach this listener.
	EventFire(EventContext{Type: EVENT_CODE_KEY_PRESSED})
	if spy.calls != 1 {
		t.Errorf("listener received an event it did not register for")
	}

	if !EventUnregister(EVENT_CODE_MOUSE_WHEEL, spy) {
		t.Error("unregister failed")
	}
	EventFire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL})
	if spy.calls != 1 {
		t.Errorf("listener called after unregister")
	}
}

func TestEventHandledStopsPropagation(t *testing.T) {
	EventInitialize()
	defer EventShutdown()

	first := &listenerSpy{handled: true}
	second := &listenerSpy{}
	EventRegister(EVENT_CODE_BUTTON_PRESSED, first, first.onEvent)
	EventRegister(EVENT_CODE_BUTTON_PRESSED, second, second.onEvent)
	defer EventUnregister(EVENT_CODE_BUTTON_PRESSED, first)
	defer EventUnregister(EVENT_CODE_BUTTON_PRESSED, second)

	if !EventFire(EventContext{Type: EVENT_CODE_BUTTON_PRESSED}) {
		t.Error("fire should report handled")
	}
	if first.calls != 1 || second.calls != 0 {
		t.Errorf("calls = (%d, %d), want (1, 0)", first.calls, second.calls)
	}
}
