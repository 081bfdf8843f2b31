package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data is a *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is a *MouseEvent carrying the cursor position.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel scrolled. Data is a *MouseEvent carrying the wheel delta.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   float64
	PosY   float64
	WheelX float64
	WheelY float64
}

// Should return true if handled; handled events are not passed on to
// further listeners.
type FnOnEvent func(ctx EventContext, listener interface{}) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	registered map[EventCode][]*registeredEvent
}

var onceEvent sync.Once
var eventInitialized bool = false
var eventState *eventSystemState = nil

func EventInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[EventCode][]*registeredEvent),
		}
	})
	eventInitialized = true
	return true
}

func EventShutdown() error {
	if eventState != nil {
		eventState.registered = make(map[EventCode][]*registeredEvent)
	}
	eventInitialized = false
	return nil
}

// Register to listen for events sent with the provided code. Duplicate
// listener registrations for the same code are rejected.
func EventRegister(code EventCode, listener interface{}, onEvent FnOnEvent) bool {
	if !eventInitialized {
		return false
	}
	for _, e := range eventState.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	eventState.registered[code] = append(eventState.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

func EventUnregister(code EventCode, listener interface{}) bool {
	if !eventInitialized {
		return false
	}
	events := eventState.registered[code]
	for i, e := range events {
		if e.listener == listener {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// Fire dispatches the event synchronously to every registered listener,
// stopping at the first one that reports the event as handled. Dispatch
// happens on the caller's goroutine; the platform layer only fires from the
// main thread while pumping window events.
func EventFire(ctx EventContext) bool {
	if !eventInitialized {
		return false
	}
	for _, e := range eventState.registered[ctx.Type] {
		if e.callback(ctx, e.listener) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
