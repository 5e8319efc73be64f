package types

// EventType is the logical key event a picker session reacts to
type EventType int

const (
	EventNone EventType = iota
	EventChar
	EventUp
	EventDown
	EventConfirm
	EventErase
	EventCancel
)

// String returns the event name for logging
func (t EventType) String() string {
	switch t {
	case EventChar:
		return "char"
	case EventUp:
		return "up"
	case EventDown:
		return "down"
	case EventConfirm:
		return "confirm"
	case EventErase:
		return "erase"
	case EventCancel:
		return "cancel"
	default:
		return "none"
	}
}

// Event is one decoded keystroke. Char is only set for EventChar.
type Event struct {
	Type EventType
	Char byte
}

// Char builds a character event
func Char(c byte) Event {
	return Event{Type: EventChar, Char: c}
}

// Key builds a non-character event
func Key(t EventType) Event {
	return Event{Type: t}
}
