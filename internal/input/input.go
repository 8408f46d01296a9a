// Package input turns raw terminal bytes into key events.
package input

import (
	"bufio"
)

// Key identifies a logical key.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyPause   // Esc, P
	KeyConfirm // Space, Enter
	KeyMenu    // M
	KeyQuit    // Q, Ctrl-C
	KeyDigit   // 1-9, see Event.Digit
)

var keyNames = [...]string{"up", "down", "left", "right", "pause", "confirm", "menu", "quit", "digit"}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Event is a single key press.
type Event struct {
	Key   Key
	Digit int // Set for KeyDigit only
}

// Input represents the key presses received since the previous frame, in order.
type Input struct {
	Events  []Event
	Pressed []byte // Raw bytes, used for inactivity tracking
	Closed  bool   // The underlying reader hit EOF or an error
}

// Has reports whether k was pressed this frame.
func (in Input) Has(k Key) bool {
	for _, e := range in.Events {
		if e.Key == k {
			return true
		}
	}
	return false
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool

	// held is an escape prefix cut off at the end of the previous drain.
	held []byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking and
// parses them into events. An escape sequence split across two drains is
// joined; a held ESC with nothing after it for a whole frame is a Pause.
func ReadInput(s *Stream) Input {
	var fresh []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	buf := append(s.held, fresh...)
	s.held = nil

	// Nothing followed the held prefix, so it was typed on its own.
	flush := len(fresh) == 0 || s.closed
	events, rest := parse(buf, !flush)
	if len(rest) > 0 {
		s.held = append([]byte(nil), rest...)
	}

	return Input{
		Events:  events,
		Pressed: fresh,
		Closed:  s.closed,
	}
}

// Parse maps a chunk of terminal bytes to events. Arrow keys arrive as
// ESC [ A..D (or ESC O A..D in application cursor mode); a lone ESC is Pause.
func Parse(buf []byte) []Event {
	events, _ := parse(buf, false)
	return events
}

// parse is Parse that, with hold set, stops at an escape sequence cut off by
// the end of buf and returns it as rest.
func parse(buf []byte, hold bool) (events []Event, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if hold && incompleteEscape(buf[i:]) {
				return events, buf[i:]
			}
			if i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
				if k, ok := arrowKey(buf[i+2]); ok {
					events = append(events, Event{Key: k})
					i += 2
					continue
				}
			}
		}

		if e, ok := byteEvent(b); ok {
			events = append(events, e)
		}
	}
	return events, nil
}

// incompleteEscape reports whether seq is ESC or ESC [ / ESC O with nothing after.
func incompleteEscape(seq []byte) bool {
	switch len(seq) {
	case 1:
		return true
	case 2:
		return seq[1] == '[' || seq[1] == 'O'
	}
	return false
}

func arrowKey(b byte) (Key, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return 0, false
}

// byteEvent maps a single byte to an event.
func byteEvent(b byte) (Event, bool) {
	switch b {
	case 'w', 'W', 'k', 'K':
		return Event{Key: KeyUp}, true
	case 's', 'S', 'j', 'J':
		return Event{Key: KeyDown}, true
	case 'a', 'A', 'h', 'H':
		return Event{Key: KeyLeft}, true
	case 'd', 'D', 'l', 'L':
		return Event{Key: KeyRight}, true
	case '\x1b', 'p', 'P':
		return Event{Key: KeyPause}, true
	case ' ', '\n', '\r':
		return Event{Key: KeyConfirm}, true
	case 'm', 'M':
		return Event{Key: KeyMenu}, true
	case 'q', 'Q', '\x03':
		return Event{Key: KeyQuit}, true
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return Event{Key: KeyDigit, Digit: int(b - '0')}, true
	}
	return Event{}, false
}
