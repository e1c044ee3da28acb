package match

import "sync"

// PlayerHandle is the transport-neutral interface for notifying a player.
// The engine never blocks on a handle: implementations must make Send
// non-blocking, typically with a buffered channel.
type PlayerHandle interface {
	// ID returns the player this handle belongs to.
	ID() PlayerID

	// Send delivers an event to the player asynchronously.
	Send(evt Event)
}

// ChannelHandle is a PlayerHandle backed by a Go channel. Host applications
// read from Events and forward to their transport.
type ChannelHandle struct {
	id       PlayerID
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewChannelHandle creates a channel-backed handle. bufferSize controls how
// many undelivered events are kept before the oldest are dropped.
func NewChannelHandle(id PlayerID, bufferSize int) *ChannelHandle {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &ChannelHandle{
		id:     id,
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the player id.
func (h *ChannelHandle) ID() PlayerID {
	return h.id
}

// Send delivers an event without blocking. When the buffer is full the
// oldest event is dropped to make room.
func (h *ChannelHandle) Send(evt Event) {
	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.events <- evt:
	default:
		select {
		case <-h.events:
		default:
		}
		select {
		case h.events <- evt:
		default:
		}
	}
}

// Events returns the channel the host reads notifications from.
func (h *ChannelHandle) Events() <-chan Event {
	return h.events
}

// Done returns a channel that closes when the handle is closed.
func (h *ChannelHandle) Done() <-chan struct{} {
	return h.done
}

// Close marks the handle as gone. Safe to call multiple times; events sent
// after Close are discarded.
func (h *ChannelHandle) Close() {
	h.doneOnce.Do(func() {
		close(h.done)
	})
}
