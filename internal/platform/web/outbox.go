package web

import "sync"

const defaultOutboxSize = 32

// outbox buffers messages for one websocket writer.
// If the buffer is full, old messages are dropped to prevent blocking the reader.
type outbox struct {
	msgs     chan ServerMessage
	done     chan struct{}
	doneOnce sync.Once
}

func newOutbox(size int) *outbox {
	if size < 1 {
		size = defaultOutboxSize
	}
	return &outbox{
		msgs: make(chan ServerMessage, size),
		done: make(chan struct{}),
	}
}

// Send queues msg without blocking.
func (o *outbox) Send(msg ServerMessage) {
	select {
	case <-o.done:
		return
	default:
	}

	select {
	case o.msgs <- msg:
	default:
		// Buffer full, drop oldest and retry
		select {
		case <-o.msgs:
		default:
		}
		select {
		case o.msgs <- msg:
		default:
		}
	}
}

// Messages returns the channel the writer drains.
func (o *outbox) Messages() <-chan ServerMessage {
	return o.msgs
}

// Done returns a channel closed by Close.
func (o *outbox) Done() <-chan struct{} {
	return o.done
}

// Close stops accepting messages. Safe to call multiple times.
func (o *outbox) Close() {
	o.doneOnce.Do(func() {
		close(o.done)
	})
}
