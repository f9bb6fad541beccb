package controller

import "todoview/internal/view"

// ChanNotifier delivers notices on a buffered channel.
// When the buffer is full the notice is dropped so Notify never blocks.
type ChanNotifier chan view.Notice

// NewChanNotifier creates a notifier with the given buffer size.
func NewChanNotifier(size int) ChanNotifier {
	return make(ChanNotifier, size)
}

// Notify implements Notifier.
func (n ChanNotifier) Notify(v view.Notice) {
	select {
	case n <- v:
	default:
	}
}

// Drain returns all pending notices without waiting.
func (n ChanNotifier) Drain() []view.Notice {
	var out []view.Notice
	for {
		select {
		case v := <-n:
			out = append(out, v)
		default:
			return out
		}
	}
}

// Input is a Form backed by plain values, for callers without a page.
type Input struct {
	Title       string
	Description string
}

// Input implements Form.
func (f *Input) Input() (title, description string) {
	return f.Title, f.Description
}

// Reset implements Form.
func (f *Input) Reset() {
	f.Title = ""
	f.Description = ""
}
