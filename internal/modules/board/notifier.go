package board

import (
	"sync"
	"time"

	"github.com/nfrund/signupboard/internal/modules/board/boardview"
)

// Message and Kind are re-exported for callers that only deal with boards.
type (
	Message = boardview.Message
	Kind    = boardview.Kind
)

const (
	KindInfo    = boardview.KindInfo
	KindSuccess = boardview.KindSuccess
	KindError   = boardview.KindError
)

// DefaultHideAfter is how long a message stays visible.
const DefaultHideAfter = 5 * time.Second

// Notifier holds a board's status message and hides it after a fixed window.
// Showing a message cancels the pending hide of the previous one.
type Notifier struct {
	mu        sync.Mutex
	current   Message
	timer     *time.Timer
	hideAfter time.Duration
	stopped   bool
	// onChange runs with mu held, so it must not call back into the Notifier.
	onChange func(Message)
}

// NewNotifier creates a notifier. onChange, if non-nil, observes every shown
// and hidden message in order.
func NewNotifier(hideAfter time.Duration, onChange func(Message)) *Notifier {
	if hideAfter <= 0 {
		hideAfter = DefaultHideAfter
	}
	return &Notifier{hideAfter: hideAfter, onChange: onChange}
}

// Show displays text with the given kind and schedules it to hide.
func (n *Notifier) Show(text string, kind Kind) Message {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}

	n.current = Message{
		Text:    text,
		Kind:    kind,
		Visible: true,
		Seq:     n.current.Seq + 1,
	}
	if !n.stopped {
		seq := n.current.Seq
		n.timer = time.AfterFunc(n.hideAfter, func() { n.hide(seq) })
	}
	n.notify()
	return n.current
}

func (n *Notifier) hide(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current.Seq != seq || !n.current.Visible {
		return
	}
	n.current.Visible = false
	n.timer = nil
	n.notify()
}

func (n *Notifier) notify() {
	if n.onChange != nil {
		n.onChange(n.current)
	}
}

// Current returns the message as it is now.
func (n *Notifier) Current() Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Stop cancels the pending hide. Messages shown afterwards never hide.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopped = true
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
