package board

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	msgs []Message
}

func (r *recorder) record(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
}

func (r *recorder) all() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

func TestNotifier_ShowThenHide(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(30*time.Millisecond, rec.record)
	defer n.Stop()

	shown := n.Show("Signed up successfully", KindSuccess)
	assert.True(t, shown.Visible)
	assert.Equal(t, uint64(1), shown.Seq)
	assert.Equal(t, shown, n.Current())

	require.Eventually(t, func() bool { return !n.Current().Visible }, time.Second, 5*time.Millisecond)

	msgs := rec.all()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].Visible)
	assert.False(t, msgs[1].Visible)
	assert.Equal(t, "Signed up successfully", msgs[1].Text, "hidden message keeps its text")
	assert.Equal(t, msgs[0].Seq, msgs[1].Seq)
}

func TestNotifier_NewMessageResetsTimer(t *testing.T) {
	rec := &recorder{}
	n := NewNotifier(200*time.Millisecond, rec.record)
	defer n.Stop()

	n.Show("Signing up...", KindInfo)
	time.Sleep(120 * time.Millisecond)
	second := n.Show("Signup failed", KindError)

	// The first message's hide would have fired by now; the second is still up.
	time.Sleep(120 * time.Millisecond)
	cur := n.Current()
	assert.True(t, cur.Visible)
	assert.Equal(t, second.Seq, cur.Seq)
	assert.Equal(t, KindError, cur.Kind)

	require.Eventually(t, func() bool { return !n.Current().Visible }, time.Second, 5*time.Millisecond)

	hides := 0
	for _, m := range rec.all() {
		if !m.Visible {
			hides++
			assert.Equal(t, second.Seq, m.Seq)
		}
	}
	assert.Equal(t, 1, hides, "only the last message is hidden")
}

func TestNotifier_Stop(t *testing.T) {
	n := NewNotifier(20*time.Millisecond, nil)
	n.Show("hello", KindInfo)
	n.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.True(t, n.Current().Visible)
}

func TestNotifier_DefaultWindow(t *testing.T) {
	n := NewNotifier(0, nil)
	assert.Equal(t, DefaultHideAfter, n.hideAfter)
}
