package board

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/signupboard/internal/pubsub"
	"github.com/nfrund/signupboard/internal/rendering"
)

type sentFragment struct {
	key     string
	payload string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentFragment
	ch   chan struct{}
}

func newFakeSender() *fakeSender {
	return &fakeSender{ch: make(chan struct{}, 16)}
}

func (f *fakeSender) Send(ctx context.Context, key string, payload []byte) error {
	f.mu.Lock()
	f.sent = append(f.sent, sentFragment{key: key, payload: string(payload)})
	f.mu.Unlock()
	f.ch <- struct{}{}
	return nil
}

func (f *fakeSender) wait(t *testing.T, n int) []sentFragment {
	t.Helper()
	for range n {
		select {
		case <-f.ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %d fragments", n)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentFragment(nil), f.sent...)
}

func TestSubscriber_PushesMessageChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := pubsub.NewWatermillBridge(false)
	defer bridge.Close()

	sender := newFakeSender()
	require.NoError(t, NewSubscriber(bridge, sender, rendering.NewUniversalRenderer()).Start(ctx))

	b := New("board-7", &fakeAPI{collection: chessClub}, Options{
		HideAfter: 50 * time.Millisecond,
		OnMessage: func(id string, m Message) {
			err := pubsub.Publish(ctx, bridge, TopicMessageChanged, id, MessageChangedEvent{BoardID: id, Message: m})
			assert.NoError(t, err)
		},
	})
	defer b.Close()

	b.ShowMessage("Signed up successfully", KindSuccess)

	sent := sender.wait(t, 2)
	require.Len(t, sent, 2)

	assert.Equal(t, "board-7", sent[0].key)
	assert.Contains(t, sent[0].payload, `id="message"`)
	assert.Contains(t, sent[0].payload, `hx-swap-oob="true"`)
	assert.Contains(t, sent[0].payload, `class="message success"`)
	assert.Contains(t, sent[0].payload, "Signed up successfully")

	assert.Equal(t, "board-7", sent[1].key)
	assert.Contains(t, sent[1].payload, `class="message success hidden"`)
}
