package topicmgr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("registers and finds topics", func(t *testing.T) {
		m := NewManager()
		topic := DefineModule(TopicConfig{Name: "board.message.changed", Module: "board", Description: "d"})

		require.NoError(t, m.Register(topic))

		got := m.List()
		require.Len(t, got, 1)
		assert.Equal(t, "board.message.changed", got[0].Name())
		assert.Equal(t, "board", got[0].Module())
		assert.Equal(t, 1, m.Count())
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		m := NewManager()
		require.NoError(t, m.Register(DefineModule(TopicConfig{Name: "a.b"})))

		err := m.Register(DefineModule(TopicConfig{Name: "a.b"}))
		var topicErr *TopicError
		require.ErrorAs(t, err, &topicErr)
		assert.Equal(t, ErrorDuplicateRegistration, topicErr.Type)
		assert.Panics(t, func() { m.MustRegister(DefineModule(TopicConfig{Name: "a.b"})) })
	})

	t.Run("rejects empty names", func(t *testing.T) {
		m := NewManager()
		err := m.Register(DefineModule(TopicConfig{}))
		var topicErr *TopicError
		require.ErrorAs(t, err, &topicErr)
		assert.Equal(t, ErrorValidationFailed, topicErr.Type)
	})

	t.Run("lists sorted by name", func(t *testing.T) {
		m := NewManager()
		m.MustRegister(DefineModule(TopicConfig{Name: "board.z", Module: "board"}))
		m.MustRegister(DefineModule(TopicConfig{Name: "board.a", Module: "board"}))
		m.MustRegister(DefineModule(TopicConfig{Name: "system.x", Module: "system"}))

		names := func(ts []Topic) []string {
			out := make([]string, len(ts))
			for i, t := range ts {
				out[i] = t.Name()
			}
			return out
		}
		assert.Equal(t, []string{"board.a", "board.z", "system.x"}, names(m.List()))
	})

	t.Run("metadata is copied", func(t *testing.T) {
		topic := DefineModule(TopicConfig{Name: "x", Metadata: map[string]any{"k": 1}})
		md := topic.Metadata()
		md["k"] = 2
		assert.Equal(t, 1, topic.Metadata()["k"])
	})
}
