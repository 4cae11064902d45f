package boardview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/signupboard/internal/domain"
)

func limit(n int) *int { return &n }

func TestCapacityBadge(t *testing.T) {
	tests := []struct {
		name     string
		activity domain.Activity
		want     *Badge
	}{
		{"no maximum", domain.Activity{Participants: []string{"a"}}, nil},
		{"one spot", domain.Activity{MaxParticipants: limit(2), Participants: []string{"a"}}, &Badge{Text: "1 spot available", Remaining: 1}},
		{"many spots", domain.Activity{MaxParticipants: limit(12), Participants: []string{"a", "b"}}, &Badge{Text: "10 spots available", Remaining: 10}},
		{"full", domain.Activity{MaxParticipants: limit(1), Participants: []string{"a"}}, &Badge{Text: "Full", Full: true}},
		{"over capacity is full", domain.Activity{MaxParticipants: limit(1), Participants: []string{"a", "b"}}, &Badge{Text: "Full", Full: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CapacityBadge(&tt.activity))
		})
	}
}

func TestCapacityBadge_FullIffNoneRemaining(t *testing.T) {
	for max := 0; max <= 5; max++ {
		for count := 0; count <= 7; count++ {
			a := domain.Activity{MaxParticipants: limit(max), Participants: make([]string, count)}
			b := CapacityBadge(&a)
			require.NotNil(t, b)

			remaining := max - count
			if remaining < 0 {
				remaining = 0
			}
			assert.Equal(t, remaining, b.Remaining, "max=%d count=%d", max, count)
			assert.Equal(t, remaining == 0, b.Full, "max=%d count=%d", max, count)
			assert.Equal(t, remaining == 0, b.Text == "Full", "max=%d count=%d", max, count)
		}
	}
}

func TestRender(t *testing.T) {
	c, err := domain.ParseCollection([]byte(`{
		"Chess Club": {"description": "d", "schedule": "s", "max_participants": 2, "participants": ["a@x.com"]},
		"Drama": {"description": "stage", "schedule": "Mon", "participants": []}
	}`))
	require.NoError(t, err)

	v := Render(c)

	require.Len(t, v.Cards, 2)
	chess := v.Cards[0]
	assert.Equal(t, "Chess Club", chess.Name)
	assert.Equal(t, 1, chess.Count)
	require.NotNil(t, chess.Badge)
	assert.Equal(t, "1 spot available", chess.Badge.Text)
	assert.Equal(t, []Participant{{Activity: "Chess Club", Email: "a@x.com"}}, chess.Participants)

	drama := v.Cards[1]
	assert.Nil(t, drama.Badge)
	assert.Empty(t, drama.Participants)

	assert.Equal(t, []Option{
		{Value: "", Label: "-- Select an activity --"},
		{Value: "Chess Club", Label: "Chess Club"},
		{Value: "Drama", Label: "Drama"},
	}, v.Options)
	assert.Empty(t, v.LoadError)
}

func TestRender_IsRepeatable(t *testing.T) {
	c, err := domain.ParseCollection([]byte(`{"B": {"participants": ["x"]}, "A": {"max_participants": 3}, "C": {}}`))
	require.NoError(t, err)

	assert.Equal(t, Render(c), Render(c))
	assert.Equal(t, "B", Render(c).Cards[0].Name)
}

func TestRender_NilAndEmpty(t *testing.T) {
	for _, c := range []*domain.Collection{nil, domain.NewCollection()} {
		v := Render(c)
		assert.Empty(t, v.Cards)
		assert.Equal(t, []Option{{Value: "", Label: PlaceholderOption}}, v.Options)
	}
}

func TestRenderLoadError(t *testing.T) {
	v := RenderLoadError("Failed to load activities (HTTP 500)")

	assert.Equal(t, "Could not load activities: Failed to load activities (HTTP 500)", v.LoadError)
	assert.Empty(t, v.Cards)
	assert.Equal(t, []Option{{Value: "", Label: PlaceholderOption}}, v.Options)
}
