package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/signupboard/internal/modules/board/templates/components"
	"github.com/nfrund/signupboard/internal/pubsub"
	"github.com/nfrund/signupboard/internal/rendering"
)

// FragmentSender delivers rendered HTML to the pages showing a board.
type FragmentSender interface {
	Send(ctx context.Context, key string, payload []byte) error
}

// Subscriber pushes status message changes to the board's open pages.
type Subscriber struct {
	subscriber pubsub.Subscriber
	sender     FragmentSender
	renderer   rendering.Renderer
}

// NewSubscriber creates a Subscriber.
func NewSubscriber(sub pubsub.Subscriber, sender FragmentSender, renderer rendering.Renderer) *Subscriber {
	return &Subscriber{
		subscriber: sub,
		sender:     sender,
		renderer:   renderer,
	}
}

// Start subscribes to message changes. Delivery continues until ctx is done.
func (s *Subscriber) Start(ctx context.Context) error {
	slog.Info("Starting board message subscriber")
	return pubsub.Subscribe(ctx, s.subscriber, TopicMessageChanged, s.handleMessageChanged)
}

func (s *Subscriber) handleMessageChanged(ctx context.Context, boardID string, event MessageChangedEvent) error {
	if boardID == "" {
		boardID = event.BoardID
	}

	html, err := s.renderer.RenderComponent(ctx, components.StatusMessageOOB(event.Message))
	if err != nil {
		return fmt.Errorf("render message for board %s: %w", boardID, err)
	}
	return s.sender.Send(ctx, boardID, html)
}
