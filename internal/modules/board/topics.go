package board

import "github.com/nfrund/signupboard/internal/pubsub"

// MessageChangedEvent is published whenever a board's status message is
// shown or hidden.
type MessageChangedEvent struct {
	BoardID string  `json:"board_id"`
	Message Message `json:"message"`
}

// TopicMessageChanged carries MessageChangedEvent, keyed by board ID.
var TopicMessageChanged = pubsub.NewEvent[MessageChangedEvent](
	"board.message.changed",
	"A board's status message was shown or hidden",
)
