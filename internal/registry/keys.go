package registry

import (
	"github.com/nfrund/signupboard/internal/activityapi"
	"github.com/nfrund/signupboard/internal/pubsub"
	"github.com/nfrund/signupboard/internal/rendering"
	"github.com/nfrund/signupboard/internal/websocket"
)

// Counter reports the size of a live collection, such as open boards.
type Counter interface {
	Len() int
}

// Keys for the services shared between the server and its modules.
const (
	PublisherKey      Key[pubsub.Publisher]    = "core.publisher"
	SubscriberKey     Key[pubsub.Subscriber]   = "core.subscriber"
	RendererKey       Key[rendering.Renderer]  = "core.renderer"
	BridgeKey         Key[*websocket.Bridge]   = "core.websocket.bridge"
	ActivityClientKey Key[*activityapi.Client] = "core.activityapi.client"
	BoardCounterKey   Key[Counter]             = "board.counter"
)
