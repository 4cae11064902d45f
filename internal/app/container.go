package app

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/nfrund/signupboard/internal/activityapi"
	"github.com/nfrund/signupboard/internal/config"
	"github.com/nfrund/signupboard/internal/pubsub"
	"github.com/nfrund/signupboard/internal/registry"
	"github.com/nfrund/signupboard/internal/rendering"
	"github.com/nfrund/signupboard/internal/websocket"
)

// NewContainer builds the dependency container for the core services the
// server and its modules share. Services are constructed lazily on first
// invocation.
func NewContainer(cfg config.Provider) do.Injector {
	i := do.New()

	do.ProvideValue(i, cfg)

	do.Provide(i, func(i do.Injector) (*activityapi.Client, error) {
		cfg := do.MustInvoke[config.Provider](i)
		return activityapi.New(cfg.GetAPIBaseURL(),
			activityapi.WithTimeout(cfg.GetAPITimeout()),
			activityapi.WithLogger(slog.Default().With("component", "activityapi")),
		), nil
	})

	do.Provide(i, func(i do.Injector) (*pubsub.WatermillBridge, error) {
		return pubsub.NewWatermillBridge(do.MustInvoke[config.Provider](i).GetPubSubDebug()), nil
	})

	do.Provide(i, func(i do.Injector) (rendering.Renderer, error) {
		return rendering.NewUniversalRenderer(), nil
	})

	do.Provide(i, func(i do.Injector) (*websocket.Bridge, error) {
		return websocket.NewBridge(), nil
	})

	do.Provide(i, newRegistry)

	return i
}

// newRegistry publishes the container's services under the registry keys
// modules look them up by.
func newRegistry(i do.Injector) (*registry.Registry, error) {
	reg := registry.New(do.MustInvoke[config.Provider](i))

	bus := do.MustInvoke[*pubsub.WatermillBridge](i)
	registry.Set[pubsub.Publisher](reg, registry.PublisherKey, bus)
	registry.Set[pubsub.Subscriber](reg, registry.SubscriberKey, bus)
	registry.Set(reg, registry.RendererKey, do.MustInvoke[rendering.Renderer](i))
	registry.Set(reg, registry.BridgeKey, do.MustInvoke[*websocket.Bridge](i))
	registry.Set(reg, registry.ActivityClientKey, do.MustInvoke[*activityapi.Client](i))

	return reg, nil
}
