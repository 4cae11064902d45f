package board

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/signupboard/internal/middleware"
	"github.com/nfrund/signupboard/internal/module"
	"github.com/nfrund/signupboard/internal/pubsub"
	"github.com/nfrund/signupboard/internal/registry"
)

// StoreKey locates the board store in the registry.
const StoreKey registry.Key[*Store] = "board.store"

// Module implements module.Module for the sign-up board.
type Module struct {
	module.BaseModule
	store *Store
}

// NewModule creates the board module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "board"
}

// Register creates the board store and makes it available to the server.
func (m *Module) Register(reg *registry.Registry) error {
	cfg := reg.Config()
	client := registry.MustGet(reg, registry.ActivityClientKey)
	publisher := registry.MustGet(reg, registry.PublisherKey)

	m.store = NewStore(client, Options{
		HideAfter: cfg.GetMessageHideAfter(),
		OnMessage: func(boardID string, msg Message) {
			event := MessageChangedEvent{BoardID: boardID, Message: msg}
			if err := pubsub.Publish(context.Background(), publisher, TopicMessageChanged, boardID, event); err != nil {
				slog.Error("Failed to publish board message", "board_id", boardID, "error", err)
			}
		},
	}, cfg.GetBoardIdleTTL())

	registry.Set(reg, StoreKey, m.store)
	registry.Set[registry.Counter](reg, registry.BoardCounterKey, m.store)
	return nil
}

// Boot starts the message subscriber and the idle-board janitor, and mounts
// the board routes.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	sub := registry.MustGet(reg, registry.SubscriberKey)
	bridge := registry.MustGet(reg, registry.BridgeKey)
	renderer := registry.MustGet(reg, registry.RendererKey)

	if err := NewSubscriber(sub, bridge, renderer).Start(ctx); err != nil {
		return err
	}
	go m.store.Run(ctx, 0)

	slog.Info("Booting board module: setting up routes")

	h := NewHandler(m.store, renderer)
	limit := middleware.RateLimiter(reg.Config().GetRateLimitPerSecond())

	g.GET("/", h.Index)
	g.GET("/boards/:id", h.Show)
	g.POST("/boards/:id/signup", h.Signup, limit)
	g.DELETE("/boards/:id/participants", h.Remove, limit)
	g.POST("/boards/:id/participants/remove", h.Remove, limit)
	g.GET("/ws/boards/:id", bridge.Handler(h.ResolveBoard))
	return nil
}

// Shutdown stops all board timers.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.store != nil {
		m.store.Close()
	}
	return nil
}
