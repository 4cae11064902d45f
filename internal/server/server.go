package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"

	"github.com/nfrund/signupboard/internal/config"
	appmiddleware "github.com/nfrund/signupboard/internal/middleware"
	"github.com/nfrund/signupboard/internal/module"
	"github.com/nfrund/signupboard/internal/registry"
	"github.com/nfrund/signupboard/web"
)

// Dependencies holds everything the server needs. Shared services reach the
// modules through Registry.
type Dependencies struct {
	Config   config.Provider
	Echo     *echo.Echo
	Registry *registry.Registry
	Modules  []module.Module
	// StaticFS serves /static. Defaults to STATIC_DIR, or the embedded
	// assets when that is empty.
	StaticFS afero.Fs
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	registry *registry.Registry
	modules  []module.Module
	staticFS afero.Fs

	cancelBackground context.CancelFunc
	shutdownOnce     sync.Once
}

// New creates a new Server instance and installs the global middleware.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	if deps.Registry == nil {
		return nil, errors.New("server: registry is required")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())

	store := sessions.NewCookieStore([]byte(deps.Config.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
	}
	e.Use(session.Middleware(store))

	if renderer, ok := registry.Get(deps.Registry, registry.RendererKey); ok {
		if er, ok := renderer.(echo.Renderer); ok {
			e.Renderer = er
		}
	}

	setupErrorHandling(e)

	staticFS := deps.StaticFS
	if staticFS == nil {
		staticFS = defaultStaticFS(deps.Config.GetStaticDir())
	}

	return &Server{
		E:        e,
		Cfg:      deps.Config,
		registry: deps.Registry,
		modules:  deps.Modules,
		staticFS: staticFS,
	}, nil
}

// InitModules registers every module, starts the WebSocket bridge and then
// boots the modules. Background work runs until Shutdown or ctx ends.
func (s *Server) InitModules(ctx context.Context) error {
	for _, m := range s.modules {
		slog.Info("Registering module", "module", m.Name())
		if err := m.Register(s.registry); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}

	bgCtx, cancel := context.WithCancel(ctx)
	s.cancelBackground = cancel

	if bridge, ok := registry.Get(s.registry, registry.BridgeKey); ok {
		go bridge.Run(bgCtx)
	}

	root := s.E.Group("")
	for _, m := range s.modules {
		slog.Info("Booting module", "module", m.Name())
		if err := m.Boot(bgCtx, root, s.registry); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}

// Shutdown stops the modules and background services, then the HTTP server.
// It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error
	s.shutdownOnce.Do(func() {
		for _, m := range s.modules {
			if err := m.Shutdown(ctx); err != nil {
				slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
				errs = append(errs, err)
			}
		}
		if s.cancelBackground != nil {
			s.cancelBackground()
		}
		if err := s.E.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

func defaultStaticFS(dir string) afero.Fs {
	if dir == "" {
		return afero.FromIOFS{FS: web.Static()}
	}
	return afero.NewBasePathFs(afero.NewOsFs(), dir)
}
