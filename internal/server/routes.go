package server

import (
	"io/fs"
	"net/http"
	"path"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"

	"github.com/nfrund/signupboard/internal/registry"
	"github.com/nfrund/signupboard/internal/topicmgr"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Boards int    `json:"boards"`
	Topics int    `json:"topics"`
	// TopicNames lists the registered pub/sub topics, sorted.
	TopicNames []string `json:"topic_names"`
}

// RegisterRoutes sets up the routes that do not belong to a module.
func (s *Server) RegisterRoutes() {
	s.E.GET("/static/*", staticHandler(s.staticFS))

	s.E.GET("/health", func(c echo.Context) error {
		mgr := topicmgr.Default()
		resp := HealthResponse{Status: "ok", Topics: mgr.Count(), TopicNames: []string{}}
		for _, t := range mgr.List() {
			resp.TopicNames = append(resp.TopicNames, t.Name())
		}
		if counter, ok := registry.Get(s.registry, registry.BoardCounterKey); ok {
			resp.Boards = counter.Len()
		}
		return c.JSON(http.StatusOK, resp)
	})
}

// staticHandler serves regular files from fsys. Names are taken relative to
// the root of fsys; directories are not listed.
func staticHandler(fsys afero.Fs) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := path.Clean(c.Param("*"))
		if !fs.ValidPath(name) || name == "." {
			return echo.ErrNotFound
		}

		f, err := fsys.Open(name)
		if err != nil {
			return echo.ErrNotFound
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			return echo.ErrNotFound
		}

		http.ServeContent(c.Response(), c.Request(), info.Name(), info.ModTime(), f)
		return nil
	}
}
