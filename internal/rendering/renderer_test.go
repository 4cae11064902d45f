package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

func TestUniversalRenderer_RenderComponent(t *testing.T) {
	r := NewUniversalRenderer()

	t.Run("gomponents node", func(t *testing.T) {
		out, err := r.RenderComponent(context.Background(), html.Span(html.Class("spots-badge"), g.Text("Full")))
		require.NoError(t, err)
		assert.Equal(t, `<span class="spots-badge">Full</span>`, string(out))
	})

	t.Run("templ component", func(t *testing.T) {
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<p>templ</p>")
			return err
		})
		out, err := r.RenderComponent(context.Background(), component)
		require.NoError(t, err)
		assert.Equal(t, "<p>templ</p>", string(out))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := r.RenderComponent(context.Background(), "plain string")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported component type: string")
	})
}

func TestUniversalRenderer_RenderPage(t *testing.T) {
	r := NewUniversalRenderer()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := r.RenderPage(c, http.StatusAccepted, html.Div(html.ID("activities-list")))
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, `<div id="activities-list"></div>`, rec.Body.String())
}

func TestUniversalRenderer_EchoRenderer(t *testing.T) {
	e := echo.New()
	e.Renderer = NewUniversalRenderer()
	e.GET("/", func(c echo.Context) error {
		return c.Render(http.StatusOK, "", html.P(g.Text("hi")))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>hi</p>", rec.Body.String())
}
