package board

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/signupboard/internal/middleware"
	"github.com/nfrund/signupboard/internal/modules/board/templates/components"
	"github.com/nfrund/signupboard/internal/rendering"
	"github.com/nfrund/signupboard/internal/view"
)

// Handler serves the board pages and their htmx endpoints.
type Handler struct {
	store    *Store
	renderer rendering.Renderer
}

// NewHandler creates a Handler.
func NewHandler(store *Store, renderer rendering.Renderer) *Handler {
	return &Handler{store: store, renderer: renderer}
}

// Index creates a board for this page load and renders it.
func (h *Handler) Index(c echo.Context) error {
	b := h.store.Create(c.Request().Context())
	middleware.FromContext(c.Request().Context()).Info("Board opened", "board_id", b.ID(), "loaded", b.Loaded())
	return h.renderPage(c, b, b.Message())
}

// Show renders an existing board from its mirror, without refetching.
func (h *Handler) Show(c echo.Context) error {
	b, ok := h.store.Get(c.Param("id"))
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	msg := b.Message()
	if kind, text, ok := view.GetFlashData(c).Latest(); ok {
		msg = Message{Text: text, Kind: Kind(kind), Visible: true, Seq: msg.Seq}
	}
	return h.renderPage(c, b, msg)
}

// Signup handles the sign-up form.
func (h *Handler) Signup(c echo.Context) error {
	b, ok := h.store.Get(c.Param("id"))
	if !ok {
		return h.lostBoard(c)
	}

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sign-up form")
	}

	outcome, err := b.SubmitSignup(c.Request().Context(), req.Email, req.Activity)
	h.logOutcome(c, "signup", err)

	form := components.FormValues{Email: req.Email, Activity: req.Activity}
	if outcome.ClearForm {
		form = components.FormValues{}
	}
	return h.respond(c, b, form, outcome)
}

// Remove handles the removal control, both the htmx DELETE and the plain
// form fallback.
func (h *Handler) Remove(c echo.Context) error {
	b, ok := h.store.Get(c.Param("id"))
	if !ok {
		return h.lostBoard(c)
	}

	var req RemovalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid removal request")
	}

	outcome, err := b.SubmitRemoval(c.Request().Context(), req.Email, req.Activity)
	h.logOutcome(c, "unregister", err)

	return h.respond(c, b, components.FormValues{}, outcome)
}

// ResolveBoard maps a WebSocket upgrade request to its board ID.
func (h *Handler) ResolveBoard(c echo.Context) (string, error) {
	id := c.Param("id")
	if !h.store.Has(id) {
		return "", echo.NewHTTPError(http.StatusNotFound, "board not found")
	}
	return id, nil
}

func (h *Handler) renderPage(c echo.Context, b *Board, msg Message) error {
	page := components.Page(components.PageProps{
		BoardID: b.ID(),
		View:    b.View(),
		Message: msg,
	})
	return h.renderer.RenderPage(c, http.StatusOK,
		components.Layout(components.PageTitle, view.AdaptGomponentToTempl(page)))
}

// respond answers htmx with the new board content and an out-of-band
// message; plain form posts get a flash and a redirect back to the board.
func (h *Handler) respond(c echo.Context, b *Board, form components.FormValues, outcome Outcome) error {
	if isHTMX(c) {
		node := components.BoardUpdate(b.ID(), b.View(), form, outcome.Message)
		return h.renderer.RenderPage(c, http.StatusOK, node)
	}

	view.SetFlash(c, string(outcome.Message.Kind), outcome.Message.Text)
	return c.Redirect(http.StatusSeeOther, components.BoardPath(b.ID()))
}

// lostBoard sends the browser to a fresh board when its board was evicted.
func (h *Handler) lostBoard(c echo.Context) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", "/")
		return c.NoContent(http.StatusNoContent)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) logOutcome(c echo.Context, op string, err error) {
	if err == nil {
		return
	}
	logger := middleware.FromContext(c.Request().Context())
	var verr *ValidationError
	if errors.As(err, &verr) {
		logger.Debug("Rejected incomplete input", "op", op, "fields", verr.Fields)
		return
	}
	logger.Info("Activities service refused request", "op", op, "error", err)
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}
