package view

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
	flashKeyInfo     = "info"
)

// FlashData holds the flash messages read from the session, grouped by kind.
type FlashData struct {
	Success []string
	Error   []string
	Info    []string
}

// Latest returns the most relevant flash: errors first, then successes, then
// info. ok is false when there are none.
func (f FlashData) Latest() (kind, text string, ok bool) {
	for _, group := range []struct {
		kind string
		msgs []string
	}{
		{flashKeyError, f.Error},
		{flashKeySuccess, f.Success},
		{flashKeyInfo, f.Info},
	} {
		if n := len(group.msgs); n > 0 {
			return group.kind, group.msgs[n-1], true
		}
	}
	return "", "", false
}

func setFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		slog.Warn("Could not load flash session", "error", err)
	}
	sess.AddFlash(message, key)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		slog.Error("Could not save flash session", "error", err)
	}
}

// SetFlash stores a message of the given kind ("success", "error" or
// "info"). Unknown kinds are stored as info.
func SetFlash(c echo.Context, kind, message string) {
	switch kind {
	case flashKeySuccess, flashKeyError:
	default:
		kind = flashKeyInfo
	}
	setFlash(c, kind, message)
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c echo.Context, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashData reads and clears the flash messages of the current session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	data.Success = toStrings(sess.Flashes(flashKeySuccess))
	data.Error = toStrings(sess.Flashes(flashKeyError))
	data.Info = toStrings(sess.Flashes(flashKeyInfo))

	// Persist the cleared flashes.
	if len(data.Success)+len(data.Error)+len(data.Info) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

func toStrings(flashes []any) []string {
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
