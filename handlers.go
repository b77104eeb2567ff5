package linkboard

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/linkboard/manifest"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// handleWidget serves the embeddable card list. The host page URL arrives
// via the "from" query parameter (set by embed.js); the Referer header is
// the fallback for hand-written embeds. Every failure mode — unresolvable
// key, fetch error, key absent from the manifest — degrades to an empty
// card list with no error surfaced to the frame.
func (a *App) handleWidget(c echo.Context) error {
	from := c.QueryParam("from")
	if from == "" {
		from = c.Request().Referer()
	}

	var cards []manifest.Card
	if key, ok := manifest.PageKey(from); ok {
		m, err := a.Manifest(c)
		if err != nil {
			// Diagnostics are logged by the fetch layer; the widget just
			// shows nothing.
			c.Logger().Warnf("widget: manifest unavailable: %v", err)
		} else {
			cards = m.Cards(key)
		}
	}

	return Render(c, a.Views.Widget(cards, a.Config.Name))
}

// handleManifestJSON serves the local store's manifest in the same document
// shape the widget fetches from a remote store.
func (a *App) handleManifestJSON(c echo.Context) error {
	m, err := a.Store.Manifest()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func (a *App) handleEmbedJS(c echo.Context) error {
	data, err := EmbeddedAssets.ReadFile("embedded/embed.js")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/javascript; charset=utf-8", data)
}

func (a *App) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
