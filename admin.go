package linkboard

import (
	"crypto/subtle"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/eringen/linkboard/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminStatus(c)
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminRefresh drops the cached manifest so the next widget request
// reads the store fresh. There is deliberately no content editing here: the
// manifest is owned and edited outside this service.
func (a *App) handleAdminRefresh(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
	return a.renderAdminStatus(c)
}

func (a *App) renderAdminStatus(c echo.Context) error {
	return Render(c, a.Views.AdminStatus(a.status(c), CsrfToken(c)))
}

// status assembles the admin snapshot. When a remote store is configured
// the manifest comes through the cache (possibly triggering a fetch);
// otherwise it is read from the local store.
func (a *App) status(c echo.Context) views.Status {
	st := views.Status{Source: a.Config.ManifestURL}
	if st.Source == "" {
		st.Source = a.Config.DatabasePath
	}

	m, err := a.Manifest(c)
	if a.Cache != nil {
		st.LastFetch, st.LastError = a.Cache.Stats()
	} else if err != nil {
		st.LastError = err.Error()
	}
	if err != nil {
		return st
	}

	for key, cards := range m {
		st.Pages = append(st.Pages, views.PageStatus{Key: key, Cards: len(cards)})
	}
	sort.Slice(st.Pages, func(i, j int) bool { return st.Pages[i].Key < st.Pages[j].Key })
	return st
}
