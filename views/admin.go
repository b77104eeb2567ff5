package views

import (
	"bytes"
	"context"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// AdminLogin renders the admin password form.
func AdminLogin(showError bool, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writePageOpen(&buf, "Admin — Linkboard")
		buf.WriteString(`<main class="admin"><h1>Admin</h1>`)
		if showError {
			buf.WriteString(`<p class="error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrfToken) + `"/>`)
		buf.WriteString(`<input type="password" name="password" placeholder="Password" autofocus/>`)
		buf.WriteString(`<button type="submit">Log in</button>`)
		buf.WriteString(`</form></main>`)
		writePageClose(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// AdminStatus renders the manifest status dashboard: source, last fetch,
// per-page card counts, and the cache refresh action.
func AdminStatus(st Status, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writePageOpen(&buf, "Status — Linkboard")
		buf.WriteString(`<main class="admin"><h1>Manifest status</h1>`)
		buf.WriteString(`<p>Source: <code>` + html.EscapeString(st.Source) + `</code></p>`)
		if !st.LastFetch.IsZero() {
			buf.WriteString(`<p>Last fetch: ` + st.LastFetch.Format("2006-01-02 15:04:05 MST") + `</p>`)
		}
		if st.LastError != "" {
			buf.WriteString(`<p class="error">Last error: ` + html.EscapeString(st.LastError) + `</p>`)
		}

		buf.WriteString(`<table><thead><tr><th>Page key</th><th>Cards</th></tr></thead><tbody>`)
		for _, p := range st.Pages {
			key := p.Key
			if key == "" {
				key = "(root)"
			}
			buf.WriteString(`<tr><td>` + html.EscapeString(key) + `</td><td>` + strconv.Itoa(p.Cards) + `</td></tr>`)
		}
		buf.WriteString(`</tbody></table>`)

		buf.WriteString(`<form method="post" action="/admin/refresh/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrfToken) + `"/>`)
		buf.WriteString(`<button type="submit">Refresh manifest</button>`)
		buf.WriteString(`</form>`)

		buf.WriteString(`<form method="post" action="/admin/logout/">`)
		buf.WriteString(`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrfToken) + `"/>`)
		buf.WriteString(`<button type="submit">Log out</button>`)
		buf.WriteString(`</form></main>`)
		writePageClose(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// NotFound renders the 404 page.
func NotFound() templ.Component {
	return staticPage("Not found", "404 — nothing here.")
}

// ServerError renders the 500 page.
func ServerError() templ.Component {
	return staticPage("Server error", "500 — something broke on our side.")
}

func staticPage(title, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writePageOpen(&buf, title)
		buf.WriteString(`<main class="admin"><p>` + html.EscapeString(message) + `</p></main>`)
		writePageClose(&buf)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writePageOpen(buf *bytes.Buffer, title string) {
	buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	buf.WriteString(`<title>` + html.EscapeString(title) + `</title>`)
	buf.WriteString(`<style>` + adminCSS + `</style>`)
	buf.WriteString(`</head><body>`)
}

func writePageClose(buf *bytes.Buffer) {
	buf.WriteString(`</body></html>`)
}

const adminCSS = `
body{font-family:ui-sans-serif,system-ui,sans-serif;color:#1c1917;max-width:640px;margin:2rem auto;padding:0 1rem}
.error{color:#b91c1c}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #d6d3d1;padding:4px 12px;text-align:left}
form{margin:.75rem 0}
input[type=password]{padding:6px 8px;border:1px solid #d6d3d1;border-radius:4px}
button{padding:6px 14px;border:1px solid #1c1917;border-radius:4px;background:#1c1917;color:#fff;cursor:pointer}
`
