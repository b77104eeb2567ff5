// Package views holds the templ components for the widget document, the
// link cards, and the admin pages. Components are hand-written
// templ.ComponentFunc values, so the package carries no generated code.
package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/linkboard/manifest"
)

// WidgetPage renders the complete widget document served inside the host
// page's iframe: a minimal HTML shell around the card list.
func WidgetPage(cards []manifest.Card, siteName string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		buf.WriteString(`<title>` + html.EscapeString(siteName) + `</title>`)
		buf.WriteString(`<style>` + widgetCSS + `</style>`)
		buf.WriteString(`</head><body>`)
		writeCardList(&buf, cards)
		buf.WriteString(`</body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// CardList renders one clickable card per descriptor, in manifest order.
// An empty slice renders an empty section: the widget shows nothing rather
// than an error state.
func CardList(cards []manifest.Card) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeCardList(&buf, cards)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeCardList(buf *bytes.Buffer, cards []manifest.Card) {
	buf.WriteString(`<section class="cards">`)
	for _, c := range cards {
		writeCard(buf, c)
	}
	buf.WriteString(`</section>`)
}

// writeCard emits a single card: a small category header and a larger title
// body inside one anchor. target="_parent" makes navigation escape the
// embedding frame.
func writeCard(buf *bytes.Buffer, c manifest.Card) {
	buf.WriteString(`<a class="card" href="` + cardURL(c.URL) + `" target="_parent">`)
	buf.WriteString(`<span class="card-category">` + html.EscapeString(c.Category) + `</span>`)
	buf.WriteString(`<span class="card-title">` + html.EscapeString(c.Title) + `</span>`)
	buf.WriteString(`</a>`)
}

const widgetCSS = `
body{margin:0;font-family:ui-sans-serif,system-ui,sans-serif;background:transparent}
.cards{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:12px;padding:8px}
.card{display:flex;flex-direction:column;gap:6px;padding:14px;border:1px solid #d6d3d1;border-radius:8px;background:#fff;text-decoration:none;color:#1c1917;transition:box-shadow .15s ease,transform .15s ease}
.card:hover{box-shadow:0 2px 8px rgba(0,0,0,.12);transform:translateY(-2px)}
.card-category{font-size:11px;font-weight:600;letter-spacing:.12em;text-transform:uppercase;color:#78716c}
.card-title{font-size:16px;font-weight:600;line-height:1.3}
`
