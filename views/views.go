// Package views renders the survey and tracker screens from embedded
// html/template files. Each screen is exposed through the templ.Component
// interface so handlers and the layout can compose them.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"likertLabel": LikertLabel,
	"likertColor": LikertColor,
	"inc":         func(i int) int { return i + 1 },
}).ParseFS(files, "templates/*.html"))

// htmlTemplate wraps the embedded html/template named name in a
// templ.Component that executes it with data.
func htmlTemplate(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}

type layoutData struct {
	Title     string
	CSRFToken string
	Nonce     string
}

// Layout wraps the children in the page shell. Render it with
// templ.WithChildren.
func Layout(title, csrfToken, nonce string) templ.Component {
	data := layoutData{Title: title, CSRFToken: csrfToken, Nonce: nonce}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := templates.ExecuteTemplate(w, "layout_head", data); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		return templates.ExecuteTemplate(w, "layout_foot", data)
	})
}

// Alert kinds map to the banner colors.
const (
	AlertSuccess = "success"
	AlertInfo    = "info"
	AlertWarning = "warning"
	AlertError   = "error"
)

// Message is an inline banner.
type Message struct {
	Kind string
	Text string
}

// Alert renders a single banner.
func Alert(kind, text string) templ.Component {
	return htmlTemplate("alert", Message{Kind: kind, Text: text})
}

// ErrorPage is shown when a flow cannot continue.
func ErrorPage(title, message string) templ.Component {
	return htmlTemplate("error", struct{ Title, Message string }{title, message})
}
