package views

import (
	"context"
	"io"
	"net/http"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	g "github.com/maragudk/gomponents"
)

// Component adapts a gomponents tree to templ.Component
func Component(node g.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return node.Render(w)
	})
}

// Render writes c as an HTML response
func Render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return c.Render(r.Context(), w)
}

// classes merges Tailwind class lists, later lists winning conflicts
func classes(base string, overrides ...string) g.Node {
	return g.Attr("class", twmerge.Merge(append([]string{base}, overrides...)...))
}
