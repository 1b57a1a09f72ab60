package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
	g "github.com/maragudk/gomponents"
)

const tailwindCDN = "https://cdn.tailwindcss.com"

// Layout is the HTML shell shared by every page. Its children render inside
// <main>.
func Layout(title string, session *Session) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		children := templ.GetChildren(ctx)
		if children == nil {
			children = templ.NopComponent
		}
		ctx = templ.ClearChildren(ctx)

		err := writeAll(w,
			`<!doctype html><html lang="bn"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`,
			templ.EscapeString(title),
			`</title><script src="`, tailwindCDN, `"></script></head>`,
			`<body class="min-h-screen bg-gray-50 text-gray-900">`,
		)
		if err != nil {
			return err
		}
		if err := Navbar(session).Render(ctx, w); err != nil {
			return err
		}
		if err := writeAll(w, `<main class="mx-auto max-w-6xl p-6">`); err != nil {
			return err
		}
		if err := children.Render(ctx, w); err != nil {
			return err
		}
		return writeAll(w, `</main></body></html>`)
	})
}

// Navbar links the admin pages for a signed-in user, or just the home link
func Navbar(session *Session) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if session == nil {
			return writeAll(w,
				`<nav class="border-b bg-white px-6 py-3"><a href="/" class="font-bold">Newsdesk</a></nav>`,
			)
		}
		return writeAll(w,
			`<nav class="flex items-center justify-between border-b bg-white px-6 py-3">`,
			`<div class="flex gap-4"><a href="/admin" class="font-bold">Newsdesk</a>`,
			`<a href="/admin/article/new">New article</a>`,
			`<a href="/profile">`, templ.EscapeString(session.Email), `</a></div>`,
			`<form method="post" action="/authentication/logout">`,
			`<button type="submit" class="text-sm text-gray-600 hover:underline">Log out</button>`,
			`</form></nav>`,
		)
	})
}

// page wraps gomponents content in the layout
func page(title string, session *Session, content ...g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body := Component(g.Group(content))
		return Layout(title, session).Render(templ.WithChildren(ctx, body), w)
	})
}

func writeAll(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}
