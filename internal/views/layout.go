package views

import (
	"fmt"
	"time"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const (
	buttonClasses = "inline-block rounded bg-blue-600 px-4 py-2 text-sm font-medium text-white hover:bg-blue-700"
	inputClasses  = "block w-full rounded border border-gray-300 px-3 py-2 text-sm"
	labelClasses  = "mb-1 block text-sm font-semibold text-gray-700"
	alertClasses  = "mb-4 rounded px-4 py-2 text-sm"
)

// Session is what the page chrome knows about the signed-in user
type Session struct {
	Email string
}

func card(title string, content ...g.Node) g.Node {
	return Div(g.Attr("class", "rounded-lg bg-white p-6 shadow"),
		H1(g.Attr("class", "mb-4 text-xl font-bold"), g.Text(title)),
		g.Group(content),
	)
}

func alert(kind, message string) g.Node {
	if message == "" {
		return nil
	}
	colour := "bg-red-100 text-red-800"
	if kind == "success" {
		colour = "bg-green-100 text-green-800"
	}
	return Div(classes(alertClasses, colour), g.Attr("role", "alert"), g.Text(message))
}

func field(label, id string, control g.Node) g.Node {
	return Div(g.Attr("class", "mb-4"),
		Label(g.Attr("for", id), g.Attr("class", labelClasses), g.Text(label)),
		control,
	)
}

// redirectAfter sends the browser to target once delay has passed
func redirectAfter(target string, delay time.Duration) g.Node {
	return Script(g.Raw(fmt.Sprintf("setTimeout(function(){window.location.href=%q;},%d);", target, delay.Milliseconds())))
}
