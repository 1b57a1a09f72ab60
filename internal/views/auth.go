package views

import (
	"time"

	"github.com/a-h/templ"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// RegisterRedirectDelay is how long the register success message stays up
const RegisterRedirectDelay = 2 * time.Second

// LoginData fills the login form
type LoginData struct {
	Email string
	Error string
}

// LoginPage renders the sign-in form
func LoginPage(data LoginData) templ.Component {
	return page("Login", nil,
		Div(g.Attr("class", "mx-auto max-w-md"),
			card("Sign in",
				alert("error", data.Error),
				Form(g.Attr("method", "post"), g.Attr("action", "/authentication/login"),
					field("Email Address", "email",
						Input(g.Attr("type", "email"), g.Attr("id", "email"), g.Attr("name", "email"),
							g.Attr("value", data.Email), g.Attr("class", inputClasses), Required())),
					field("Password", "password",
						Input(g.Attr("type", "password"), g.Attr("id", "password"), g.Attr("name", "password"),
							g.Attr("class", inputClasses), Required())),
					Button(g.Attr("type", "submit"), classes(buttonClasses, "w-full"), g.Text("Sign In")),
				),
				P(g.Attr("class", "mt-4 text-sm"),
					g.Text("No account? "),
					A(g.Attr("href", "/authentication/register"), g.Attr("class", "text-blue-600"), g.Text("Create one")),
				),
			),
		),
	)
}

// RegisterData fills the registration form
type RegisterData struct {
	Name    string
	Email   string
	Error   string
	Success string
}

// RegisterPage renders the sign-up form. After a successful registration it
// shows the message and moves on to the login page.
func RegisterPage(data RegisterData) templ.Component {
	return page("Register", nil,
		Div(g.Attr("class", "mx-auto max-w-md"),
			card("Sign up",
				alert("error", data.Error),
				alert("success", data.Success),
				g.If(data.Success != "", redirectAfter("/authentication/login", RegisterRedirectDelay)),
				g.If(data.Success == "",
					Form(g.Attr("method", "post"), g.Attr("action", "/authentication/register"),
						field("Name", "name",
							Input(g.Attr("type", "text"), g.Attr("id", "name"), g.Attr("name", "name"),
								g.Attr("value", data.Name), g.Attr("class", inputClasses))),
						field("Email Address", "email",
							Input(g.Attr("type", "email"), g.Attr("id", "email"), g.Attr("name", "email"),
								g.Attr("value", data.Email), g.Attr("class", inputClasses), Required())),
						field("Password", "password",
							Input(g.Attr("type", "password"), g.Attr("id", "password"), g.Attr("name", "password"),
								g.Attr("class", inputClasses), g.Attr("minlength", "8"), Required())),
						Button(g.Attr("type", "submit"), classes(buttonClasses, "w-full"), g.Text("Sign Up")),
					),
				),
				P(g.Attr("class", "mt-4 text-sm"),
					g.Text("Already registered? "),
					A(g.Attr("href", "/authentication/login"), g.Attr("class", "text-blue-600"), g.Text("Sign in")),
				),
			),
		),
	)
}

// ProfileData describes the signed-in user
type ProfileData struct {
	Name  string
	Email string
	Role  string
}

// ProfilePage renders the signed-in user's account details
func ProfilePage(data ProfileData) templ.Component {
	name := data.Name
	if name == "" {
		name = "N/A"
	}
	return page("Profile", &Session{Email: data.Email},
		card("Profile",
			Dl(g.Attr("class", "grid grid-cols-2 gap-2 text-sm"),
				Dt(g.Attr("class", "font-semibold"), g.Text("Name")), Dd(g.Text(name)),
				Dt(g.Attr("class", "font-semibold"), g.Text("Email")), Dd(g.Text(data.Email)),
				Dt(g.Attr("class", "font-semibold"), g.Text("Role")), Dd(g.Text(data.Role)),
			),
		),
	)
}
