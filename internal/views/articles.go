package views

import (
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"newsdesk/internal/features/articles/models"
)

// SaveRedirectDelay is how long the confirmation page stays up
const SaveRedirectDelay = 1500 * time.Millisecond

// ArticleFilter is the admin list's filter state, carried in the query string
type ArticleFilter struct {
	Category     string
	FeaturedOnly bool
	StartDate    string
	EndDate      string
}

// URL returns the admin list URL for page p under this filter
func (f ArticleFilter) URL(p int) string {
	q := url.Values{}
	if p > 1 {
		q.Set("page", strconv.Itoa(p))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.FeaturedOnly {
		q.Set("isFeatured", "true")
	}
	if f.StartDate != "" {
		q.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("endDate", f.EndDate)
	}
	if len(q) == 0 {
		return "/admin"
	}
	return "/admin?" + q.Encode()
}

// ArticleListData fills the admin article list
type ArticleListData struct {
	Session    Session
	Articles   []models.Article
	Pagination models.Pagination
	Filter     ArticleFilter
	Error      string
}

// ArticleListPage renders the admin dashboard
func ArticleListPage(data ArticleListData) templ.Component {
	current := data.Filter.URL(data.Pagination.Page)

	return page("Articles Management", &data.Session,
		card("Articles List",
			Div(g.Attr("class", "mb-4"),
				A(g.Attr("href", "/admin/article/new"), g.Attr("class", buttonClasses), g.Text("Create New Article")),
			),
			alert("error", data.Error),
			filterForm(data.Filter),
			Table(g.Attr("class", "min-w-full text-left text-sm"),
				THead(Tr(
					Th(g.Text("Title")), Th(g.Text("Author")), Th(g.Text("Category")), Th(g.Text("Published")),
					Th(g.Text("Featured")), Th(g.Text("Views")), Th(g.Text("Actions")),
				)),
				TBody(
					g.If(len(data.Articles) == 0,
						Tr(Td(g.Attr("colspan", "7"), g.Attr("class", "py-4 text-center text-gray-500"), g.Text("No articles found"))),
					),
					g.Group(g.Map(data.Articles, func(a models.Article) g.Node {
						return articleRow(a, current)
					})),
				),
			),
			pagination(data.Filter, data.Pagination),
		),
	)
}

func filterForm(f ArticleFilter) g.Node {
	return Form(g.Attr("method", "get"), g.Attr("action", "/admin"), g.Attr("class", "mb-4 flex flex-wrap items-end gap-4"),
		Div(
			Label(g.Attr("for", "category"), g.Attr("class", labelClasses), g.Text("Category")),
			Select(g.Attr("id", "category"), g.Attr("name", "category"), g.Attr("class", inputClasses),
				Option(g.Attr("value", ""), g.Text("All")),
				g.Group(categoryOptions(FilterCategories, f.Category)),
			),
		),
		Label(g.Attr("class", "flex items-center gap-2 text-sm"),
			Input(g.Attr("type", "checkbox"), g.Attr("name", "isFeatured"), g.Attr("value", "true"), g.If(f.FeaturedOnly, Checked())),
			g.Text("Featured Only"),
		),
		Div(
			Label(g.Attr("for", "startDate"), g.Attr("class", labelClasses), g.Text("Start Date")),
			Input(g.Attr("type", "date"), g.Attr("id", "startDate"), g.Attr("name", "startDate"), g.Attr("value", f.StartDate), g.Attr("class", inputClasses)),
		),
		Div(
			Label(g.Attr("for", "endDate"), g.Attr("class", labelClasses), g.Text("End Date")),
			Input(g.Attr("type", "date"), g.Attr("id", "endDate"), g.Attr("name", "endDate"), g.Attr("value", f.EndDate), g.Attr("class", inputClasses)),
		),
		Button(g.Attr("type", "submit"), g.Attr("class", buttonClasses), g.Text("Filter")),
	)
}

// categoryOptions marks only the first option carrying selected, since two
// filter labels share a value.
func categoryOptions(options []CategoryOption, selected string) []g.Node {
	nodes := make([]g.Node, 0, len(options))
	marked := false
	for _, o := range options {
		isSelected := !marked && selected != "" && o.Value == selected
		if isSelected {
			marked = true
		}
		nodes = append(nodes, Option(g.Attr("value", o.Value), g.If(isSelected, Selected()), g.Text(o.Label)))
	}
	return nodes
}

func articleRow(a models.Article, returnTo string) g.Node {
	author := "N/A"
	if a.Author != nil && a.Author.Name != "" {
		author = a.Author.Name
	}

	return Tr(g.Attr("class", "border-t"),
		Td(g.Text(a.Title)),
		Td(g.Text(author)),
		Td(g.Text(a.Category)),
		Td(g.Text(a.PublishDate.Format("2006-01-02"))),
		Td(
			Form(g.Attr("method", "post"), g.Attr("action", "/admin/articles/"+a.ID+"/featured"),
				Input(g.Attr("type", "hidden"), g.Attr("name", "return"), g.Attr("value", returnTo)),
				Input(g.Attr("type", "checkbox"), g.Attr("aria-label", "Featured"),
					g.Attr("onchange", "this.form.submit()"), g.If(a.IsFeatured, Checked())),
				NoScript(Button(g.Attr("type", "submit"), g.Text("Toggle"))),
			),
		),
		Td(g.Text(strconv.Itoa(a.Views))),
		Td(A(g.Attr("href", "/admin/article/"+a.ID), g.Attr("class", "text-blue-600 hover:underline"), g.Text("Edit"))),
	)
}

func pagination(f ArticleFilter, p models.Pagination) g.Node {
	if p.Pages <= 1 {
		return nil
	}

	links := make([]g.Node, 0, p.Pages)
	for i := 1; i <= p.Pages; i++ {
		linkClasses := classes("rounded border px-3 py-1 text-sm")
		if i == p.Page {
			linkClasses = classes("rounded border px-3 py-1 text-sm", "border-blue-600 bg-blue-600 text-white")
		}
		links = append(links, A(g.Attr("href", f.URL(i)), linkClasses, g.Text(strconv.Itoa(i))))
	}

	return Nav(g.Attr("class", "mt-4 flex justify-center gap-2"), g.Attr("aria-label", "Pagination"), g.Group(links))
}

// ArticleFormData fills the create and edit form
type ArticleFormData struct {
	Session        Session
	ID             string
	Title          string
	Excerpt        string
	Content        string
	Category       string
	FeaturedImage  string
	IsFeatured     bool
	UploadsEnabled bool
	Error          string
}

// Editing reports whether the form edits an existing article
func (d ArticleFormData) Editing() bool {
	return d.ID != ""
}

// Action is where the form posts to
func (d ArticleFormData) Action() string {
	if d.Editing() {
		return "/admin/article/" + d.ID
	}
	return "/admin/article/new"
}

// FormDataFromArticle pre-fills the edit form
func FormDataFromArticle(a *models.Article) ArticleFormData {
	return ArticleFormData{
		ID:            a.ID,
		Title:         a.Title,
		Excerpt:       a.Excerpt,
		Content:       a.Content,
		Category:      a.Category,
		FeaturedImage: a.FeaturedImage,
		IsFeatured:    a.IsFeatured,
	}
}

// ArticleFormPage renders the create or edit form
func ArticleFormPage(data ArticleFormData) templ.Component {
	title := "Create Article"
	if data.Editing() {
		title = "Edit Article"
	}

	return page(title, &data.Session,
		card(title,
			alert("error", data.Error),
			Form(g.Attr("method", "post"), g.Attr("action", data.Action()), g.Attr("enctype", "multipart/form-data"),
				field("Title", "title",
					Input(g.Attr("type", "text"), g.Attr("id", "title"), g.Attr("name", "title"),
						g.Attr("value", data.Title), g.Attr("class", inputClasses), Required())),
				field("Excerpt", "excerpt",
					Textarea(g.Attr("id", "excerpt"), g.Attr("name", "excerpt"), g.Attr("rows", "2"),
						g.Attr("class", inputClasses), Required(), g.Text(data.Excerpt))),
				field("Category", "category",
					Select(g.Attr("id", "category"), g.Attr("name", "category"), g.Attr("class", inputClasses), Required(),
						Option(g.Attr("value", ""), g.Text("Select a category")),
						g.Group(categoryOptions(FormCategories, data.Category)),
					)),
				field("Featured Image URL", "featuredImage",
					Input(g.Attr("type", "url"), g.Attr("id", "featuredImage"), g.Attr("name", "featuredImage"),
						g.Attr("value", data.FeaturedImage), g.Attr("class", inputClasses))),
				g.If(data.UploadsEnabled,
					field("Upload Featured Image", "featuredImageFile",
						Input(g.Attr("type", "file"), g.Attr("id", "featuredImageFile"), g.Attr("name", "featuredImageFile"),
							g.Attr("accept", "image/*"), g.Attr("class", "text-sm"))),
				),
				g.If(data.FeaturedImage != "",
					Img(g.Attr("src", data.FeaturedImage), g.Attr("alt", "Featured image preview"),
						g.Attr("width", "200"), g.Attr("height", "120"), g.Attr("class", "mb-4 object-cover")),
				),
				field("Content", "content",
					Textarea(g.Attr("id", "content"), g.Attr("name", "content"), g.Attr("rows", "14"),
						g.Attr("class", inputClasses), Required(), g.Text(data.Content))),
				Label(g.Attr("class", "mb-4 flex items-center gap-2 text-sm"),
					Input(g.Attr("type", "checkbox"), g.Attr("name", "isFeatured"), g.Attr("value", "true"), g.If(data.IsFeatured, Checked())),
					g.Text("Featured Article"),
				),
				Div(g.Attr("class", "flex justify-end gap-2"),
					A(g.Attr("href", "/admin"), classes(buttonClasses, "bg-white text-gray-700 border hover:bg-gray-100"), g.Text("Cancel")),
					Button(g.Attr("type", "submit"), g.Attr("class", buttonClasses), g.Text("Save Article")),
				),
			),
		),
	)
}

// ConfirmationPage tells the editor the article was saved, then returns to
// the list.
func ConfirmationPage(session Session, message string) templ.Component {
	return page("Saved", &session,
		card("Saved",
			alert("success", message),
			P(g.Attr("class", "text-sm"),
				A(g.Attr("href", "/admin"), g.Attr("class", "text-blue-600"), g.Text("Back to articles")),
			),
			redirectAfter("/admin", SaveRedirectDelay),
		),
	)
}
