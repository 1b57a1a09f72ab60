package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"newsdesk/internal/auth"
	"newsdesk/internal/core"
	articlehandlers "newsdesk/internal/features/articles/handlers"
	"newsdesk/internal/features/articles/models"
	"newsdesk/internal/features/articles/services"
	"newsdesk/internal/views"
)

const (
	// ImageField is the form field carrying an optional featured image
	ImageField = "featuredImageFile"

	msgSaved         = "Article saved successfully!"
	msgSaveFailed    = "Failed to save article"
	msgUploadFailed  = "Failed to upload image"
	msgLoadFailed    = "Failed to load articles"
	msgInvalidFilter = "Invalid date filter"
	msgNotFound      = "Article not found"

	formMemory = 8 << 20
)

// Handlers serves the admin and sign-in pages
type Handlers struct {
	logger   *core.Logger
	articles ArticleService
	accounts Accounts
	cookies  auth.Cookies
	uploader Uploader
	maxBytes int64
}

// NewHandlers creates the page handlers. uploader may be nil, in which case
// the article form offers no file field.
func NewHandlers(logger *core.Logger, articles ArticleService, accounts Accounts, cookies auth.Cookies, uploader Uploader, maxBytes int64) *Handlers {
	return &Handlers{
		logger:   logger,
		articles: articles,
		accounts: accounts,
		cookies:  cookies,
		uploader: uploader,
		maxBytes: maxBytes,
	}
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	if err := views.Render(w, r, status, c); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to render page", "path", r.URL.Path, "error", err)
	}
}

// Dashboard handles GET /admin
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	data := views.ArticleListData{
		Session: views.Session{Email: user.Email},
		Filter: views.ArticleFilter{
			Category:     query.Get("category"),
			FeaturedOnly: query.Get("isFeatured") == "true",
			StartDate:    query.Get("startDate"),
			EndDate:      query.Get("endDate"),
		},
	}

	params, err := articlehandlers.ParseListParams(query)
	if err != nil {
		data.Error = msgInvalidFilter
		params.StartDate, params.EndDate = nil, nil
		data.Filter.StartDate, data.Filter.EndDate = "", ""
	}

	result, err := h.articles.ListArticles(r.Context(), params)
	if err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to list articles", "error", err)
		data.Error = msgLoadFailed
		data.Pagination = models.Pagination{Page: 1}
		h.render(w, r, http.StatusInternalServerError, views.ArticleListPage(data))
		return
	}

	data.Articles = result.Articles
	data.Pagination = result.Pagination
	h.render(w, r, http.StatusOK, views.ArticleListPage(data))
}

// ToggleFeatured handles POST /admin/articles/{id}/featured
func (h *Handlers) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.articles.ToggleFeatured(r.Context(), id); err != nil {
		h.pageError(w, r, err)
		return
	}

	http.Redirect(w, r, returnPath(r.PostFormValue("return")), http.StatusSeeOther)
}

// returnPath keeps redirects inside the admin pages
func returnPath(p string) string {
	if (p == adminHome || strings.HasPrefix(p, adminHome+"?") || strings.HasPrefix(p, adminHome+"/")) && !strings.HasPrefix(p, "//") {
		return p
	}
	return adminHome
}

// NewArticle handles GET /admin/article/new
func (h *Handlers) NewArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, views.ArticleFormPage(views.ArticleFormData{
		Session:        views.Session{Email: user.Email},
		UploadsEnabled: h.uploader != nil,
	}))
}

// EditArticle handles GET /admin/article/{id}
func (h *Handlers) EditArticle(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	article, err := h.articles.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.pageError(w, r, err)
		return
	}

	data := views.FormDataFromArticle(article)
	data.Session = views.Session{Email: user.Email}
	data.UploadsEnabled = h.uploader != nil
	h.render(w, r, http.StatusOK, views.ArticleFormPage(data))
}

// CreateArticle handles POST /admin/article/new
func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	h.saveArticle(w, r, "")
}

// UpdateArticle handles POST /admin/article/{id}
func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	h.saveArticle(w, r, chi.URLParam(r, "id"))
}

// saveArticle submits the whole form object. An attached image is uploaded
// first and replaces the featured image URL.
func (h *Handlers) saveArticle(w http.ResponseWriter, r *http.Request, id string) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	log := h.logger.WithContext(r.Context()).WithUser(user.ID, user.Email)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(formMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		log.Debug("Unreadable article form", "error", err)
		h.render(w, r, http.StatusBadRequest, views.ArticleFormPage(views.ArticleFormData{
			Session:        views.Session{Email: user.Email},
			ID:             id,
			UploadsEnabled: h.uploader != nil,
			Error:          msgSaveFailed,
		}))
		return
	}

	data := views.ArticleFormData{
		Session:        views.Session{Email: user.Email},
		ID:             id,
		Title:          strings.TrimSpace(r.PostFormValue("title")),
		Excerpt:        strings.TrimSpace(r.PostFormValue("excerpt")),
		Content:        r.PostFormValue("content"),
		Category:       r.PostFormValue("category"),
		FeaturedImage:  strings.TrimSpace(r.PostFormValue("featuredImage")),
		IsFeatured:     r.PostFormValue("isFeatured") == "true",
		UploadsEnabled: h.uploader != nil,
	}

	if h.uploader != nil {
		url, err := h.uploadImage(r)
		if err != nil {
			log.Error("Featured image upload failed", "error", err)
			data.Error = msgUploadFailed
			h.render(w, r, http.StatusInternalServerError, views.ArticleFormPage(data))
			return
		}
		if url != "" {
			data.FeaturedImage = url
		}
	}

	input := models.ArticleInput{
		Title:         data.Title,
		Content:       data.Content,
		Excerpt:       data.Excerpt,
		Category:      data.Category,
		FeaturedImage: data.FeaturedImage,
		IsFeatured:    data.IsFeatured,
	}

	var err error
	if id == "" {
		input.Author = models.AuthorRef(user.ID)
		_, err = h.articles.CreateArticle(r.Context(), input)
	} else {
		var existing *models.Article
		existing, err = h.articles.GetArticle(r.Context(), id)
		if err == nil {
			input.Author = models.AuthorRef(existing.AuthorID)
			input.PublishDate = &existing.PublishDate
			_, err = h.articles.UpdateArticle(r.Context(), id, input)
		}
	}

	if err != nil {
		if services.IsNotFound(err) {
			h.pageError(w, r, err)
			return
		}
		status := http.StatusInternalServerError
		data.Error = msgSaveFailed
		if appErr := core.AsAppError(err); appErr.Code == core.ErrCodeValidation {
			status = http.StatusBadRequest
			data.Error = appErr.Message
		} else {
			log.Error("Failed to save article", "article_id", id, "error", err)
		}
		h.render(w, r, status, views.ArticleFormPage(data))
		return
	}

	h.render(w, r, http.StatusOK, views.ConfirmationPage(views.Session{Email: user.Email}, msgSaved))
}

// uploadImage stores the attached image and returns its URL, or "" when no
// file was attached.
func (h *Handlers) uploadImage(r *http.Request) (string, error) {
	file, header, err := r.FormFile(ImageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if header.Size == 0 {
		return "", nil
	}
	return h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file, header.Size)
}

func (h *Handlers) pageError(w http.ResponseWriter, r *http.Request, err error) {
	if services.IsNotFound(err) {
		http.Error(w, msgNotFound, http.StatusNotFound)
		return
	}
	h.logger.WithContext(r.Context()).Error("Admin request failed", "path", r.URL.Path, "error", err)
	http.Error(w, core.MsgInternal, http.StatusInternalServerError)
}
