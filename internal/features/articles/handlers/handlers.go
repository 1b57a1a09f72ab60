package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/core"
	"newsdesk/internal/features/articles/models"
	"newsdesk/internal/features/articles/services"
)

const dateOnly = "2006-01-02"

// Handlers contains the article API handlers
type Handlers struct {
	logger         *core.Logger
	articleService *services.ArticleService
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, articleService *services.ArticleService) *Handlers {
	return &Handlers{
		logger:         logger,
		articleService: articleService,
	}
}

// ParseListParams reads the listing query string. Unusable page and limit
// values are left at zero so the service applies its defaults; dates that do
// not parse are an error.
func ParseListParams(query url.Values) (models.ListParams, error) {
	params := models.ListParams{
		Category:     query.Get("category"),
		FeaturedOnly: query.Get("isFeatured") == "true",
	}

	if page, err := strconv.Atoi(query.Get("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		params.Limit = limit
	}

	var err error
	if params.StartDate, err = parseDate(query.Get("startDate")); err != nil {
		return params, fmt.Errorf("startDate: %w", err)
	}
	if params.EndDate, err = parseDate(query.Get("endDate")); err != nil {
		return params, fmt.Errorf("endDate: %w", err)
	}

	return params, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("expected RFC 3339 or YYYY-MM-DD, got %q", value)
	}
	return &t, nil
}

// ListArticles handles GET /api/articles
func (h *Handlers) ListArticles(w http.ResponseWriter, r *http.Request) {
	params, err := ParseListParams(r.URL.Query())
	if err != nil {
		core.HandleError(w, r, h.logger, core.NewValidationError("Invalid date filter", err))
		return
	}

	result, err := h.articleService.ListArticles(r.Context(), params)
	if err != nil {
		core.HandleError(w, r, h.logger, core.NewDatabaseError(err))
		return
	}

	core.WriteJSON(w, r, http.StatusOK, result)
}

// GetArticle handles GET /api/articles/{id}
func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleService.GetArticle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	core.WriteJSON(w, r, http.StatusOK, article)
}

// CreateArticle handles POST /api/articles
func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var input models.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		core.HandleError(w, r, h.logger, core.NewValidationError(core.MsgInvalidBody, err))
		return
	}

	article, err := h.articleService.CreateArticle(r.Context(), input)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	core.WriteJSON(w, r, http.StatusOK, article)
}

// UpdateArticle handles PUT /api/articles/{id}
func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var input models.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		core.HandleError(w, r, h.logger, core.NewValidationError(core.MsgInvalidBody, err))
		return
	}

	article, err := h.articleService.UpdateArticle(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	core.WriteJSON(w, r, http.StatusOK, article)
}

// handleStoreError maps a missing article to 404. Validation errors keep
// their message; everything else, malformed ids included, is a 500.
func (h *Handlers) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if services.IsNotFound(err) {
		core.HandleError(w, r, h.logger, core.NewNotFoundError("Article not found", err))
		return
	}
	core.HandleError(w, r, h.logger, err)
}
