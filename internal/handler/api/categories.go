package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/handler"
	"github.com/dukerupert/shelf/internal/service"
)

// CategoryHandler handles category routes
type CategoryHandler struct {
	categories service.CategoryService
	books      service.BookService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories service.CategoryService, books service.BookService) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		books:      books,
	}
}

// bookSummary is a book listed under a category, without its category ids.
type bookSummary struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CoverImage  string          `json:"coverImage"`
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1024"`
}

func (req categoryRequest) input() domain.CategoryInput {
	return domain.CategoryInput{Name: req.Name, Description: req.Description}
}

// Create handles POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := handler.DecodeJSON(r, "category.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	category, err := h.categories.Create(r.Context(), req.input())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusCreated, category)
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := handler.Page(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	categories, err := h.categories.List(r.Context(), page)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, categories)
}

// Get handles GET /categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	category, err := h.categories.Get(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, category)
}

// Update handles PUT /categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	var req categoryRequest
	if err := handler.DecodeJSON(r, "category.update", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	category, err := h.categories.Update(r.Context(), id, req.input())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id}
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Books handles GET /categories/{id}/books
func (h *CategoryHandler) Books(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	page, err := handler.Page(r)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	books, err := h.books.ListByCategory(r.Context(), id, page)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, summarize(books))
}

func summarize(books []domain.Book) []bookSummary {
	out := make([]bookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, bookSummary{
			ID:          b.ID,
			Title:       b.Title,
			Author:      b.Author,
			ISBN:        b.ISBN,
			Price:       b.Price,
			Description: b.Description,
			CoverImage:  b.CoverImage,
		})
	}
	return out
}
