package api

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dukerupert/shelf/internal/domain"
	"github.com/dukerupert/shelf/internal/handler"
	"github.com/dukerupert/shelf/internal/service"
)

var bookSortFields = []string{"id", "title", "author", "price"}

// BookHandler handles catalog routes
type BookHandler struct {
	books service.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(books service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

type bookRequest struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Author      string           `json:"author" validate:"required,max=255"`
	ISBN        string           `json:"isbn" validate:"required,max=32"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description"`
	CoverImage  string           `json:"coverImage"`
	CategoryIDs []int64          `json:"categoryIds" validate:"required,min=1,dive,gte=1"`
}

func (req bookRequest) input() domain.BookInput {
	return domain.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       *req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	}
}

// List handles GET /books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := handler.SortedPage(r, bookSortFields...)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	books, err := h.books.List(r.Context(), page)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, books)
}

// Search handles GET /books/search?authors=..&prices=low&prices=high
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := handler.SortedPage(r, bookSortFields...)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	q := r.URL.Query()
	params := domain.BookSearchParameters{
		Authors: splitList(q["authors"]),
		Prices:  splitList(q["prices"]),
	}

	books, err := h.books.Search(r.Context(), params, page)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, books)
}

// Get handles GET /books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	book, err := h.books.Get(r.Context(), id)
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, book)
}

// Create handles POST /books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := handler.DecodeJSON(r, "book.create", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	book, err := h.books.Create(r.Context(), req.input())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusCreated, book)
}

// Update handles PUT /books/{id}
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	var req bookRequest
	if err := handler.DecodeJSON(r, "book.update", &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	book, err := h.books.Update(r.Context(), id, req.input())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.WriteJSON(w, http.StatusOK, book)
}

// Delete handles DELETE /books/{id}
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handler.PathID(r, "id")
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.books.Delete(r.Context(), id); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// splitList accepts both repeated parameters and comma separated values.
// Empty parts are dropped.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
