package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/shelf/internal/domain"
)

// maxBodyBytes caps request bodies read by DecodeJSON.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeJSON reads the request body into dst and validates its struct tags.
// Validation failures are returned as a *domain.ValidationError.
func DecodeJSON(r *http.Request, op string, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Invalid(op, "Malformed JSON body")
	}
	return Validate(op, dst)
}

// Validate runs struct tag validation on v.
func Validate(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Internal(err, op, "validation failed")
	}

	out := &domain.ValidationError{Op: op}
	for _, fe := range verrs {
		out.Add(fe.Field(), fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// PathID parses a positive integer path value.
func PathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, domain.NewValidationError("", name, name+" must be a positive integer")
	}
	return id, nil
}

// Page parses the page and size query parameters.
// Missing values take the defaults; malformed ones are rejected.
func Page(r *http.Request) (domain.PageRequest, error) {
	q := r.URL.Query()

	page, err := queryInt(q.Get("page"), 0)
	if err != nil || page < 0 {
		return domain.PageRequest{}, domain.NewValidationError("", "page", "page must be a non-negative integer")
	}
	size, err := queryInt(q.Get("size"), domain.DefaultPageSize)
	if err != nil || size < 1 {
		return domain.PageRequest{}, domain.NewValidationError("", "size", "size must be a positive integer")
	}

	p := domain.NewPageRequest(page, size)
	if last := domain.MaxPage(p.Size); page > last {
		return domain.PageRequest{}, domain.NewValidationError("", "page", "page must not exceed "+strconv.Itoa(last))
	}
	return p, nil
}

// SortedPage parses page, size and any number of sort=field[,asc|desc] parameters.
// Fields outside allowed are rejected.
func SortedPage(r *http.Request, allowed ...string) (domain.PageRequest, error) {
	p, err := Page(r)
	if err != nil {
		return p, err
	}

	for _, raw := range r.URL.Query()["sort"] {
		field, dir, _ := strings.Cut(raw, ",")
		field = strings.TrimSpace(field)
		if !slices.Contains(allowed, field) {
			return p, domain.NewValidationError("", "sort", "cannot sort by "+strconv.Quote(field))
		}

		order := domain.SortOrder{Field: field}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			order.Desc = true
		default:
			return p, domain.NewValidationError("", "sort", "sort direction must be asc or desc")
		}
		p.Sort = append(p.Sort, order)
	}

	return p, nil
}

func queryInt(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
