package repository

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgtype"
)

// ErrBuildingQuery is returned when a dynamic query cannot be rendered.
var ErrBuildingQuery = errors.New("building query failed")

const getBookByID = `-- name: GetBookByID :one
SELECT id, title, author, isbn, price, description, cover_image, is_deleted
FROM books
WHERE id = $1 AND is_deleted = FALSE
`

func (q *Queries) GetBookByID(ctx context.Context, id int64) (Book, error) {
	row := q.db.QueryRow(ctx, getBookByID, id)
	var i Book
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Author,
		&i.Isbn,
		&i.Price,
		&i.Description,
		&i.CoverImage,
		&i.IsDeleted,
	)
	return i, err
}

const getBookByISBN = `-- name: GetBookByISBN :one
SELECT id, title, author, isbn, price, description, cover_image, is_deleted
FROM books
WHERE isbn = $1 AND is_deleted = FALSE
`

func (q *Queries) GetBookByISBN(ctx context.Context, isbn string) (Book, error) {
	row := q.db.QueryRow(ctx, getBookByISBN, isbn)
	var i Book
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Author,
		&i.Isbn,
		&i.Price,
		&i.Description,
		&i.CoverImage,
		&i.IsDeleted,
	)
	return i, err
}

// Sortable book columns. Unknown columns are skipped.
var bookSortColumns = map[string]string{
	"id":     "id",
	"title":  "title",
	"author": "author",
	"price":  "price",
}

// BookOrder sorts a book listing by one column.
type BookOrder struct {
	Column string
	Desc   bool
}

type ListBooksParams struct {
	// Filter is an additional WHERE condition; nil matches every book.
	Filter exp.Expression
	// OrderBy is applied in sequence; id ascending always breaks ties.
	OrderBy []BookOrder
	Limit   int32
	Offset  int32
}

// BuildListBooksQuery renders the dynamic book listing query.
func BuildListBooksQuery(arg ListBooksParams) (string, error) {
	where := []exp.Expression{goqu.C("is_deleted").IsFalse()}
	if arg.Filter != nil {
		where = append(where, arg.Filter)
	}

	var (
		order []exp.OrderedExpression
		seen  = map[string]bool{}
	)
	for _, o := range arg.OrderBy {
		col, ok := bookSortColumns[o.Column]
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		if o.Desc {
			order = append(order, goqu.I(col).Desc())
		} else {
			order = append(order, goqu.I(col).Asc())
		}
	}
	if !seen["id"] {
		order = append(order, goqu.I("id").Asc())
	}

	stmt := goqu.Dialect("postgres").
		From("books").
		Select("id", "title", "author", "isbn", "price", "description", "cover_image", "is_deleted").
		Where(where...).
		Order(order...)
	if arg.Limit > 0 {
		stmt = stmt.Limit(uint(arg.Limit))
	}
	if arg.Offset > 0 {
		stmt = stmt.Offset(uint(arg.Offset))
	}

	sqlQuery, _, err := stmt.ToSQL()
	if err != nil {
		return "", errors.Join(ErrBuildingQuery, err)
	}
	return sqlQuery, nil
}

func (q *Queries) ListBooks(ctx context.Context, arg ListBooksParams) ([]Book, error) {
	sqlQuery, err := BuildListBooksQuery(arg)
	if err != nil {
		return nil, err
	}
	rows, err := q.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Book{}
	for rows.Next() {
		var i Book
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Author,
			&i.Isbn,
			&i.Price,
			&i.Description,
			&i.CoverImage,
			&i.IsDeleted,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listBooksByCategoryID = `-- name: ListBooksByCategoryID :many
SELECT b.id, b.title, b.author, b.isbn, b.price, b.description, b.cover_image, b.is_deleted
FROM books b
JOIN books_categories bc ON bc.book_id = b.id
WHERE bc.category_id = $1 AND b.is_deleted = FALSE
ORDER BY b.id
LIMIT $2 OFFSET $3
`

type ListBooksByCategoryIDParams struct {
	CategoryID int64 `json:"category_id"`
	Limit      int32 `json:"limit"`
	Offset     int32 `json:"offset"`
}

func (q *Queries) ListBooksByCategoryID(ctx context.Context, arg ListBooksByCategoryIDParams) ([]Book, error) {
	rows, err := q.db.Query(ctx, listBooksByCategoryID, arg.CategoryID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Book{}
	for rows.Next() {
		var i Book
		if err := rows.Scan(
			&i.ID,
			&i.Title,
			&i.Author,
			&i.Isbn,
			&i.Price,
			&i.Description,
			&i.CoverImage,
			&i.IsDeleted,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createBook = `-- name: CreateBook :one
INSERT INTO books (title, author, isbn, price, description, cover_image)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, title, author, isbn, price, description, cover_image, is_deleted
`

type CreateBookParams struct {
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Isbn        string         `json:"isbn"`
	Price       pgtype.Numeric `json:"price"`
	Description pgtype.Text    `json:"description"`
	CoverImage  pgtype.Text    `json:"cover_image"`
}

func (q *Queries) CreateBook(ctx context.Context, arg CreateBookParams) (Book, error) {
	row := q.db.QueryRow(ctx, createBook,
		arg.Title,
		arg.Author,
		arg.Isbn,
		arg.Price,
		arg.Description,
		arg.CoverImage,
	)
	var i Book
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Author,
		&i.Isbn,
		&i.Price,
		&i.Description,
		&i.CoverImage,
		&i.IsDeleted,
	)
	return i, err
}

const updateBook = `-- name: UpdateBook :one
UPDATE books
SET title = $2, author = $3, isbn = $4, price = $5, description = $6, cover_image = $7
WHERE id = $1 AND is_deleted = FALSE
RETURNING id, title, author, isbn, price, description, cover_image, is_deleted
`

type UpdateBookParams struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Author      string         `json:"author"`
	Isbn        string         `json:"isbn"`
	Price       pgtype.Numeric `json:"price"`
	Description pgtype.Text    `json:"description"`
	CoverImage  pgtype.Text    `json:"cover_image"`
}

func (q *Queries) UpdateBook(ctx context.Context, arg UpdateBookParams) (Book, error) {
	row := q.db.QueryRow(ctx, updateBook,
		arg.ID,
		arg.Title,
		arg.Author,
		arg.Isbn,
		arg.Price,
		arg.Description,
		arg.CoverImage,
	)
	var i Book
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Author,
		&i.Isbn,
		&i.Price,
		&i.Description,
		&i.CoverImage,
		&i.IsDeleted,
	)
	return i, err
}

const deleteBookCategories = `-- name: DeleteBookCategories :exec
DELETE FROM books_categories WHERE book_id = $1
`

const insertBookCategories = `-- name: InsertBookCategories :exec
INSERT INTO books_categories (book_id, category_id)
SELECT $1, unnest($2::bigint[])
ON CONFLICT DO NOTHING
`

type SetBookCategoriesParams struct {
	BookID      int64   `json:"book_id"`
	CategoryIds []int64 `json:"category_ids"`
}

// SetBookCategories replaces the category membership of a book.
// Run it inside a transaction.
func (q *Queries) SetBookCategories(ctx context.Context, arg SetBookCategoriesParams) error {
	if _, err := q.db.Exec(ctx, deleteBookCategories, arg.BookID); err != nil {
		return err
	}
	if len(arg.CategoryIds) == 0 {
		return nil
	}
	_, err := q.db.Exec(ctx, insertBookCategories, arg.BookID, arg.CategoryIds)
	return err
}

const listBookCategoryIDs = `-- name: ListBookCategoryIDs :many
SELECT bc.book_id, bc.category_id
FROM books_categories bc
JOIN categories c ON c.id = bc.category_id
WHERE bc.book_id = ANY($1::bigint[]) AND c.is_deleted = FALSE
ORDER BY bc.book_id, bc.category_id
`

func (q *Queries) ListBookCategoryIDs(ctx context.Context, bookIds []int64) ([]BooksCategory, error) {
	rows, err := q.db.Query(ctx, listBookCategoryIDs, bookIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []BooksCategory{}
	for rows.Next() {
		var i BooksCategory
		if err := rows.Scan(&i.BookID, &i.CategoryID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const softDeleteBook = `-- name: SoftDeleteBook :execrows
UPDATE books SET is_deleted = TRUE WHERE id = $1 AND is_deleted = FALSE
`

func (q *Queries) SoftDeleteBook(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, softDeleteBook, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
