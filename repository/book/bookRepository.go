package bookrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Diba-Dev/leafora-marketplace/model"
)

// BookWithOwner is the admin listing shape.
type BookWithOwner struct {
	model.Book
	OwnerName string `json:"owner_name"`
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) (int64, error)
	Update(ctx context.Context, ownerID int64, b *model.Book) (bool, error)
	Delete(ctx context.Context, ownerID, bookID int64) (bool, error)
	AdminDelete(ctx context.Context, bookID int64) error

	ByID(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Latest(ctx context.Context, limit int) ([]model.Book, error)
	Categories(ctx context.Context) ([]string, error)
	ByOwner(ctx context.Context, ownerID int64) ([]model.Book, error)
	ListWithOwner(ctx context.Context) ([]BookWithOwner, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const bookCols = `id, owner_id, title, author, category, description, condition, buy_price, rent_price, location, image, created_at`

func scanBook(s interface{ Scan(...any) error }, b *model.Book) error {
	return s.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.Category, &b.Description,
		&b.Condition, &b.BuyPrice, &b.RentPrice, &b.Location, &b.Image, &b.CreatedAt)
}

func (r *repo) Create(ctx context.Context, b *model.Book) (int64, error) {
	const q = `
INSERT INTO books (owner_id, title, author, category, description, condition, buy_price, rent_price, location, image)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, q,
		b.OwnerID, b.Title, b.Author, b.Category, b.Description,
		b.Condition, b.BuyPrice, b.RentPrice, b.Location, b.Image,
	).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Update only touches rows the caller owns; zero rows means missing or not
// the owner, which callers treat the same way.
func (r *repo) Update(ctx context.Context, ownerID int64, b *model.Book) (bool, error) {
	const q = `
UPDATE books
SET title=$3, author=$4, category=$5, description=$6, condition=$7,
    buy_price=$8, rent_price=$9, location=$10, image=$11
WHERE id=$1 AND owner_id=$2`
	res, err := r.db.ExecContext(ctx, q,
		b.ID, ownerID, b.Title, b.Author, b.Category, b.Description,
		b.Condition, b.BuyPrice, b.RentPrice, b.Location, b.Image)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, ownerID, bookID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=$1 AND owner_id=$2`, bookID, ownerID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) AdminDelete(ctx context.Context, bookID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, bookID)
	return err
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := scanBook(r.db.QueryRowContext(ctx, `SELECT `+bookCols+` FROM books WHERE id=$1`, id), &b)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	q := `SELECT ` + bookCols + ` FROM books WHERE 1=1`
	var args []any

	add := func(cond string, v any) {
		args = append(args, v)
		q += fmt.Sprintf(" AND "+cond, len(args))
	}
	if f.Title != "" {
		add("title ILIKE $%d", "%"+f.Title+"%")
	}
	if f.Author != "" {
		add("author ILIKE $%d", "%"+f.Author+"%")
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.MaxPrice > 0 {
		add("buy_price <= $%d", f.MaxPrice)
	}
	q += " ORDER BY created_at DESC, id DESC"

	return r.queryBooks(ctx, q, args...)
}

func (r *repo) Latest(ctx context.Context, limit int) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books ORDER BY created_at DESC, id DESC LIMIT $1`
	return r.queryBooks(ctx, q, limit)
}

func (r *repo) ByOwner(ctx context.Context, ownerID int64) ([]model.Book, error) {
	const q = `SELECT ` + bookCols + ` FROM books WHERE owner_id=$1 ORDER BY created_at DESC, id DESC`
	return r.queryBooks(ctx, q, ownerID)
}

func (r *repo) queryBooks(ctx context.Context, q string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM books ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) ListWithOwner(ctx context.Context) ([]BookWithOwner, error) {
	q := `
SELECT b.` + strings.ReplaceAll(bookCols, ", ", ", b.") + `, u.full_name AS owner_name
FROM books b
JOIN users u ON b.owner_id = u.id
ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookWithOwner
	for rows.Next() {
		var b BookWithOwner
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Author, &b.Category, &b.Description,
			&b.Condition, &b.BuyPrice, &b.RentPrice, &b.Location, &b.Image, &b.CreatedAt, &b.OwnerName); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
