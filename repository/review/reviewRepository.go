package reviewrepo

import (
	"context"
	"database/sql"

	"github.com/Diba-Dev/leafora-marketplace/model"
)

type Repo interface {
	// Insert relies on the UNIQUE(book_id, user_id) constraint; the unique
	// violation comes back raw for the service to map.
	Insert(ctx context.Context, rv *model.Review) error
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, rv *model.Review) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO reviews (book_id, user_id, rating, comment)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`,
		rv.BookID, rv.UserID, rv.Rating, rv.Comment,
	).Scan(&rv.ID, &rv.CreatedAt)
}

func (r *repo) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	const q = `
SELECT r.id, r.book_id, r.user_id, r.rating, r.comment, r.created_at, u.full_name
FROM reviews r
JOIN users u ON r.user_id = u.id
WHERE r.book_id = $1
ORDER BY r.created_at DESC, r.id DESC`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.BookID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.ReviewerName); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
