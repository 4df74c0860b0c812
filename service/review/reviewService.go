package reviewsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Diba-Dev/leafora-marketplace/model"
	reviewrepo "github.com/Diba-Dev/leafora-marketplace/repository/review"
)

type ErrCode string

const (
	ErrBadRating       ErrCode = "BAD_RATING"
	ErrBadInput        ErrCode = "BAD_INPUT"
	ErrAlreadyReviewed ErrCode = "ALREADY_REVIEWED"
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Service interface {
	// Add stores one review per user per book; duplicates fail and leave
	// the original untouched.
	Add(ctx context.Context, userID, bookID int64, rating int, comment string) (*model.Review, error)
	ListByBook(ctx context.Context, bookID int64) ([]model.Review, error)
}

type service struct{ r reviewrepo.Repo }

func New(r reviewrepo.Repo) Service { return &service{r: r} }

func (s *service) Add(ctx context.Context, userID, bookID int64, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, makeErr(ErrBadRating)
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, makeErr(ErrBadInput)
	}

	rv := &model.Review{
		BookID:  bookID,
		UserID:  userID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.r.Insert(ctx, rv); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, makeErr(ErrAlreadyReviewed)
			case pgerrcode.ForeignKeyViolation:
				return nil, makeErr(ErrBookNotFound)
			}
		}
		return nil, err
	}
	return rv, nil
}

func (s *service) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	return s.r.ListByBook(ctx, bookID)
}
