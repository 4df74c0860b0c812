package reviewsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Diba-Dev/leafora-marketplace/model"
	reviewsvc "github.com/Diba-Dev/leafora-marketplace/service/review"
)

type repoMock struct {
	insertFn     func(ctx context.Context, rv *model.Review) error
	listByBookFn func(ctx context.Context, bookID int64) ([]model.Review, error)
}

func (m *repoMock) Insert(ctx context.Context, rv *model.Review) error { return m.insertFn(ctx, rv) }
func (m *repoMock) ListByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	return m.listByBookFn(ctx, bookID)
}

func TestAdd_OK(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		insertFn: func(ctx context.Context, rv *model.Review) error {
			rv.ID = 3
			rv.CreatedAt = time.Now()
			return nil
		},
	}
	svc := reviewsvc.New(m)

	rv, err := svc.Add(ctx, 7, 4, 5, "  great condition, fast handover  ")
	require.NoError(t, err)
	require.Equal(t, int64(3), rv.ID)
	require.Equal(t, "great condition, fast handover", rv.Comment)
}

func TestAdd_RatingBounds(t *testing.T) {
	ctx := context.Background()
	svc := reviewsvc.New(&repoMock{})

	for _, rating := range []int{0, -1, 6, 100} {
		_, err := svc.Add(ctx, 7, 4, rating, "ok")
		require.Equal(t, reviewsvc.ErrBadRating, reviewsvc.Code(err))
	}
	for _, rating := range []int{1, 5} {
		m := &repoMock{insertFn: func(ctx context.Context, rv *model.Review) error { return nil }}
		_, err := reviewsvc.New(m).Add(ctx, 7, 4, rating, "ok")
		require.NoError(t, err)
	}
}

func TestAdd_EmptyComment(t *testing.T) {
	ctx := context.Background()
	svc := reviewsvc.New(&repoMock{})

	_, err := svc.Add(ctx, 7, 4, 3, "   ")
	require.Equal(t, reviewsvc.ErrBadInput, reviewsvc.Code(err))
}

func TestAdd_Duplicate(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		insertFn: func(ctx context.Context, rv *model.Review) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "reviews_book_id_user_id_key"}
		},
	}
	svc := reviewsvc.New(m)

	_, err := svc.Add(ctx, 7, 4, 4, "second opinion")
	require.Equal(t, reviewsvc.ErrAlreadyReviewed, reviewsvc.Code(err))
}

func TestAdd_UnknownBook(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		insertFn: func(ctx context.Context, rv *model.Review) error {
			return &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "reviews_book_id_fkey"}
		},
	}
	svc := reviewsvc.New(m)

	_, err := svc.Add(ctx, 7, 404, 4, "ghost book")
	require.Equal(t, reviewsvc.ErrBookNotFound, reviewsvc.Code(err))
}
