package booksvc

import (
	"context"
	"errors"

	"github.com/Diba-Dev/leafora-marketplace/model"
	bookrepo "github.com/Diba-Dev/leafora-marketplace/repository/book"
)

const latestLimit = 8

var (
	ErrBadInput = errors.New("invalid payload")
	// ErrNotFound covers both a missing book and a caller who does not own
	// it; the owner guard sits in the repository WHERE clause.
	ErrNotFound = errors.New("book not found")
)

type Service interface {
	Create(ctx context.Context, ownerID int64, b *model.Book) (int64, error)
	Update(ctx context.Context, ownerID int64, b *model.Book) error
	Delete(ctx context.Context, ownerID, bookID int64) error

	List(ctx context.Context, f model.BookFilter) ([]model.Book, error)
	Latest(ctx context.Context) ([]model.Book, error)
	Categories(ctx context.Context) ([]string, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
}

type service struct{ r bookrepo.Repo }

func New(r bookrepo.Repo) Service { return &service{r: r} }

func validate(b *model.Book) error {
	if b.Title == "" || b.Author == "" || b.Category == "" {
		return ErrBadInput
	}
	if b.BuyPrice < 0 {
		return ErrBadInput
	}
	if b.RentPrice != nil && *b.RentPrice < 0 {
		return ErrBadInput
	}
	return nil
}

func (s *service) Create(ctx context.Context, ownerID int64, b *model.Book) (int64, error) {
	if err := validate(b); err != nil {
		return 0, err
	}
	b.OwnerID = ownerID
	return s.r.Create(ctx, b)
}

func (s *service) Update(ctx context.Context, ownerID int64, b *model.Book) error {
	if err := validate(b); err != nil {
		return err
	}
	ok, err := s.r.Update(ctx, ownerID, b)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, ownerID, bookID int64) error {
	ok, err := s.r.Delete(ctx, ownerID, bookID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) List(ctx context.Context, f model.BookFilter) ([]model.Book, error) {
	return s.r.List(ctx, f)
}

func (s *service) Latest(ctx context.Context) ([]model.Book, error) {
	return s.r.Latest(ctx, latestLimit)
}

func (s *service) Categories(ctx context.Context) ([]string, error) { return s.r.Categories(ctx) }

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}
