package usersvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Diba-Dev/leafora-marketplace/model"
	bookrepo "github.com/Diba-Dev/leafora-marketplace/repository/book"
	notifrepo "github.com/Diba-Dev/leafora-marketplace/repository/notification"
	orderrepo "github.com/Diba-Dev/leafora-marketplace/repository/order"
	userrepo "github.com/Diba-Dev/leafora-marketplace/repository/user"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrBadInput   = errors.New("bad input")
	ErrEmailTaken = errors.New("email already registered")
)

// Profile is the aggregate the profile page renders from.
type Profile struct {
	User           *model.User                  `json:"user"`
	Books          []model.Book                 `json:"books"`
	Orders         []orderrepo.BuyerOrderRow    `json:"orders"`
	IncomingOrders []orderrepo.IncomingOrderRow `json:"incoming_orders"`
	Notifications  []model.Notification         `json:"notifications"`
}

type Service interface {
	Profile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, fullName, email, phone, address string) error
}

type service struct {
	ur userrepo.Repo
	br bookrepo.Repo
	or orderrepo.Repo
	nr notifrepo.Repo
}

func New(ur userrepo.Repo, br bookrepo.Repo, or orderrepo.Repo, nr notifrepo.Repo) Service {
	return &service{ur: ur, br: br, or: or, nr: nr}
}

func (s *service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	books, err := s.br.ByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	orders, err := s.or.ListByBuyer(ctx, userID)
	if err != nil {
		return nil, err
	}
	incoming, err := s.or.ListIncoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	notifs, err := s.nr.ListByReceiver(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:           u,
		Books:          books,
		Orders:         orders,
		IncomingOrders: incoming,
		Notifications:  notifs,
	}, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, fullName, email, phone, address string) error {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return ErrBadInput
	}

	if err := s.ur.UpdateProfile(ctx, userID, fullName, email, phone, address); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}
