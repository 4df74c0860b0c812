package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Diba-Dev/leafora-marketplace/model"
	orderrepo "github.com/Diba-Dev/leafora-marketplace/repository/order"
	"github.com/Diba-Dev/leafora-marketplace/util/txcode"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrOrderNotFound   ErrCode = "ORDER_NOT_FOUND"
	ErrNotOwner        ErrCode = "NOT_OWNER"
	ErrNotParticipant  ErrCode = "NOT_PARTICIPANT"
	ErrNotPending      ErrCode = "NOT_PENDING"
	ErrRentUnavailable ErrCode = "RENT_UNAVAILABLE"
	ErrBadOrder        ErrCode = "BAD_ORDER"
	ErrCodeCollision   ErrCode = "CODE_COLLISION"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Service interface {
	// Create places a pending buy/rent order and notifies the book owner.
	// rentMonths is only meaningful for rent orders.
	Create(ctx context.Context, buyerID int64, buyerEmail string, bookID int64, orderType model.OrderType, rentMonths int) (*model.Order, error)

	// Accept and Reject are owner-only and final: a pending order moves to
	// accepted/rejected exactly once.
	Accept(ctx context.Context, actorID, orderID int64) error
	Reject(ctx context.Context, actorID, orderID int64) error

	// Receipt is visible to the order's buyer and the book's owner.
	Receipt(ctx context.Context, callerID, orderID int64) (*model.Receipt, error)

	MyOrders(ctx context.Context, buyerID int64) ([]orderrepo.BuyerOrderRow, error)
	IncomingOrders(ctx context.Context, ownerID int64) ([]orderrepo.IncomingOrderRow, error)
}

type service struct {
	r   orderrepo.Repo
	now func() time.Time
}

func New(r orderrepo.Repo) Service { return &service{r: r, now: time.Now} }

func (s *service) Create(ctx context.Context, buyerID int64, buyerEmail string, bookID int64, orderType model.OrderType, rentMonths int) (*model.Order, error) {
	if !orderType.Valid() {
		return nil, makeErr(ErrBadOrder)
	}
	if orderType == model.OrderRent && rentMonths < 1 {
		return nil, makeErr(ErrBadOrder)
	}

	book, err := s.r.BookForOrder(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, makeErr(ErrBookNotFound)
	}

	var total float64
	var months *int
	switch orderType {
	case model.OrderBuy:
		total = book.BuyPrice
	case model.OrderRent:
		if book.RentPrice == nil {
			return nil, makeErr(ErrRentUnavailable)
		}
		total = *book.RentPrice * float64(rentMonths)
		months = &rentMonths
	}

	o := &model.Order{
		BookID:          bookID,
		BuyerID:         buyerID,
		OrderType:       orderType,
		RentMonths:      months,
		TotalPrice:      total,
		TransactionCode: txcode.New(s.now()),
	}
	n := &model.Notification{
		SenderID:   buyerID,
		ReceiverID: book.OwnerID,
		BookID:     &bookID,
		Message:    fmt.Sprintf("%s placed an order for your book '%s'.", buyerEmail, book.Title),
		Status:     model.NotificationPending,
	}

	if err := s.r.Create(ctx, o, n); err != nil {
		// Code collisions are not retried; the unique constraint wins and
		// the buyer simply submits again.
		if isUniqueViolation(err) {
			return nil, makeErr(ErrCodeCollision)
		}
		return nil, err
	}
	return o, nil
}

func (s *service) Accept(ctx context.Context, actorID, orderID int64) error {
	return s.transition(ctx, actorID, orderID, model.OrderAccepted, "accepted")
}

func (s *service) Reject(ctx context.Context, actorID, orderID int64) error {
	return s.transition(ctx, actorID, orderID, model.OrderRejected, "rejected")
}

func (s *service) transition(ctx context.Context, actorID, orderID int64, to model.OrderStatus, verb string) error {
	t, err := s.r.ForTransition(ctx, orderID)
	if err != nil {
		return err
	}
	if t == nil {
		return makeErr(ErrOrderNotFound)
	}
	if t.OwnerID != actorID {
		return makeErr(ErrNotOwner)
	}
	if t.Status != model.OrderPending {
		return makeErr(ErrNotPending)
	}

	n := &model.Notification{
		SenderID:   actorID,
		ReceiverID: t.BuyerID,
		BookID:     &t.BookID,
		Message:    fmt.Sprintf("Your order for '%s' has been %s.", t.BookTitle, verb),
		Status:     model.NotificationDone,
	}
	if err := s.r.ApplyTransition(ctx, orderID, actorID, to, n); err != nil {
		if errors.Is(err, orderrepo.ErrNotPending) {
			return makeErr(ErrNotPending)
		}
		return err
	}
	return nil
}

func (s *service) Receipt(ctx context.Context, callerID, orderID int64) (*model.Receipt, error) {
	rc, err := s.r.Receipt(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, makeErr(ErrOrderNotFound)
	}
	if rc.BuyerID != callerID && rc.OwnerID != callerID {
		return nil, makeErr(ErrNotParticipant)
	}
	return rc, nil
}

func (s *service) MyOrders(ctx context.Context, buyerID int64) ([]orderrepo.BuyerOrderRow, error) {
	return s.r.ListByBuyer(ctx, buyerID)
}

func (s *service) IncomingOrders(ctx context.Context, ownerID int64) ([]orderrepo.IncomingOrderRow, error) {
	return s.r.ListIncoming(ctx, ownerID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
