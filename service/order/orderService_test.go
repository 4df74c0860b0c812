package ordersvc_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/Diba-Dev/leafora-marketplace/model"
	orderrepo "github.com/Diba-Dev/leafora-marketplace/repository/order"
	ordersvc "github.com/Diba-Dev/leafora-marketplace/service/order"
)

type repoMock struct {
	bookForOrderFn    func(ctx context.Context, bookID int64) (*orderrepo.BookInfo, error)
	createFn          func(ctx context.Context, o *model.Order, n *model.Notification) error
	forTransitionFn   func(ctx context.Context, orderID int64) (*orderrepo.TransitionRow, error)
	applyTransitionFn func(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) error
	receiptFn         func(ctx context.Context, orderID int64) (*model.Receipt, error)
	listByBuyerFn     func(ctx context.Context, buyerID int64) ([]orderrepo.BuyerOrderRow, error)
	listIncomingFn    func(ctx context.Context, ownerID int64) ([]orderrepo.IncomingOrderRow, error)
}

var _ orderrepo.Repo = (*repoMock)(nil)

func (m *repoMock) BookForOrder(ctx context.Context, bookID int64) (*orderrepo.BookInfo, error) {
	return m.bookForOrderFn(ctx, bookID)
}
func (m *repoMock) Create(ctx context.Context, o *model.Order, n *model.Notification) error {
	return m.createFn(ctx, o, n)
}
func (m *repoMock) ForTransition(ctx context.Context, orderID int64) (*orderrepo.TransitionRow, error) {
	return m.forTransitionFn(ctx, orderID)
}
func (m *repoMock) ApplyTransition(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) error {
	return m.applyTransitionFn(ctx, orderID, ownerID, status, n)
}
func (m *repoMock) Receipt(ctx context.Context, orderID int64) (*model.Receipt, error) {
	return m.receiptFn(ctx, orderID)
}
func (m *repoMock) ListByBuyer(ctx context.Context, buyerID int64) ([]orderrepo.BuyerOrderRow, error) {
	return m.listByBuyerFn(ctx, buyerID)
}
func (m *repoMock) ListIncoming(ctx context.Context, ownerID int64) ([]orderrepo.IncomingOrderRow, error) {
	return m.listIncomingFn(ctx, ownerID)
}

func rentPrice(v float64) *float64 { return &v }

func bookMock(owner int64) *repoMock {
	return &repoMock{
		bookForOrderFn: func(ctx context.Context, bookID int64) (*orderrepo.BookInfo, error) {
			return &orderrepo.BookInfo{
				ID:        bookID,
				OwnerID:   owner,
				Title:     "The Go Programming Language",
				BuyPrice:  500,
				RentPrice: rentPrice(40),
			}, nil
		},
		createFn: func(ctx context.Context, o *model.Order, n *model.Notification) error {
			o.ID = 11
			return nil
		},
	}
}

// --- create ---

func TestCreate_BuyUsesBuyPrice(t *testing.T) {
	ctx := context.Background()
	svc := ordersvc.New(bookMock(2))

	o, err := svc.Create(ctx, 7, "buyer@example.com", 4, model.OrderBuy, 0)
	require.NoError(t, err)
	require.Equal(t, float64(500), o.TotalPrice)
	require.Equal(t, model.OrderPending, o.Status)
	require.Nil(t, o.RentMonths)
}

func TestCreate_RentMultipliesMonths(t *testing.T) {
	ctx := context.Background()
	svc := ordersvc.New(bookMock(2))

	for _, months := range []int{1, 3, 12} {
		o, err := svc.Create(ctx, 7, "buyer@example.com", 4, model.OrderRent, months)
		require.NoError(t, err)
		require.Equal(t, 40*float64(months), o.TotalPrice)
		require.NotNil(t, o.RentMonths)
		require.Equal(t, months, *o.RentMonths)
	}
}

func TestCreate_TransactionCodeShape(t *testing.T) {
	ctx := context.Background()
	svc := ordersvc.New(bookMock(2))

	o, err := svc.Create(ctx, 7, "buyer@example.com", 4, model.OrderBuy, 0)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(o.TransactionCode, "LF"))
	require.Len(t, o.TransactionCode, len("LF")+8+4)
}

func TestCreate_NotifiesOwnerPending(t *testing.T) {
	ctx := context.Background()
	m := bookMock(2)

	var got *model.Notification
	m.createFn = func(ctx context.Context, o *model.Order, n *model.Notification) error {
		o.ID = 11
		got = n
		return nil
	}
	svc := ordersvc.New(m)

	_, err := svc.Create(ctx, 7, "buyer@example.com", 4, model.OrderBuy, 0)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, int64(7), got.SenderID)
	require.Equal(t, int64(2), got.ReceiverID)
	require.Equal(t, model.NotificationPending, got.Status)
	require.Contains(t, got.Message, "buyer@example.com")
	require.Contains(t, got.Message, "The Go Programming Language")
}

func TestCreate_BookMissing(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		bookForOrderFn: func(ctx context.Context, bookID int64) (*orderrepo.BookInfo, error) {
			return nil, nil
		},
	}
	svc := ordersvc.New(m)

	_, err := svc.Create(ctx, 7, "buyer@example.com", 99, model.OrderBuy, 0)
	require.Error(t, err)
	require.Equal(t, ordersvc.ErrBookNotFound, ordersvc.Code(err))
}

func TestCreate_RentWithoutRentPrice(t *testing.T) {
	ctx := context.Background()
	m := bookMock(2)
	m.bookForOrderFn = func(ctx context.Context, bookID int64) (*orderrepo.BookInfo, error) {
		return &orderrepo.BookInfo{ID: bookID, OwnerID: 2, Title: "x", BuyPrice: 100}, nil
	}
	svc := ordersvc.New(m)

	_, err := svc.Create(ctx, 7, "buyer@example.com", 4, model.OrderRent, 2)
	require.Error(t, err)
	require.Equal(t, ordersvc.ErrRentUnavailable, ordersvc.Code(err))
}

func TestCreate_BadOrder(t *testing.T) {
	ctx := context.Background()
	svc := ordersvc.New(bookMock(2))

	_, err := svc.Create(ctx, 7, "b@e.com", 4, model.OrderType("swap"), 0)
	require.Equal(t, ordersvc.ErrBadOrder, ordersvc.Code(err))

	_, err = svc.Create(ctx, 7, "b@e.com", 4, model.OrderRent, 0)
	require.Equal(t, ordersvc.ErrBadOrder, ordersvc.Code(err))
}

func TestCreate_CodeCollision(t *testing.T) {
	ctx := context.Background()
	m := bookMock(2)
	m.createFn = func(ctx context.Context, o *model.Order, n *model.Notification) error {
		return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "orders_transaction_code_key"}
	}
	svc := ordersvc.New(m)

	_, err := svc.Create(ctx, 7, "b@e.com", 4, model.OrderBuy, 0)
	require.Equal(t, ordersvc.ErrCodeCollision, ordersvc.Code(err))
}

// --- accept / reject ---

func transitionMock(status model.OrderStatus) *repoMock {
	return &repoMock{
		forTransitionFn: func(ctx context.Context, orderID int64) (*orderrepo.TransitionRow, error) {
			return &orderrepo.TransitionRow{
				OrderID:   orderID,
				Status:    status,
				BuyerID:   7,
				BookID:    4,
				OwnerID:   2,
				BookTitle: "The Go Programming Language",
			}, nil
		},
		applyTransitionFn: func(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) error {
			return nil
		},
	}
}

func TestAccept_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := ordersvc.New(transitionMock(model.OrderPending))

	err := svc.Accept(ctx, 999, 11)
	require.Error(t, err)
	require.Equal(t, ordersvc.ErrNotOwner, ordersvc.Code(err))

	err = svc.Reject(ctx, 999, 11)
	require.Equal(t, ordersvc.ErrNotOwner, ordersvc.Code(err))
}

func TestAccept_NotifiesBuyerDone(t *testing.T) {
	ctx := context.Background()
	m := transitionMock(model.OrderPending)

	var gotStatus model.OrderStatus
	var gotNotif *model.Notification
	m.applyTransitionFn = func(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) error {
		gotStatus = status
		gotNotif = n
		require.Equal(t, int64(2), ownerID)
		return nil
	}
	svc := ordersvc.New(m)

	require.NoError(t, svc.Accept(ctx, 2, 11))
	require.Equal(t, model.OrderAccepted, gotStatus)
	require.NotNil(t, gotNotif)
	require.Equal(t, int64(7), gotNotif.ReceiverID)
	require.Equal(t, int64(2), gotNotif.SenderID)
	require.Equal(t, model.NotificationDone, gotNotif.Status)
	require.Contains(t, gotNotif.Message, "has been accepted")
}

func TestReject_NotifiesBuyerDone(t *testing.T) {
	ctx := context.Background()
	m := transitionMock(model.OrderPending)

	var gotNotif *model.Notification
	m.applyTransitionFn = func(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) error {
		require.Equal(t, model.OrderRejected, status)
		gotNotif = n
		return nil
	}
	svc := ordersvc.New(m)

	require.NoError(t, svc.Reject(ctx, 2, 11))
	require.Contains(t, gotNotif.Message, "has been rejected")
	require.Equal(t, model.NotificationDone, gotNotif.Status)
}

func TestTransition_TerminalIsFinal(t *testing.T) {
	ctx := context.Background()

	for _, st := range []model.OrderStatus{model.OrderAccepted, model.OrderRejected} {
		svc := ordersvc.New(transitionMock(st))
		err := svc.Accept(ctx, 2, 11)
		require.Error(t, err)
		require.Equal(t, ordersvc.ErrNotPending, ordersvc.Code(err))
	}
}

func TestTransition_RaceLosesCleanly(t *testing.T) {
	ctx := context.Background()
	m := transitionMock(model.OrderPending)
	m.applyTransitionFn = func(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) error {
		return orderrepo.ErrNotPending
	}
	svc := ordersvc.New(m)

	err := svc.Accept(ctx, 2, 11)
	require.Equal(t, ordersvc.ErrNotPending, ordersvc.Code(err))
}

func TestTransition_OrderMissing(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		forTransitionFn: func(ctx context.Context, orderID int64) (*orderrepo.TransitionRow, error) {
			return nil, nil
		},
	}
	svc := ordersvc.New(m)

	err := svc.Accept(ctx, 2, 404)
	require.Equal(t, ordersvc.ErrOrderNotFound, ordersvc.Code(err))
}

// --- receipt ---

func TestReceipt_ParticipantsOnly(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		receiptFn: func(ctx context.Context, orderID int64) (*model.Receipt, error) {
			return &model.Receipt{OrderID: orderID, BuyerID: 7, OwnerID: 2}, nil
		},
	}
	svc := ordersvc.New(m)

	_, err := svc.Receipt(ctx, 7, 11)
	require.NoError(t, err)
	_, err = svc.Receipt(ctx, 2, 11)
	require.NoError(t, err)

	_, err = svc.Receipt(ctx, 999, 11)
	require.Equal(t, ordersvc.ErrNotParticipant, ordersvc.Code(err))
}

// --- end to end over a stateful mock ---

// inboxMock keeps notifications in memory so the create→accept flow can be
// checked as one story: pending to the owner, then done to the buyer.
type inboxMock struct {
	repoMock
	order  *model.Order
	inbox  []model.Notification
	nextID int64
}

func newInboxMock() *inboxMock {
	m := &inboxMock{nextID: 1}
	m.bookForOrderFn = func(ctx context.Context, bookID int64) (*orderrepo.BookInfo, error) {
		return &orderrepo.BookInfo{ID: bookID, OwnerID: 2, Title: "Book A", BuyPrice: 500}, nil
	}
	m.createFn = func(ctx context.Context, o *model.Order, n *model.Notification) error {
		o.ID = 11
		m.order = o
		n.ID = m.nextID
		m.nextID++
		m.inbox = append(m.inbox, *n)
		return nil
	}
	m.forTransitionFn = func(ctx context.Context, orderID int64) (*orderrepo.TransitionRow, error) {
		if m.order == nil || m.order.ID != orderID {
			return nil, nil
		}
		return &orderrepo.TransitionRow{
			OrderID: orderID, Status: m.order.Status,
			BuyerID: m.order.BuyerID, BookID: m.order.BookID,
			OwnerID: 2, BookTitle: "Book A",
		}, nil
	}
	m.applyTransitionFn = func(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) error {
		if m.order.Status != model.OrderPending {
			return orderrepo.ErrNotPending
		}
		m.order.Status = status
		kept := m.inbox[:0]
		for _, x := range m.inbox {
			drop := x.OrderID != nil && *x.OrderID == orderID &&
				x.ReceiverID == ownerID && x.Status == model.NotificationPending
			if !drop {
				kept = append(kept, x)
			}
		}
		m.inbox = kept
		n.ID = m.nextID
		m.nextID++
		m.inbox = append(m.inbox, *n)
		return nil
	}
	return m
}

func TestBuyThenAcceptScenario(t *testing.T) {
	ctx := context.Background()
	m := newInboxMock()
	svc := ordersvc.New(m)

	o, err := svc.Create(ctx, 7, "buyer@example.com", 4, model.OrderBuy, 0)
	require.NoError(t, err)
	require.Equal(t, float64(500), o.TotalPrice)
	require.Equal(t, model.OrderPending, o.Status)
	require.Len(t, m.inbox, 1)
	require.Equal(t, int64(2), m.inbox[0].ReceiverID)
	require.Equal(t, model.NotificationPending, m.inbox[0].Status)

	require.NoError(t, svc.Accept(ctx, 2, o.ID))
	require.Equal(t, model.OrderAccepted, m.order.Status)

	require.Len(t, m.inbox, 1)
	require.Equal(t, int64(7), m.inbox[0].ReceiverID)
	require.Equal(t, model.NotificationDone, m.inbox[0].Status)

	// a second accept must fail without touching the inbox again
	err = svc.Accept(ctx, 2, o.ID)
	require.Equal(t, ordersvc.ErrNotPending, ordersvc.Code(err))
	require.Len(t, m.inbox, 1)
}
