package orderrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Diba-Dev/leafora-marketplace/model"
)

// ErrNotPending reports that a transition lost the status guard: the order
// was no longer pending by the time the UPDATE ran.
var ErrNotPending = errors.New("order no longer pending")

// BookInfo is what order creation needs to know about the target book.
type BookInfo struct {
	ID        int64
	OwnerID   int64
	Title     string
	BuyPrice  float64
	RentPrice *float64
}

// TransitionRow is the pre-transition read: enough to authorize the actor
// and phrase the buyer's notification.
type TransitionRow struct {
	OrderID   int64
	Status    model.OrderStatus
	BuyerID   int64
	BookID    int64
	OwnerID   int64
	BookTitle string
}

// BuyerOrderRow backs the "my orders" listing.
type BuyerOrderRow struct {
	OrderID    int64             `json:"id"`
	BookID     int64             `json:"book_id"`
	BookTitle  string            `json:"book_title"`
	OrderType  model.OrderType   `json:"order_type"`
	Status     model.OrderStatus `json:"status"`
	TotalPrice float64           `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
}

// IncomingOrderRow backs the owner's "orders on my books" listing.
type IncomingOrderRow struct {
	OrderID    int64             `json:"id"`
	BookID     int64             `json:"book_id"`
	BookTitle  string            `json:"book_title"`
	BuyerName  string            `json:"buyer_name"`
	BuyerEmail string            `json:"buyer_email"`
	OrderType  model.OrderType   `json:"order_type"`
	RentMonths *int              `json:"rent_months,omitempty"`
	Status     model.OrderStatus `json:"status"`
	TotalPrice float64           `json:"total_price"`
	CreatedAt  time.Time         `json:"created_at"`
}

type Repo interface {
	BookForOrder(ctx context.Context, bookID int64) (*BookInfo, error)

	// Create inserts the order and the owner's pending notification in one
	// transaction; o.ID/o.CreatedAt and n.OrderID are filled in.
	Create(ctx context.Context, o *model.Order, n *model.Notification) error

	ForTransition(ctx context.Context, orderID int64) (*TransitionRow, error)

	// ApplyTransition sets the status, drops the owner's pending
	// notification for the order and writes the buyer's done notification,
	// all in one transaction. Returns ErrNotPending if the status guard
	// matched nothing.
	ApplyTransition(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) error

	Receipt(ctx context.Context, orderID int64) (*model.Receipt, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]BuyerOrderRow, error)
	ListIncoming(ctx context.Context, ownerID int64) ([]IncomingOrderRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) BookForOrder(ctx context.Context, bookID int64) (*BookInfo, error) {
	const q = `
SELECT id, owner_id, title, buy_price, rent_price
FROM books
WHERE id = $1`
	var b BookInfo
	err := r.db.QueryRowContext(ctx, q, bookID).Scan(&b.ID, &b.OwnerID, &b.Title, &b.BuyPrice, &b.RentPrice)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repo) Create(ctx context.Context, o *model.Order, n *model.Notification) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insOrder = `
INSERT INTO orders (book_id, buyer_id, order_type, rent_months, total_price, transaction_code, status)
VALUES ($1,$2,$3,$4,$5,$6,'pending')
RETURNING id, created_at`
	if err = tx.QueryRowContext(ctx, insOrder,
		o.BookID, o.BuyerID, o.OrderType, o.RentMonths, o.TotalPrice, o.TransactionCode,
	).Scan(&o.ID, &o.CreatedAt); err != nil {
		return err
	}
	o.Status = model.OrderPending

	n.OrderID = &o.ID
	const insNotif = `
INSERT INTO notifications (sender_id, receiver_id, book_id, order_id, message, status)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, created_at`
	if err = tx.QueryRowContext(ctx, insNotif,
		n.SenderID, n.ReceiverID, n.BookID, n.OrderID, n.Message, n.Status,
	).Scan(&n.ID, &n.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repo) ForTransition(ctx context.Context, orderID int64) (*TransitionRow, error) {
	const q = `
SELECT o.id, o.status, o.buyer_id, o.book_id, b.owner_id, b.title
FROM orders o
JOIN books b ON o.book_id = b.id
WHERE o.id = $1`
	var t TransitionRow
	err := r.db.QueryRowContext(ctx, q, orderID).Scan(
		&t.OrderID, &t.Status, &t.BuyerID, &t.BookID, &t.OwnerID, &t.BookTitle)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *repo) ApplyTransition(ctx context.Context, orderID, ownerID int64, status model.OrderStatus, n *model.Notification) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Guard: a terminal order never transitions again, even under a race.
	res, err := tx.ExecContext(ctx, `
UPDATE orders
SET status = $2
WHERE id = $1
  AND status = 'pending'`,
		orderID, status)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		err = ErrNotPending
		return err
	}

	if _, err = tx.ExecContext(ctx, `
DELETE FROM notifications
WHERE order_id = $1
  AND receiver_id = $2
  AND status = 'pending'`,
		orderID, ownerID); err != nil {
		return err
	}

	n.OrderID = &orderID
	if err = tx.QueryRowContext(ctx, `
INSERT INTO notifications (sender_id, receiver_id, book_id, order_id, message, status)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, created_at`,
		n.SenderID, n.ReceiverID, n.BookID, n.OrderID, n.Message, n.Status,
	).Scan(&n.ID, &n.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repo) Receipt(ctx context.Context, orderID int64) (*model.Receipt, error) {
	const q = `
SELECT o.id, o.transaction_code, o.order_type, o.rent_months, o.total_price, o.status, o.created_at,
       b.id, b.title, b.author, b.category, b.condition, b.image,
       b.owner_id, u1.full_name, u1.email, u1.phone,
       o.buyer_id, u2.full_name, u2.email, u2.phone
FROM orders o
JOIN books b ON o.book_id = b.id
JOIN users u1 ON b.owner_id = u1.id
JOIN users u2 ON o.buyer_id = u2.id
WHERE o.id = $1`
	var rc model.Receipt
	err := r.db.QueryRowContext(ctx, q, orderID).Scan(
		&rc.OrderID, &rc.TransactionCode, &rc.OrderType, &rc.RentMonths, &rc.TotalPrice, &rc.Status, &rc.CreatedAt,
		&rc.BookID, &rc.BookTitle, &rc.Author, &rc.Category, &rc.Condition, &rc.Image,
		&rc.OwnerID, &rc.OwnerName, &rc.OwnerEmail, &rc.OwnerPhone,
		&rc.BuyerID, &rc.BuyerName, &rc.BuyerEmail, &rc.BuyerPhone,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rc, nil
}

func (r *repo) ListByBuyer(ctx context.Context, buyerID int64) ([]BuyerOrderRow, error) {
	const q = `
SELECT o.id, o.book_id, b.title, o.order_type, o.status, o.total_price, o.created_at
FROM orders o
JOIN books b ON o.book_id = b.id
WHERE o.buyer_id = $1
ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.QueryContext(ctx, q, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BuyerOrderRow
	for rows.Next() {
		var h BuyerOrderRow
		if err := rows.Scan(&h.OrderID, &h.BookID, &h.BookTitle, &h.OrderType, &h.Status, &h.TotalPrice, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) ListIncoming(ctx context.Context, ownerID int64) ([]IncomingOrderRow, error) {
	const q = `
SELECT o.id, o.book_id, b.title, u.full_name, u.email,
       o.order_type, o.rent_months, o.status, o.total_price, o.created_at
FROM orders o
JOIN books b ON o.book_id = b.id
JOIN users u ON o.buyer_id = u.id
WHERE b.owner_id = $1
ORDER BY o.created_at DESC, o.id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IncomingOrderRow
	for rows.Next() {
		var h IncomingOrderRow
		if err := rows.Scan(&h.OrderID, &h.BookID, &h.BookTitle, &h.BuyerName, &h.BuyerEmail,
			&h.OrderType, &h.RentMonths, &h.Status, &h.TotalPrice, &h.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
