package notifrepo

import (
	"context"
	"database/sql"

	"github.com/Diba-Dev/leafora-marketplace/model"
)

type Repo interface {
	ListByReceiver(ctx context.Context, receiverID int64) ([]model.Notification, error)
	// ClearDone deletes the receiver's done notifications and reports how
	// many went away. Pending ones are never touched here.
	ClearDone(ctx context.Context, receiverID int64) (int64, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) ListByReceiver(ctx context.Context, receiverID int64) ([]model.Notification, error) {
	const q = `
SELECT n.id, n.sender_id, n.receiver_id, n.book_id, n.order_id, n.message, n.status, n.created_at,
       u.full_name AS sender_name, COALESCE(b.title, '') AS book_title
FROM notifications n
JOIN users u ON n.sender_id = u.id
LEFT JOIN books b ON n.book_id = b.id
WHERE n.receiver_id = $1
ORDER BY n.created_at DESC, n.id DESC`
	rows, err := r.db.QueryContext(ctx, q, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.SenderID, &n.ReceiverID, &n.BookID, &n.OrderID,
			&n.Message, &n.Status, &n.CreatedAt, &n.SenderName, &n.BookTitle); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *repo) ClearDone(ctx context.Context, receiverID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE receiver_id = $1
		  AND status = 'done'`,
		receiverID)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
