package model

import "time"

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationDone    NotificationStatus = "done"
)

// Notification is a directed message between two users, usually tied to an
// order on one of the receiver's books.
type Notification struct {
	ID         int64              `json:"id"`
	SenderID   int64              `json:"sender_id"`
	ReceiverID int64              `json:"receiver_id"`
	BookID     *int64             `json:"book_id,omitempty"`
	OrderID    *int64             `json:"order_id,omitempty"`
	Message    string             `json:"message"`
	Status     NotificationStatus `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`

	// joined
	SenderName string `json:"sender_name,omitempty"`
	BookTitle  string `json:"book_title,omitempty"`
}
