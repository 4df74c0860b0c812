package model

import "time"

type OrderType string

const (
	OrderBuy  OrderType = "buy"
	OrderRent OrderType = "rent"
)

func (t OrderType) Valid() bool { return t == OrderBuy || t == OrderRent }

type OrderStatus string

const (
	OrderPending  OrderStatus = "pending"
	OrderAccepted OrderStatus = "accepted"
	OrderRejected OrderStatus = "rejected"
)

type Order struct {
	ID              int64       `json:"id"`
	BookID          int64       `json:"book_id"`
	BuyerID         int64       `json:"buyer_id"`
	OrderType       OrderType   `json:"order_type"`
	RentMonths      *int        `json:"rent_months,omitempty"`
	TotalPrice      float64     `json:"total_price"`
	Status          OrderStatus `json:"status"`
	TransactionCode string      `json:"transaction_code"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Receipt is the joined order view shown to the buyer and the owner.
type Receipt struct {
	OrderID         int64       `json:"order_id"`
	TransactionCode string      `json:"transaction_code"`
	OrderType       OrderType   `json:"order_type"`
	RentMonths      *int        `json:"rent_months,omitempty"`
	TotalPrice      float64     `json:"total_price"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`

	BookID    int64  `json:"book_id"`
	BookTitle string `json:"book_title"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	Condition string `json:"condition"`
	Image     string `json:"image"`

	OwnerID    int64  `json:"owner_id"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	OwnerPhone string `json:"owner_phone"`

	BuyerID    int64  `json:"buyer_id"`
	BuyerName  string `json:"buyer_name"`
	BuyerEmail string `json:"buyer_email"`
	BuyerPhone string `json:"buyer_phone"`
}
