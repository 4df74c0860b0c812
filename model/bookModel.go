package model

import "time"

type Book struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Condition   string    `json:"condition"`
	BuyPrice    float64   `json:"buy_price"`
	RentPrice   *float64  `json:"rent_price,omitempty"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookFilter narrows the catalog listing. Zero values mean "no constraint".
type BookFilter struct {
	Title    string
	Author   string
	Category string
	MaxPrice float64
}
