package book

type UpsertBookReq struct {
	Title       string   `json:"title" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Condition   string   `json:"condition"`
	BuyPrice    float64  `json:"buy_price" validate:"gte=0"`
	RentPrice   *float64 `json:"rent_price,omitempty" validate:"omitempty,gte=0"`
	Location    string   `json:"location"`
	Image       string   `json:"image"`
}
