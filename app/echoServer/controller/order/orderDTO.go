package order

type CreateOrderReq struct {
	BookID     int64  `json:"book_id" validate:"required,gt=0"`
	OrderType  string `json:"order_type" validate:"required,oneof=buy rent"`
	RentMonths int    `json:"rent_months" validate:"omitempty,gte=1"`
}
