package coupon

// Coupon applies a fixed discount and/or free shipping to a cart. Codes are
// case-insensitive and stored lowercase; a coupon is validated against a
// cart but never consumed.
type Coupon struct {
	ID             int     `json:"id"`
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discountAmount"`
	FreeShipping   bool    `json:"freeShipping"`
}
