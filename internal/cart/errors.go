package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("invalid quantity for reservation")
	ErrNotInCart       = errors.New("product is not in the cart")
)
