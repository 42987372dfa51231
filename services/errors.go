package services

import "errors"

var (
	// ErrItemNotFound means the menu reference does not resolve in the catalog.
	ErrItemNotFound = errors.New("menu item not found")
	// ErrOrderNotFound means the user has no pending order to mutate.
	ErrOrderNotFound = errors.New("no pending order")
	// ErrItemNotInOrder means the quantity change or removal target is absent.
	ErrItemNotInOrder = errors.New("item not in order")
	// ErrEmptyCart means checkout was attempted with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidQuantity rejects non-positive quantities.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	// ErrInvalidAction rejects quantity actions other than increase/decrease.
	ErrInvalidAction = errors.New("action must be \"increase\" or \"decrease\"")
	// ErrGateway wraps payment session creation failures.
	ErrGateway = errors.New("payment gateway error")
)
