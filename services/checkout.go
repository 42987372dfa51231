package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"truefood/models"
)

// PayloadItem is one line in the payment gateway's shape: the unit price is
// expressed in integer minor currency units.
type PayloadItem struct {
	Name       string
	UnitAmount int64
	Quantity   int
}

// Gateway is the hosted checkout provider, opaque beyond this contract.
type Gateway interface {
	CreateSession(ctx context.Context, items []PayloadItem, successURL, cancelURL string) (string, error)
}

// SessionCache holds any session-local copy of the cart, cleared once a
// payment succeeds.
type SessionCache interface {
	ClearCart(ctx context.Context, userID string) error
}

// CheckoutService bridges the pending order to the payment provider and
// closes the order out on the provider's redirect-back callbacks.
type CheckoutService struct {
	cart      *CartService
	orders    OrderStore
	gateway   Gateway
	sessions  SessionCache
	serverURL string
}

func NewCheckoutService(cart *CartService, orders OrderStore, gateway Gateway, sessions SessionCache, serverURL string) *CheckoutService {
	return &CheckoutService{
		cart:      cart,
		orders:    orders,
		gateway:   gateway,
		sessions:  sessions,
		serverURL: serverURL,
	}
}

// BuildPayload converts a joined cart into the gateway's line-item list.
// Rounding, not truncation: truncating would underprice every item with a
// sub-cent fraction.
func BuildPayload(order *models.PopulatedOrder) []PayloadItem {
	payload := make([]PayloadItem, 0, len(order.Items))
	for _, item := range order.Items {
		payload = append(payload, PayloadItem{
			Name:       item.MenuItem.Name,
			UnitAmount: int64(math.Round(item.Price * 100)),
			Quantity:   item.Quantity,
		})
	}
	return payload
}

// CreateSession builds a hosted checkout session for the user's cart and
// returns the redirect URL. The success callback arrives without the user's
// auth header, so the user id travels in the callback URL instead.
func (s *CheckoutService) CreateSession(ctx context.Context, userID primitive.ObjectID) (string, error) {
	cart, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(cart.Items) == 0 {
		return "", ErrEmptyCart
	}

	successURL := s.serverURL + "/checkout-success?userId=" + userID.Hex()
	cancelURL := s.serverURL + "/checkout-cancel"

	url, err := s.gateway.CreateSession(ctx, BuildPayload(cart), successURL, cancelURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return url, nil
}

// OnSuccess finalizes the user's cart after payment confirmation: pending
// orders transition to completed and stay on record, and any session-local
// cart copy is cleared. Cache cleanup is best effort.
func (s *CheckoutService) OnSuccess(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.orders.CompletePending(ctx, userID); err != nil {
		return err
	}

	if s.sessions != nil {
		if err := s.sessions.ClearCart(ctx, userID.Hex()); err != nil {
			log.Println("Failed to clear session cart cache:", err)
		}
	}
	return nil
}

// OnCancel leaves the pending order intact so the user can retry payment.
func (s *CheckoutService) OnCancel() {}
