package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"truefood/models"
)

const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

// MenuReader is the catalog read path. GetItem returns (nil, nil) for a
// reference that no longer resolves.
type MenuReader interface {
	ListItems(ctx context.Context) ([]models.MenuItem, error)
	GetItem(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
}

// OrderStore persists the per-user pending order aggregate.
type OrderStore interface {
	FindPending(ctx context.Context, userID primitive.ObjectID) (*models.Order, error)
	Save(ctx context.Context, order *models.Order) error
	DeleteEmptyPending(ctx context.Context, userID primitive.ObjectID) error
	CompletePending(ctx context.Context, userID primitive.ObjectID) (int64, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

// CartService owns the pending-order lifecycle: every mutation loads the
// aggregate, applies the change, recomputes the total, and persists the
// whole document.
type CartService struct {
	menu   MenuReader
	orders OrderStore
}

func NewCartService(menu MenuReader, orders OrderStore) *CartService {
	return &CartService{menu: menu, orders: orders}
}

// AddItem puts quantity units of a menu item into the user's cart, creating
// the pending order lazily on first use. Repeated adds of the same item merge
// into one line.
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID primitive.ObjectID, quantity int) (*models.PopulatedOrder, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.menu.GetItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	// Best-effort cleanup: an abandoned empty pending order would otherwise
	// block find-or-create forever under the unique index.
	if err := s.orders.DeleteEmptyPending(ctx, userID); err != nil {
		log.Println("Failed to prune empty pending orders:", err)
	}

	order, err := s.orders.FindPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		order = &models.Order{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Items:     []models.LineItem{},
			Status:    models.OrderStatusPending,
			CreatedAt: time.Now(),
		}
	}

	merged := false
	for i := range order.Items {
		if order.Items[i].MenuItemID == menuItemID {
			order.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		order.Items = append(order.Items, models.LineItem{
			MenuItemID: menuItemID,
			Quantity:   quantity,
			Price:      item.Price,
		})
	}

	return s.finishMutation(ctx, order)
}

// ChangeQuantity bumps a line item up or down by one. A line that drops to
// zero is removed outright, never persisted at zero.
func (s *CartService) ChangeQuantity(ctx context.Context, userID, menuItemID primitive.ObjectID, action string) (*models.PopulatedOrder, error) {
	if action != ActionIncrease && action != ActionDecrease {
		return nil, ErrInvalidAction
	}

	order, err := s.orders.FindPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	index := -1
	for i := range order.Items {
		if order.Items[i].MenuItemID == menuItemID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrItemNotInOrder
	}

	if action == ActionIncrease {
		order.Items[index].Quantity++
	} else {
		order.Items[index].Quantity--
		if order.Items[index].Quantity < 1 {
			order.Items = append(order.Items[:index], order.Items[index+1:]...)
		}
	}

	return s.finishMutation(ctx, order)
}

// RemoveItem drops a line item regardless of its quantity.
func (s *CartService) RemoveItem(ctx context.Context, userID, menuItemID primitive.ObjectID) (*models.PopulatedOrder, error) {
	order, err := s.orders.FindPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	index := -1
	for i := range order.Items {
		if order.Items[i].MenuItemID == menuItemID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, ErrItemNotInOrder
	}

	order.Items = append(order.Items[:index], order.Items[index+1:]...)

	return s.finishMutation(ctx, order)
}

// GetCart returns the user's pending order joined against the catalog, or an
// empty cart shape when none exists. Line items whose menu reference no
// longer resolves are filtered out, and the pruned order is written back in
// the same call so the stored total stays truthful.
func (s *CartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.PopulatedOrder, error) {
	order, err := s.orders.FindPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return models.EmptyCart(), nil
	}

	populated, pruned, err := s.resolveItems(ctx, order)
	if err != nil {
		return nil, err
	}
	if pruned {
		order.Total = recomputeTotal(order.Items)
		if err := s.orders.Save(ctx, order); err != nil {
			return nil, err
		}
	}

	return s.buildView(order, populated), nil
}

// finishMutation is the shared tail of every cart mutation: drop dangling
// references, recompute the total from line snapshots, persist once, and
// return the joined view.
func (s *CartService) finishMutation(ctx context.Context, order *models.Order) (*models.PopulatedOrder, error) {
	populated, _, err := s.resolveItems(ctx, order)
	if err != nil {
		return nil, err
	}

	order.Total = recomputeTotal(order.Items)
	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	return s.buildView(order, populated), nil
}

// resolveItems joins line items with their catalog documents, removing any
// line whose menu item was deleted. It mutates order.Items in place and
// reports whether anything was dropped.
func (s *CartService) resolveItems(ctx context.Context, order *models.Order) ([]models.PopulatedItem, bool, error) {
	kept := make([]models.LineItem, 0, len(order.Items))
	populated := make([]models.PopulatedItem, 0, len(order.Items))

	for _, line := range order.Items {
		item, err := s.menu.GetItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, false, err
		}
		if item == nil {
			continue
		}
		kept = append(kept, line)
		populated = append(populated, models.PopulatedItem{
			MenuItem: *item,
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}

	pruned := len(kept) < len(order.Items)
	order.Items = kept
	return populated, pruned, nil
}

func (s *CartService) buildView(order *models.Order, items []models.PopulatedItem) *models.PopulatedOrder {
	return &models.PopulatedOrder{
		ID:     order.ID.Hex(),
		Items:  items,
		Total:  order.Total,
		Status: order.Status,
	}
}

func recomputeTotal(items []models.LineItem) float64 {
	var total float64
	for _, line := range items {
		total += float64(line.Quantity) * line.Price
	}
	return total
}
