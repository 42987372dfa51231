package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"truefood/models"
)

// In-memory stand-ins for the Mongo repositories and the payment gateway.

type memMenu struct {
	items map[primitive.ObjectID]models.MenuItem
}

func newMemMenu(items ...models.MenuItem) *memMenu {
	m := &memMenu{items: make(map[primitive.ObjectID]models.MenuItem)}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *memMenu) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	items := make([]models.MenuItem, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	return items, nil
}

func (m *memMenu) GetItem(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (m *memMenu) delete(id primitive.ObjectID) {
	delete(m.items, id)
}

func (m *memMenu) setPrice(id primitive.ObjectID, price float64) {
	item := m.items[id]
	item.Price = price
	m.items[id] = item
}

type memOrders struct {
	orders map[primitive.ObjectID]models.Order
	saves  int
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[primitive.ObjectID]models.Order)}
}

func copyOrder(order models.Order) models.Order {
	order.Items = append([]models.LineItem(nil), order.Items...)
	return order
}

func (m *memOrders) FindPending(ctx context.Context, userID primitive.ObjectID) (*models.Order, error) {
	for _, order := range m.orders {
		if order.UserID == userID && order.Status == models.OrderStatusPending {
			found := copyOrder(order)
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memOrders) Save(ctx context.Context, order *models.Order) error {
	m.orders[order.ID] = copyOrder(*order)
	m.saves++
	return nil
}

func (m *memOrders) DeleteEmptyPending(ctx context.Context, userID primitive.ObjectID) error {
	for id, order := range m.orders {
		if order.UserID == userID && order.Status == models.OrderStatusPending && len(order.Items) == 0 {
			delete(m.orders, id)
		}
	}
	return nil
}

func (m *memOrders) CompletePending(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var modified int64
	for id, order := range m.orders {
		if order.UserID == userID && order.Status == models.OrderStatusPending {
			order.Status = models.OrderStatusCompleted
			m.orders[id] = order
			modified++
		}
	}
	return modified, nil
}

func (m *memOrders) History(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range m.orders {
		if order.UserID == userID && order.Status != models.OrderStatusPending {
			orders = append(orders, copyOrder(order))
		}
	}
	return orders, nil
}

func (m *memOrders) pendingCount(userID primitive.ObjectID) int {
	count := 0
	for _, order := range m.orders {
		if order.UserID == userID && order.Status == models.OrderStatusPending {
			count++
		}
	}
	return count
}

func (m *memOrders) pendingOrder(userID primitive.ObjectID) *models.Order {
	for _, order := range m.orders {
		if order.UserID == userID && order.Status == models.OrderStatusPending {
			found := copyOrder(order)
			return &found
		}
	}
	return nil
}

type fakeGateway struct {
	calls      int
	items      []PayloadItem
	successURL string
	cancelURL  string
	url        string
	err        error
}

func (g *fakeGateway) CreateSession(ctx context.Context, items []PayloadItem, successURL, cancelURL string) (string, error) {
	g.calls++
	g.items = items
	g.successURL = successURL
	g.cancelURL = cancelURL
	if g.err != nil {
		return "", g.err
	}
	return g.url, nil
}

type fakeCache struct {
	cleared []string
}

func (f *fakeCache) ClearCart(ctx context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	return nil
}

func menuItem(name string, price float64) models.MenuItem {
	return models.MenuItem{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Ingredients: []string{"test"},
		Price:       price,
		Type:        "test",
		Emoji:       "./images/test.png",
	}
}
