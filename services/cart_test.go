package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"truefood/models"
)

func TestAddItemCreatesPendingOrder(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	orders := newMemOrders()
	carts := NewCartService(newMemMenu(pizza), orders)
	userID := primitive.NewObjectID()

	cart, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Pizza", cart.Items[0].MenuItem.Name)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, 2.50, cart.Total)
	assert.Equal(t, models.OrderStatusPending, cart.Status)
	assert.Equal(t, 1, orders.pendingCount(userID))
}

func TestAddItemMergesExistingLine(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	orders := newMemOrders()
	carts := NewCartService(newMemMenu(pizza), orders)
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	cart, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 5.00, cart.Total)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	orders := newMemOrders()
	carts := NewCartService(newMemMenu(pizza), orders)
	userID := primitive.NewObjectID()

	for _, quantity := range []int{0, -1} {
		_, err := carts.AddItem(context.Background(), userID, pizza.ID, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Equal(t, 0, orders.pendingCount(userID))
}

func TestAddItemUnknownMenuItem(t *testing.T) {
	carts := NewCartService(newMemMenu(), newMemOrders())

	_, err := carts.AddItem(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestAddItemPrunesEmptyPendingOrders(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	orders := newMemOrders()
	carts := NewCartService(newMemMenu(pizza), orders)
	userID := primitive.NewObjectID()

	// A leftover empty pending order must not survive the next add.
	require.NoError(t, orders.Save(context.Background(), &models.Order{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Items:  []models.LineItem{},
		Status: models.OrderStatusPending,
	}))

	cart, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, orders.pendingCount(userID))
	require.Len(t, cart.Items, 1)
}

func TestDecreaseRemovesLineAtQuantityOne(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	orders := newMemOrders()
	carts := NewCartService(newMemMenu(pizza), orders)
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	cart, err := carts.ChangeQuantity(context.Background(), userID, pizza.ID, ActionDecrease)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)

	stored := orders.pendingOrder(userID)
	require.NotNil(t, stored)
	assert.Empty(t, stored.Items)
}

func TestIncreaseBumpsQuantityAndTotal(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	carts := NewCartService(newMemMenu(pizza), newMemOrders())
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	cart, err := carts.ChangeQuantity(context.Background(), userID, pizza.ID, ActionIncrease)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 5.00, cart.Total)
}

func TestChangeQuantityWithoutPendingOrder(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	carts := NewCartService(newMemMenu(pizza), newMemOrders())

	_, err := carts.ChangeQuantity(context.Background(), primitive.NewObjectID(), pizza.ID, ActionIncrease)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestChangeQuantityItemAbsentFromOrder(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	beer := menuItem("Beer", 1.50)
	carts := NewCartService(newMemMenu(pizza, beer), newMemOrders())
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	_, err = carts.ChangeQuantity(context.Background(), userID, beer.ID, ActionIncrease)
	assert.ErrorIs(t, err, ErrItemNotInOrder)
}

func TestChangeQuantityRejectsUnknownAction(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	carts := NewCartService(newMemMenu(pizza), newMemOrders())

	_, err := carts.ChangeQuantity(context.Background(), primitive.NewObjectID(), pizza.ID, "double")
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestRemoveItemDropsWholeLine(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	burger := menuItem("Hamburger", 3.00)
	carts := NewCartService(newMemMenu(pizza, burger), newMemOrders())
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)
	cart, err := carts.AddItem(context.Background(), userID, burger.ID, 1)
	require.NoError(t, err)
	require.Equal(t, 5.50, cart.Total)

	cart, err = carts.RemoveItem(context.Background(), userID, burger.ID)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Pizza", cart.Items[0].MenuItem.Name)
	assert.Equal(t, 2.50, cart.Total)
}

func TestRemoveItemAbsentFromOrder(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	beer := menuItem("Beer", 1.50)
	carts := NewCartService(newMemMenu(pizza, beer), newMemOrders())
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	_, err = carts.RemoveItem(context.Background(), userID, beer.ID)
	assert.ErrorIs(t, err, ErrItemNotInOrder)
}

func TestGetCartEmptyShape(t *testing.T) {
	carts := NewCartService(newMemMenu(), newMemOrders())

	cart, err := carts.GetCart(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Total)
}

func TestGetCartFiltersDanglingReferences(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	burger := menuItem("Hamburger", 3.00)
	menu := newMemMenu(pizza, burger)
	orders := newMemOrders()
	carts := NewCartService(menu, orders)
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddItem(context.Background(), userID, burger.ID, 1)
	require.NoError(t, err)

	// Admin deletes the burger while it sits in the cart.
	menu.delete(burger.ID)

	cart, err := carts.GetCart(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Pizza", cart.Items[0].MenuItem.Name)
	assert.Equal(t, 2.50, cart.Total)

	// The pruned order was written back, not just filtered for display.
	stored := orders.pendingOrder(userID)
	require.NotNil(t, stored)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, pizza.ID, stored.Items[0].MenuItemID)
	assert.Equal(t, 2.50, stored.Total)
}

func TestGetCartDoesNotRewriteCleanOrders(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	orders := newMemOrders()
	carts := NewCartService(newMemMenu(pizza), orders)
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 1)
	require.NoError(t, err)

	savesBefore := orders.saves
	_, err = carts.GetCart(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, savesBefore, orders.saves)
}

func TestTotalUsesPriceAtAddTime(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	menu := newMemMenu(pizza)
	carts := NewCartService(menu, newMemOrders())
	userID := primitive.NewObjectID()

	_, err := carts.AddItem(context.Background(), userID, pizza.ID, 2)
	require.NoError(t, err)

	// Admin raises the price mid-session; the cart keeps the agreed price.
	menu.setPrice(pizza.ID, 9.99)

	cart, err := carts.GetCart(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 5.00, cart.Total)
	assert.Equal(t, 2.50, cart.Items[0].Price)
}

func TestAtMostOnePendingOrderPerUser(t *testing.T) {
	pizza := menuItem("Pizza", 2.50)
	burger := menuItem("Hamburger", 3.00)
	orders := newMemOrders()
	carts := NewCartService(newMemMenu(pizza, burger), orders)
	userID := primitive.NewObjectID()

	ctx := context.Background()
	_, err := carts.AddItem(ctx, userID, pizza.ID, 2)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, userID, burger.ID, 1)
	require.NoError(t, err)
	_, err = carts.ChangeQuantity(ctx, userID, pizza.ID, ActionDecrease)
	require.NoError(t, err)
	_, err = carts.RemoveItem(ctx, userID, burger.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, userID, burger.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 1, orders.pendingCount(userID))
}
