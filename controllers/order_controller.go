package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"truefood/models"
	"truefood/repository"
)

type OrderController struct {
	Orders *repository.OrderRepository
	Menu   *repository.MenuRepository
}

// PlaceOrder completes the pending order directly, without the payment
// gateway.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := oc.Orders.FindPending(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}
	if order == nil || len(order.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No items in cart. Please add items before checkout."})
		return
	}

	order.Status = models.OrderStatusCompleted
	if err := oc.Orders.Save(ctx, order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully", "order": order})
}

// GetHistory lists the user's past orders with their menu items joined in.
func (oc *OrderController) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.History(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order history"})
		return
	}

	var resp []gin.H = []gin.H{}
	for _, order := range orders {
		items := []models.PopulatedItem{}
		for _, line := range order.Items {
			item, err := oc.Menu.GetItem(ctx, line.MenuItemID)
			if err != nil || item == nil {
				continue
			}
			items = append(items, models.PopulatedItem{
				MenuItem: *item,
				Quantity: line.Quantity,
				Price:    line.Price,
			})
		}

		resp = append(resp, gin.H{
			"id":        order.ID.Hex(),
			"items":     items,
			"total":     order.Total,
			"status":    order.Status,
			"createdAt": order.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"orders": resp})
}

// UpdateStatus lets an admin close out or cancel a pending order.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if body.Status != models.OrderStatusCompleted && body.Status != models.OrderStatusCancelled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status update"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	matched, err := oc.Orders.UpdateStatus(ctx, orderID, body.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found or cannot be updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated to '" + body.Status + "'"})
}
