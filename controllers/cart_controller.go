package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"truefood/services"
)

type CartController struct {
	Carts *services.CartService
}

// currentUserID reads the user id the auth middleware stored on the context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("userId")
	if !exists {
		return primitive.NilObjectID, false
	}
	hex, ok := raw.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondCartError maps service errors onto HTTP statuses. Unexpected
// failures get a generic body and a server-side log line.
func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No pending order found"})
	case errors.Is(err, services.ErrItemNotInOrder):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in order"})
	case errors.Is(err, services.ErrInvalidQuantity), errors.Is(err, services.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Println("Cart operation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (cc *CartController) AddToCart(c *gin.Context) {
	var body struct {
		MenuItemID string `json:"menuItemId"`
		Quantity   int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	menuItemID, err := primitive.ObjectIDFromHex(body.MenuItemID)
	if err != nil {
		// An unparseable id cannot resolve in the catalog; same outcome as a
		// deleted item.
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := cc.Carts.AddItem(ctx, userID, menuItemID, body.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"success": true,
		"order":   order,
	})
}

func (cc *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := cc.Carts.GetCart(ctx, userID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (cc *CartController) UpdateItem(c *gin.Context) {
	var body struct {
		ID     string `json:"id"`
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	menuItemID, err := primitive.ObjectIDFromHex(body.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in order"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := cc.Carts.ChangeQuantity(ctx, userID, menuItemID, body.Action)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item updated",
		"success": true,
		"order":   order,
	})
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	var body struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	menuItemID, err := primitive.ObjectIDFromHex(body.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in order"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := cc.Carts.RemoveItem(ctx, userID, menuItemID)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"success": true,
		"order":   order,
	})
}
