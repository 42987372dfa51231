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

type CheckoutController struct {
	Checkout *services.CheckoutService
}

func (cc *CheckoutController) CreateSession(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user"})
		return
	}

	// Checkout involves a gateway round trip on top of the store read.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url, err := cc.Checkout.CreateSession(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please add items to your order before proceeding to payment"})
		default:
			log.Println("Failed to create checkout session:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Success is the gateway's redirect-back callback. It arrives without the
// user's auth header, so the user id rides in the query string.
func (cc *CheckoutController) Success(c *gin.Context) {
	userIDHex := c.Query("userId")
	if userIDHex == "" {
		log.Println("No userId provided in checkout-success")
		c.Redirect(http.StatusFound, "/?paymentSuccess=true")
		return
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		log.Println("Invalid userId in checkout-success:", userIDHex)
		c.Redirect(http.StatusFound, "/?paymentFailed=true")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cc.Checkout.OnSuccess(ctx, userID); err != nil {
		log.Println("Failed to finalize order after checkout:", err)
		c.Redirect(http.StatusFound, "/?paymentFailed=true")
		return
	}

	c.Redirect(http.StatusFound, "/?paymentSuccess=true")
}

// Cancel leaves the cart untouched so the user can retry.
func (cc *CheckoutController) Cancel(c *gin.Context) {
	cc.Checkout.OnCancel()
	c.Redirect(http.StatusFound, "/?canceled=true")
}
