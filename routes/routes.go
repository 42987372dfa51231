package routes

import (
	"github.com/gin-gonic/gin"

	"truefood/controllers"
	"truefood/middleware"
)

func RegisterRoutes(
	r *gin.Engine,
	cart *controllers.CartController,
	checkout *controllers.CheckoutController,
	menu *controllers.MenuController,
	orders *controllers.OrderController,
) {
	// Gateway redirect callbacks carry no auth header.
	r.GET("/checkout-success", checkout.Success)
	r.GET("/checkout-cancel", checkout.Cancel)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/add-to-cart", cart.AddToCart)
		protected.GET("/cart", cart.GetCart)
		protected.POST("/create-checkout-session", checkout.CreateSession)
	}

	api := r.Group("/api")
	{
		api.POST("/register", controllers.Register)
		api.POST("/login", controllers.Login)
		api.GET("/menu", menu.GetMenu)

		apiProtected := api.Group("/")
		apiProtected.Use(middleware.AuthMiddleware())
		{
			apiProtected.POST("/logout", controllers.Logout)

			apiProtected.POST("/item/update", cart.UpdateItem)
			apiProtected.POST("/item/remove", cart.RemoveItem)

			apiProtected.POST("/orders/checkout", orders.PlaceOrder)
			apiProtected.GET("/orders/history", orders.GetHistory)

			admin := apiProtected.Group("/")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.PATCH("/orders/update-status/:orderId", orders.UpdateStatus)
			}
		}
	}
}
