package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"truefood/config"
	"truefood/controllers"
	"truefood/database"
	"truefood/payment"
	"truefood/repository"
	"truefood/routes"
	"truefood/services"
	"truefood/sessioncache"
)

func main() {

	config.LoadEnv()

	database.ConnectMongo()
	database.InitCollections()
	database.EnsureIndexes()

	menuRepo := repository.NewMenuRepository(database.MenuItemCollection)
	orderRepo := repository.NewOrderRepository(database.OrderCollection)

	cartService := services.NewCartService(menuRepo, orderRepo)

	var sessions services.SessionCache
	if url := config.GetEnv("REDIS_URL", ""); url != "" {
		cache, err := sessioncache.New(url)
		if err != nil {
			log.Println("⚠️ Redis unavailable, session cache disabled:", err)
		} else {
			cache.StartKeepAlive(context.Background(), 4*time.Minute)
			sessions = cache
		}
	}

	gateway := payment.NewStripeGateway(config.GetEnv("STRIPE_SECRET_KEY", ""))
	serverURL := config.GetEnv("SERVER_URL", "http://localhost:8080")
	checkoutService := services.NewCheckoutService(cartService, orderRepo, gateway, sessions, serverURL)

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r,
		&controllers.CartController{Carts: cartService},
		&controllers.CheckoutController{Checkout: checkoutService},
		&controllers.MenuController{Menu: menuRepo},
		&controllers.OrderController{Orders: orderRepo, Menu: menuRepo},
	)

	port := config.GetEnv("PORT", "8080")
	r.Run(":" + port)
}
