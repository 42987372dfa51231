package main

import (
	"context"
	"log"
	"time"

	"truefood/config"
	"truefood/database"
	"truefood/models"
	"truefood/repository"
)

// defaultMenu is the catalog the restaurant launches with.
var defaultMenu = []models.MenuItem{
	{Name: "Pizza", Ingredients: []string{"pepperoni", "mushroom", "mozzarella"}, Price: 2.50, Type: "pizza", Emoji: "./images/pizza.png"},
	{Name: "Hamburger", Ingredients: []string{"beef", "cheese", "lettuce"}, Price: 3.00, Type: "burger", Emoji: "./images/burger.png"},
	{Name: "Beer", Ingredients: []string{"grain", "hops", "yeast", "water"}, Price: 1.50, Type: "drink", Emoji: "./images/beer.png"},
	{Name: "Pasta", Ingredients: []string{"penne", "tomato", "basil", "parmesan"}, Price: 4.25, Type: "pasta", Emoji: "./images/pasta.png"},
	{Name: "Salad", Ingredients: []string{"romaine", "croutons", "caesar dressing"}, Price: 3.75, Type: "salad", Emoji: "./images/salad.png"},
	{Name: "Lemonade", Ingredients: []string{"lemon", "sugar", "water"}, Price: 1.25, Type: "drink", Emoji: "./images/lemonade.png"},
}

// Clears and repopulates the menu catalog.
func main() {
	config.LoadEnv()

	database.ConnectMongo()
	database.InitCollections()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	menuRepo := repository.NewMenuRepository(database.MenuItemCollection)
	if err := menuRepo.ReplaceAll(ctx, defaultMenu); err != nil {
		log.Fatal("❌ Failed to populate menu:", err)
	}

	log.Printf("✅ Menu populated with %d items", len(defaultMenu))
}
