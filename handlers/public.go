package handlers

import (
	"net/http"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns restaurants for the storefront (public)
func ListRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	query := config.DB.Model(&models.Restaurant{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if city := c.Query("city"); city != "" {
		query = query.Where("city LIKE ?", "%"+city+"%")
	}
	if open := c.Query("open"); open == "true" {
		query = query.Where("is_open = ?", true)
	}

	query.Find(&restaurants)
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with its menu
func GetRestaurant(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.Preload("MenuItems").First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns the menu for a specific restaurant (public).
// Search matches the item name case-insensitively as a substring; category
// and veg filters narrow further. An absent filter means unfiltered.
func GetMenu(c *gin.Context) {
	restaurantID := c.Param("id")
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var items []models.MenuItem
	query := config.DB.Where("restaurant_id = ?", restaurant.ID)

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if isVeg := c.Query("is_veg"); isVeg == "true" {
		query = query.Where("is_veg = ?", true)
	}
	if avail := c.Query("available"); avail == "true" {
		query = query.Where("is_available = ?", true)
	}
	query.Find(&items)

	c.JSON(http.StatusOK, gin.H{
		"restaurant": restaurant.Name,
		"count":      len(items),
		"menu":       items,
	})
}

// GetMenuItem returns one menu item scoped to its restaurant. An item id that
// exists under a different restaurant is reported as not found, never leaked.
func GetMenuItem(c *gin.Context) {
	var item models.MenuItem
	err := config.DB.Where("id = ? AND restaurant_id = ?", c.Param("itemId"), c.Param("id")).
		First(&item).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// GetOrderStatusFlow documents the order lifecycle for clients
func GetOrderStatusFlow(c *gin.Context) {
	var flow []gin.H
	seq := statemachine.Sequence()
	for i := 0; i < len(seq)-1; i++ {
		flow = append(flow, gin.H{"from": seq[i], "to": seq[i+1]})
	}
	c.JSON(http.StatusOK, gin.H{
		"states":      seq,
		"transitions": flow,
		"terminal":    seq[len(seq)-1],
		"description": "Order status moves forward only, one step at a time",
	})
}
