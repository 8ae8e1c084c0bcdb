package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AddReviewRequest is shared by menu-item and restaurant reviews. Bounds are
// canonical [1,5] inclusive; integral ratings are not required.
type AddReviewRequest struct {
	Rating float64 `json:"rating" binding:"required,min=1,max=5"`
	Review string  `json:"review"`
}

// sameTenant compares the restaurant id from the URL with the owner recorded
// on the target row. Every review path goes through this check.
func sameTenant(param string, restaurantID uint) bool {
	n, err := strconv.ParseUint(param, 10, 64)
	return err == nil && uint(n) == restaurantID
}

var errDuplicateReview = gorm.ErrDuplicatedKey

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	return err == errDuplicateReview ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// AddMenuReview appends one user's review to a menu item and recomputes the
// item's mean rating in the same transaction. A reader never sees the review
// without the updated mean or vice versa. The composite unique index turns a
// concurrent duplicate from the same user into a constraint error, mapped to
// a conflict.
func AddMenuReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if !sameTenant(c.Param("id"), item.RestaurantID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Menu item does not belong to this restaurant"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unknown reviewer"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.MenuItemReview
		if err := tx.Where("menu_item_id = ? AND user_id = ?", item.ID, userID).
			First(&existing).Error; err == nil {
			return errDuplicateReview
		}
		review := models.MenuItemReview{
			MenuItemID: item.ID,
			UserID:     userID,
			Name:       user.Name,
			Rating:     req.Rating,
			Review:     req.Review,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		var mean float64
		if err := tx.Model(&models.MenuItemReview{}).
			Where("menu_item_id = ?", item.ID).
			Select("AVG(rating)").Scan(&mean).Error; err != nil {
			return err
		}
		return tx.Model(&models.MenuItem{}).
			Where("id = ?", item.ID).
			Update("rating", mean).Error
	})
	if isDuplicateErr(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this item"})
		return
	}
	if err != nil {
		log.WithError(err).WithField("item", item.ID).Error("add menu review")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review added successfully"})
}

// GetMenuReviews returns a menu item's reviews in append order
func GetMenuReviews(c *gin.Context) {
	var item models.MenuItem
	if err := config.DB.First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if !sameTenant(c.Param("id"), item.RestaurantID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Menu item does not belong to this restaurant"})
		return
	}

	var reviews []models.MenuItemReview
	config.DB.Where("menu_item_id = ?", item.ID).Order("id asc").Find(&reviews)
	c.JSON(http.StatusOK, gin.H{
		"rating":  item.Rating,
		"count":   len(reviews),
		"reviews": reviews,
	})
}

// AddRestaurantReview mirrors AddMenuReview for the restaurant itself.
func AddRestaurantReview(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unknown reviewer"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.RestaurantReview
		if err := tx.Where("restaurant_id = ? AND user_id = ?", restaurant.ID, userID).
			First(&existing).Error; err == nil {
			return errDuplicateReview
		}
		review := models.RestaurantReview{
			RestaurantID: restaurant.ID,
			UserID:       userID,
			Name:         user.Name,
			Rating:       req.Rating,
			Review:       req.Review,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		var mean float64
		if err := tx.Model(&models.RestaurantReview{}).
			Where("restaurant_id = ?", restaurant.ID).
			Select("AVG(rating)").Scan(&mean).Error; err != nil {
			return err
		}
		return tx.Model(&models.Restaurant{}).
			Where("id = ?", restaurant.ID).
			Update("rating", mean).Error
	})
	if isDuplicateErr(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this restaurant"})
		return
	}
	if err != nil {
		log.WithError(err).WithField("restaurant", restaurant.ID).Error("add restaurant review")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review added successfully"})
}

// GetRestaurantReviews returns a restaurant's reviews in append order
func GetRestaurantReviews(c *gin.Context) {
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	var reviews []models.RestaurantReview
	config.DB.Where("restaurant_id = ?", restaurant.ID).Order("id asc").Find(&reviews)
	c.JSON(http.StatusOK, gin.H{
		"rating":  restaurant.Rating,
		"count":   len(reviews),
		"reviews": reviews,
	})
}
