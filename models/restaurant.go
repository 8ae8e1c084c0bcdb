package models

import (
	"time"

	"gorm.io/datatypes"
)

type Restaurant struct {
	ID          uint               `json:"id" gorm:"primaryKey"`
	UserID      uint               `json:"user_id" gorm:"not null"`
	User        User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name        string             `json:"name" gorm:"not null"`
	Description string             `json:"description"`
	OwnerName   string             `json:"owner_name"`
	Email       string             `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber string             `json:"phone_number"`
	Address     string             `json:"address"`
	City        string             `json:"city"`
	State       string             `json:"state"`
	ZipCode     string             `json:"zip_code"`
	OpeningTime string             `json:"opening_time"` // "HH:MM" time of day
	ClosingTime string             `json:"closing_time"`
	IsOpen      bool               `json:"is_open" gorm:"default:false"`
	Avatar      string             `json:"avatar"`
	Rating      float64            `json:"rating" gorm:"default:0"`
	Reviews     []RestaurantReview `json:"reviews,omitempty" gorm:"foreignKey:RestaurantID"`
	MenuItems   []MenuItem         `json:"menu_items,omitempty" gorm:"foreignKey:RestaurantID"`
	Orders      []Order            `json:"orders,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// MenuCategory is the closed set of menu sections. The mixed casing matches
// what storefront clients already store and filter on.
type MenuCategory string

const (
	CategoryStarters   MenuCategory = "starters"
	CategoryRice       MenuCategory = "Rice"
	CategoryBreads     MenuCategory = "breads"
	CategoryDrinks     MenuCategory = "drinks"
	CategoryDesserts   MenuCategory = "desserts"
	CategoryMainCourse MenuCategory = "mainCourse"
)

// ValidCategory reports whether c is one of the closed menu categories.
func ValidCategory(c MenuCategory) bool {
	switch c {
	case CategoryStarters, CategoryRice, CategoryBreads,
		CategoryDrinks, CategoryDesserts, CategoryMainCourse:
		return true
	}
	return false
}

// ImageRef is the reference pair returned by the external CDN after upload.
// The upload itself happens outside this service; we only store the result.
type ImageRef struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type MenuItem struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	RestaurantID uint             `json:"restaurant_id" gorm:"not null;index"`
	Name         string           `json:"item_name" gorm:"not null"`
	Description  string           `json:"description"`
	Price        float64          `json:"price" gorm:"not null"`
	Category     MenuCategory     `json:"category" gorm:"not null"`
	Images       datatypes.JSON   `json:"images"` // serialized []ImageRef
	IsVeg        bool             `json:"is_veg" gorm:"default:true"`
	IsAvailable  bool             `json:"is_available" gorm:"default:true"`
	Rating       float64          `json:"rating" gorm:"default:0"` // mean of Reviews, maintained transactionally
	Reviews      []MenuItemReview `json:"reviews,omitempty" gorm:"foreignKey:MenuItemID"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// MenuItemReview is one user's review of one menu item. The composite unique
// index is what makes the one-review-per-user rule hold under concurrent
// submissions: the second insert fails at the database.
type MenuItemReview struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MenuItemID uint      `json:"menu_item_id" gorm:"not null;uniqueIndex:idx_menu_review_user"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_menu_review_user"`
	Name       string    `json:"name"`
	Rating     float64   `json:"rating" gorm:"not null"`
	Review     string    `json:"review"`
	CreatedAt  time.Time `json:"created_at"`
}

// RestaurantReview mirrors MenuItemReview for the restaurant as a whole.
type RestaurantReview struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_restaurant_review_user"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_restaurant_review_user"`
	Name         string    `json:"name"`
	Rating       float64   `json:"rating" gorm:"not null"`
	Review       string    `json:"review"`
	CreatedAt    time.Time `json:"created_at"`
}
