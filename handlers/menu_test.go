package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuSearchAndFilters(t *testing.T) {
	r := setupRouter(t)
	owner, _ := createUser(t, "owner1", models.RoleRestaurant)
	restaurant := createRestaurant(t, owner.ID, "Spice Garden", true)

	items := []models.MenuItem{
		{RestaurantID: restaurant.ID, Name: "Paneer Tikka", Price: 220, Category: models.CategoryStarters, IsVeg: true, IsAvailable: true},
		{RestaurantID: restaurant.ID, Name: "Chicken Tikka", Price: 260, Category: models.CategoryStarters, IsVeg: false, IsAvailable: true},
		{RestaurantID: restaurant.ID, Name: "Jeera Rice", Price: 150, Category: models.CategoryRice, IsVeg: true, IsAvailable: true},
	}
	for i := range items {
		require.NoError(t, config.DB.Create(&items[i]).Error)
	}

	menuPath := fmt.Sprintf("/api/restaurants/%d/menu", restaurant.ID)

	// Case-insensitive substring search
	w := do(t, r, http.MethodGet, menuPath+"?search=tikka", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, decode(t, w)["count"])

	// Category filter uses exact closed-enum values
	w = do(t, r, http.MethodGet, menuPath+"?category=Rice", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	// Veg filter composes with search
	w = do(t, r, http.MethodGet, menuPath+"?search=tikka&is_veg=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	// Absent filters mean the unfiltered list
	w = do(t, r, http.MethodGet, menuPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decode(t, w)["count"])

	// Unknown restaurant
	w = do(t, r, http.MethodGet, "/api/restaurants/99999/menu", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuItemTenantIsolation(t *testing.T) {
	r := setupRouter(t)
	ownerA, _ := createUser(t, "ownerA", models.RoleRestaurant)
	ownerB, _ := createUser(t, "ownerB", models.RoleRestaurant)
	restaurantA := createRestaurant(t, ownerA.ID, "A", true)
	restaurantB := createRestaurant(t, ownerB.ID, "B", true)
	itemB := createMenuItem(t, restaurantB.ID, "B Special", 99)

	// B's item under A's restaurant id is not found, never leaked
	w := do(t, r, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d/menu/%d", restaurantA.ID, itemB.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet,
		fmt.Sprintf("/api/restaurants/%d/menu/%d", restaurantB.ID, itemB.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAddMenuItemValidatesCategory(t *testing.T) {
	r := setupRouter(t)
	owner, token := createUser(t, "owner1", models.RoleRestaurant)
	createRestaurant(t, owner.ID, "Spice Garden", true)

	w := do(t, r, http.MethodPost, "/api/restaurant/menu", token, map[string]interface{}{
		"item_name": "Mystery Dish",
		"price":     100,
		"category":  "fusion",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/restaurant/menu", token, map[string]interface{}{
		"item_name": "Butter Naan",
		"price":     45,
		"category":  "breads",
		"images": []map[string]string{
			{"public_id": "cdn/naan-1", "url": "https://cdn.example.com/naan-1.jpg"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.MenuItem
	require.NoError(t, config.DB.Where("name = ?", "Butter Naan").First(&item).Error)
	assert.Equal(t, models.CategoryBreads, item.Category)
	assert.True(t, item.IsAvailable)

	var refs []models.ImageRef
	require.NoError(t, json.Unmarshal(item.Images, &refs))
	require.Len(t, refs, 1)
	assert.Equal(t, "cdn/naan-1", refs[0].PublicID)
}

func TestMenuItemOwnershipOnMutation(t *testing.T) {
	r := setupRouter(t)
	ownerA, _ := createUser(t, "ownerA", models.RoleRestaurant)
	ownerB, tokenB := createUser(t, "ownerB", models.RoleRestaurant)
	restaurantA := createRestaurant(t, ownerA.ID, "A", true)
	createRestaurant(t, ownerB.ID, "B", true)
	itemA := createMenuItem(t, restaurantA.ID, "A Special", 120)

	// B cannot update or delete A's item
	w := do(t, r, http.MethodPut, fmt.Sprintf("/api/restaurant/menu/%d", itemA.ID), tokenB,
		map[string]interface{}{"price": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/restaurant/menu/%d", itemA.ID), tokenB, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var stored models.MenuItem
	require.NoError(t, config.DB.First(&stored, itemA.ID).Error)
	assert.InDelta(t, 120, stored.Price, 1e-9)
}

func TestUpdateMenuItemPartialFields(t *testing.T) {
	r := setupRouter(t)
	owner, token := createUser(t, "owner1", models.RoleRestaurant)
	restaurant := createRestaurant(t, owner.ID, "Spice Garden", true)
	item := createMenuItem(t, restaurant.ID, "Kheer", 80)

	w := do(t, r, http.MethodPut, fmt.Sprintf("/api/restaurant/menu/%d", item.ID), token,
		map[string]interface{}{"price": 95, "is_available": false, "rating": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.MenuItem
	require.NoError(t, config.DB.First(&stored, item.ID).Error)
	assert.InDelta(t, 95, stored.Price, 1e-9)
	assert.False(t, stored.IsAvailable)
	// rating is derived from reviews; direct writes are ignored
	assert.InDelta(t, 0, stored.Rating, 1e-9)
	// untouched fields keep their values
	assert.Equal(t, "Kheer", stored.Name)
}
