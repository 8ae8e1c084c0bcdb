package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupRouter boots the real router and middleware against a throwaway
// sqlite database, so tests exercise the same path production requests take.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, config.Load(""))
	config.C.Database.Path = filepath.Join(t.TempDir(), "test.db")
	config.C.Logging.Level = "error"
	config.SetupLogging()
	config.InitDB()

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func createUser(t *testing.T, name string, role models.UserRole) (models.User, string) {
	t.Helper()
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "irrelevant",
		Role:         role,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func createRestaurant(t *testing.T, ownerID uint, name string, open bool) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		UserID:      ownerID,
		Name:        name,
		OwnerName:   "Owner of " + name,
		Email:       name + "@restaurants.example.com",
		PhoneNumber: "555-0100",
		Address:     "1 Main St",
		City:        "Springfield",
		State:       "IL",
		ZipCode:     "62701",
		OpeningTime: "09:00",
		ClosingTime: "22:00",
		IsOpen:      open,
	}
	require.NoError(t, config.DB.Create(&restaurant).Error)
	return restaurant
}

func createMenuItem(t *testing.T, restaurantID uint, name string, price float64) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        price,
		Category:     models.CategoryMainCourse,
		IsVeg:        true,
		IsAvailable:  true,
	}
	require.NoError(t, config.DB.Create(&item).Error)
	return item
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
