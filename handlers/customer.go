package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"restaurant-ordering-api/billing"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PlaceOrderRequest struct {
	RestaurantID uint `json:"restaurant_id" binding:"required"`
	Items        []struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
		Quantity   int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// newOrderNo produces the human-facing order number. The unique index on
// order_no is the real guarantee; the uuid fragment just makes collisions
// a non-event.
func newOrderNo() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// serviceCharge reads the configured display-time service charge.
func serviceCharge() decimal.Decimal {
	d, err := billing.ParseAmount(config.C.Billing.ServiceCharge)
	if err != nil {
		log.WithError(err).Warn("bad service charge in config, using 0")
		return decimal.Zero
	}
	return d
}

// displayBill recomputes the customer-facing grand total from stored
// snapshots: items + tax + service charge. Never taken from client input.
func displayBill(order *models.Order) (string, error) {
	total, err := billing.ComputeTotal(order.Items, decimal.NewFromFloat(order.TaxPrice), serviceCharge())
	if err != nil {
		return "", err
	}
	return total.StringFixed(2), nil
}

// PlaceOrder checks out the customer's cart against a restaurant. Item name,
// price and quantity are snapshotted as strings at this moment; later menu
// edits never change what this order cost.
func PlaceOrder(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Restaurant not found"})
		return
	}
	if !restaurant.IsOpen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Restaurant is currently closed"})
		return
	}

	var orderItems []models.OrderItem
	subtotal := decimal.Zero

	for _, reqItem := range req.Items {
		var menuItem models.MenuItem
		if err := config.DB.First(&menuItem, reqItem.MenuItemID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item not found"})
			return
		}
		if menuItem.RestaurantID != req.RestaurantID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item does not belong to this restaurant"})
			return
		}
		if !menuItem.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + menuItem.Name + "' is not available"})
			return
		}
		price := decimal.NewFromFloat(menuItem.Price)
		qty := decimal.NewFromInt(int64(reqItem.Quantity))
		subtotal = subtotal.Add(price.Mul(qty))
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   strconv.Itoa(reqItem.Quantity),
			Price:      price.StringFixed(2),
		})
	}

	tax := billing.Tax(subtotal, config.C.Billing.TaxRate)
	total := subtotal.Add(tax).Round(2)

	order := models.Order{
		OrderNo:      newOrderNo(),
		UserID:       customerID,
		RestaurantID: req.RestaurantID,
		Status:       models.StatusPending,
		TaxPrice:     tax.InexactFloat64(),
		TotalPrice:   total.InexactFloat64(),
		Items:        orderItems,
	}

	if err := config.DB.Create(&order).Error; err != nil {
		log.WithError(err).Error("create order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	config.DB.Create(&models.OrderStatusHistory{
		OrderID:   order.ID,
		ToStatus:  models.StatusPending,
		ChangedBy: customerID,
	})

	config.DB.Preload("Items.MenuItem").Preload("Restaurant").First(&order, order.ID)

	bill, _ := displayBill(&order)
	log.WithFields(log.Fields{"order": order.OrderNo, "restaurant": restaurant.ID}).Info("order placed")
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Order placed successfully",
		"order":      order,
		"total_bill": bill,
	})
}

// GetMyOrders returns all orders for the logged-in customer, newest first
func GetMyOrders(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items.MenuItem").Preload("Restaurant").
		Where("user_id = ?", customerID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns a single order with its audit trail and the
// recomputed grand total including the service charge.
func GetOrderDetail(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.
		Preload("Items.MenuItem").
		Preload("Restaurant").
		Preload("StatusHistory").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	bill, err := displayBill(&order)
	if err != nil {
		log.WithError(err).WithField("order", order.OrderNo).Error("recompute bill")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute order total"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order":          order,
		"service_charge": serviceCharge().StringFixed(2),
		"total_bill":     bill,
	})
}

// ConfirmPayment marks the customer's own order paid. Applying it twice is a
// no-op rejected with a conflict, and paid_at is set exactly once.
func ConfirmPayment(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	if order.IsPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already paid"})
		return
	}

	now := time.Now()
	err := config.DB.Model(&order).Updates(map[string]interface{}{
		"is_paid": true,
		"paid_at": &now,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment confirmed",
		"order_no": order.OrderNo,
		"paid_at":  now,
	})
}
