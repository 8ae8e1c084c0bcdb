package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"restaurant-ordering-api/billing"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// callerRestaurant resolves the restaurant owned by the authenticated user.
// Every staff order operation is scoped to it; no restaurant, no query.
func callerRestaurant(c *gin.Context) (*models.Restaurant, bool) {
	ownerID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Where("user_id = ?", ownerID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No restaurant found for your account"})
		return nil, false
	}
	return &restaurant, true
}

// GetRestaurantOrders returns the restaurant's orders newest-first, paginated.
// Filtering and paging run in the database: page size is fixed by config,
// pages start at 1, the last page may be partial. The search parameter
// matches order_no case-insensitively as a substring and resets to page 1
// unless a page is requested explicitly.
func GetRestaurantOrders(c *gin.Context) {
	restaurant, ok := callerRestaurant(c)
	if !ok {
		return
	}

	// Fresh query per use: gorm chains are not safe to reuse across finishers
	filtered := func() *gorm.DB {
		q := config.DB.Model(&models.Order{}).Where("restaurant_id = ?", restaurant.ID)
		if search := c.Query("search"); search != "" {
			q = q.Where("LOWER(order_no) LIKE LOWER(?)", "%"+search+"%")
		}
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	pageSize := config.C.Orders.PageSize
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var orders []models.Order
	err = filtered().Preload("Items").Preload("User").
		Order("created_at desc").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	// Dashboard summary over the whole (filtered) set, not just this page
	summary := map[string]int64{}
	for _, s := range statemachine.Sequence() {
		var n int64
		filtered().Where("status = ?", s).Count(&n)
		summary[string(s)] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant":    restaurant.Name,
		"order_summary": summary,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
		"total_pages":   totalPages,
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order one step forward through the lifecycle.
// The check and the write share one transaction with a guarded WHERE on the
// current status, so two racing updates cannot both apply.
func UpdateOrderStatus(c *gin.Context) {
	restaurant, ok := callerRestaurant(c)
	if !ok {
		return
	}
	ownerID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !statemachine.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(req.Status)})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to your restaurant"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"valid_next_states": statemachine.Describe(order.Status),
		})
		return
	}

	prevStatus := order.Status
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, prevStatus).
			Update("status", req.Status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return statemachine.ErrInvalidTransition
		}
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			ChangedBy:  ownerID,
		}).Error
	})
	if err == statemachine.ErrInvalidTransition {
		c.JSON(http.StatusConflict, gin.H{"error": "Order status changed concurrently, re-fetch and retry"})
		return
	}
	if err != nil {
		log.WithError(err).WithField("order", order.ID).Error("update order status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	log.WithFields(log.Fields{
		"order": order.OrderNo, "from": prevStatus, "to": req.Status,
	}).Info("order status updated")

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"order_no":        order.OrderNo,
		"previous_status": string(prevStatus),
		"current_status":  string(req.Status),
	})
}

// ExportOrders writes the restaurant's current order book as an xlsx sheet.
func ExportOrders(c *gin.Context) {
	restaurant, ok := callerRestaurant(c)
	if !ok {
		return
	}

	var orders []models.Order
	err := config.DB.Preload("Items").
		Where("restaurant_id = ?", restaurant.ID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Order No", "Status", "Items", "Subtotal", "Tax", "Total", "Paid", "Placed At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for row, o := range orders {
		subtotal := ""
		if sub, err := billing.Subtotal(o.Items); err == nil {
			subtotal = sub.StringFixed(2)
		} else {
			log.WithError(err).WithField("order", o.OrderNo).Warn("unparseable line items in export")
		}
		values := []interface{}{
			o.OrderNo, string(o.Status), len(o.Items), subtotal,
			o.TaxPrice, o.TotalPrice, o.IsPaid,
			o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=orders-%d.xlsx", restaurant.ID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		log.WithError(err).Error("write orders export")
	}
}
