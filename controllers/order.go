// controllers/order.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/services"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckoutInput struct {
	AddressID        *uuid.UUID `json:"addressId"`
	ShippingFullName string     `json:"shippingFullName"`
	ShippingPhone    string     `json:"shippingPhone"`
	ShippingAddress  string     `json:"shippingAddress"`
	ShippingCity     string     `json:"shippingCity"`
	ShippingState    string     `json:"shippingState"`
	ShippingZip      string     `json:"shippingZip"`
	ShippingMethod   string     `json:"shippingMethod"`
	ShippingCost     float64    `json:"shippingCost" binding:"min=0"`
	CouponCode       string     `json:"couponCode"`
}

// Checkout converts the user's cart into a pending order.
func Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	svc := services.NewOrderService(config.DB)
	order, err := svc.Checkout(userID, services.CheckoutInput{
		CustomerID:       profile.ID,
		AddressID:        input.AddressID,
		ShippingFullName: input.ShippingFullName,
		ShippingPhone:    input.ShippingPhone,
		ShippingAddress:  input.ShippingAddress,
		ShippingCity:     input.ShippingCity,
		ShippingState:    input.ShippingState,
		ShippingZip:      input.ShippingZip,
		ShippingMethod:   input.ShippingMethod,
		ShippingCost:     input.ShippingCost,
		CouponCode:       input.CouponCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			utils.RespondWithError(c, http.StatusBadRequest, "Cart is empty")
		case errors.Is(err, services.ErrOutOfStock):
			utils.RespondWithError(c, http.StatusConflict, "One or more items are out of stock")
		case errors.Is(err, services.ErrInvalidCoupon):
			utils.RespondWithError(c, http.StatusBadRequest, "Coupon is invalid or expired")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to place order")
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// GetMyOrders lists the authenticated customer's orders.
func GetMyOrders(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Items").Where("customer_id = ?", profile.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one of the customer's orders.
func GetOrder(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").
		First(&order, "id = ? AND customer_id = ?", orderID, profile.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder aborts an order that has not shipped yet.
func CancelOrder(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}
	orderID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var order models.Order
	if err := config.DB.First(&order, "id = ? AND customer_id = ?", orderID, profile.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Order not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	svc := services.NewOrderService(config.DB)
	cancelled, err := svc.Cancel(order.ID)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			utils.RespondWithError(c, http.StatusConflict, "Order can no longer be cancelled")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel order")
		}
		return
	}

	c.JSON(http.StatusOK, cancelled)
}

type AddressInput struct {
	FullName   string `json:"fullName" binding:"required"`
	Phone      string `json:"phone" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	IsDefault  bool   `json:"isDefault"`
}

// CreateAddress saves a shipping address for the customer.
func CreateAddress(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}

	var input AddressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	address := models.Address{
		CustomerID: profile.ID,
		FullName:   input.FullName,
		Phone:      input.Phone,
		Address:    input.Address,
		City:       input.City,
		Province:   input.Province,
		PostalCode: input.PostalCode,
		IsDefault:  input.IsDefault,
	}
	if err := config.DB.Create(&address).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save address")
		return
	}

	c.JSON(http.StatusCreated, address)
}

// GetAddresses lists the customer's saved addresses, default first.
func GetAddresses(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}

	var addresses []models.Address
	if err := config.DB.Where("customer_id = ?", profile.ID).
		Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve addresses")
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// DeleteAddress removes a saved address.
func DeleteAddress(c *gin.Context) {
	profile, ok := customerProfileOf(c)
	if !ok {
		return
	}
	addressID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	result := config.DB.Where("id = ? AND customer_id = ?", addressID, profile.ID).Delete(&models.Address{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete address")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Address not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
}
