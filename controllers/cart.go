// controllers/cart.go
package controllers

import (
	"errors"
	"net/http"

	"salonhub-backend/config"
	"salonhub-backend/models"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddCartItemInput struct {
	ProductID   uuid.UUID  `json:"productId" binding:"required"`
	VariationID *uuid.UUID `json:"variationId"`
	Quantity    int        `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func cartOf(c *gin.Context, userID uuid.UUID) (*models.Cart, bool) {
	var cart models.Cart
	err := config.DB.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := config.DB.Create(&cart).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create cart")
			return nil, false
		}
		return &cart, true
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	return &cart, true
}

// GetCart returns the authenticated user's cart with totals.
func GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cart, ok := cartOf(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":       cart,
		"totalItems": cart.TotalItems(),
		"subtotal":   cart.Subtotal(),
	})
}

// AddCartItem puts a product into the cart, snapshotting its current
// effective price. Adding a product already in the cart bumps the
// quantity instead of duplicating the line.
func AddCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input AddCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ? AND is_active = ?", input.ProductID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	if !product.IsInStock() {
		utils.RespondWithError(c, http.StatusConflict, "Product is out of stock")
		return
	}

	price := product.EffectivePrice()
	if input.VariationID != nil {
		var variation models.ProductVariation
		if err := config.DB.First(&variation, "id = ? AND product_id = ?", *input.VariationID, product.ID).Error; err != nil {
			utils.RespondWithError(c, http.StatusNotFound, "Product variation not found")
			return
		}
		variation.Product = &product
		price = variation.VariantPrice()
	}

	cart, ok := cartOf(c, userID)
	if !ok {
		return
	}

	for i := range cart.Items {
		item := &cart.Items[i]
		sameVariation := (item.VariationID == nil && input.VariationID == nil) ||
			(item.VariationID != nil && input.VariationID != nil && *item.VariationID == *input.VariationID)
		if item.ProductID == input.ProductID && sameVariation {
			if err := config.DB.Model(item).Update("quantity", item.Quantity+input.Quantity).Error; err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update cart item")
				return
			}
			item.Quantity += input.Quantity
			c.JSON(http.StatusOK, item)
			return
		}
	}

	item := models.CartItem{
		CartID:      cart.ID,
		ProductID:   input.ProductID,
		VariationID: input.VariationID,
		Quantity:    input.Quantity,
		Price:       price,
	}
	if err := config.DB.Create(&item).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateCartItem changes the quantity of one cart line.
func UpdateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	var input UpdateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cart, ok := cartOf(c, userID)
	if !ok {
		return
	}

	var item models.CartItem
	if err := config.DB.First(&item, "id = ? AND cart_id = ?", itemID, cart.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Cart item not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&item).Update("quantity", input.Quantity).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update cart item")
		return
	}
	item.Quantity = input.Quantity

	c.JSON(http.StatusOK, item)
}

// RemoveCartItem deletes one line from the cart.
func RemoveCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := pathUUID(c, "itemId")
	if !ok {
		return
	}

	cart, ok := cartOf(c, userID)
	if !ok {
		return
	}

	result := config.DB.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove cart item")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Cart item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart removes every line from the cart.
func ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cart, ok := cartOf(c, userID)
	if !ok {
		return
	}

	if err := config.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
