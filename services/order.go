package services

import (
	"errors"
	"time"

	"salonhub-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type CheckoutInput struct {
	CustomerID       uuid.UUID
	AddressID        *uuid.UUID
	ShippingFullName string
	ShippingPhone    string
	ShippingAddress  string
	ShippingCity     string
	ShippingState    string
	ShippingZip      string
	ShippingMethod   string
	ShippingCost     float64
	TaxAmount        float64
	CouponCode       string
}

// Checkout turns the user's cart into a pending order: stock is
// decremented, item prices are snapshotted, and the cart is cleared —
// all in one transaction.
func (s *OrderService) Checkout(userID uuid.UUID, input CheckoutInput) (*models.Order, error) {
	var cart models.Cart
	if err := s.db.Preload("Items").Preload("Items.Product").
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// A saved address fills the shipping fields when one is referenced.
	if input.AddressID != nil {
		var addr models.Address
		if err := s.db.Where("id = ? AND customer_id = ?", *input.AddressID, input.CustomerID).
			First(&addr).Error; err != nil {
			return nil, err
		}
		input.ShippingFullName = addr.FullName
		input.ShippingPhone = addr.Phone
		input.ShippingAddress = addr.Address
		input.ShippingCity = addr.City
		input.ShippingState = addr.Province
		input.ShippingZip = addr.PostalCode
	}

	subtotal := cart.Subtotal()

	var discountAmount float64
	var coupon *models.Discount
	if input.CouponCode != "" {
		var d models.Discount
		if err := s.db.Where("code = ?", input.CouponCode).First(&d).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCoupon
			}
			return nil, err
		}
		if !d.IsValid(time.Now()) {
			return nil, ErrInvalidCoupon
		}
		discountAmount = d.Apply(subtotal)
		coupon = &d
	}

	number, err := allocateNumber(s.db, &models.Order{}, "order_number", "ORD")
	if err != nil {
		return nil, err
	}

	order := models.Order{
		OrderNumber:      number,
		CustomerID:       input.CustomerID,
		Status:           models.OrderPending,
		Subtotal:         subtotal,
		DiscountAmount:   discountAmount,
		ShippingCost:     input.ShippingCost,
		TaxAmount:        input.TaxAmount,
		ShippingFullName: input.ShippingFullName,
		ShippingPhone:    input.ShippingPhone,
		ShippingAddress:  input.ShippingAddress,
		ShippingCity:     input.ShippingCity,
		ShippingState:    input.ShippingState,
		ShippingZip:      input.ShippingZip,
		ShippingMethod:   input.ShippingMethod,
	}
	order.RecalculateTotal()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range cart.Items {
			item := &cart.Items[i]
			if item.Product == nil {
				return errors.New("cart item references a missing product")
			}
			ok, err := item.Product.DecreaseStock(tx, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return ErrOutOfStock
			}
			order.Items = append(order.Items, models.OrderItem{
				ProductID:   item.ProductID,
				VariationID: item.VariationID,
				Quantity:    item.Quantity,
				ProductName: item.Product.Name,
				ProductSKU:  item.Product.SKU,
				Price:       item.Price,
			})
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if coupon != nil {
			if err := tx.Model(coupon).Update("used_count", gorm.Expr("used_count + ?", 1)).Error; err != nil {
				return err
			}
		}
		// Clear the cart.
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel aborts an order that has not shipped yet and restocks its
// items.
func (s *OrderService) Cancel(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	if order.Status != models.OrderPending && order.Status != models.OrderPaid {
		return nil, ErrInvalidTransition
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}
			if err := product.IncreaseStock(tx, item.Quantity); err != nil {
				return err
			}
		}
		return tx.Model(&order).Update("status", models.OrderCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderCancelled
	return &order, nil
}
