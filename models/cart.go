package models

import (
	"time"

	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Cart struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"`

	gorm.Model `json:"-"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) Subtotal() float64 {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.TotalPrice()
	}
	return subtotal
}

type CartItem struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CartID uuid.UUID `gorm:"type:uuid;index;not null" json:"cartId"`

	ProductID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"productId"`
	VariationID *uuid.UUID `gorm:"type:uuid" json:"variationId"`
	Quantity    int        `gorm:"default:1" json:"quantity"`

	// Unit price captured when the item entered the cart.
	Price float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	gorm.Model `json:"-"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

func (i *CartItem) TotalPrice() float64 {
	return i.Price * float64(i.Quantity)
}

const (
	OrderPending    = "pending"
	OrderPaid       = "paid"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderReturned   = "returned"
)

type Order struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber string    `gorm:"type:varchar(13);uniqueIndex;not null" json:"orderNumber"`

	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	Status     string    `gorm:"type:varchar(10);default:'pending';index" json:"status"`

	Subtotal       float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DiscountAmount float64 `gorm:"type:decimal(10,2);default:0" json:"discountAmount"`
	ShippingCost   float64 `gorm:"type:decimal(10,2);default:0" json:"shippingCost"`
	TaxAmount      float64 `gorm:"type:decimal(10,2);default:0" json:"taxAmount"`
	Total          float64 `gorm:"type:decimal(10,2);default:0" json:"total"`

	ShippingFullName string `json:"shippingFullName"`
	ShippingPhone    string `json:"shippingPhone"`
	ShippingAddress  string `json:"shippingAddress"`
	ShippingCity     string `json:"shippingCity"`
	ShippingState    string `json:"shippingState"`
	ShippingZip      string `json:"shippingZip"`

	TrackingCode   string `json:"trackingCode"`
	ShippingMethod string `json:"shippingMethod"`

	PaidAt      *time.Time `json:"paidAt"`
	ShippedAt   *time.Time `json:"shippedAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	gorm.Model `json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.OrderNumber == "" {
		o.OrderNumber = utils.GenerateNumber("ORD")
	}
	return
}

// RecalculateTotal derives the payable total from the order's parts.
func (o *Order) RecalculateTotal() {
	o.Total = o.Subtotal - o.DiscountAmount + o.ShippingCost + o.TaxAmount
	if o.Total < 0 {
		o.Total = 0
	}
}

type OrderItem struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID uuid.UUID `gorm:"type:uuid;index;not null" json:"orderId"`

	ProductID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"productId"`
	VariationID *uuid.UUID `gorm:"type:uuid" json:"variationId"`
	Quantity    int        `gorm:"default:1" json:"quantity"`

	// Product snapshot taken at checkout.
	ProductName string  `gorm:"not null" json:"productName"`
	ProductSKU  string  `json:"productSku"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	TotalPrice  float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	gorm.Model `json:"-"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.TotalPrice = i.Price * float64(i.Quantity)
	return
}

type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	FullName   string `gorm:"not null" json:"fullName"`
	Phone      string `gorm:"not null" json:"phone"`
	Address    string `gorm:"type:text;not null" json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`

	IsDefault bool `gorm:"default:false" json:"isDefault"`

	gorm.Model `json:"-"`
}

// Making an address the default clears the flag on the customer's
// other addresses.
func (a *Address) BeforeSave(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.IsDefault {
		return tx.Model(&Address{}).
			Where("customer_id = ? AND id <> ? AND is_default = ?", a.CustomerID, a.ID, true).
			Update("is_default", false).Error
	}
	return
}
