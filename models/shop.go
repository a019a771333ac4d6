package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	SKU         string    `json:"sku"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"categoryId"`
	Brand      string     `json:"brand"`

	Price         float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	DiscountPrice float64 `gorm:"type:decimal(10,2);default:0" json:"discountPrice"`
	Stock         int     `gorm:"default:0" json:"stock"`
	Weight        float64 `gorm:"type:decimal(10,2);default:0" json:"weight"`
	MainImage     string  `json:"mainImage"`

	IsActive     bool `gorm:"default:true" json:"isActive"`
	IsBestseller bool `gorm:"default:false" json:"isBestseller"`

	RatingAverage float64 `gorm:"type:decimal(3,2);default:0" json:"ratingAverage"`
	RatingCount   int     `gorm:"default:0" json:"ratingCount"`
	ViewCount     int     `gorm:"default:0" json:"viewCount"`
	SalesCount    int     `gorm:"default:0" json:"salesCount"`

	Images     []ProductImage     `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Variations []ProductVariation `gorm:"foreignKey:ProductID" json:"variations,omitempty"`

	gorm.Model `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// EffectivePrice honors the discount price only when it undercuts the
// list price.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice > 0 && p.DiscountPrice < p.Price {
		return p.DiscountPrice
	}
	return p.Price
}

func (p *Product) IsInStock() bool {
	return p.Stock > 0
}

// DecreaseStock reserves quantity units, reporting false without
// mutation when stock is short.
func (p *Product) DecreaseStock(tx *gorm.DB, quantity int) (bool, error) {
	if p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	p.SalesCount += quantity
	if err := tx.Save(p).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (p *Product) IncreaseStock(tx *gorm.DB, quantity int) error {
	p.Stock += quantity
	return tx.Save(p).Error
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`
	Image     string    `gorm:"not null" json:"image"`
	Order     int       `gorm:"default:0" json:"order"`

	gorm.Model `json:"-"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type ProductVariation struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"productId"`

	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);default:0" json:"price"`
	Stock       int     `gorm:"default:0" json:"stock"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`

	gorm.Model `json:"-"`
}

func (v *ProductVariation) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// VariantPrice falls back to the parent product's effective price when
// the variation carries no price of its own.
func (v *ProductVariation) VariantPrice() float64 {
	if v.Price > 0 {
		return v.Price
	}
	if v.Product != nil {
		return v.Product.EffectivePrice()
	}
	return 0
}

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Discount is a coupon code applicable to orders and reservations.
type Discount struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code string    `gorm:"uniqueIndex;not null" json:"code"`

	DiscountType string  `gorm:"type:varchar(10);not null" json:"discountType"`
	Value        float64 `gorm:"type:decimal(10,2);not null" json:"value"`

	UsageLimit        int `gorm:"default:0" json:"usageLimit"` // 0 means unlimited
	UsageLimitPerUser int `gorm:"default:0" json:"usageLimitPerUser"`
	UsedCount         int `gorm:"default:0" json:"usedCount"`

	ValidFrom *time.Time `json:"validFrom"`
	ValidTo   *time.Time `json:"validTo"`

	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (d *Discount) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

// IsValid reports whether the coupon can be applied at time now.
func (d *Discount) IsValid(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidTo != nil && now.After(*d.ValidTo) {
		return false
	}
	if d.UsageLimit > 0 && d.UsedCount >= d.UsageLimit {
		return false
	}
	return true
}

// Apply returns the discounted reduction for an amount, never exceeding
// the amount itself.
func (d *Discount) Apply(amount float64) float64 {
	var reduction float64
	switch d.DiscountType {
	case DiscountPercentage:
		reduction = amount * d.Value / 100
	case DiscountFixed:
		reduction = d.Value
	}
	if reduction > amount {
		reduction = amount
	}
	return reduction
}
