package models

import (
	"errors"
	"time"

	"salonhub-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentSuccess    = "success"
	PaymentFailed     = "failed"
	PaymentCancelled  = "cancelled"
	PaymentRefunded   = "refunded"
)

const (
	PaymentTypeOrder       = "order"
	PaymentTypeReservation = "reservation"
)

var ErrPaymentTarget = errors.New("payment must reference exactly one of order or reservation")

type PaymentGateway struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	DisplayName string    `gorm:"not null" json:"displayName"`

	MerchantID string `gorm:"not null" json:"-"`
	APIKey     string `json:"-"`
	Logo       string `json:"logo"`

	IsActive  bool `gorm:"default:true" json:"isActive"`
	IsDefault bool `gorm:"default:false" json:"isDefault"`

	TotalTransactions      int `gorm:"default:0" json:"totalTransactions"`
	SuccessfulTransactions int `gorm:"default:0" json:"successfulTransactions"`

	DisplayOrder int `gorm:"default:0" json:"displayOrder"`

	gorm.Model `json:"-"`
}

// Only one gateway may be the default at a time.
func (g *PaymentGateway) BeforeSave(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.IsDefault {
		return tx.Model(&PaymentGateway{}).
			Where("id <> ? AND is_default = ?", g.ID, true).
			Update("is_default", false).Error
	}
	return
}

// Payment is one payment attempt against exactly one of an Order or a
// Reservation.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PaymentNumber string    `gorm:"type:varchar(13);uniqueIndex;not null" json:"paymentNumber"`

	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	PaymentType string    `gorm:"type:varchar(20);not null" json:"paymentType"`

	OrderID       *uuid.UUID `gorm:"type:uuid;index" json:"orderId"`
	ReservationID *uuid.UUID `gorm:"type:uuid;index" json:"reservationId"`
	GatewayID     *uuid.UUID `gorm:"type:uuid;index" json:"gatewayId"`

	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status string  `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	Authority     string `gorm:"index" json:"authority"`
	RefID         string `gorm:"index" json:"refId"`
	TransactionID string `json:"transactionId"`
	CardNumber    string `json:"cardNumber"`
	CardHash      string `json:"-"`

	Description  string `gorm:"type:text" json:"description"`
	ErrorMessage string `gorm:"type:text" json:"errorMessage"`
	ErrorCode    string `gorm:"type:varchar(50)" json:"errorCode"`
	IPAddress    string `json:"ipAddress"`

	PaidAt *time.Time `json:"paidAt"`

	gorm.Model `json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaymentNumber == "" {
		p.PaymentNumber = utils.GenerateNumber("PAY")
	}
	// Exactly one target, and the type field must agree with it.
	if (p.OrderID == nil) == (p.ReservationID == nil) {
		return ErrPaymentTarget
	}
	if p.OrderID != nil {
		p.PaymentType = PaymentTypeOrder
	} else {
		p.PaymentType = PaymentTypeReservation
	}
	return
}

const (
	RefundPending    = "pending"
	RefundApproved   = "approved"
	RefundRejected   = "rejected"
	RefundProcessing = "processing"
	RefundCompleted  = "completed"
)

type Refund struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RefundNumber string    `gorm:"type:varchar(13);uniqueIndex;not null" json:"refundNumber"`

	PaymentID uuid.UUID `gorm:"type:uuid;index;not null" json:"paymentId"`
	Payment   *Payment  `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`

	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Reason string  `gorm:"type:varchar(50);not null" json:"reason"`

	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	ProcessedByID *uuid.UUID `gorm:"type:uuid" json:"processedById"`
	RefundRefID   string     `json:"refundRefId"`
	AdminNote     string     `gorm:"type:text" json:"adminNote"`

	ApprovedAt  *time.Time `json:"approvedAt"`
	CompletedAt *time.Time `json:"completedAt"`

	gorm.Model `json:"-"`
}

func (r *Refund) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RefundNumber == "" {
		r.RefundNumber = utils.GenerateNumber("REF")
	}
	return
}

const (
	TransactionPayment    = "payment"
	TransactionRefund     = "refund"
	TransactionCommission = "commission"
	TransactionSettlement = "settlement"
)

// Transaction is an append-only ledger entry. Rows are written once as
// evidence of a wallet mutation and never updated; the Wallet row stays
// the source of truth for the current balance.
type Transaction struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TransactionNumber string    `gorm:"type:varchar(13);uniqueIndex;not null" json:"transactionNumber"`

	TransactionType string `gorm:"type:varchar(20);not null" json:"transactionType"`

	PaymentID *uuid.UUID `gorm:"type:uuid;index" json:"paymentId"`
	RefundID  *uuid.UUID `gorm:"type:uuid;index" json:"refundId"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"userId"`

	// Negative for withdrawals, positive for deposits.
	Amount        float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
	BalanceBefore float64 `gorm:"type:decimal(12,2);default:0" json:"balanceBefore"`
	BalanceAfter  float64 `gorm:"type:decimal(12,2);default:0" json:"balanceAfter"`

	Description string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.TransactionNumber == "" {
		t.TransactionNumber = utils.GenerateNumber("TXN")
	}
	return
}

// Wallet holds a user's running balance. The invariant
// balance == total_earned - total_withdrawn holds after every mutation.
type Wallet struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`

	Balance        float64 `gorm:"type:decimal(12,2);default:0" json:"balance"`
	TotalEarned    float64 `gorm:"type:decimal(12,2);default:0" json:"totalEarned"`
	TotalWithdrawn float64 `gorm:"type:decimal(12,2);default:0" json:"totalWithdrawn"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}

// Deposit credits the wallet and appends the ledger row. Callers run it
// inside a transaction holding the wallet row lock.
func (w *Wallet) Deposit(tx *gorm.DB, amount float64, txnType, description string, paymentID *uuid.UUID) error {
	before := w.Balance
	w.Balance += amount
	w.TotalEarned += amount
	if err := tx.Save(w).Error; err != nil {
		return err
	}
	return tx.Create(&Transaction{
		TransactionType: txnType,
		PaymentID:       paymentID,
		UserID:          w.UserID,
		Amount:          amount,
		BalanceBefore:   before,
		BalanceAfter:    w.Balance,
		Description:     description,
	}).Error
}

// Refund claws back an earlier credit. The balance may go negative
// when the funds were already settled out.
func (w *Wallet) Refund(tx *gorm.DB, amount float64, description string, paymentID, refundID *uuid.UUID) error {
	before := w.Balance
	w.Balance -= amount
	w.TotalEarned -= amount
	if err := tx.Save(w).Error; err != nil {
		return err
	}
	return tx.Create(&Transaction{
		TransactionType: TransactionRefund,
		PaymentID:       paymentID,
		RefundID:        refundID,
		UserID:          w.UserID,
		Amount:          -amount,
		BalanceBefore:   before,
		BalanceAfter:    w.Balance,
		Description:     description,
	}).Error
}

// Withdraw debits the wallet, reporting false without any mutation when
// the balance is short.
func (w *Wallet) Withdraw(tx *gorm.DB, amount float64, description string) (bool, error) {
	if amount > w.Balance {
		return false, nil
	}
	before := w.Balance
	w.Balance -= amount
	w.TotalWithdrawn += amount
	if err := tx.Save(w).Error; err != nil {
		return false, err
	}
	if err := tx.Create(&Transaction{
		TransactionType: TransactionSettlement,
		UserID:          w.UserID,
		Amount:          -amount,
		BalanceBefore:   before,
		BalanceAfter:    w.Balance,
		Description:     description,
	}).Error; err != nil {
		return false, err
	}
	return true, nil
}
