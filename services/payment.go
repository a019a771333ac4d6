package services

import (
	"errors"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService struct {
	db      *gorm.DB
	gateway GatewayClient
}

func NewPaymentService(db *gorm.DB, gateway GatewayClient) *PaymentService {
	return &PaymentService{db: db, gateway: gateway}
}

// CreateForReservation opens a payment attempt for a pending
// reservation. Every attempt is a fresh record; a failed verification
// is never retried in place.
func (s *PaymentService) CreateForReservation(userID, reservationID uuid.UUID) (*models.Payment, error) {
	var reservation models.Reservation
	if err := s.db.First(&reservation, "id = ?", reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	if reservation.Status != models.ReservationPending {
		return nil, ErrInvalidTransition
	}
	return s.create(userID, reservation.FinalPrice, nil, &reservation.ID)
}

// CreateForOrder opens a payment attempt for a pending order.
func (s *PaymentService) CreateForOrder(userID, orderID uuid.UUID) (*models.Payment, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	if order.Status != models.OrderPending {
		return nil, ErrInvalidTransition
	}
	return s.create(userID, order.Total, &order.ID, nil)
}

func (s *PaymentService) create(userID uuid.UUID, amount float64, orderID, reservationID *uuid.UUID) (*models.Payment, error) {
	number, err := allocateNumber(s.db, &models.Payment{}, "payment_number", "PAY")
	if err != nil {
		return nil, err
	}
	payment := models.Payment{
		PaymentNumber: number,
		UserID:        userID,
		OrderID:       orderID,
		ReservationID: reservationID,
		Amount:        amount,
		Status:        models.PaymentPending,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Initiate asks the gateway for an authority token and moves the
// payment to processing.
func (s *PaymentService) Initiate(payment *models.Payment, callbackURL string) (string, error) {
	authority, err := s.gateway.Initiate(payment.Amount, callbackURL, payment.Description)
	if err != nil {
		return "", err
	}
	payment.Authority = authority
	payment.Status = models.PaymentProcessing
	if err := s.db.Save(payment).Error; err != nil {
		return "", err
	}
	return authority, nil
}

// HandleCallback verifies a gateway callback by authority token.
// A duplicate callback for an already successful payment is a no-op:
// paid_at keeps its first value and no second wallet credit happens.
func (s *PaymentService) HandleCallback(authority string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Where("authority = ?", authority).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status == models.PaymentSuccess {
		return &payment, nil
	}

	result, err := s.gateway.Verify(authority, payment.Amount)
	if err != nil {
		// Gateway troubles surface as a failed payment, captured verbatim.
		if markErr := s.MarkFailed(&payment, err.Error(), "GATEWAY_ERROR"); markErr != nil {
			return nil, markErr
		}
		return &payment, nil
	}
	if !result.Success {
		if err := s.MarkFailed(&payment, result.Message, result.Code); err != nil {
			return nil, err
		}
		return &payment, nil
	}

	if err := s.MarkSuccess(&payment, result.RefID, result.CardNumber); err != nil {
		return nil, err
	}
	return &payment, nil
}

// MarkSuccess records the successful gateway reference and, in the same
// transaction, drives the linked order to paid or the linked
// reservation to confirmed and credits the salon owner's wallet with
// the amount net of the platform commission.
func (s *PaymentService) MarkSuccess(payment *models.Payment, refID, cardNumber string) error {
	if payment.Status == models.PaymentSuccess {
		return nil
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		// The status test and the flip must be a single statement: two
		// callbacks verifying concurrently would otherwise both pass an
		// in-memory check and credit the wallet twice.
		flip := tx.Model(&models.Payment{}).
			Where("id = ? AND status IN ?", payment.ID,
				[]string{models.PaymentPending, models.PaymentProcessing, models.PaymentFailed}).
			Updates(map[string]interface{}{
				"status":      models.PaymentSuccess,
				"ref_id":      refID,
				"card_number": cardNumber,
				"paid_at":     now,
			})
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			// Already settled, refunded or cancelled; pick up the
			// stored fields instead of overwriting them.
			return tx.First(payment, "id = ?", payment.ID).Error
		}
		payment.Status = models.PaymentSuccess
		payment.RefID = refID
		payment.CardNumber = cardNumber
		payment.PaidAt = &now

		if payment.OrderID != nil {
			if err := tx.Model(&models.Order{}).Where("id = ?", *payment.OrderID).
				Updates(map[string]interface{}{
					"status":  models.OrderPaid,
					"paid_at": now,
				}).Error; err != nil {
				return err
			}
		}

		if payment.ReservationID != nil {
			var reservation models.Reservation
			if err := tx.First(&reservation, "id = ?", *payment.ReservationID).Error; err != nil {
				return err
			}
			reservation.Status = models.ReservationConfirmed
			reservation.ConfirmedAt = &now
			if err := tx.Save(&reservation).Error; err != nil {
				return err
			}
			if err := s.creditSalonOwner(tx, payment, &reservation); err != nil {
				return err
			}
		}
		return nil
	})
}

// MarkFailed records gateway diagnostics. No side effects on the linked
// order or reservation.
func (s *PaymentService) MarkFailed(payment *models.Payment, message, code string) error {
	payment.Status = models.PaymentFailed
	payment.ErrorMessage = message
	payment.ErrorCode = code
	return s.db.Save(payment).Error
}

// creditSalonOwner deposits the reservation revenue, net of commission,
// into the owner's wallet.
func (s *PaymentService) creditSalonOwner(tx *gorm.DB, payment *models.Payment, reservation *models.Reservation) error {
	var salon models.Salon
	if err := tx.First(&salon, "id = ?", reservation.SalonID).Error; err != nil {
		return err
	}
	var owner models.SalonOwnerProfile
	if err := tx.First(&owner, "id = ?", salon.OwnerID).Error; err != nil {
		return err
	}

	net := payment.Amount * (1 - config.Settings.CommissionPercentage/100)

	lock := walletLocks.get(owner.UserID.String())
	lock.Lock()
	defer lock.Unlock()

	wallet, err := getOrCreateWallet(tx, owner.UserID)
	if err != nil {
		return err
	}
	return wallet.Deposit(tx, net, models.TransactionPayment,
		"reservation "+reservation.ReservationNumber, &payment.ID)
}

// WalletDeposit credits a user's wallet under the wallet lock.
func (s *PaymentService) WalletDeposit(userID uuid.UUID, amount float64, description string) (*models.Wallet, error) {
	lock := walletLocks.get(userID.String())
	lock.Lock()
	defer lock.Unlock()

	var wallet *models.Wallet
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, err = getOrCreateWallet(tx, userID)
		if err != nil {
			return err
		}
		return wallet.Deposit(tx, amount, models.TransactionPayment, description, nil)
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// WalletWithdraw debits a user's wallet. Insufficient funds report
// ok=false with no mutation at all.
func (s *PaymentService) WalletWithdraw(userID uuid.UUID, amount float64, description string) (bool, error) {
	lock := walletLocks.get(userID.String())
	lock.Lock()
	defer lock.Unlock()

	var ok bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		wallet, err := getOrCreateWallet(tx, userID)
		if err != nil {
			return err
		}
		ok, err = wallet.Withdraw(tx, amount, description)
		return err
	})
	if err != nil {
		return false, err
	}
	return ok, nil
}

func getOrCreateWallet(tx *gorm.DB, userID uuid.UUID) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{UserID: userID}
		if err := tx.Create(&wallet).Error; err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// RequestRefund opens a refund for a successful payment.
func (s *PaymentService) RequestRefund(paymentID uuid.UUID, amount float64, reason, description string) (*models.Refund, error) {
	var payment models.Payment
	if err := s.db.First(&payment, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.Status != models.PaymentSuccess {
		return nil, ErrInvalidTransition
	}
	if amount <= 0 || amount > payment.Amount {
		return nil, errors.New("refund amount must be positive and within the paid amount")
	}

	number, err := allocateNumber(s.db, &models.Refund{}, "refund_number", "REF")
	if err != nil {
		return nil, err
	}
	refund := models.Refund{
		RefundNumber: number,
		PaymentID:    payment.ID,
		Amount:       amount,
		Reason:       reason,
		Description:  description,
		Status:       models.RefundPending,
	}
	if err := s.db.Create(&refund).Error; err != nil {
		return nil, err
	}
	return &refund, nil
}

// ApproveRefund moves a pending refund to approved.
func (s *PaymentService) ApproveRefund(refundID, processedBy uuid.UUID) (*models.Refund, error) {
	var refund models.Refund
	if err := s.db.First(&refund, "id = ?", refundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefundNotFound
		}
		return nil, err
	}
	if refund.Status != models.RefundPending {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	refund.Status = models.RefundApproved
	refund.ProcessedByID = &processedBy
	refund.ApprovedAt = &now
	if err := s.db.Save(&refund).Error; err != nil {
		return nil, err
	}
	return &refund, nil
}

// CompleteRefund finishes an approved refund, flips the parent payment
// to refunded and claws the credited share back out of the wallet that
// received it, all atomically.
func (s *PaymentService) CompleteRefund(refundID uuid.UUID, refID string) (*models.Refund, error) {
	var refund models.Refund
	if err := s.db.First(&refund, "id = ?", refundID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRefundNotFound
		}
		return nil, err
	}
	if refund.Status != models.RefundApproved {
		return nil, ErrInvalidTransition
	}

	var payment models.Payment
	if err := s.db.First(&payment, "id = ?", refund.PaymentID).Error; err != nil {
		return nil, err
	}

	// The wallet credited at settlement, if any. Order payments credit
	// no wallet, so their refunds leave no ledger trace either.
	var credit models.Transaction
	creditErr := s.db.Where("payment_id = ? AND transaction_type = ?",
		refund.PaymentID, models.TransactionPayment).First(&credit).Error
	if creditErr != nil && !errors.Is(creditErr, gorm.ErrRecordNotFound) {
		return nil, creditErr
	}
	hasCredit := creditErr == nil
	if hasCredit {
		lock := walletLocks.get(credit.UserID.String())
		lock.Lock()
		defer lock.Unlock()
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		refund.Status = models.RefundCompleted
		refund.RefundRefID = refID
		refund.CompletedAt = &now
		if err := tx.Save(&refund).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Payment{}).Where("id = ?", refund.PaymentID).
			Update("status", models.PaymentRefunded).Error; err != nil {
			return err
		}
		if !hasCredit {
			return nil
		}
		var wallet models.Wallet
		if err := tx.First(&wallet, "user_id = ?", credit.UserID).Error; err != nil {
			return err
		}
		// Claw back the credited share of the refunded amount.
		clawback := credit.Amount * refund.Amount / payment.Amount
		return wallet.Refund(tx, clawback, "refund "+refund.RefundNumber,
			&refund.PaymentID, &refund.ID)
	})
	if err != nil {
		return nil, err
	}
	return &refund, nil
}
