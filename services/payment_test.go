package services

import (
	"testing"
	"time"

	"salonhub-backend/config"
	"salonhub-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentTargetExclusivity(t *testing.T) {
	db := newTestDB(t)

	orderID := uuid.New()
	reservationID := uuid.New()

	err := db.Create(&models.Payment{UserID: uuid.New(), Amount: 10}).Error
	assert.ErrorIs(t, err, models.ErrPaymentTarget)

	err = db.Create(&models.Payment{
		UserID:        uuid.New(),
		Amount:        10,
		OrderID:       &orderID,
		ReservationID: &reservationID,
	}).Error
	assert.ErrorIs(t, err, models.ErrPaymentTarget)

	payment := models.Payment{UserID: uuid.New(), Amount: 10, OrderID: &orderID}
	require.NoError(t, db.Create(&payment).Error)
	assert.Equal(t, models.PaymentTypeOrder, payment.PaymentType)
}

func TestPaymentFlow_ReservationConfirmAndWalletCredit(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	config.Settings = models.SiteSettings{CommissionPercentage: 10}

	reservations := NewReservationService(db)
	payments := NewPaymentService(db, SandboxGateway{})

	res := bookTomorrow(t, reservations, fx, "10:00", "11:00")
	userID := uuid.New()

	payment, err := payments.CreateForReservation(userID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.FinalPrice, payment.Amount)
	assert.Equal(t, "PAY", payment.PaymentNumber[:3])

	authority, err := payments.Initiate(payment, "https://example.com/callback")
	require.NoError(t, err)
	assert.NotEmpty(t, authority)
	assert.Equal(t, models.PaymentProcessing, payment.Status)

	settled, err := payments.HandleCallback(authority)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, settled.Status)
	require.NotNil(t, settled.PaidAt)

	var stored models.Reservation
	require.NoError(t, db.First(&stored, "id = ?", res.ID).Error)
	assert.Equal(t, models.ReservationConfirmed, stored.Status)
	assert.NotNil(t, stored.ConfirmedAt)

	// Owner receives the amount net of the 10% commission.
	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, "user_id = ?", fx.OwnerUserID).Error)
	assert.InDelta(t, 45.0, wallet.Balance, 0.001)
	assert.InDelta(t, 45.0, wallet.TotalEarned, 0.001)

	var txn models.Transaction
	require.NoError(t, db.First(&txn, "user_id = ?", fx.OwnerUserID).Error)
	assert.Equal(t, models.TransactionPayment, txn.TransactionType)
	assert.InDelta(t, 0.0, txn.BalanceBefore, 0.001)
	assert.InDelta(t, 45.0, txn.BalanceAfter, 0.001)
}

func TestPaymentFlow_DuplicateCallbackIsNoOp(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	config.Settings = models.SiteSettings{CommissionPercentage: 10}

	reservations := NewReservationService(db)
	payments := NewPaymentService(db, SandboxGateway{})

	res := bookTomorrow(t, reservations, fx, "10:00", "11:00")
	payment, err := payments.CreateForReservation(uuid.New(), res.ID)
	require.NoError(t, err)
	authority, err := payments.Initiate(payment, "https://example.com/callback")
	require.NoError(t, err)

	first, err := payments.HandleCallback(authority)
	require.NoError(t, err)
	firstPaidAt := *first.PaidAt

	time.Sleep(10 * time.Millisecond)
	second, err := payments.HandleCallback(authority)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, second.Status)
	assert.True(t, second.PaidAt.Equal(firstPaidAt), "paid_at must keep its first value")

	// No second wallet credit.
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("user_id = ?", fx.OwnerUserID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, "user_id = ?", fx.OwnerUserID).Error)
	assert.InDelta(t, 45.0, wallet.Balance, 0.001)
}

func TestPaymentFlow_StaleSuccessCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	config.Settings = models.SiteSettings{CommissionPercentage: 10}

	reservations := NewReservationService(db)
	payments := NewPaymentService(db, SandboxGateway{})

	res := bookTomorrow(t, reservations, fx, "10:00", "11:00")
	payment, err := payments.CreateForReservation(uuid.New(), res.ID)
	require.NoError(t, err)
	_, err = payments.Initiate(payment, "https://example.com/callback")
	require.NoError(t, err)

	// Two callbacks racing to settle the same payment each hold a copy
	// still at processing; only the first flip may credit the wallet.
	var first, second models.Payment
	require.NoError(t, db.First(&first, "id = ?", payment.ID).Error)
	require.NoError(t, db.First(&second, "id = ?", payment.ID).Error)

	require.NoError(t, payments.MarkSuccess(&first, "REF-A", "1111"))
	require.NoError(t, payments.MarkSuccess(&second, "REF-B", "2222"))

	// The loser picks up the winner's fields instead of overwriting them.
	assert.Equal(t, models.PaymentSuccess, second.Status)
	assert.Equal(t, "REF-A", second.RefID)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, "REF-A", stored.RefID)

	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("user_id = ?", fx.OwnerUserID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, "user_id = ?", fx.OwnerUserID).Error)
	assert.InDelta(t, 45.0, wallet.Balance, 0.001)
}

func TestPaymentFlow_FailedVerification(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)

	reservations := NewReservationService(db)
	payments := NewPaymentService(db, SandboxGateway{})

	res := bookTomorrow(t, reservations, fx, "10:00", "11:00")
	payment, err := payments.CreateForReservation(uuid.New(), res.ID)
	require.NoError(t, err)

	// An authority the sandbox does not recognize fails verification.
	payment.Authority = "BOGUS-TOKEN"
	payment.Status = models.PaymentProcessing
	require.NoError(t, db.Save(payment).Error)

	settled, err := payments.HandleCallback("BOGUS-TOKEN")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, settled.Status)
	assert.Equal(t, "INVALID_AUTHORITY", settled.ErrorCode)

	// The reservation stays pending; a fresh payment attempt is allowed.
	var stored models.Reservation
	require.NoError(t, db.First(&stored, "id = ?", res.ID).Error)
	assert.Equal(t, models.ReservationPending, stored.Status)

	_, err = payments.CreateForReservation(uuid.New(), res.ID)
	assert.NoError(t, err)
}

func TestWallet_WithdrawInsufficientIsNoOp(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentService(db, SandboxGateway{})
	userID := uuid.New()

	_, err := payments.WalletDeposit(userID, 100, "seed")
	require.NoError(t, err)

	done, err := payments.WalletWithdraw(userID, 150, "too much")
	require.NoError(t, err)
	assert.False(t, done)

	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, "user_id = ?", userID).Error)
	assert.InDelta(t, 100.0, wallet.Balance, 0.001)
	assert.InDelta(t, 0.0, wallet.TotalWithdrawn, 0.001)

	// A failed withdrawal leaves no ledger row behind.
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWallet_LedgerInvariant(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentService(db, SandboxGateway{})
	userID := uuid.New()

	_, err := payments.WalletDeposit(userID, 200, "first")
	require.NoError(t, err)
	_, err = payments.WalletDeposit(userID, 50, "second")
	require.NoError(t, err)
	done, err := payments.WalletWithdraw(userID, 80, "payout")
	require.NoError(t, err)
	require.True(t, done)

	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, "user_id = ?", userID).Error)
	assert.InDelta(t, wallet.TotalEarned-wallet.TotalWithdrawn, wallet.Balance, 0.001)
	assert.InDelta(t, 170.0, wallet.Balance, 0.001)

	var txns []models.Transaction
	require.NoError(t, db.Where("user_id = ?", userID).Find(&txns).Error)
	require.Len(t, txns, 3)
	withdrawals := 0
	for _, txn := range txns {
		assert.InDelta(t, txn.BalanceBefore+txn.Amount, txn.BalanceAfter, 0.001)
		if txn.Amount < 0 {
			withdrawals++
			assert.InDelta(t, -80.0, txn.Amount, 0.001)
			assert.Equal(t, models.TransactionSettlement, txn.TransactionType)
		}
	}
	assert.Equal(t, 1, withdrawals)
}

func TestRefund_FullLifecycle(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)
	config.Settings = models.SiteSettings{CommissionPercentage: 10}

	reservations := NewReservationService(db)
	payments := NewPaymentService(db, SandboxGateway{})

	res := bookTomorrow(t, reservations, fx, "10:00", "11:00")
	userID := uuid.New()
	payment, err := payments.CreateForReservation(userID, res.ID)
	require.NoError(t, err)
	authority, err := payments.Initiate(payment, "https://example.com/callback")
	require.NoError(t, err)
	_, err = payments.HandleCallback(authority)
	require.NoError(t, err)

	refund, err := payments.RequestRefund(payment.ID, 30, "customer_request", "changed plans")
	require.NoError(t, err)
	assert.Equal(t, models.RefundPending, refund.Status)
	assert.Equal(t, "REF", refund.RefundNumber[:3])

	adminID := uuid.New()
	refund, err = payments.ApproveRefund(refund.ID, adminID)
	require.NoError(t, err)
	assert.Equal(t, models.RefundApproved, refund.Status)
	require.NotNil(t, refund.ProcessedByID)
	assert.Equal(t, adminID, *refund.ProcessedByID)
	assert.NotNil(t, refund.ApprovedAt)

	refund, err = payments.CompleteRefund(refund.ID, "BANK-REF-1")
	require.NoError(t, err)
	assert.Equal(t, models.RefundCompleted, refund.Status)
	assert.NotNil(t, refund.CompletedAt)

	var stored models.Payment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, models.PaymentRefunded, stored.Status)

	// The owner was credited 45 (net of 10% on 50); refunding 30 of the
	// 50 claws back the same share of the credit: 45 * 30/50 = 27.
	var txn models.Transaction
	require.NoError(t, db.First(&txn, "user_id = ? AND transaction_type = ?",
		fx.OwnerUserID, models.TransactionRefund).Error)
	assert.InDelta(t, -27.0, txn.Amount, 0.001)
	assert.InDelta(t, 45.0, txn.BalanceBefore, 0.001)
	assert.InDelta(t, 18.0, txn.BalanceAfter, 0.001)
	assert.InDelta(t, txn.BalanceBefore+txn.Amount, txn.BalanceAfter, 0.001)
	require.NotNil(t, txn.RefundID)
	assert.Equal(t, refund.ID, *txn.RefundID)

	var wallet models.Wallet
	require.NoError(t, db.First(&wallet, "user_id = ?", fx.OwnerUserID).Error)
	assert.InDelta(t, 18.0, wallet.Balance, 0.001)
	assert.InDelta(t, wallet.TotalEarned-wallet.TotalWithdrawn, wallet.Balance, 0.001)
}

func TestRefund_OrderPaymentLeavesNoLedgerRow(t *testing.T) {
	db := newTestDB(t)
	payments := NewPaymentService(db, SandboxGateway{})

	orderID := uuid.New()
	payment := models.Payment{
		UserID:  uuid.New(),
		Amount:  80,
		OrderID: &orderID,
		Status:  models.PaymentSuccess,
	}
	require.NoError(t, db.Create(&payment).Error)

	refund, err := payments.RequestRefund(payment.ID, 80, "customer_request", "")
	require.NoError(t, err)
	refund, err = payments.ApproveRefund(refund.ID, uuid.New())
	require.NoError(t, err)
	refund, err = payments.CompleteRefund(refund.ID, "BANK-REF-2")
	require.NoError(t, err)
	assert.Equal(t, models.RefundCompleted, refund.Status)

	// No wallet was credited at settlement, so nothing is clawed back.
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRefund_InvalidTransitions(t *testing.T) {
	db := newTestDB(t)
	fx := seedSalon(t, db)

	reservations := NewReservationService(db)
	payments := NewPaymentService(db, SandboxGateway{})

	res := bookTomorrow(t, reservations, fx, "10:00", "11:00")
	payment, err := payments.CreateForReservation(uuid.New(), res.ID)
	require.NoError(t, err)

	// Pending payments cannot be refunded.
	_, err = payments.RequestRefund(payment.ID, 10, "customer_request", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Completing skips are rejected: a pending refund cannot complete.
	config.Settings = models.SiteSettings{CommissionPercentage: 10}
	authority, err := payments.Initiate(payment, "https://example.com/callback")
	require.NoError(t, err)
	_, err = payments.HandleCallback(authority)
	require.NoError(t, err)

	refund, err := payments.RequestRefund(payment.ID, 10, "customer_request", "")
	require.NoError(t, err)
	_, err = payments.CompleteRefund(refund.ID, "X")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Amount above the paid amount is rejected.
	_, err = payments.RequestRefund(payment.ID, payment.Amount+1, "customer_request", "")
	assert.Error(t, err)
}
