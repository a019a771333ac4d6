package services

import "errors"

var (
	// ErrSlotUnavailable rejects a reservation whose requested interval
	// fails the availability check.
	ErrSlotUnavailable = errors.New("requested time slot is not available")

	// ErrInvalidTransition rejects a status change the lifecycle does
	// not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPaymentRequired rejects confirming a reservation with no
	// successful payment behind it.
	ErrPaymentRequired = errors.New("reservation has no successful payment")

	ErrReservationNotFound = errors.New("reservation not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrRefundNotFound      = errors.New("refund not found")
	ErrEmptyServiceSet     = errors.New("reservation requires at least one service")
	ErrInvalidCoupon       = errors.New("coupon code is not valid")
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidOTP          = errors.New("otp code is invalid or expired")
)
