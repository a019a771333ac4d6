package services

import (
	"errors"
	"strings"

	"salonhub-backend/utils"
)

// VerifyResult is the gateway's answer to a verification request.
type VerifyResult struct {
	Success    bool
	RefID      string
	CardNumber string
	Code       string
	Message    string
}

// GatewayClient abstracts the payment gateway pair of calls: initiate a
// payment and later verify its authority token.
type GatewayClient interface {
	Initiate(amount float64, callbackURL, description string) (authority string, err error)
	Verify(authority string, amount float64) (VerifyResult, error)
}

// SandboxGateway approves everything. Used for development and tests;
// production wires a real gateway implementation behind the same
// interface.
type SandboxGateway struct{}

func (SandboxGateway) Initiate(amount float64, callbackURL, description string) (string, error) {
	if amount <= 0 {
		return "", errors.New("amount must be positive")
	}
	return "SANDBOX-" + utils.GenerateRandomString(24), nil
}

func (SandboxGateway) Verify(authority string, amount float64) (VerifyResult, error) {
	if !strings.HasPrefix(authority, "SANDBOX-") {
		return VerifyResult{Success: false, Code: "INVALID_AUTHORITY", Message: "unknown authority token"}, nil
	}
	return VerifyResult{
		Success:    true,
		RefID:      utils.GenerateRandomString(12),
		CardNumber: "6037********1234",
	}, nil
}
