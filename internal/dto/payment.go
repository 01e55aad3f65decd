package dto

import (
	"time"

	"github.com/choralbase/choir_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest carries a new ledger entry. PaidOn is RFC 3339.
type RecordPaymentRequest struct {
	ContributionID string          `json:"contributionID" binding:"required"`
	MemberID       string          `json:"memberID" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	PaidOn         time.Time       `json:"paidOn" binding:"required"`
}

// ListPaymentsParams defines query parameters for listing payments.
type ListPaymentsParams struct {
	MemberID string `form:"memberID"`
}

// PaymentResponse is the external representation of a payment record.
type PaymentResponse struct {
	PaymentID      string          `json:"paymentID"`
	ContributionID string          `json:"contributionID"`
	MemberID       string          `json:"memberID"`
	Amount         decimal.Decimal `json:"amount"`
	PaidOn         time.Time       `json:"paidOn"`
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:      p.PaymentID,
		ContributionID: p.ContributionID,
		MemberID:       p.MemberID,
		Amount:         p.Amount,
		PaidOn:         p.PaidOn,
	}
}

// ListPaymentsResponse wraps a list of payments.
type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// ToListPaymentsResponse converts a ledger slice to its response DTO.
func ToListPaymentsResponse(payments []domain.Payment) ListPaymentsResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return ListPaymentsResponse{Payments: responses}
}
