package services

import (
	"context"

	"github.com/choralbase/choir_backend/internal/core/domain"
	"github.com/choralbase/choir_backend/internal/dto"
)

// PaymentReaderSvc defines read operations for the payment ledger
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a payment by ID.
	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves the full ledger, optionally filtered by member.
	ListPayments(ctx context.Context, memberID string) ([]domain.Payment, error)
}

// PaymentWriterSvc defines the append operation for the payment ledger
type PaymentWriterSvc interface {
	// RecordPayment appends a payment after validating both references resolve.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, creatorMemberID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
