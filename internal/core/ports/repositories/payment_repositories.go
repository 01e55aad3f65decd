package repositories

import (
	"context"

	"github.com/choralbase/choir_backend/internal/core/domain"
)

// PaymentReader defines read operations for the payment ledger
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its ID.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPayments retrieves the full ledger snapshot.
	FindPayments(ctx context.Context) ([]domain.Payment, error)

	// FindPaymentsByMember retrieves all payments recorded for one member.
	FindPaymentsByMember(ctx context.Context, memberID string) ([]domain.Payment, error)
}

// PaymentWriter defines the append operation for the payment ledger.
// The ledger is append-only: there is no update or delete.
type PaymentWriter interface {
	// SavePayment appends a new payment record.
	SavePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
