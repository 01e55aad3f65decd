package pgsql

import (
	portsrepo "github.com/choralbase/choir_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		MemberRepo:       newPgxMemberRepository(dbPool),
		ContributionRepo: newPgxContributionRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		AttendanceRepo:   newPgxAttendanceRepository(dbPool),
	}
}
