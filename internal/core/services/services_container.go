package services

import (
	portsrepo "github.com/choralbase/choir_backend/internal/core/ports/repositories"
	portssvc "github.com/choralbase/choir_backend/internal/core/ports/services"
	"github.com/choralbase/choir_backend/internal/utils"
	"github.com/choralbase/choir_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mailer *utils.Mailer) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Member service goes first since the others authorize through it
	container.Member = NewMemberService(
		repos.MemberRepo,
		WithMailer(mailer),
	)

	authorizer := container.Member.(portssvc.MemberAuthorizerSvc)

	container.Contribution = NewContributionService(repos.ContributionRepo, authorizer)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.MemberRepo, repos.ContributionRepo, authorizer)
	container.Attendance = NewAttendanceService(repos.AttendanceRepo, repos.MemberRepo, authorizer)
	container.Reconciliation = NewReconciliationService(repos.MemberRepo, repos.ContributionRepo, repos.PaymentRepo)

	return container
}
