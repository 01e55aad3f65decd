package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/choralbase/choir_backend/internal/apperrors"
	"github.com/choralbase/choir_backend/internal/core/domain"
	portssvc "github.com/choralbase/choir_backend/internal/core/ports/services"
	"github.com/choralbase/choir_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockMemberRepo       *MockMemberRepository
	mockContributionRepo *MockContributionRepository
	mockPaymentRepo      *MockPaymentRepository
	service              portssvc.ReconciliationService
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockContributionRepo = new(MockContributionRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewReconciliationService(suite.mockMemberRepo, suite.mockContributionRepo, suite.mockPaymentRepo)
}

func contributionWithTarget(title string, target int64) domain.Contribution {
	return domain.Contribution{
		ContributionID: uuid.NewString(),
		Title:          title,
		TargetAmount:   decimal.NewFromInt(target),
	}
}

func paymentOf(contributionID, memberID string, amount int64, paidOn time.Time) domain.Payment {
	return domain.Payment{
		PaymentID:      uuid.NewString(),
		ContributionID: contributionID,
		MemberID:       memberID,
		Amount:         decimal.NewFromInt(amount),
		PaidOn:         paidOn,
	}
}

// --- MemberView Tests ---
func (suite *ReconciliationServiceTestSuite) TestMemberView_FoldsMultiplePayments() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString(), Name: "Grace Achieng"}
	harambee := contributionWithTarget("Harambee Fund", 1000)
	first := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	second := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{harambee}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByMember", ctx, member.MemberID).Return([]domain.Payment{
		paymentOf(harambee.ContributionID, member.MemberID, 300, first),
		paymentOf(harambee.ContributionID, member.MemberID, 200, second),
	}, nil).Once()

	view, err := suite.service.MemberView(ctx, member.MemberID)

	suite.Require().NoError(err)
	suite.Require().Len(view.Contributions, 1)
	balance := view.Contributions[0]
	suite.True(balance.PaidAmount.Equal(decimal.NewFromInt(500)), "payments against one contribution must be summed")
	suite.True(balance.Remaining.Equal(decimal.NewFromInt(500)))
	suite.Equal(domain.StatusPending, balance.Status)
	suite.Require().NotNil(balance.LastPaidOn)
	suite.True(balance.LastPaidOn.Equal(second))
	suite.True(view.TotalOwed.Equal(decimal.NewFromInt(500)))
}

func (suite *ReconciliationServiceTestSuite) TestMemberView_OverpaymentNeverNegativeRemaining() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString(), Name: "Grace Achieng"}
	harambee := contributionWithTarget("Harambee Fund", 1000)
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{harambee}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByMember", ctx, member.MemberID).Return([]domain.Payment{
		paymentOf(harambee.ContributionID, member.MemberID, 1500, paidOn),
	}, nil).Once()

	view, err := suite.service.MemberView(ctx, member.MemberID)

	suite.Require().NoError(err)
	balance := view.Contributions[0]
	suite.True(balance.PaidAmount.Equal(decimal.NewFromInt(1500)), "raw paid amount is not capped")
	suite.True(balance.Remaining.IsZero(), "remaining must never go negative")
	suite.Equal(domain.StatusPaid, balance.Status)
	suite.True(view.TotalOwed.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestMemberView_ZeroTargetIsPaid() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString()}
	freeEvent := contributionWithTarget("Choir Picnic", 0)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{freeEvent}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByMember", ctx, member.MemberID).Return(nil, nil).Once()

	view, err := suite.service.MemberView(ctx, member.MemberID)

	suite.Require().NoError(err)
	balance := view.Contributions[0]
	suite.Equal(domain.StatusPaid, balance.Status)
	suite.True(balance.Remaining.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestMemberView_OrphanPaymentsDropped() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString()}
	harambee := contributionWithTarget("Harambee Fund", 1000)
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{harambee}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByMember", ctx, member.MemberID).Return([]domain.Payment{
		// References a contribution that no longer exists in the catalog
		paymentOf(uuid.NewString(), member.MemberID, 700, paidOn),
	}, nil).Once()

	view, err := suite.service.MemberView(ctx, member.MemberID)

	suite.Require().NoError(err)
	suite.Require().Len(view.Contributions, 1, "orphan entries must not create extra rows")
	balance := view.Contributions[0]
	suite.True(balance.PaidAmount.IsZero(), "orphan entries must not count toward any balance")
	suite.True(view.TotalOwed.Equal(decimal.NewFromInt(1000)))
}

func (suite *ReconciliationServiceTestSuite) TestMemberView_TotalOwedSpansContributions() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString()}
	harambee := contributionWithTarget("Harambee Fund", 1000)
	uniforms := contributionWithTarget("Uniform Fund", 2000)
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{harambee, uniforms}, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByMember", ctx, member.MemberID).Return([]domain.Payment{
		paymentOf(harambee.ContributionID, member.MemberID, 1000, paidOn),
		paymentOf(uniforms.ContributionID, member.MemberID, 500, paidOn),
	}, nil).Once()

	view, err := suite.service.MemberView(ctx, member.MemberID)

	suite.Require().NoError(err)
	suite.Require().Len(view.Contributions, 2)
	suite.Equal(domain.StatusPaid, view.Contributions[0].Status)
	suite.Equal(domain.StatusPending, view.Contributions[1].Status)
	suite.True(view.TotalOwed.Equal(decimal.NewFromInt(1500)))
}

func (suite *ReconciliationServiceTestSuite) TestMemberView_MemberNotFound() {
	ctx := context.Background()
	memberID := uuid.NewString()

	suite.mockMemberRepo.On("FindMemberByID", ctx, memberID).Return(nil, apperrors.ErrNotFound).Once()

	view, err := suite.service.MemberView(ctx, memberID)

	suite.Require().Error(err)
	suite.Nil(view)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestMemberView_IsIdempotent() {
	ctx := context.Background()
	member := &domain.Member{MemberID: uuid.NewString()}
	harambee := contributionWithTarget("Harambee Fund", 1000)
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	payments := []domain.Payment{paymentOf(harambee.ContributionID, member.MemberID, 300, paidOn)}

	suite.mockMemberRepo.On("FindMemberByID", ctx, member.MemberID).Return(member, nil).Twice()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{harambee}, nil).Twice()
	suite.mockPaymentRepo.On("FindPaymentsByMember", ctx, member.MemberID).Return(payments, nil).Twice()

	first, err := suite.service.MemberView(ctx, member.MemberID)
	suite.Require().NoError(err)
	second, err := suite.service.MemberView(ctx, member.MemberID)
	suite.Require().NoError(err)

	suite.Equal(first, second, "same inputs must produce the same view")
}

// --- CampaignView Tests ---
func (suite *ReconciliationServiceTestSuite) TestCampaignView_PartitionsPaidAndUnpaid() {
	ctx := context.Background()
	grace := domain.Member{MemberID: uuid.NewString(), Name: "Grace Achieng"}
	john := domain.Member{MemberID: uuid.NewString(), Name: "John Otieno"}
	harambee := contributionWithTarget("Harambee Fund", 1000)
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("ListActiveMembers", ctx).Return([]domain.Member{grace, john}, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{harambee}, nil).Once()
	suite.mockPaymentRepo.On("FindPayments", ctx).Return([]domain.Payment{
		paymentOf(harambee.ContributionID, grace.MemberID, 400, paidOn),
	}, nil).Once()

	view, err := suite.service.CampaignView(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(view.Members, 2)

	graceRow := view.Members[0]
	suite.Equal(grace.MemberID, graceRow.Member.MemberID)
	suite.Require().Len(graceRow.Contributions, 1)
	breakdown := graceRow.Contributions[0]
	suite.True(breakdown.PaidAmount.Equal(decimal.NewFromInt(400)))
	suite.Require().Len(breakdown.PaidMembers, 1)
	suite.Equal(grace.MemberID, breakdown.PaidMembers[0].MemberID)
	suite.True(breakdown.PaidMembers[0].Amount.Equal(decimal.NewFromInt(400)))
	suite.Require().Len(breakdown.UnpaidMembers, 1)
	suite.Equal(john.MemberID, breakdown.UnpaidMembers[0].MemberID)

	johnRow := view.Members[1]
	suite.True(johnRow.Contributions[0].PaidAmount.IsZero())
	suite.True(johnRow.TotalOwed.Equal(decimal.NewFromInt(1000)))
}

func (suite *ReconciliationServiceTestSuite) TestCampaignView_DropsPaymentsFromRemovedMembers() {
	ctx := context.Background()
	grace := domain.Member{MemberID: uuid.NewString(), Name: "Grace Achieng"}
	removedMemberID := uuid.NewString()
	harambee := contributionWithTarget("Harambee Fund", 1000)
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("ListActiveMembers", ctx).Return([]domain.Member{grace}, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{harambee}, nil).Once()
	suite.mockPaymentRepo.On("FindPayments", ctx).Return([]domain.Payment{
		// Ledger entry from a member that was since soft-deleted
		paymentOf(harambee.ContributionID, removedMemberID, 900, paidOn),
	}, nil).Once()

	view, err := suite.service.CampaignView(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(view.Members, 1)
	breakdown := view.Members[0].Contributions[0]
	suite.Empty(breakdown.PaidMembers)
	suite.Require().Len(breakdown.UnpaidMembers, 1)
	suite.Equal(grace.MemberID, breakdown.UnpaidMembers[0].MemberID)
}

func (suite *ReconciliationServiceTestSuite) TestCampaignView_ZeroAmountPaymentStaysUnpaid() {
	ctx := context.Background()
	grace := domain.Member{MemberID: uuid.NewString(), Name: "Grace Achieng"}
	harambee := contributionWithTarget("Harambee Fund", 1000)
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	suite.mockMemberRepo.On("ListActiveMembers", ctx).Return([]domain.Member{grace}, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return([]domain.Contribution{harambee}, nil).Once()
	suite.mockPaymentRepo.On("FindPayments", ctx).Return([]domain.Payment{
		// The ledger accepts zero-amount entries; they must not count as paying
		paymentOf(harambee.ContributionID, grace.MemberID, 0, paidOn),
	}, nil).Once()

	view, err := suite.service.CampaignView(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(view.Members, 1)
	breakdown := view.Members[0].Contributions[0]
	suite.Empty(breakdown.PaidMembers, "a zero total must not put a member in the paid list")
	suite.Require().Len(breakdown.UnpaidMembers, 1)
	suite.Equal(grace.MemberID, breakdown.UnpaidMembers[0].MemberID)
	suite.True(breakdown.PaidAmount.IsZero())
	suite.Equal(domain.StatusPending, breakdown.Status)
}

func (suite *ReconciliationServiceTestSuite) TestCampaignView_IsIdempotent() {
	ctx := context.Background()
	grace := domain.Member{MemberID: uuid.NewString(), Name: "Grace Achieng"}
	john := domain.Member{MemberID: uuid.NewString(), Name: "John Otieno"}
	harambee := contributionWithTarget("Harambee Fund", 1000)
	paidOn := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	members := []domain.Member{grace, john}
	contributions := []domain.Contribution{harambee}
	payments := []domain.Payment{paymentOf(harambee.ContributionID, grace.MemberID, 400, paidOn)}

	suite.mockMemberRepo.On("ListActiveMembers", ctx).Return(members, nil).Twice()
	suite.mockContributionRepo.On("FindContributions", ctx).Return(contributions, nil).Twice()
	suite.mockPaymentRepo.On("FindPayments", ctx).Return(payments, nil).Twice()

	first, err := suite.service.CampaignView(ctx)
	suite.Require().NoError(err)
	second, err := suite.service.CampaignView(ctx)
	suite.Require().NoError(err)

	suite.Equal(first, second, "same inputs must produce the same view")
}

func (suite *ReconciliationServiceTestSuite) TestCampaignView_EmptyCollections() {
	ctx := context.Background()

	suite.mockMemberRepo.On("ListActiveMembers", ctx).Return(nil, nil).Once()
	suite.mockContributionRepo.On("FindContributions", ctx).Return(nil, nil).Once()
	suite.mockPaymentRepo.On("FindPayments", ctx).Return(nil, nil).Once()

	view, err := suite.service.CampaignView(ctx)

	suite.Require().NoError(err)
	suite.NotNil(view)
	suite.Empty(view.Members)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
