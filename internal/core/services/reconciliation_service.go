package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/choralbase/choir_backend/internal/apperrors"
	"github.com/choralbase/choir_backend/internal/core/domain"
	portsrepo "github.com/choralbase/choir_backend/internal/core/ports/repositories"
	portssvc "github.com/choralbase/choir_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reconciliationService derives paid/owed views by joining the member
// directory, the contribution catalog and the payment ledger in memory.
// It never writes: every call reads fresh snapshots and recomputes.
type reconciliationService struct {
	BaseService
	memberRepo       portsrepo.MemberReader
	contributionRepo portsrepo.ContributionReader
	paymentRepo      portsrepo.PaymentReader
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(memberRepo portsrepo.MemberReader, contributionRepo portsrepo.ContributionReader, paymentRepo portsrepo.PaymentReader) portssvc.ReconciliationService {
	return &reconciliationService{
		memberRepo:       memberRepo,
		contributionRepo: contributionRepo,
		paymentRepo:      paymentRepo,
	}
}

// Ensure reconciliationService implements the ReconciliationService interface
var _ portssvc.ReconciliationService = (*reconciliationService)(nil)

// paymentTotal accumulates one member's ledger entries against one contribution.
type paymentTotal struct {
	amount     decimal.Decimal
	lastPaidOn *time.Time
}

// add folds another ledger entry into the running total.
func (t *paymentTotal) add(p domain.Payment) {
	t.amount = t.amount.Add(p.Amount)
	if t.lastPaidOn == nil || p.PaidOn.After(*t.lastPaidOn) {
		paidOn := p.PaidOn
		t.lastPaidOn = &paidOn
	}
}

// balanceFor computes a single (member, contribution) balance row from the
// raw paid total. The paid amount counted against the target is capped at the
// target, so overpayment never produces a negative remaining. A member is
// "paid" once the raw total reaches the target, which makes a zero-target
// contribution paid for everyone.
func balanceFor(c domain.Contribution, total paymentTotal) domain.ContributionBalance {
	effective := decimal.Min(total.amount, c.TargetAmount)
	remaining := c.TargetAmount.Sub(effective)

	status := domain.StatusPending
	if total.amount.GreaterThanOrEqual(c.TargetAmount) {
		status = domain.StatusPaid
	}

	return domain.ContributionBalance{
		ContributionID: c.ContributionID,
		Title:          c.Title,
		Description:    c.Description,
		TargetAmount:   c.TargetAmount,
		PaidAmount:     total.amount,
		Remaining:      remaining,
		LastPaidOn:     total.lastPaidOn,
		Status:         status,
	}
}

func (s *reconciliationService) MemberView(ctx context.Context, memberID string) (*domain.MemberReconciliation, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find member for reconciliation", slog.String("member_id", memberID))
		}
		return nil, err
	}

	contributions, err := s.contributionRepo.FindContributions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load contribution catalog for reconciliation")
		return nil, fmt.Errorf("failed to load contributions: %w", err)
	}

	payments, err := s.paymentRepo.FindPaymentsByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for reconciliation", slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	// Fold the ledger by contribution. Entries referencing a contribution
	// missing from the catalog fall out of the join here.
	totals := make(map[string]paymentTotal, len(contributions))
	for _, p := range payments {
		t := totals[p.ContributionID]
		t.add(p)
		totals[p.ContributionID] = t
	}

	balances := make([]domain.ContributionBalance, 0, len(contributions))
	totalOwed := decimal.Zero
	for _, c := range contributions {
		balance := balanceFor(c, totals[c.ContributionID])
		totalOwed = totalOwed.Add(balance.Remaining)
		balances = append(balances, balance)
	}

	s.LogDebug(ctx, "Member reconciliation computed",
		slog.String("member_id", memberID),
		slog.Int("contributions", len(balances)))

	return &domain.MemberReconciliation{
		Member:        *member,
		Contributions: balances,
		TotalOwed:     totalOwed,
	}, nil
}

func (s *reconciliationService) CampaignView(ctx context.Context) (*domain.CampaignReconciliation, error) {
	members, err := s.memberRepo.ListActiveMembers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load members for campaign reconciliation")
		return nil, fmt.Errorf("failed to load members: %w", err)
	}

	contributions, err := s.contributionRepo.FindContributions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load contribution catalog for campaign reconciliation")
		return nil, fmt.Errorf("failed to load contributions: %w", err)
	}

	payments, err := s.paymentRepo.FindPayments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payment ledger for campaign reconciliation")
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	// Active member index. Ledger entries for unknown or deleted members are
	// dropped by this join, same as entries for unknown contributions below.
	memberByID := make(map[string]domain.Member, len(members))
	for _, m := range members {
		memberByID[m.MemberID] = m
	}
	contributionByID := make(map[string]domain.Contribution, len(contributions))
	for _, c := range contributions {
		contributionByID[c.ContributionID] = c
	}

	// totals[contributionID][memberID] folds every qualifying ledger entry.
	totals := make(map[string]map[string]paymentTotal, len(contributions))
	orphaned := 0
	for _, p := range payments {
		if _, ok := contributionByID[p.ContributionID]; !ok {
			orphaned++
			continue
		}
		if _, ok := memberByID[p.MemberID]; !ok {
			orphaned++
			continue
		}
		byMember := totals[p.ContributionID]
		if byMember == nil {
			byMember = make(map[string]paymentTotal)
			totals[p.ContributionID] = byMember
		}
		t := byMember[p.MemberID]
		t.add(p)
		byMember[p.MemberID] = t
	}
	if orphaned > 0 {
		s.LogDebug(ctx, "Dropped ledger entries with no matching member or contribution",
			slog.Int("dropped", orphaned))
	}

	// The paid/unpaid partition is contribution-wide, so compute it once per
	// contribution and share it across every member row.
	paidMembers := make(map[string][]domain.PayerEntry, len(contributions))
	unpaidMembers := make(map[string][]domain.NonPayerEntry, len(contributions))
	for _, c := range contributions {
		byMember := totals[c.ContributionID]
		for _, m := range members {
			// Membership in the paid list requires actual money: a ledger
			// entry of 0 still counts as unpaid.
			if t, ok := byMember[m.MemberID]; ok && t.amount.GreaterThan(decimal.Zero) {
				paidMembers[c.ContributionID] = append(paidMembers[c.ContributionID], domain.PayerEntry{
					MemberID: m.MemberID,
					Name:     m.Name,
					Amount:   t.amount,
				})
			} else {
				unpaidMembers[c.ContributionID] = append(unpaidMembers[c.ContributionID], domain.NonPayerEntry{
					MemberID: m.MemberID,
					Name:     m.Name,
				})
			}
		}
	}

	rows := make([]domain.MemberCampaignRow, 0, len(members))
	for _, m := range members {
		breakdowns := make([]domain.CampaignBreakdown, 0, len(contributions))
		totalOwed := decimal.Zero
		for _, c := range contributions {
			balance := balanceFor(c, totals[c.ContributionID][m.MemberID])
			totalOwed = totalOwed.Add(balance.Remaining)
			breakdowns = append(breakdowns, domain.CampaignBreakdown{
				ContributionBalance: balance,
				PaidMembers:         paidMembers[c.ContributionID],
				UnpaidMembers:       unpaidMembers[c.ContributionID],
			})
		}
		rows = append(rows, domain.MemberCampaignRow{
			Member:        m,
			Contributions: breakdowns,
			TotalOwed:     totalOwed,
		})
	}

	s.LogDebug(ctx, "Campaign reconciliation computed",
		slog.Int("members", len(rows)),
		slog.Int("contributions", len(contributions)))

	return &domain.CampaignReconciliation{Members: rows}, nil
}
