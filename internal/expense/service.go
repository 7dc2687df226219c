package expense

import (
	"context"
	"errors"
	"io"

	"github.com/hruskam/roomledger/internal/account"
	"github.com/hruskam/roomledger/internal/group"
	"github.com/hruskam/roomledger/internal/ledger"
	"github.com/hruskam/roomledger/internal/ledger/split"
	"github.com/hruskam/roomledger/internal/notification"
	"github.com/hruskam/roomledger/internal/notify"
)

// Common errors
var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrDebtNotFound         = errors.New("debt not found")
	ErrAlreadySettled       = errors.New("debt is already settled")
	ErrNotParticipant       = errors.New("only the debtor or the creditor can settle a debt")
	ErrPayerNotMember       = errors.New("payer is not a member of this group")
	ErrParticipantNotMember = errors.New("participant is not a member of this group")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
)

// Service handles expense business logic: splitting new expenses into
// debts through the account manager and driving the debt settlement flow.
type Service struct {
	repo          *Repository
	groups        *group.Repository
	accounts      *account.Manager
	splits        *split.Factory
	dispatch      *notify.Service
	notifications *notification.Service
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, groups *group.Repository, accounts *account.Manager,
	splits *split.Factory, dispatch *notify.Service, notifications *notification.Service) *Service {
	return &Service{
		repo:          repo,
		groups:        groups,
		accounts:      accounts,
		splits:        splits,
		dispatch:      dispatch,
		notifications: notifications,
	}
}

// CreateExpense records an expense and persists the debts the selected
// split strategy emits. Participants default to the full membership list;
// an explicit subset narrows the split. Each debtor gets an inbox entry.
func (s *Service) CreateExpense(ctx context.Context, payerID int64, req *CreateExpenseRequest) (*ledger.Expense, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	g, err := s.groups.GetWithMembers(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}
	if !g.IsMember(payerID) {
		return nil, ErrPayerNotMember
	}

	exp := ledger.NewExpense(req.Description, req.Amount, payerID, g.ID)
	exp.PayerName = g.MembershipOf(payerID).Username

	participants, err := resolveParticipants(g, req.ParticipantIDs)
	if err != nil {
		return nil, err
	}

	mgr := s.accounts
	if req.SplitType != "" {
		strategy, err := s.splits.CreateFromString(req.SplitType, req.Weights)
		if err != nil {
			return nil, err
		}
		mgr = account.NewManager(strategy)
	}

	debts, err := mgr.ComputeDebtsFor(exp, participants)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateExpense(ctx, exp); err != nil {
		return nil, err
	}

	for _, d := range debts {
		d.ExpenseID = exp.ID
		if err := s.repo.CreateDebt(ctx, d); err != nil {
			// TODO: wrap expense + debt inserts in one transaction
			return nil, err
		}
		s.notifications.NotifyExpenseAdded(ctx, d.DebtorID, exp.PayerName, d.Amount, d.ID)
	}
	exp.Debts = debts

	return exp, nil
}

// GetByID retrieves an expense with its debts
func (s *Service) GetByID(ctx context.Context, id int64) (*ledger.Expense, error) {
	exp, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		return nil, ErrExpenseNotFound
	}
	return exp, nil
}

// ListByGroup retrieves the expenses of a group
func (s *Service) ListByGroup(ctx context.Context, groupID int64) ([]*ledger.Expense, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, group.ErrGroupNotFound
	}
	return s.repo.ListByGroupID(ctx, groupID)
}

// ListDebtsByUser retrieves the debts the user is a party to
func (s *Service) ListDebtsByUser(ctx context.Context, userID int64, unsettledOnly bool) ([]*ledger.Debt, error) {
	return s.repo.ListDebtsByUserID(ctx, userID, unsettledOnly)
}

// SettleDebt marks a debt as settled. The transition happens on the
// ledger entity with every active notifier attached, so the fan-out fires
// exactly once, then the flag is persisted and the creditor gets an inbox
// entry. Either party may settle; settled debts stay settled.
func (s *Service) SettleDebt(ctx context.Context, debtID, actorID int64) (*ledger.Debt, error) {
	d, err := s.repo.GetDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDebtNotFound
	}
	if d.Settled {
		return nil, ErrAlreadySettled
	}
	if actorID != d.DebtorID && actorID != d.CreditorID {
		return nil, ErrNotParticipant
	}

	s.dispatch.AttachActiveNotifiers(d)
	d.MarkSettled()

	if err := s.repo.UpdateDebtSettled(ctx, d.ID, true); err != nil {
		return nil, err
	}

	s.notifications.NotifyDebtSettled(ctx, d.CreditorID, d.DebtorName, d.Amount, d.ID)

	return d, nil
}

// ExportCSV writes the group's expenses as CSV
func (s *Service) ExportCSV(ctx context.Context, groupID int64, w io.Writer) error {
	g, err := s.groups.GetAggregate(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return group.ErrGroupNotFound
	}
	return s.accounts.ExportCSV(g, w)
}

// resolveParticipants maps requested user ids onto the group's membership
// list, or returns the full list when none were requested.
func resolveParticipants(g *ledger.Group, ids []int64) ([]*ledger.Membership, error) {
	if len(ids) == 0 {
		return g.Members, nil
	}

	participants := make([]*ledger.Membership, 0, len(ids))
	for _, id := range ids {
		m := g.MembershipOf(id)
		if m == nil {
			return nil, ErrParticipantNotMember
		}
		participants = append(participants, m)
	}
	return participants, nil
}
