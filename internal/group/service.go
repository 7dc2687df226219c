package group

import (
	"context"
	"errors"
	"strings"

	"github.com/hruskam/roomledger/internal/ledger"
	"github.com/hruskam/roomledger/internal/user"
)

// Common errors
var (
	ErrGroupNotFound  = errors.New("group not found")
	ErrMemberNotFound = errors.New("member not found")
	ErrEmptyName      = errors.New("group name cannot be empty")
	ErrMemberHasDebts = errors.New("cannot remove a member with unsettled debts")
)

// AuthzError carries the user-facing message from a failed admin gate.
// It is a result value rather than an internal failure; handlers render
// the message directly.
type AuthzError struct {
	Reason string
}

func (e *AuthzError) Error() string {
	return e.Reason
}

// Service handles group business logic. Membership integrity and admin
// gating live on the ledger.Group aggregate; the service hydrates it,
// runs the rule, and persists the outcome.
type Service struct {
	repo  *Repository
	users *user.Repository
}

// NewService creates a new group service
func NewService(repo *Repository, users *user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// Create creates a group with the creator as its first admin member
func (s *Service) Create(ctx context.Context, creatorID int64, req *CreateGroupRequest) (*ledger.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	creator, err := s.users.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, user.ErrUserNotFound
	}

	g, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	m, err := g.AddMember(creator, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddMember(ctx, m); err != nil {
		return nil, err
	}

	return g, nil
}

// GetDetail retrieves the fully hydrated group aggregate
func (s *Service) GetDetail(ctx context.Context, id int64) (*ledger.Group, error) {
	g, err := s.repo.GetAggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

// ListByUser retrieves all groups the user belongs to
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*ledger.Group, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// AddMember adds a user to the group. The aggregate enforces the one
// membership per (user, group) invariant.
func (s *Service) AddMember(ctx context.Context, groupID int64, req *AddMemberRequest) (*ledger.Membership, error) {
	g, err := s.repo.GetWithMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	u, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	m, err := g.AddMember(u, req.IsAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddMember(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// RemoveMember removes a user from the group. Members with unsettled
// debts in the group, on either side, cannot be removed. That check is a
// business policy enforced here, not a ledger invariant.
func (s *Service) RemoveMember(ctx context.Context, groupID, userID int64) error {
	g, err := s.repo.GetAggregate(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}
	if !g.IsMember(userID) {
		return ErrMemberNotFound
	}

	for _, d := range g.UnsettledDebts() {
		if d.DebtorID == userID || d.CreditorID == userID {
			return ErrMemberHasDebts
		}
	}

	g.RemoveMember(userID)
	return s.repo.RemoveMember(ctx, groupID, userID)
}

// Rename changes the group name. Admin-gated.
func (s *Service) Rename(ctx context.Context, groupID, actorID int64, req *UpdateGroupRequest) (*ledger.Group, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	g, err := s.repo.GetWithMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	if ok, reason := g.AuthorizeAdminAction(actorID, "rename the group"); !ok {
		return nil, &AuthzError{Reason: reason}
	}

	g.Rename(name)
	if err := s.repo.UpdateName(ctx, groupID, name); err != nil {
		return nil, err
	}

	return g, nil
}

// Delete tears the group down. Admin-gated; the repository deletes debts,
// expenses and memberships before the group row, in that order.
func (s *Service) Delete(ctx context.Context, groupID, actorID int64) error {
	g, err := s.repo.GetWithMembers(ctx, groupID)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}

	if ok, reason := g.AuthorizeAdminAction(actorID, "delete the group"); !ok {
		return &AuthzError{Reason: reason}
	}

	return s.repo.Delete(ctx, groupID)
}

// Balances computes every member's net position over unsettled debts
func (s *Service) Balances(ctx context.Context, groupID int64) ([]*MemberBalance, error) {
	g, err := s.repo.GetAggregate(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	balances := make([]*MemberBalance, len(g.Members))
	for i, m := range g.Members {
		balances[i] = &MemberBalance{
			UserID:   m.UserID,
			Username: m.Username,
			Balance:  g.BalanceOf(m.UserID),
		}
	}

	return balances, nil
}

// Statistics derives the group's debt statistics
func (s *Service) Statistics(ctx context.Context, groupID int64) (*ledger.DebtStatistics, error) {
	g, err := s.repo.GetAggregate(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}

	stats := g.Statistics()
	return &stats, nil
}
