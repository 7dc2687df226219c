package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hruskam/roomledger/internal/ledger"
)

// Repository handles group persistence and hydration of the ledger
// aggregate (group + memberships + expenses + debts).
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group
func (r *Repository) Create(ctx context.Context, name string) (*ledger.Group, error) {
	query := `
		INSERT INTO groups (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	g := &ledger.Group{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return g, nil
}

// GetByID retrieves a group row without its members or expenses
func (r *Repository) GetByID(ctx context.Context, id int64) (*ledger.Group, error) {
	query := `SELECT id, name, created_at FROM groups WHERE id = $1`

	g := &ledger.Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.Name, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return g, nil
}

// GetWithMembers retrieves a group with its membership list hydrated
func (r *Repository) GetWithMembers(ctx context.Context, id int64) (*ledger.Group, error) {
	g, err := r.GetByID(ctx, id)
	if err != nil || g == nil {
		return g, err
	}

	g.Members, err = r.getMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// GetAggregate retrieves a fully hydrated group: memberships, expenses and
// every debt those expenses generated. This is the object graph the ledger
// derives balances and statistics from.
func (r *Repository) GetAggregate(ctx context.Context, id int64) (*ledger.Group, error) {
	g, err := r.GetWithMembers(ctx, id)
	if err != nil || g == nil {
		return g, err
	}

	g.Expenses, err = r.getExpenses(ctx, id)
	if err != nil {
		return nil, err
	}

	debtsByExpense, err := r.getDebtsByExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, e := range g.Expenses {
		e.Debts = debtsByExpense[e.ID]
	}

	return g, nil
}

// ListByUserID retrieves all groups the user is a member of
func (r *Repository) ListByUserID(ctx context.Context, userID int64) ([]*ledger.Group, error) {
	query := `
		SELECT g.id, g.name, g.created_at
		FROM groups g
		JOIN memberships m ON m.group_id = g.id
		WHERE m.user_id = $1
		ORDER BY g.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*ledger.Group
	for rows.Next() {
		g := &ledger.Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// AddMember persists a membership produced by the aggregate
func (r *Repository) AddMember(ctx context.Context, m *ledger.Membership) error {
	query := `
		INSERT INTO memberships (user_id, group_id, is_admin, joined_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.ExecContext(ctx, query, m.UserID, m.GroupID, m.IsAdmin, m.JoinedAt); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership; no-op if it does not exist
func (r *Repository) RemoveMember(ctx context.Context, groupID, userID int64) error {
	query := `DELETE FROM memberships WHERE group_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, groupID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// UpdateName renames a group
func (r *Repository) UpdateName(ctx context.Context, id int64, name string) error {
	query := `UPDATE groups SET name = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, name); err != nil {
		return fmt.Errorf("failed to rename group: %w", err)
	}
	return nil
}

// Delete removes a group and everything it owns in one transaction, in
// dependency order: debts first, then expenses, then memberships, then the
// group row. Debts never disappear as a side effect of anything else.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin teardown: %w", err)
	}
	defer tx.Rollback()

	steps := []string{
		`UPDATE notifications SET debt_id = NULL
		   WHERE debt_id IN (
		     SELECT d.id FROM debts d
		     JOIN expenses e ON d.expense_id = e.id
		     WHERE e.group_id = $1
		   )`,
		`DELETE FROM debts WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = $1)`,
		`DELETE FROM expenses WHERE group_id = $1`,
		`DELETE FROM memberships WHERE group_id = $1`,
		`DELETE FROM groups WHERE id = $1`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("failed to tear down group: %w", err)
		}
	}

	return tx.Commit()
}

func (r *Repository) getMembers(ctx context.Context, groupID int64) ([]*ledger.Membership, error) {
	query := `
		SELECT m.user_id, m.group_id, m.is_admin, m.joined_at, u.name
		FROM memberships m
		JOIN users u ON m.user_id = u.id
		WHERE m.group_id = $1
		ORDER BY m.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*ledger.Membership
	for rows.Next() {
		m := &ledger.Membership{}
		if err := rows.Scan(&m.UserID, &m.GroupID, &m.IsAdmin, &m.JoinedAt, &m.Username); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

func (r *Repository) getExpenses(ctx context.Context, groupID int64) ([]*ledger.Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*ledger.Expense
	for rows.Next() {
		e := &ledger.Expense{}
		if err := rows.Scan(&e.ID, &e.GroupID, &e.PayerID, &e.Description, &e.Amount, &e.CreatedAt, &e.PayerName); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (r *Repository) getDebtsByExpense(ctx context.Context, groupID int64) (map[int64][]*ledger.Debt, error) {
	query := `
		SELECT d.id, d.expense_id, d.debtor_id, d.creditor_id, d.amount, d.settled, d.created_at,
		       deb.name, cred.name
		FROM debts d
		JOIN expenses e ON d.expense_id = e.id
		JOIN users deb ON d.debtor_id = deb.id
		JOIN users cred ON d.creditor_id = cred.id
		WHERE e.group_id = $1
		ORDER BY d.id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debts: %w", err)
	}
	defer rows.Close()

	debts := map[int64][]*ledger.Debt{}
	for rows.Next() {
		d := &ledger.Debt{}
		if err := rows.Scan(&d.ID, &d.ExpenseID, &d.DebtorID, &d.CreditorID, &d.Amount,
			&d.Settled, &d.CreatedAt, &d.DebtorName, &d.CreditorName); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts[d.ExpenseID] = append(debts[d.ExpenseID], d)
	}

	return debts, rows.Err()
}
