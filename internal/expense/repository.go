package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hruskam/roomledger/internal/ledger"
)

// Repository handles expense and debt persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts a new expense and fills in its generated id and
// timestamp
func (r *Repository) CreateExpense(ctx context.Context, exp *ledger.Expense) error {
	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		exp.GroupID,
		exp.PayerID,
		exp.Description,
		exp.Amount,
	).Scan(&exp.ID, &exp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// CreateDebt inserts a debt emitted by a split strategy
func (r *Repository) CreateDebt(ctx context.Context, d *ledger.Debt) error {
	query := `
		INSERT INTO debts (expense_id, debtor_id, creditor_id, amount, settled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		d.ExpenseID,
		d.DebtorID,
		d.CreditorID,
		d.Amount,
		d.Settled,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}

	return nil
}

// GetExpenseByID retrieves an expense with its debts hydrated
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*ledger.Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	exp := &ledger.Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&exp.ID,
		&exp.GroupID,
		&exp.PayerID,
		&exp.Description,
		&exp.Amount,
		&exp.CreatedAt,
		&exp.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	exp.Debts, err = r.getDebtsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return exp, nil
}

// ListByGroupID retrieves all expenses of a group, newest first
func (r *Repository) ListByGroupID(ctx context.Context, groupID int64) ([]*ledger.Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.created_at, u.name
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*ledger.Expense
	for rows.Next() {
		exp := &ledger.Expense{}
		if err := rows.Scan(&exp.ID, &exp.GroupID, &exp.PayerID, &exp.Description,
			&exp.Amount, &exp.CreatedAt, &exp.PayerName); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, exp)
	}

	return expenses, rows.Err()
}

// GetDebtByID retrieves a debt with party names hydrated
func (r *Repository) GetDebtByID(ctx context.Context, id int64) (*ledger.Debt, error) {
	query := `
		SELECT d.id, d.expense_id, d.debtor_id, d.creditor_id, d.amount, d.settled, d.created_at,
		       deb.name, cred.name
		FROM debts d
		JOIN users deb ON d.debtor_id = deb.id
		JOIN users cred ON d.creditor_id = cred.id
		WHERE d.id = $1
	`

	d := &ledger.Debt{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.ExpenseID,
		&d.DebtorID,
		&d.CreditorID,
		&d.Amount,
		&d.Settled,
		&d.CreatedAt,
		&d.DebtorName,
		&d.CreditorName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}

	return d, nil
}

// ListDebtsByUserID retrieves all debts where the user is debtor or
// creditor, optionally only the unsettled ones
func (r *Repository) ListDebtsByUserID(ctx context.Context, userID int64, unsettledOnly bool) ([]*ledger.Debt, error) {
	query := `
		SELECT d.id, d.expense_id, d.debtor_id, d.creditor_id, d.amount, d.settled, d.created_at,
		       deb.name, cred.name
		FROM debts d
		JOIN users deb ON d.debtor_id = deb.id
		JOIN users cred ON d.creditor_id = cred.id
		WHERE (d.debtor_id = $1 OR d.creditor_id = $1)
		  AND ($2 = FALSE OR d.settled = FALSE)
		ORDER BY d.id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, unsettledOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*ledger.Debt
	for rows.Next() {
		d := &ledger.Debt{}
		if err := rows.Scan(&d.ID, &d.ExpenseID, &d.DebtorID, &d.CreditorID, &d.Amount,
			&d.Settled, &d.CreatedAt, &d.DebtorName, &d.CreditorName); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}

	return debts, rows.Err()
}

// UpdateDebtSettled persists the settled flag of a debt
func (r *Repository) UpdateDebtSettled(ctx context.Context, id int64, settled bool) error {
	query := `UPDATE debts SET settled = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, settled); err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	return nil
}

func (r *Repository) getDebtsByExpenseID(ctx context.Context, expenseID int64) ([]*ledger.Debt, error) {
	query := `
		SELECT d.id, d.expense_id, d.debtor_id, d.creditor_id, d.amount, d.settled, d.created_at,
		       deb.name, cred.name
		FROM debts d
		JOIN users deb ON d.debtor_id = deb.id
		JOIN users cred ON d.creditor_id = cred.id
		WHERE d.expense_id = $1
		ORDER BY d.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get debts: %w", err)
	}
	defer rows.Close()

	var debts []*ledger.Debt
	for rows.Next() {
		d := &ledger.Debt{}
		if err := rows.Scan(&d.ID, &d.ExpenseID, &d.DebtorID, &d.CreditorID, &d.Amount,
			&d.Settled, &d.CreatedAt, &d.DebtorName, &d.CreditorName); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}

	return debts, rows.Err()
}
