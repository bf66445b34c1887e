package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mshlentov/cinescope/internal/core/domain"
)

// AccountRepository manages rows of accounts_transaction_template.
type AccountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountRow struct {
	ID      int    `db:"id"`
	User    string `db:"user"`
	Balance int    `db:"balance"`
}

func (r accountRow) toDomain() *domain.Account {
	return &domain.Account{ID: r.ID, User: r.User, Balance: r.Balance}
}

// Create inserts an account and returns it with its generated id.
func (r *AccountRepository) Create(ctx context.Context, user string, balance int) (*domain.Account, error) {
	const q = `
		INSERT INTO accounts_transaction_template ("user", balance)
		VALUES ($1, $2)
		RETURNING id, "user", balance
	`

	var row accountRow
	if err := r.db.GetContext(ctx, &row, q, user, balance); err != nil {
		return nil, fmt.Errorf("failed to create account %s: %w", user, err)
	}
	return row.toDomain(), nil
}

func (r *AccountRepository) Get(ctx context.Context, user string) (*domain.Account, error) {
	const q = `SELECT id, "user", balance FROM accounts_transaction_template WHERE "user" = $1`

	var row accountRow
	if err := r.db.GetContext(ctx, &row, q, user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account %s: %w", user, err)
	}
	return row.toDomain(), nil
}

// Delete removes the named accounts; missing names are ignored.
func (r *AccountRepository) Delete(ctx context.Context, users ...string) error {
	if len(users) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM accounts_transaction_template WHERE "user" IN (?)`, users)
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(q), args...); err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	return nil
}

// Transfer moves amount from one account to another in a single transaction.
// Both rows are locked first; nothing is written when the sender cannot cover
// the amount.
func (r *AccountRepository) Transfer(ctx context.Context, from, to string, amount int) (sender, receiver *domain.Account, err error) {
	if amount <= 0 {
		return nil, nil, domain.ErrInvalidTransferSum
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const lock = `SELECT id, "user", balance FROM accounts_transaction_template WHERE "user" = $1 FOR UPDATE`

	var src, dst accountRow
	if err = tx.GetContext(ctx, &src, lock, from); err != nil {
		return nil, nil, lockError(from, err)
	}
	if err = tx.GetContext(ctx, &dst, lock, to); err != nil {
		return nil, nil, lockError(to, err)
	}
	if src.Balance < amount {
		err = domain.ErrInsufficientFunds
		return nil, nil, err
	}

	const update = `UPDATE accounts_transaction_template SET balance = $1 WHERE id = $2`

	src.Balance -= amount
	dst.Balance += amount
	if _, err = tx.ExecContext(ctx, update, src.Balance, src.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to debit %s: %w", from, err)
	}
	if _, err = tx.ExecContext(ctx, update, dst.Balance, dst.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to credit %s: %w", to, err)
	}
	if err = tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transfer: %w", err)
	}
	return src.toDomain(), dst.toDomain(), nil
}

func lockError(user string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", user, domain.ErrAccountNotFound)
	}
	return fmt.Errorf("failed to lock account %s: %w", user, err)
}
