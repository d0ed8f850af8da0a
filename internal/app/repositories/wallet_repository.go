package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/db"
	"github.com/yigit/edutech/internal/domain/ledger"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/dberrors"
	"github.com/yigit/edutech/internal/pkg/helpers"
	"github.com/yigit/edutech/internal/pkg/logger"
)

// WalletMutation computes the next state of a user from the locked current one.
// Returning an error aborts the database transaction without writing anything.
type WalletMutation func(current models.User) (models.User, *models.Transaction, error)

// IWalletRepository persists ledger outcomes
type IWalletRepository interface {
	Mutate(ctx context.Context, userID int64, fn WalletMutation) (*models.User, *models.Transaction, error)
	ListTransactions(ctx context.Context, userID int64, txType models.TransactionType, page, size int) ([]models.Transaction, int64, error)
	Ledger(ctx context.Context, userID int64) (ledger.Ledger, error)
}

// TxRunner runs a function inside a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// WalletRepository writes balances, entitlements, subscriptions and the ledger
type WalletRepository struct {
	db     db.Querier
	runner TxRunner
	sb     squirrel.StatementBuilderType
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(q db.Querier, runner TxRunner) *WalletRepository {
	return &WalletRepository{
		db:     q,
		runner: runner,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Mutate locks the user row, hands the current state to fn and stores the
// result together with the optional transaction in the same database
// transaction. Concurrent mutations of one user are serialised by the lock.
func (r *WalletRepository) Mutate(ctx context.Context, userID int64, fn WalletMutation) (*models.User, *models.Transaction, error) {
	var (
		next *models.User
		txn  *models.Transaction
	)

	err := r.runner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		current, err := r.lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		updated, record, err := fn(*current)
		if err != nil {
			return err
		}

		if err := r.saveUser(ctx, tx, &updated); err != nil {
			return err
		}
		if err := r.saveSubscription(ctx, tx, updated.ID, updated.Subscription); err != nil {
			return err
		}
		if record != nil {
			if err := r.insertTransaction(ctx, tx, record); err != nil {
				return err
			}
		}

		next, txn = &updated, record
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return next, txn, nil
}

func (r *WalletRepository) lockUser(ctx context.Context, tx pgx.Tx, userID int64) (*models.User, error) {
	sql, args, err := selectUsers(r.sb).
		Where(squirrel.Eq{"u.id": userID}).
		Suffix("FOR UPDATE OF u").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build lock user query: %w", err)
	}

	user, err := scanUser(tx.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error locking user row")
		return nil, fmt.Errorf("error locking user: %w", err)
	}
	return user, nil
}

func (r *WalletRepository) saveUser(ctx context.Context, tx pgx.Tx, user *models.User) error {
	purchased := user.PurchasedCourseIDs
	if purchased == nil {
		purchased = []int64{}
	}
	claimed := user.SubscriptionCourseIDs
	if claimed == nil {
		claimed = []int64{}
	}

	user.UpdatedAt = time.Now().UTC()
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"balance":                 user.Balance.String(),
			"purchased_course_ids":    purchased,
			"subscription_course_ids": claimed,
			"updated_at":              user.UpdatedAt,
		}).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build save wallet query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		// The CHECK constraint is the last line of defence behind the ledger engine
		if dberrors.IsCheckViolation(err, "users_balance_non_negative") {
			return apperrors.ErrInsufficientBalance
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error saving wallet")
		return fmt.Errorf("error saving wallet: %w", err)
	}
	return nil
}

func (r *WalletRepository) saveSubscription(ctx context.Context, tx pgx.Tx, userID int64, sub *models.Subscription) error {
	var (
		sql  string
		args []interface{}
		err  error
	)

	if sub == nil {
		sql, args, err = r.sb.Delete("user_subscriptions").
			Where(squirrel.Eq{"user_id": userID}).
			ToSql()
	} else {
		sql, args, err = r.sb.Insert("user_subscriptions").
			Columns("user_id", "plan", "start_date", "end_date", "price").
			Values(userID, sub.Plan, sub.StartDate, sub.EndDate, sub.Price.String()).
			Suffix(`ON CONFLICT (user_id) DO UPDATE SET
				plan = EXCLUDED.plan,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				price = EXCLUDED.price`).
			ToSql()
	}
	if err != nil {
		return fmt.Errorf("failed to build save subscription query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error saving subscription")
		return fmt.Errorf("error saving subscription: %w", err)
	}
	return nil
}

func (r *WalletRepository) insertTransaction(ctx context.Context, tx pgx.Tx, t *models.Transaction) error {
	sql, args, err := r.sb.Insert("transactions").
		Columns("id", "user_id", "type", "amount", "description", "course_id", "created_at").
		Values(t.ID, t.UserID, t.Type, t.Amount.String(), t.Description, t.CourseID, t.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert transaction query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("transactionID", t.ID).Msg("Error inserting transaction")
		return fmt.Errorf("error inserting transaction: %w", err)
	}
	return nil
}

// ListTransactions returns one page of a user's ledger, newest first, and the
// total number of matching entries. An empty txType lists every entry.
func (r *WalletRepository) ListTransactions(ctx context.Context, userID int64, txType models.TransactionType, page, size int) ([]models.Transaction, int64, error) {
	where := squirrel.Eq{"user_id": userID}
	if txType != "" {
		where["type"] = txType
	}

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("transactions").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count transactions query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error counting transactions")
		return nil, 0, fmt.Errorf("error counting transactions: %w", err)
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	sql, args, err := selectTransactions(r.sb).
		Where(where).
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list transactions query: %w", err)
	}

	txs, err := r.queryTransactions(ctx, userID, sql, args)
	if err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}

// Ledger loads a user's whole transaction log, newest first
func (r *WalletRepository) Ledger(ctx context.Context, userID int64) (ledger.Ledger, error) {
	sql, args, err := selectTransactions(r.sb).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build ledger query: %w", err)
	}

	txs, err := r.queryTransactions(ctx, userID, sql, args)
	if err != nil {
		return nil, err
	}
	return ledger.Ledger(txs), nil
}

func selectTransactions(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select("id", "user_id", "type", "amount::text", "description", "course_id", "created_at").
		From("transactions").
		OrderBy("created_at DESC", "id DESC")
}

func (r *WalletRepository) queryTransactions(ctx context.Context, userID int64, sql string, args []interface{}) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error querying transactions")
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]models.Transaction, 0)
	for rows.Next() {
		var (
			t      models.Transaction
			amount string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &amount, &t.Description, &t.CourseID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid transaction amount %q: %w", amount, err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txs, nil
}
