package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/db"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/dberrors"
	"github.com/yigit/edutech/internal/pkg/logger"
)

// IUserRepository defines the interface for user-related database operations.
// Balance and entitlements are never written here; see IWalletRepository.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, profile models.Profile) error
}

// userColumns joins the optional subscription so a user loads in one round trip
var userColumns = []string{
	"u.id", "u.email", "u.role",
	"u.first_name", "u.last_name", "u.university", "u.field_of_study",
	"u.phone", "u.location", "u.bio", "u.website",
	"u.balance::text", "u.purchased_course_ids", "u.subscription_course_ids",
	"u.created_at", "u.updated_at",
	"s.plan", "s.start_date", "s.end_date", "s.price::text",
}

func selectUsers(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select(userColumns...).
		From("users u").
		LeftJoin("user_subscriptions s ON s.user_id = u.id")
}

// UserRepository handles user database operations
type UserRepository struct {
	db db.Querier
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q db.Querier) *UserRepository {
	return &UserRepository{
		db: q,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user with its starting balance and returns the id
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	purchased := user.PurchasedCourseIDs
	if purchased == nil {
		purchased = []int64{}
	}

	sql, args, err := r.sb.Insert("users").
		Columns(
			"email", "role", "first_name", "last_name", "university", "field_of_study",
			"phone", "location", "bio", "website", "balance", "purchased_course_ids",
		).
		Values(
			strings.ToLower(user.Email), user.Role,
			user.Profile.FirstName, user.Profile.LastName, user.Profile.University, user.Profile.FieldOfStudy,
			user.Profile.Phone, user.Profile.Location, user.Profile.Bio, user.Profile.Website,
			user.Balance.String(), purchased,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.id": id})
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, squirrel.Eq{"u.email": strings.ToLower(strings.TrimSpace(email))})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := selectUsers(r.sb).Where(where).Limit(1).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user SQL")
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return user, nil
}

// UpdateProfile overwrites the profile metadata of a user
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, profile models.Profile) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"first_name":     profile.FirstName,
			"last_name":      profile.LastName,
			"university":     profile.University,
			"field_of_study": profile.FieldOfStudy,
			"phone":          profile.Phone,
			"location":       profile.Location,
			"bio":            profile.Bio,
			"website":        profile.Website,
			"updated_at":     time.Now(),
		}).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update profile SQL")
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing update profile query")
		return fmt.Errorf("error updating profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// scanUser reads one row projected with userColumns
func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u         models.User
		balance   string
		plan      *string
		startDate *time.Time
		endDate   *time.Time
		subPrice  *string
	)

	err := row.Scan(
		&u.ID, &u.Email, &u.Role,
		&u.Profile.FirstName, &u.Profile.LastName, &u.Profile.University, &u.Profile.FieldOfStudy,
		&u.Profile.Phone, &u.Profile.Location, &u.Profile.Bio, &u.Profile.Website,
		&balance, &u.PurchasedCourseIDs, &u.SubscriptionCourseIDs,
		&u.CreatedAt, &u.UpdatedAt,
		&plan, &startDate, &endDate, &subPrice,
	)
	if err != nil {
		return nil, err
	}

	if u.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("invalid balance %q: %w", balance, err)
	}

	if plan != nil && startDate != nil && endDate != nil && subPrice != nil {
		price, err := decimal.NewFromString(*subPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid subscription price %q: %w", *subPrice, err)
		}
		u.Subscription = &models.Subscription{
			Plan:      models.PlanType(*plan),
			StartDate: *startDate,
			EndDate:   *endDate,
			Price:     price,
		}
	}

	return &u, nil
}
