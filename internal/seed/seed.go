package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/repositories"
	"github.com/yigit/edutech/internal/pkg/apperrors"
)

// DefaultUser is an account created at startup when missing
type DefaultUser struct {
	Email   string
	Role    models.RoleType
	Profile models.Profile
	Balance decimal.Decimal
}

// DefaultUsers returns the demo accounts
func DefaultUsers() []DefaultUser {
	return []DefaultUser{
		{
			Email:   "student@example.com",
			Role:    models.RoleStudent,
			Profile: models.Profile{FirstName: "John", LastName: "Smith", University: "Stanford University", FieldOfStudy: "Computer Science"},
			Balance: decimal.NewFromInt(18750),
		},
		{
			Email:   "teacher@example.com",
			Role:    models.RoleTeacher,
			Profile: models.Profile{FirstName: "Alex", LastName: "Johnson", University: "Stanford University", FieldOfStudy: "Computer Science"},
			Balance: decimal.NewFromInt(37500),
		},
	}
}

// CreateDefaultData upserts the built-in catalog and creates the demo users
// that do not exist yet. Running it twice changes nothing.
func CreateDefaultData(
	ctx context.Context,
	courseRepo repositories.ICourseRepository,
	userRepo repositories.IUserRepository,
	lgr zerolog.Logger,
) error {
	lgr.Info().Msg("Checking/Creating default data (Courses/Users)...")
	var finalErr error

	for _, course := range DefaultCourses() {
		course := course
		if _, err := courseRepo.Upsert(ctx, &course); err != nil {
			lgr.Error().Err(err).Str("title", course.Title).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	for _, du := range DefaultUsers() {
		_, err := userRepo.GetByEmail(ctx, du.Email)
		if err == nil {
			lgr.Debug().Str("email", du.Email).Msg("Default user already exists")
			continue
		}
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Str("email", du.Email).Msg("Error looking up default user")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		id, err := userRepo.Create(ctx, &models.User{
			Email:              du.Email,
			Role:               du.Role,
			Profile:            du.Profile,
			Balance:            du.Balance,
			PurchasedCourseIDs: []int64{},
		})
		if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("email", du.Email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Int64("userID", id).Str("email", du.Email).Msg("Default user created")
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation complete.")
	}
	return finalErr
}
