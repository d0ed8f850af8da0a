package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/repositories"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/validation"
)

// UserService defines the interface for account operations
type UserService interface {
	Register(ctx context.Context, email string, role models.RoleType, profile models.Profile) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, profile models.Profile) (*models.User, error)
}

type userServiceImpl struct {
	userRepo        repositories.IUserRepository
	startingBalance decimal.Decimal
	logger          zerolog.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.IUserRepository, startingBalance decimal.Decimal, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo:        userRepo,
		startingBalance: startingBalance,
		logger:          logger,
	}
}

// Register creates an account credited with the starting balance
func (s *userServiceImpl) Register(ctx context.Context, email string, role models.RoleType, profile models.Profile) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validation.IsEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}
	if role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}

	profile = trimProfile(profile)
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:              email,
		Role:               role,
		Profile:            profile,
		Balance:            s.startingBalance,
		PurchasedCourseIDs: []int64{},
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", id).Str("role", string(role)).Msg("User registered")
	return s.userRepo.GetByID(ctx, id)
}

// GetUser retrieves a user by ID
func (s *userServiceImpl) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile replaces the profile metadata. Money and entitlements are untouched.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, id int64, profile models.Profile) (*models.User, error) {
	profile = trimProfile(profile)
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateProfile(ctx, id, profile); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, id)
}

func trimProfile(p models.Profile) models.Profile {
	return models.Profile{
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		University:   strings.TrimSpace(p.University),
		FieldOfStudy: strings.TrimSpace(p.FieldOfStudy),
		Phone:        strings.TrimSpace(p.Phone),
		Location:     strings.TrimSpace(p.Location),
		Bio:          strings.TrimSpace(p.Bio),
		Website:      strings.TrimSpace(p.Website),
	}
}

func validateProfile(p models.Profile) error {
	for field, v := range map[string]string{"firstName": p.FirstName, "lastName": p.LastName} {
		if !validation.NewStringValidation(v).WithRequired(false).WithMaxLength(validation.NameMaxLength).Validate() {
			return fmt.Errorf("%w: %s is too long", apperrors.ErrValidationFailed, field)
		}
	}
	if !validation.NewStringValidation(p.Phone).WithRequired(false).WithPattern(validation.CompiledPatterns.Phone).Validate() {
		return fmt.Errorf("%w: invalid phone number", apperrors.ErrValidationFailed)
	}
	if !validation.NewStringValidation(p.Bio).WithRequired(false).WithMaxLength(validation.BioMaxLength).Validate() {
		return fmt.Errorf("%w: bio is too long", apperrors.ErrValidationFailed)
	}
	return nil
}
