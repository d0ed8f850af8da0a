package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/repositories"
	"github.com/yigit/edutech/internal/domain/ledger"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/currency"
	"github.com/yigit/edutech/internal/pkg/websocket"
)

// recentTransactionsLimit is how many ledger entries the wallet summary embeds
const recentTransactionsLimit = 5

// EventPublisher receives wallet changes after they are committed
type EventPublisher interface {
	Publish(event websocket.Event)
}

// WalletService defines the interface for money and entitlement operations
type WalletService interface {
	GetWallet(ctx context.Context, userID int64) (*models.WalletState, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*models.User, *models.Transaction, error)
	History(ctx context.Context, userID int64, txType models.TransactionType, page, size int) ([]models.Transaction, int64, error)

	PurchaseCourse(ctx context.Context, userID, courseID int64) (*models.User, *models.Transaction, error)
	CourseAccess(ctx context.Context, userID, courseID int64) (models.AccessState, models.AccessSource, error)
	Entitlements(ctx context.Context, userID int64) ([]models.Course, error)

	Plans() []models.Plan
	Subscribe(ctx context.Context, userID int64, plan models.PlanType) (*models.User, *models.Transaction, error)
	CancelSubscription(ctx context.Context, userID int64) (*models.User, error)
	GetSubscription(ctx context.Context, userID int64) (*models.Subscription, bool, error)
	SubscriptionActive(user models.User) bool
}

// WalletServiceConfig carries the tunables of the wallet service
type WalletServiceConfig struct {
	// ProcessingDelay is waited before every money-moving call
	ProcessingDelay time.Duration
	Plans           []models.Plan
}

type walletServiceImpl struct {
	walletRepo repositories.IWalletRepository
	userRepo   repositories.IUserRepository
	courseRepo repositories.ICourseRepository
	engine     *ledger.Engine
	publisher  EventPublisher
	delay      time.Duration
	plans      []models.Plan
	logger     zerolog.Logger
}

// NewWalletService creates a new wallet service
func NewWalletService(
	walletRepo repositories.IWalletRepository,
	userRepo repositories.IUserRepository,
	courseRepo repositories.ICourseRepository,
	engine *ledger.Engine,
	publisher EventPublisher,
	cfg WalletServiceConfig,
	logger zerolog.Logger,
) WalletService {
	return &walletServiceImpl{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		courseRepo: courseRepo,
		engine:     engine,
		publisher:  publisher,
		delay:      cfg.ProcessingDelay,
		plans:      cfg.Plans,
		logger:     logger,
	}
}

// process waits the simulated payment processing time unless ctx ends first
func (s *walletServiceImpl) process(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *walletServiceImpl) publish(event websocket.Event) {
	if s.publisher != nil {
		s.publisher.Publish(event)
	}
}

// GetWallet returns the balance, entitlements, subscription, latest ledger
// entries and lifetime totals
func (s *walletServiceImpl) GetWallet(ctx context.Context, userID int64) (*models.WalletState, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	log, err := s.walletRepo.Ledger(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := log
	if len(recent) > recentTransactionsLimit {
		recent = recent[:recentTransactionsLimit]
	}

	return &models.WalletState{
		UserID:             user.ID,
		Balance:            user.Balance,
		PurchasedCourseIDs: s.engine.Entitlements(*user),
		Subscription:       user.Subscription,
		SubscriptionActive: s.engine.HasActiveSubscription(*user),
		RecentTransactions: recent,
		TotalDeposited:     log.Filter(models.TransactionDeposit).Net(),
		TotalSpent:         log.Filter(models.TransactionPayment).Net().Neg(),
	}, nil
}

// SubscriptionActive reports whether the user's subscription is active on the engine clock
func (s *walletServiceImpl) SubscriptionActive(user models.User) bool {
	return s.engine.HasActiveSubscription(user)
}

// Deposit adds funds to the wallet
func (s *walletServiceImpl) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*models.User, *models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: deposit must be positive", apperrors.ErrInvalidAmount)
	}
	if !currency.IsExact(amount) {
		return nil, nil, fmt.Errorf("%w: deposit %s has more than %d decimal places", apperrors.ErrInvalidAmount, amount, currency.Places)
	}
	if err := s.process(ctx); err != nil {
		return nil, nil, err
	}

	user, tx, err := s.walletRepo.Mutate(ctx, userID, func(current models.User) (models.User, *models.Transaction, error) {
		next, tx, err := s.engine.Deposit(current, amount)
		if err != nil {
			return current, nil, err
		}
		return next, &tx, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("amount", amount.String()).Str("balance", user.Balance.String()).Msg("Deposit recorded")
	s.publish(websocket.Event{Type: websocket.EventDeposit, UserID: userID, Balance: user.Balance, Transaction: tx})
	return user, tx, nil
}

// History lists the ledger newest first
func (s *walletServiceImpl) History(ctx context.Context, userID int64, txType models.TransactionType, page, size int) ([]models.Transaction, int64, error) {
	if txType != "" && !txType.Valid() {
		return nil, 0, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidationFailed, txType)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.walletRepo.ListTransactions(ctx, userID, txType, page, size)
}

// PurchaseCourse buys a course, or claims it when a subscription is active.
// Buying an owned course succeeds without charging again.
func (s *walletServiceImpl) PurchaseCourse(ctx context.Context, userID, courseID int64) (*models.User, *models.Transaction, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.process(ctx); err != nil {
		return nil, nil, err
	}

	user, tx, err := s.walletRepo.Mutate(ctx, userID, func(current models.User) (models.User, *models.Transaction, error) {
		next, tx, err := s.engine.PurchaseCourse(current, *course, s.engine.HasActiveSubscription(current))
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			return current, nil, shortfall(err, current.Balance, course.Price)
		}
		return next, tx, err
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().
		Int64("userID", userID).
		Int64("courseID", courseID).
		Bool("charged", tx != nil).
		Str("balance", user.Balance.String()).
		Msg("Course purchase completed")

	id := courseID
	s.publish(websocket.Event{Type: websocket.EventCoursePurchased, UserID: userID, Balance: user.Balance, CourseID: &id, Transaction: tx})
	return user, tx, nil
}

// CourseAccess tells whether the user may open a course and why
func (s *walletServiceImpl) CourseAccess(ctx context.Context, userID, courseID int64) (models.AccessState, models.AccessSource, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return models.AccessLocked, models.AccessSourceNone, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.AccessLocked, models.AccessSourceNone, err
	}

	state, source := s.engine.Access(*user, courseID)
	return state, source, nil
}

// Entitlements lists the courses the user has unlocked individually. Ids of
// courses that no longer exist are skipped.
func (s *walletServiceImpl) Entitlements(ctx context.Context, userID int64) ([]models.Course, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := s.engine.Entitlements(*user)
	if len(ids) == 0 {
		return []models.Course{}, nil
	}

	all, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Course, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

// Plans lists the subscription offers
func (s *walletServiceImpl) Plans() []models.Plan {
	out := make([]models.Plan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *walletServiceImpl) findPlan(name models.PlanType) (models.Plan, bool) {
	for _, p := range s.plans {
		if strings.EqualFold(string(p.Name), strings.TrimSpace(string(name))) {
			return p, true
		}
	}
	return models.Plan{}, false
}

// Subscribe charges a plan and starts a one month subscription
func (s *walletServiceImpl) Subscribe(ctx context.Context, userID int64, planName models.PlanType) (*models.User, *models.Transaction, error) {
	plan, ok := s.findPlan(planName)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownPlan, planName)
	}
	if err := s.process(ctx); err != nil {
		return nil, nil, err
	}

	user, tx, err := s.walletRepo.Mutate(ctx, userID, func(current models.User) (models.User, *models.Transaction, error) {
		next, _, tx, err := s.engine.Subscribe(current, plan.Name, plan.Price)
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			return current, nil, shortfall(err, current.Balance, plan.Price)
		}
		if err != nil {
			return current, nil, err
		}
		return next, &tx, nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("plan", string(plan.Name)).Time("endDate", user.Subscription.EndDate).Msg("Subscription started")
	s.publish(websocket.Event{Type: websocket.EventSubscribed, UserID: userID, Balance: user.Balance, Transaction: tx, Subscription: user.Subscription})
	return user, tx, nil
}

// shortfall attaches the balance and the missing amount to an insufficient balance error
func shortfall(err error, balance, price decimal.Decimal) error {
	return apperrors.NewCustomError(err, "Insufficient balance").WithDetails(map[string]interface{}{
		"balance":  balance.StringFixed(currency.Places),
		"required": price.StringFixed(currency.Places),
		"missing":  price.Sub(balance).StringFixed(currency.Places),
	})
}

// CancelSubscription removes the stored subscription without a refund
func (s *walletServiceImpl) CancelSubscription(ctx context.Context, userID int64) (*models.User, error) {
	user, _, err := s.walletRepo.Mutate(ctx, userID, func(current models.User) (models.User, *models.Transaction, error) {
		if current.Subscription == nil {
			return current, nil, apperrors.ErrSubscriptionMissing
		}
		return s.engine.CancelSubscription(current), nil, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Subscription cancelled")
	s.publish(websocket.Event{Type: websocket.EventSubscriptionCancelled, UserID: userID, Balance: user.Balance})
	return user, nil
}

// GetSubscription returns the stored subscription and whether it is still active
func (s *walletServiceImpl) GetSubscription(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user.Subscription == nil {
		return nil, false, apperrors.ErrSubscriptionMissing
	}
	return user.Subscription, s.engine.HasActiveSubscription(*user), nil
}
