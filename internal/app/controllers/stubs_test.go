package controllers

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/app/services"
	"github.com/yigit/edutech/internal/domain/catalog"
	"github.com/yigit/edutech/internal/pkg/apperrors"
)

// stubCatalog serves a fixed course list through the real query engine
type stubCatalog struct {
	mu       sync.Mutex
	courses  []models.Course
	lastSpec catalog.FilterSpec
	createFn func(teacherID int64, c *models.Course) (*models.Course, error)

	teacherNames map[int64]string
}

func (s *stubCatalog) ListCourses(_ context.Context, spec catalog.FilterSpec) ([]models.Course, error) {
	s.mu.Lock()
	s.lastSpec = spec
	s.mu.Unlock()
	return catalog.Query(s.courses, spec), nil
}

func (s *stubCatalog) GetCourse(_ context.Context, id int64) (*models.Course, error) {
	for _, c := range s.courses {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (s *stubCatalog) Facets(context.Context) (catalog.Facets, error) {
	return catalog.BuildFacets(s.courses), nil
}

func (s *stubCatalog) Popular(context.Context) ([]models.Course, error) {
	return catalog.Popular(s.courses, 2000), nil
}

func (s *stubCatalog) TopRated(context.Context) ([]models.Course, error) {
	return catalog.TopRated(s.courses, 4.8), nil
}

func (s *stubCatalog) Teachers(context.Context) ([]catalog.TeacherSummary, error) {
	return catalog.Teachers(s.courses), nil
}

func (s *stubCatalog) Teacher(_ context.Context, slug string) (*catalog.TeacherSummary, []models.Course, error) {
	summary, courses, ok := catalog.TeacherProfile(s.courses, slug)
	if !ok {
		return nil, nil, apperrors.NewResourceNotFoundError("Teacher not found")
	}
	return &summary, courses, nil
}

func (s *stubCatalog) TeachingStats(_ context.Context, userID int64) (*catalog.TeachingStats, error) {
	if s.teacherNames == nil {
		return nil, apperrors.ErrUserNotFound
	}
	name, ok := s.teacherNames[userID]
	if !ok {
		return nil, apperrors.NewForbiddenError("only teachers have a teaching dashboard")
	}
	stats := catalog.StatsFor(s.courses, name)
	return &stats, nil
}

func (s *stubCatalog) CreateCourse(_ context.Context, teacherID int64, c *models.Course) (*models.Course, error) {
	return s.createFn(teacherID, c)
}

// stubUsers keeps users in a map
type stubUsers struct {
	users map[int64]*models.User
}

func (s *stubUsers) Register(_ context.Context, email string, role models.RoleType, profile models.Profile) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return nil, apperrors.ErrEmailAlreadyExists
		}
	}
	u := &models.User{ID: int64(len(s.users) + 1), Email: email, Role: role, Profile: profile}
	s.users[u.ID] = u
	return u, nil
}

func (s *stubUsers) GetUser(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUsers) UpdateProfile(ctx context.Context, id int64, profile models.Profile) (*models.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Profile = profile
	return u, nil
}

// stubWallet returns canned results and records the last call's arguments
type stubWallet struct {
	user        *models.User
	tx          *models.Transaction
	err         error
	wallet      *models.WalletState
	courses     []models.Course
	plans       []models.Plan
	history     []models.Transaction
	historyLen  int64
	accessState models.AccessState
	accessSrc   models.AccessSource
	active      bool

	lastAmount decimal.Decimal
	lastPlan   models.PlanType
	lastTxType models.TransactionType
	lastPage   int
	lastSize   int
}

func (s *stubWallet) GetWallet(context.Context, int64) (*models.WalletState, error) {
	return s.wallet, s.err
}

func (s *stubWallet) Deposit(_ context.Context, _ int64, amount decimal.Decimal) (*models.User, *models.Transaction, error) {
	s.lastAmount = amount
	return s.user, s.tx, s.err
}

func (s *stubWallet) History(_ context.Context, _ int64, txType models.TransactionType, page, size int) ([]models.Transaction, int64, error) {
	s.lastTxType, s.lastPage, s.lastSize = txType, page, size
	return s.history, s.historyLen, s.err
}

func (s *stubWallet) PurchaseCourse(context.Context, int64, int64) (*models.User, *models.Transaction, error) {
	return s.user, s.tx, s.err
}

func (s *stubWallet) CourseAccess(context.Context, int64, int64) (models.AccessState, models.AccessSource, error) {
	return s.accessState, s.accessSrc, s.err
}

func (s *stubWallet) Entitlements(context.Context, int64) ([]models.Course, error) {
	return s.courses, s.err
}

func (s *stubWallet) Plans() []models.Plan { return s.plans }

func (s *stubWallet) Subscribe(_ context.Context, _ int64, plan models.PlanType) (*models.User, *models.Transaction, error) {
	s.lastPlan = plan
	return s.user, s.tx, s.err
}

func (s *stubWallet) CancelSubscription(context.Context, int64) (*models.User, error) {
	return s.user, s.err
}

func (s *stubWallet) GetSubscription(context.Context, int64) (*models.Subscription, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	return s.user.Subscription, true, nil
}

func (s *stubWallet) SubscriptionActive(models.User) bool { return s.active }

var (
	_ services.CatalogService = (*stubCatalog)(nil)
	_ services.UserService    = (*stubUsers)(nil)
	_ services.WalletService  = (*stubWallet)(nil)
)
