package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/domain/ledger"
	"github.com/yigit/edutech/internal/pkg/apperrors"
	"github.com/yigit/edutech/internal/pkg/currency"
	"github.com/yigit/edutech/internal/pkg/websocket"
)

type walletFixture struct {
	svc    WalletService
	db     *memDB
	pub    *recordingPublisher
	now    time.Time
	userID int64
}

func newWalletFixture(t *testing.T, balance string, delay time.Duration, policy ledger.AccessPolicy) *walletFixture {
	t.Helper()

	f := &walletFixture{db: newMemDB(), pub: &recordingPublisher{}, now: time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)}
	seededCatalog(f.db)

	id, err := memUserRepo{f.db}.Create(context.Background(), &models.User{
		Email:   "student@example.com",
		Role:    models.RoleStudent,
		Balance: decimal.RequireFromString(balance),
	})
	require.NoError(t, err)
	f.userID = id

	engine := ledger.NewEngine(ledger.Options{Now: func() time.Time { return f.now }, Policy: policy})
	f.svc = NewWalletService(
		memWalletRepo{f.db}, memUserRepo{f.db}, memCourseRepo{f.db},
		engine, f.pub,
		WalletServiceConfig{
			ProcessingDelay: delay,
			Plans: []models.Plan{
				{Name: models.PlanBasic, Price: decimal.RequireFromString("19.99")},
				{Name: models.PlanPremium, Price: decimal.RequireFromString("79.99")},
			},
		},
		zerolog.Nop(),
	)
	return f
}

func TestDepositThenPurchase(t *testing.T) {
	f := newWalletFixture(t, "0", 0, ledger.PolicyRetain)
	ctx := context.Background()

	u, tx, err := f.svc.Deposit(ctx, f.userID, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(u.Balance))
	assert.Equal(t, models.TransactionDeposit, tx.Type)

	u, tx, err = f.svc.PurchaseCourse(ctx, f.userID, 2)
	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.True(t, decimal.RequireFromString("50.01").Equal(u.Balance))
	assert.Equal(t, "Purchase: Machine Learning Fundamentals", tx.Description)

	history, total, err := f.svc.History(ctx, f.userID, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, models.TransactionPayment, history[0].Type)
	assert.Equal(t, models.TransactionDeposit, history[1].Type)

	payments, total, err := f.svc.History(ctx, f.userID, models.TransactionPayment, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, payments, 1)

	assert.Equal(t, []string{websocket.EventDeposit, websocket.EventCoursePurchased}, f.pub.types())
}

func TestDepositRejectsNonPositive(t *testing.T) {
	f := newWalletFixture(t, "0", 0, ledger.PolicyRetain)

	_, _, err := f.svc.Deposit(context.Background(), f.userID, decimal.Zero)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	assert.Empty(t, f.pub.types())
}

func TestDepositRejectsSubPaisaAmounts(t *testing.T) {
	f := newWalletFixture(t, "0", 0, ledger.PolicyRetain)

	_, _, err := f.svc.Deposit(context.Background(), f.userID, decimal.RequireFromString("10.005"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	assert.Empty(t, f.pub.types())
}

func TestRepeatedDepositsCoverSummedPrice(t *testing.T) {
	cur, err := currency.New("INR")
	require.NoError(t, err)

	tests := []struct {
		name    string
		deposit string
		price   string
	}{
		{"whole rupees", "100", "300"},
		{"paise", "33.33", "99.99"},
		{"odd paise", "0.01", "0.03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newWalletFixture(t, "0", 0, ledger.PolicyRetain)
			ctx := context.Background()

			price, err := cur.Parse(tt.price)
			require.NoError(t, err)
			f.db.courses = append(f.db.courses, models.Course{ID: 10, Title: "Exam Prep", Price: price})

			for i := 0; i < 3; i++ {
				amount, err := cur.Parse(tt.deposit)
				require.NoError(t, err)
				_, _, err = f.svc.Deposit(ctx, f.userID, amount)
				require.NoError(t, err)
			}

			w, err := f.svc.GetWallet(ctx, f.userID)
			require.NoError(t, err)
			assert.Equal(t, cur.Format(price), cur.Format(w.Balance))

			u, tx, err := f.svc.PurchaseCourse(ctx, f.userID, 10)
			require.NoError(t, err)
			require.NotNil(t, tx)
			assert.True(t, u.Balance.IsZero(), u.Balance.String())
		})
	}
}

func TestHistoryRejectsUnknownType(t *testing.T) {
	f := newWalletFixture(t, "0", 0, ledger.PolicyRetain)

	_, _, err := f.svc.History(context.Background(), f.userID, "refund", 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestPurchaseInsufficientBalanceLeavesWalletUntouched(t *testing.T) {
	f := newWalletFixture(t, "10", 0, ledger.PolicyRetain)
	ctx := context.Background()

	_, _, err := f.svc.PurchaseCourse(ctx, f.userID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

	var custom *apperrors.CustomError
	require.True(t, errors.As(err, &custom))
	assert.Equal(t, "49.99", custom.Details["missing"])
	assert.Equal(t, "10.00", custom.Details["balance"])

	w, err := f.svc.GetWallet(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(w.Balance))
	assert.Empty(t, w.PurchasedCourseIDs)
	assert.Empty(t, w.RecentTransactions)
	assert.Empty(t, f.pub.types())
}

func TestPurchaseTwiceChargesOnce(t *testing.T) {
	f := newWalletFixture(t, "250", 0, ledger.PolicyRetain)
	ctx := context.Background()

	first, tx, err := f.svc.PurchaseCourse(ctx, f.userID, 1)
	require.NoError(t, err)
	require.NotNil(t, tx)

	second, tx, err := f.svc.PurchaseCourse(ctx, f.userID, 1)
	require.NoError(t, err)
	assert.Nil(t, tx)
	assert.True(t, first.Balance.Equal(second.Balance))

	_, total, err := f.svc.History(ctx, f.userID, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestPurchaseUnknownCourse(t *testing.T) {
	f := newWalletFixture(t, "250", 0, ledger.PolicyRetain)
	_, _, err := f.svc.PurchaseCourse(context.Background(), f.userID, 404)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestSubscribeThenPurchaseIsFree(t *testing.T) {
	f := newWalletFixture(t, "100", 0, ledger.PolicyRetain)
	ctx := context.Background()

	u, tx, err := f.svc.Subscribe(ctx, f.userID, "basic")
	require.NoError(t, err)
	assert.Equal(t, "Basic subscription purchase", tx.Description)
	assert.True(t, decimal.RequireFromString("80.01").Equal(u.Balance))
	require.NotNil(t, u.Subscription)
	assert.Equal(t, f.now.AddDate(0, 1, 0), u.Subscription.EndDate)

	u, tx, err = f.svc.PurchaseCourse(ctx, f.userID, 1)
	require.NoError(t, err)
	assert.Nil(t, tx)
	assert.True(t, decimal.RequireFromString("80.01").Equal(u.Balance))

	state, source, err := f.svc.CourseAccess(ctx, f.userID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.AccessUnlocked, state)
	assert.Equal(t, models.AccessSourcePurchase, source)

	state, source, err = f.svc.CourseAccess(ctx, f.userID, 2)
	require.NoError(t, err)
	assert.Equal(t, models.AccessUnlocked, state)
	assert.Equal(t, models.AccessSourceSubscription, source)

	_, total, err := f.svc.History(ctx, f.userID, "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total, "only the subscription is charged")
}

func TestSubscribeErrors(t *testing.T) {
	f := newWalletFixture(t, "50", 0, ledger.PolicyRetain)
	ctx := context.Background()

	_, _, err := f.svc.Subscribe(ctx, f.userID, "Platinum")
	assert.ErrorIs(t, err, apperrors.ErrUnknownPlan)

	_, _, err = f.svc.Subscribe(ctx, f.userID, models.PlanPremium)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
}

func TestSubscriptionExpiresOnRead(t *testing.T) {
	f := newWalletFixture(t, "100", 0, ledger.PolicyRevoke)
	ctx := context.Background()

	_, _, err := f.svc.Subscribe(ctx, f.userID, models.PlanBasic)
	require.NoError(t, err)
	_, _, err = f.svc.PurchaseCourse(ctx, f.userID, 3)
	require.NoError(t, err)

	sub, active, err := f.svc.GetSubscription(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, active)

	courses, err := f.svc.Entitlements(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, courseIDs(courses))

	f.now = sub.EndDate

	_, active, err = f.svc.GetSubscription(ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, active)

	state, _, err := f.svc.CourseAccess(ctx, f.userID, 3)
	require.NoError(t, err)
	assert.Equal(t, models.AccessLocked, state)

	courses, err = f.svc.Entitlements(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCancelSubscription(t *testing.T) {
	f := newWalletFixture(t, "100", 0, ledger.PolicyRetain)
	ctx := context.Background()

	_, err := f.svc.CancelSubscription(ctx, f.userID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionMissing)

	_, _, err = f.svc.Subscribe(ctx, f.userID, models.PlanBasic)
	require.NoError(t, err)

	u, err := f.svc.CancelSubscription(ctx, f.userID)
	require.NoError(t, err)
	assert.Nil(t, u.Subscription)
	assert.True(t, decimal.RequireFromString("80.01").Equal(u.Balance), "no refund")

	_, _, err = f.svc.GetSubscription(ctx, f.userID)
	assert.ErrorIs(t, err, apperrors.ErrSubscriptionMissing)

	assert.Equal(t, []string{websocket.EventSubscribed, websocket.EventSubscriptionCancelled}, f.pub.types())
}

func TestProcessingDelayHonoursCancellation(t *testing.T) {
	f := newWalletFixture(t, "100", time.Hour, ledger.PolicyRetain)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := f.svc.Deposit(ctx, f.userID, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	u, err := memUserRepo{f.db}.GetByID(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(u.Balance), "cancelled payment never reaches the ledger")
}

func TestProcessingDelayIsWaited(t *testing.T) {
	f := newWalletFixture(t, "100", 30*time.Millisecond, ledger.PolicyRetain)

	start := time.Now()
	_, _, err := f.svc.Deposit(context.Background(), f.userID, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestConcurrentPurchasesNeverOverdraw(t *testing.T) {
	f := newWalletFixture(t, "100", 0, ledger.PolicyRetain)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []int64{1, 2, 3} {
		wg.Add(1)
		go func(courseID int64) {
			defer wg.Done()
			_, _, _ = f.svc.PurchaseCourse(ctx, f.userID, courseID)
		}(id)
	}
	wg.Wait()

	w, err := f.svc.GetWallet(ctx, f.userID)
	require.NoError(t, err)
	assert.False(t, w.Balance.IsNegative())
	assert.Len(t, w.PurchasedCourseIDs, 1, "100 covers exactly one course")
}

func TestWalletTotalsCoverWholeLedger(t *testing.T) {
	f := newWalletFixture(t, "0", 0, ledger.PolicyRetain)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _, err := f.svc.Deposit(ctx, f.userID, decimal.NewFromInt(20))
		require.NoError(t, err)
	}
	_, _, err := f.svc.PurchaseCourse(ctx, f.userID, 2)
	require.NoError(t, err)
	_, _, err = f.svc.Subscribe(ctx, f.userID, models.PlanBasic)
	require.NoError(t, err)

	w, err := f.svc.GetWallet(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, w.RecentTransactions, recentTransactionsLimit)
	assert.Equal(t, "Basic subscription purchase", w.RecentTransactions[0].Description)
	assert.True(t, decimal.NewFromInt(100).Equal(w.TotalDeposited))
	assert.True(t, decimal.RequireFromString("69.98").Equal(w.TotalSpent))
	assert.True(t, w.TotalDeposited.Sub(w.TotalSpent).Equal(w.Balance))
}

func TestSubscriptionActiveFollowsEngineClock(t *testing.T) {
	f := newWalletFixture(t, "100", 0, ledger.PolicyRetain)

	u, _, err := f.svc.Subscribe(context.Background(), f.userID, models.PlanBasic)
	require.NoError(t, err)
	assert.True(t, f.svc.SubscriptionActive(*u), "fixture clock is years before the wall clock")

	f.now = u.Subscription.EndDate
	assert.False(t, f.svc.SubscriptionActive(*u))
	assert.False(t, f.svc.SubscriptionActive(models.User{}))
}

func TestPlansAreCopied(t *testing.T) {
	f := newWalletFixture(t, "0", 0, ledger.PolicyRetain)

	plans := f.svc.Plans()
	plans[0].Name = "Changed"
	assert.Equal(t, models.PlanBasic, f.svc.Plans()[0].Name)
}
