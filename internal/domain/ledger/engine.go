// Package ledger decides every change to a user's money and course entitlements.
//
// The engine is synchronous and pure: each operation takes a user record and
// returns the updated copy together with the transaction to record. Nothing
// is persisted here and the input user is never modified.
package ledger

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/pkg/apperrors"
)

// AccessPolicy controls what happens to courses claimed under a subscription
// once that subscription is cancelled or expires.
type AccessPolicy string

const (
	// PolicyRetain records subscription claims as purchases; they stay unlocked forever.
	PolicyRetain AccessPolicy = "retain"
	// PolicyRevoke tracks subscription claims separately; they lock again when the subscription ends.
	PolicyRevoke AccessPolicy = "revoke"
)

// Options configures an Engine. Zero values fall back to the wall clock,
// UUIDv7 ids and PolicyRetain.
type Options struct {
	Now    func() time.Time
	NewID  func() string
	Policy AccessPolicy
}

// Engine applies ledger operations
type Engine struct {
	now    func() time.Time
	newID  func() string
	policy AccessPolicy
}

// NewEngine creates a new ledger engine
func NewEngine(opts Options) *Engine {
	e := &Engine{
		now:    opts.Now,
		newID:  opts.NewID,
		policy: opts.Policy,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.newID == nil {
		e.newID = newTransactionID
	}
	if e.policy == "" {
		e.policy = PolicyRetain
	}
	return e
}

// newTransactionID returns a time ordered id so that ids sort like timestamps
func newTransactionID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Policy returns the engine's subscription access policy
func (e *Engine) Policy() AccessPolicy {
	return e.policy
}

// Deposit credits amount to the user's balance
func (e *Engine) Deposit(u models.User, amount decimal.Decimal) (models.User, models.Transaction, error) {
	if !amount.IsPositive() {
		return u, models.Transaction{}, fmt.Errorf("%w: deposit must be positive, got %s", apperrors.ErrInvalidAmount, amount)
	}

	out := u.Clone()
	out.Balance = out.Balance.Add(amount)

	tx := e.transaction(out.ID, models.TransactionDeposit, amount, "Added funds to wallet", nil)
	return out, tx, nil
}

// PurchaseCourse unlocks a course for the user. With an active subscription the
// course is granted for free. Buying an owned course is a successful no-op.
// The returned transaction is nil whenever no money moved.
func (e *Engine) PurchaseCourse(u models.User, course models.Course, subscribed bool) (models.User, *models.Transaction, error) {
	if subscribed {
		return e.grantBySubscription(u, course.ID), nil, nil
	}

	if u.Owns(course.ID) {
		return u.Clone(), nil, nil
	}

	if course.Price.IsNegative() {
		return u, nil, fmt.Errorf("%w: course %d has a negative price", apperrors.ErrInvalidAmount, course.ID)
	}

	if u.Balance.LessThan(course.Price) {
		return u, nil, fmt.Errorf("%w: balance %s, price %s", apperrors.ErrInsufficientBalance, u.Balance, course.Price)
	}

	out := u.Clone()
	out.PurchasedCourseIDs = append(out.PurchasedCourseIDs, course.ID)
	out.SubscriptionCourseIDs = slices.DeleteFunc(out.SubscriptionCourseIDs, func(id int64) bool { return id == course.ID })

	// Free courses are granted without a ledger entry; amounts are always positive.
	if course.Price.IsZero() {
		return out, nil, nil
	}

	out.Balance = out.Balance.Sub(course.Price)
	courseID := course.ID
	tx := e.transaction(out.ID, models.TransactionPayment, course.Price, "Purchase: "+course.Title, &courseID)
	return out, &tx, nil
}

func (e *Engine) grantBySubscription(u models.User, courseID int64) models.User {
	out := u.Clone()
	if out.Owns(courseID) {
		return out
	}

	switch e.policy {
	case PolicyRevoke:
		if !slices.Contains(out.SubscriptionCourseIDs, courseID) {
			out.SubscriptionCourseIDs = append(out.SubscriptionCourseIDs, courseID)
		}
	default:
		out.PurchasedCourseIDs = append(out.PurchasedCourseIDs, courseID)
	}
	return out
}

// Subscribe charges price and starts a one month subscription, replacing any
// previous one.
func (e *Engine) Subscribe(u models.User, plan models.PlanType, price decimal.Decimal) (models.User, models.Subscription, models.Transaction, error) {
	if !price.IsPositive() {
		return u, models.Subscription{}, models.Transaction{}, fmt.Errorf("%w: %s plan price must be positive", apperrors.ErrInvalidAmount, plan)
	}

	if u.Balance.LessThan(price) {
		return u, models.Subscription{}, models.Transaction{}, fmt.Errorf("%w: balance %s, price %s", apperrors.ErrInsufficientBalance, u.Balance, price)
	}

	now := e.now()
	sub := models.Subscription{
		Plan:      plan,
		StartDate: now,
		EndDate:   now.AddDate(0, 1, 0),
		Price:     price,
	}

	out := u.Clone()
	out.Balance = out.Balance.Sub(price)
	out.Subscription = &sub

	tx := e.transaction(out.ID, models.TransactionPayment, price, fmt.Sprintf("%s subscription purchase", plan), nil)
	return out, sub, tx, nil
}

// CancelSubscription drops the stored subscription. There is no refund.
func (e *Engine) CancelSubscription(u models.User) models.User {
	out := u.Clone()
	out.Subscription = nil
	return out
}

// HasActiveSubscription reports whether the stored subscription ends strictly after now
func (e *Engine) HasActiveSubscription(u models.User) bool {
	return u.Subscription.ActiveAt(e.now())
}

// Access resolves whether the user may open the course and why
func (e *Engine) Access(u models.User, courseID int64) (models.AccessState, models.AccessSource) {
	if u.Owns(courseID) {
		return models.AccessUnlocked, models.AccessSourcePurchase
	}
	if e.HasActiveSubscription(u) {
		return models.AccessUnlocked, models.AccessSourceSubscription
	}
	return models.AccessLocked, models.AccessSourceNone
}

// Entitlements lists the course ids the user can open without a catalog-wide
// subscription check: owned courses, plus subscription claims while active.
func (e *Engine) Entitlements(u models.User) []int64 {
	out := slices.Clone(u.PurchasedCourseIDs)
	if out == nil {
		out = make([]int64, 0)
	}
	if e.HasActiveSubscription(u) {
		for _, id := range u.SubscriptionCourseIDs {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}

func (e *Engine) transaction(userID int64, typ models.TransactionType, amount decimal.Decimal, description string, courseID *int64) models.Transaction {
	return models.Transaction{
		ID:          e.newID(),
		UserID:      userID,
		Type:        typ,
		Amount:      amount,
		Description: description,
		CourseID:    courseID,
		CreatedAt:   e.now(),
	}
}
