package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one immutable ledger entry. Amount is always positive; Type
// carries the direction.
type Transaction struct {
	ID          string          `json:"id" db:"id"`
	UserID      int64           `json:"userId" db:"user_id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	CourseID    *int64          `json:"courseId,omitempty" db:"course_id"`
	CreatedAt   time.Time       `json:"date" db:"created_at"`
}

// Subscription is a one month plan. It is active while EndDate is in the future.
type Subscription struct {
	Plan      PlanType        `json:"type" db:"plan"`
	StartDate time.Time       `json:"startDate" db:"start_date"`
	EndDate   time.Time       `json:"endDate" db:"end_date"`
	Price     decimal.Decimal `json:"price" db:"price"`
}

// ActiveAt reports whether the subscription covers the given instant
func (s *Subscription) ActiveAt(now time.Time) bool {
	return s != nil && s.EndDate.After(now)
}

// Plan is a purchasable subscription offer, priced in rupees
type Plan struct {
	Name  PlanType        `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// WalletState is a read-only snapshot of a user's money and entitlements
type WalletState struct {
	UserID             int64           `json:"userId"`
	Balance            decimal.Decimal `json:"balance"`
	PurchasedCourseIDs []int64         `json:"purchasedCourseIds"`
	Subscription       *Subscription   `json:"subscription,omitempty"`
	SubscriptionActive bool            `json:"subscriptionActive"`
	RecentTransactions []Transaction   `json:"recentTransactions"`
	// TotalDeposited and TotalSpent sum the whole ledger
	TotalDeposited decimal.Decimal `json:"totalDeposited"`
	TotalSpent     decimal.Decimal `json:"totalSpent"`
}
