package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Profile is the editable metadata of a user; it never carries money.
type Profile struct {
	FirstName    string `json:"firstName" db:"first_name"`
	LastName     string `json:"lastName" db:"last_name"`
	University   string `json:"university,omitempty" db:"university"`
	FieldOfStudy string `json:"fieldOfStudy,omitempty" db:"field_of_study"`
	Phone        string `json:"phone,omitempty" db:"phone"`
	Location     string `json:"location,omitempty" db:"location"`
	Bio          string `json:"bio,omitempty" db:"bio"`
	Website      string `json:"website,omitempty" db:"website"`
}

// User is a marketplace account. Balance and the entitlement sets change only
// through the ledger engine.
type User struct {
	ID        int64           `json:"id" db:"id"`
	Email     string          `json:"email" db:"email"`
	Role      RoleType        `json:"role" db:"role"`
	Profile   Profile         `json:"profile"`
	Balance   decimal.Decimal `json:"balance" db:"balance"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`

	// PurchasedCourseIDs never holds duplicates
	PurchasedCourseIDs []int64 `json:"purchasedCourseIds" db:"purchased_course_ids"`
	// SubscriptionCourseIDs is only used by the revoke access policy
	SubscriptionCourseIDs []int64 `json:"subscriptionCourseIds,omitempty" db:"subscription_course_ids"`

	Subscription *Subscription `json:"subscription,omitempty"`
}

// Owns reports whether the course was bought outright
func (u User) Owns(courseID int64) bool {
	return slices.Contains(u.PurchasedCourseIDs, courseID)
}

// Clone returns a deep copy so engine results never alias their input
func (u User) Clone() User {
	out := u
	out.PurchasedCourseIDs = slices.Clone(u.PurchasedCourseIDs)
	out.SubscriptionCourseIDs = slices.Clone(u.SubscriptionCourseIDs)
	if u.Subscription != nil {
		sub := *u.Subscription
		out.Subscription = &sub
	}
	return out
}
