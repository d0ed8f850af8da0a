package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
)

// Valid reports whether the role is one of the known roles
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// Level is the difficulty of a course
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists the known course levels in ascending difficulty
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// TransactionType is the direction of a ledger entry
type TransactionType string

const (
	TransactionDeposit TransactionType = "deposit"
	TransactionPayment TransactionType = "payment"
)

// Valid reports whether the transaction type is known
func (t TransactionType) Valid() bool {
	return t == TransactionDeposit || t == TransactionPayment
}

// PlanType names a subscription plan
type PlanType string

const (
	PlanBasic    PlanType = "Basic"
	PlanStandard PlanType = "Standard"
	PlanPremium  PlanType = "Premium"
)

// AccessState is a user's view of one course
type AccessState string

const (
	AccessLocked   AccessState = "locked"
	AccessUnlocked AccessState = "unlocked"
)

// AccessSource tells how an unlocked course was unlocked
type AccessSource string

const (
	AccessSourceNone         AccessSource = ""
	AccessSourcePurchase     AccessSource = "purchase"
	AccessSourceSubscription AccessSource = "subscription"
)
