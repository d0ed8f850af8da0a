package dto

import (
	"time"

	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/pkg/currency"
)

// DepositRequest adds funds, expressed in the display currency
type DepositRequest struct {
	Amount string `json:"amount" validate:"required,numeric" example:"1000"`
}

// SubscribeRequest starts a subscription
type SubscribeRequest struct {
	Plan string `json:"plan" validate:"required" example:"Standard"`
}

// TransactionResponse represents a ledger entry
type TransactionResponse struct {
	ID          string                 `json:"id" example:"01890a5d-ac96-774b-bcce-b302099a8057"`
	Type        models.TransactionType `json:"type" example:"payment"`
	Amount      Money                  `json:"amount"`
	Description string                 `json:"description" example:"Purchase: Full Stack Web Development Bootcamp"`
	CourseID    *int64                 `json:"courseId,omitempty"`
	Date        time.Time              `json:"date"`
}

// TransactionListResponse is one page of the ledger
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationInfo        `json:"pagination"`
}

// SubscriptionResponse represents the stored subscription
type SubscriptionResponse struct {
	Plan      models.PlanType `json:"plan" example:"Standard"`
	StartDate time.Time       `json:"startDate"`
	EndDate   time.Time       `json:"endDate"`
	Price     Money           `json:"price"`
	Active    bool            `json:"active"`
}

// PlanResponse is a subscription offer
type PlanResponse struct {
	Name  models.PlanType `json:"name" example:"Basic"`
	Price Money           `json:"price"`
}

// WalletResponse summarises a user's money and entitlements
type WalletResponse struct {
	UserID             int64                 `json:"userId"`
	Balance            Money                 `json:"balance"`
	PurchasedCourseIDs []int64               `json:"purchasedCourseIds"`
	Subscription       *SubscriptionResponse `json:"subscription,omitempty"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
	TotalDeposited     Money                 `json:"totalDeposited"`
	TotalSpent         Money                 `json:"totalSpent"`
}

// WalletOperationResponse is returned by deposits, purchases and subscriptions
type WalletOperationResponse struct {
	Balance      Money                 `json:"balance"`
	Charged      bool                  `json:"charged"`
	Transaction  *TransactionResponse  `json:"transaction,omitempty"`
	Subscription *SubscriptionResponse `json:"subscription,omitempty"`
}

// AccessResponse tells whether a course is unlocked for a user
type AccessResponse struct {
	CourseID int64               `json:"courseId"`
	State    models.AccessState  `json:"state" example:"unlocked"`
	Source   models.AccessSource `json:"source,omitempty" example:"purchase"`
}

// FromTransaction converts a ledger entry for display
func FromTransaction(cur *currency.Currency, t models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      NewMoney(cur, t.Amount),
		Description: t.Description,
		CourseID:    t.CourseID,
		Date:        t.CreatedAt,
	}
}

// FromTransactions converts ledger entries for display
func FromTransactions(cur *currency.Currency, txs []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, FromTransaction(cur, t))
	}
	return out
}

// FromSubscription converts a subscription for display
func FromSubscription(cur *currency.Currency, s *models.Subscription, active bool) *SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &SubscriptionResponse{
		Plan:      s.Plan,
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		Price:     NewMoney(cur, s.Price),
		Active:    active,
	}
}

// FromPlans converts subscription offers for display
func FromPlans(cur *currency.Currency, plans []models.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanResponse{Name: p.Name, Price: NewMoney(cur, p.Price)})
	}
	return out
}

// FromWallet converts a wallet snapshot for display
func FromWallet(cur *currency.Currency, w *models.WalletState) WalletResponse {
	purchased := w.PurchasedCourseIDs
	if purchased == nil {
		purchased = []int64{}
	}
	return WalletResponse{
		UserID:             w.UserID,
		Balance:            NewMoney(cur, w.Balance),
		PurchasedCourseIDs: purchased,
		Subscription:       FromSubscription(cur, w.Subscription, w.SubscriptionActive),
		RecentTransactions: FromTransactions(cur, w.RecentTransactions),
		TotalDeposited:     NewMoney(cur, w.TotalDeposited),
		TotalSpent:         NewMoney(cur, w.TotalSpent),
	}
}

// NewWalletOperationResponse describes the outcome of a money-moving call
func NewWalletOperationResponse(cur *currency.Currency, u *models.User, tx *models.Transaction, subActive bool) WalletOperationResponse {
	resp := WalletOperationResponse{
		Balance:      NewMoney(cur, u.Balance),
		Charged:      tx != nil,
		Subscription: FromSubscription(cur, u.Subscription, subActive),
	}
	if tx != nil {
		t := FromTransaction(cur, *tx)
		resp.Transaction = &t
	}
	return resp
}
