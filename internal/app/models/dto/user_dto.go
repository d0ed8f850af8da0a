package dto

import (
	"time"

	"github.com/yigit/edutech/internal/app/models"
	"github.com/yigit/edutech/internal/pkg/currency"
)

// ProfileRequest carries editable profile metadata
type ProfileRequest struct {
	FirstName    string `json:"firstName" validate:"required,max=100" example:"John"`
	LastName     string `json:"lastName" validate:"required,max=100" example:"Smith"`
	University   string `json:"university" validate:"max=255" example:"Stanford University"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"max=255" example:"Computer Science"`
	Phone        string `json:"phone" validate:"max=50"`
	Location     string `json:"location" validate:"max=255"`
	Bio          string `json:"bio"`
	Website      string `json:"website" validate:"omitempty,url"`
}

// ToModel converts the request into a profile
func (r ProfileRequest) ToModel() models.Profile {
	return models.Profile{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		University:   r.University,
		FieldOfStudy: r.FieldOfStudy,
		Phone:        r.Phone,
		Location:     r.Location,
		Bio:          r.Bio,
		Website:      r.Website,
	}
}

// RegisterRequest creates an account
type RegisterRequest struct {
	Email string `json:"email" validate:"required,email" example:"student@example.com"`
	Role  string `json:"role" validate:"omitempty,oneof=student teacher" example:"student"`
	ProfileRequest
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID                 int64           `json:"id" example:"1"`
	Email              string          `json:"email" example:"student@example.com"`
	Role               models.RoleType `json:"role" example:"student"`
	Profile            models.Profile  `json:"profile"`
	Balance            Money           `json:"balance"`
	PurchasedCourseIDs []int64         `json:"purchasedCourseIds"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// FromUser converts a user for display
func FromUser(cur *currency.Currency, u *models.User) UserResponse {
	purchased := u.PurchasedCourseIDs
	if purchased == nil {
		purchased = []int64{}
	}
	return UserResponse{
		ID:                 u.ID,
		Email:              u.Email,
		Role:               u.Role,
		Profile:            u.Profile,
		Balance:            NewMoney(cur, u.Balance),
		PurchasedCourseIDs: purchased,
		CreatedAt:          u.CreatedAt,
	}
}
