package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Teacher is the author of a course and their affiliation
type Teacher struct {
	Name       string `json:"name" db:"teacher_name"`
	University string `json:"university" db:"teacher_university"`
	Department string `json:"department" db:"teacher_department"`
	Bio        string `json:"bio,omitempty" db:"teacher_bio"`
}

// Chapter is one ordered section of a course
type Chapter struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Course is immutable catalog reference data. Prices are in rupees.
type Course struct {
	ID              int64            `json:"id" db:"id"`
	Title           string           `json:"title" db:"title"`
	Description     string           `json:"description" db:"description"`
	LongDescription string           `json:"longDescription,omitempty" db:"long_description"`
	Category        string           `json:"category" db:"category"`
	Teacher         Teacher          `json:"teacher"`
	Price           decimal.Decimal  `json:"price" db:"price"`
	OriginalPrice   *decimal.Decimal `json:"originalPrice,omitempty" db:"original_price"`
	Rating          float64          `json:"rating" db:"rating"`
	Students        int64            `json:"students" db:"students"`
	Duration        string           `json:"duration,omitempty" db:"duration"`
	LastUpdated     *time.Time       `json:"lastUpdated,omitempty" db:"last_updated"`
	Level           Level            `json:"level,omitempty" db:"level"`
	Chapters        []Chapter        `json:"chapters,omitempty" db:"chapters"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
}
