package repositories

import (
	"github.com/yigit/edutech/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository *CourseRepository
	UserRepository   *UserRepository
	WalletRepository *WalletRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		CourseRepository: NewCourseRepository(database.Pool),
		UserRepository:   NewUserRepository(database.Pool),
		WalletRepository: NewWalletRepository(database.Pool, database),
	}
}
