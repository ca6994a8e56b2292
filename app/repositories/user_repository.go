package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by exact, case-sensitive email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := orm.On(r.db).WithContext(ctx).Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := orm.On(r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// Create inserts user and reports false when the email is already taken.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (bool, error) {
	n, err := orm.On(r.db).WithContext(ctx).CreateIgnore(user)
	return n == 1, err
}
