package repositories

import (
	"context"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	SoftDeleteRepository[models.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{newSoftDeleteRepository[models.User](db)}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{r.withDB(tx)}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.Query(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.Exists(ctx, "email = ?", email)
}
