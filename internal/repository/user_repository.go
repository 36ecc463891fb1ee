package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/d60-Lab/social-feed/internal/model"
)

type UserRepository interface {
    Create(ctx context.Context, user *model.User) error
    GetByID(ctx context.Context, id int64) (*model.User, error)
    ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
    return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
    var u model.User
    if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
        return nil, err
    }
    return &u, nil
}

func (r *userRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
    var cnt int64
    if err := r.db.WithContext(ctx).
        Model(&model.User{}).
        Where("username = ? OR email = ?", username, email).
        Count(&cnt).Error; err != nil {
        return false, err
    }
    return cnt > 0, nil
}
