package repository

import (
    "context"

    "gorm.io/gorm"

    "github.com/d60-Lab/social-feed/internal/model"
)

type FollowRepository interface {
    Exists(ctx context.Context, followerID, followingID int64) (bool, error)
    // ListFollowerIDs 分页取 B 的粉丝（关注 B 的人）
    ListFollowerIDs(ctx context.Context, followingID int64, offset, limit int) ([]int64, error)
    // ListFollowingIDs 分页取 A 关注的人
    ListFollowingIDs(ctx context.Context, followerID int64, offset, limit int) ([]int64, error)
}

type followRepository struct {
    db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Exists(ctx context.Context, followerID, followingID int64) (bool, error) {
    var cnt int64
    if err := r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Where("follower_id = ? AND following_id = ?", followerID, followingID).
        Count(&cnt).Error; err != nil {
        return false, err
    }
    return cnt > 0, nil
}

func (r *followRepository) ListFollowerIDs(ctx context.Context, followingID int64, offset, limit int) ([]int64, error) {
    var ids []int64
    err := r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Select("follower_id").
        Where("following_id = ?", followingID).
        Order("created_at, id").
        Offset(offset).Limit(limit).
        Scan(&ids).Error
    return ids, err
}

func (r *followRepository) ListFollowingIDs(ctx context.Context, followerID int64, offset, limit int) ([]int64, error) {
    var ids []int64
    err := r.db.WithContext(ctx).
        Model(&model.Follow{}).
        Select("following_id").
        Where("follower_id = ?", followerID).
        Order("created_at, id").
        Offset(offset).Limit(limit).
        Scan(&ids).Error
    return ids, err
}
