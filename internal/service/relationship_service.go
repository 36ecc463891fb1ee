package service

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/social-feed/internal/model"
    "github.com/d60-Lab/social-feed/internal/repository"
)

// RelationshipService 关系链服务
type RelationshipService interface {
    Follow(ctx context.Context, followerID, followingID int64) error
    ListFollowers(ctx context.Context, userID int64, page, pageSize int) ([]int64, error)
}

type relationshipService struct {
    db         *gorm.DB
    followRepo repository.FollowRepository
}

func NewRelationshipService(db *gorm.DB, followRepo repository.FollowRepository) RelationshipService {
    return &relationshipService{db: db, followRepo: followRepo}
}

// Follow 建立关注：边表与双方冗余计数在同一事务内落地。
// 冲突（已关注）通过 DoNothing 后 RowsAffected==0 识别，回滚并返回 ErrAlreadyFollowing。
func (s *relationshipService) Follow(ctx context.Context, followerID, followingID int64) error {
    if followerID == followingID {
        return ErrFollowSelf
    }
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        f := &model.Follow{ID: uuid.New().String(), FollowerID: followerID, FollowingID: followingID}
        res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(f)
        if res.Error != nil {
            return res.Error
        }
        if res.RowsAffected == 0 {
            return ErrAlreadyFollowing
        }
        if err := tx.Model(&model.User{}).Where("id = ?", followerID).
            UpdateColumn("following_count", gorm.Expr("following_count + ?", 1)).Error; err != nil {
            return err
        }
        return tx.Model(&model.User{}).Where("id = ?", followingID).
            UpdateColumn("follower_count", gorm.Expr("follower_count + ?", 1)).Error
    })
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID int64, page, pageSize int) ([]int64, error) {
    if page < 1 {
        page = 1
    }
    if pageSize < 1 {
        pageSize = 10
    }
    offset := (page - 1) * pageSize
    return s.followRepo.ListFollowerIDs(ctx, userID, offset, pageSize)
}
