package service

import (
    "context"
    "strconv"

    "github.com/google/uuid"
    "github.com/redis/go-redis/v9"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/social-feed/internal/cache"
    "github.com/d60-Lab/social-feed/internal/model"
    "github.com/d60-Lab/social-feed/internal/repository"
)

const (
    // FeedPageSize 单页时间线条数
    FeedPageSize = 10
    // fanoutBatch 扇出时粉丝分页大小，控制内存占用
    fanoutBatch = 500
)

// FeedPage 一页时间线；NextCursor 为空表示终止页
type FeedPage struct {
    Items      []repository.FeedItem `json:"items"`
    NextCursor *int64                `json:"next_cursor"`
}

// PostService 发帖（写扩散）、读时间线与点赞
type PostService interface {
    Publish(ctx context.Context, authorID int64, content string) (*model.Post, error)
    GetFeed(ctx context.Context, userID int64, cursor *int64) (*FeedPage, error)
    Like(ctx context.Context, userID, postID int64) error
    RebuildTimeline(ctx context.Context, userID int64) (int, error)
}

type postService struct {
    db         *gorm.DB
    postRepo   repository.PostRepository
    followRepo repository.FollowRepository
    timeline   *cache.Timeline
}

func NewPostService(db *gorm.DB, postRepo repository.PostRepository, followRepo repository.FollowRepository, timeline *cache.Timeline) PostService {
    return &postService{db: db, postRepo: postRepo, followRepo: followRepo, timeline: timeline}
}

// Publish 先落库（单语句事务），再同步扇出到每个粉丝的时间线。
// 扇出任一步失败即中断，帖子不回滚，返回已创建的帖子和 *PartialFanoutError。
func (s *postService) Publish(ctx context.Context, authorID int64, content string) (*model.Post, error) {
    post := &model.Post{AuthorID: authorID, Content: content}
    if err := s.postRepo.Create(ctx, post); err != nil {
        return nil, err
    }

    score := post.Score()
    fanned := 0
    offset := 0
    for {
        followerIDs, err := s.followRepo.ListFollowerIDs(ctx, authorID, offset, fanoutBatch)
        if err != nil {
            return post, &PartialFanoutError{PostID: post.ID, Fanned: fanned, Err: err}
        }
        if len(followerIDs) == 0 {
            break
        }
        for _, fid := range followerIDs {
            if err := s.timeline.Push(ctx, fid, post.ID, score); err != nil {
                return post, &PartialFanoutError{PostID: post.ID, Fanned: fanned, Err: err}
            }
            fanned++
        }
        if len(followerIDs) < fanoutBatch {
            break
        }
        offset += fanoutBatch
    }
    return post, nil
}

// GetFeed 取一页时间线：缓存决定本页有哪些 id，库只负责内容。
// cursor 为分值的开区间上界；NextCursor 取水合结果最后一行的毫秒时间戳，
// 而不是缓存页，避免库中缺行时下一页重复或漏读。
func (s *postService) GetFeed(ctx context.Context, userID int64, cursor *int64) (*FeedPage, error) {
    ids, err := s.timeline.RangeDesc(ctx, userID, cursor, FeedPageSize)
    if err != nil {
        return nil, err
    }
    if len(ids) == 0 {
        return &FeedPage{Items: []repository.FeedItem{}}, nil
    }
    items, err := s.postRepo.HydrateByIDs(ctx, ids)
    if err != nil {
        return nil, err
    }
    if len(items) == 0 {
        // 本页 id 在库里已全部不存在，视为终止页
        return &FeedPage{Items: []repository.FeedItem{}}, nil
    }
    next := items[len(items)-1].Score()
    return &FeedPage{Items: items, NextCursor: &next}, nil
}

// Like 点赞：边表插入与计数自增同一事务。
// 重复点赞回滚并返回 ErrAlreadyLiked；帖子不存在返回 gorm.ErrRecordNotFound。
func (s *postService) Like(ctx context.Context, userID, postID int64) error {
    return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        lk := &model.Like{ID: uuid.New().String(), UserID: userID, PostID: postID}
        res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(lk)
        if res.Error != nil {
            return res.Error
        }
        if res.RowsAffected == 0 {
            return ErrAlreadyLiked
        }
        upd := tx.Model(&model.Post{}).Where("id = ?", postID).
            UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
        if upd.Error != nil {
            return upd.Error
        }
        if upd.RowsAffected == 0 {
            return gorm.ErrRecordNotFound
        }
        return nil
    })
}

// RebuildTimeline 从 (关注边 x 帖子) 重建某用户的时间线缓存，
// 用于扇出中断后的修复；缓存只是可重建的派生索引。
func (s *postService) RebuildTimeline(ctx context.Context, userID int64) (int, error) {
    var followingIDs []int64
    offset := 0
    for {
        batch, err := s.followRepo.ListFollowingIDs(ctx, userID, offset, fanoutBatch)
        if err != nil {
            return 0, err
        }
        followingIDs = append(followingIDs, batch...)
        if len(batch) < fanoutBatch {
            break
        }
        offset += fanoutBatch
    }

    var entries []redis.Z
    offset = 0
    for {
        posts, err := s.postRepo.ListByAuthors(ctx, followingIDs, offset, fanoutBatch)
        if err != nil {
            return 0, err
        }
        for _, p := range posts {
            entries = append(entries, redis.Z{
                Score:  float64(p.Score()),
                Member: strconv.FormatInt(p.ID, 10),
            })
        }
        if len(posts) < fanoutBatch {
            break
        }
        offset += fanoutBatch
    }

    if err := s.timeline.Rewrite(ctx, userID, entries); err != nil {
        return 0, err
    }
    return len(entries), nil
}
