package repository

import (
    "context"
    "time"

    "gorm.io/gorm"

    "github.com/d60-Lab/social-feed/internal/model"
)

// FeedItem 水合后的时间线条目（posts JOIN users）
type FeedItem struct {
    ID        int64     `json:"id"`
    AuthorID  int64     `json:"author_id"`
    Username  string    `json:"username"`
    Content   string    `json:"content"`
    LikeCount int64     `json:"like_count"`
    CreatedAt time.Time `json:"created_at"`
}

// Score 与缓存一致的毫秒分值
func (it *FeedItem) Score() int64 { return it.CreatedAt.UnixMilli() }

type PostRepository interface {
    Create(ctx context.Context, post *model.Post) error
    GetByID(ctx context.Context, id int64) (*model.Post, error)
    // HydrateByIDs 按 id 批量取帖子并带作者名；排序与缓存一致：
    // created_at DESC，同毫秒回退 id DESC，保证翻页确定性
    HydrateByIDs(ctx context.Context, ids []int64) ([]FeedItem, error)
    // ListByAuthors 分页取若干作者的帖子（时间线重建用）
    ListByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]*model.Post, error)
}

type postRepository struct{ db *gorm.DB }

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
    return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
    var p model.Post
    if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
        return nil, err
    }
    return &p, nil
}

func (r *postRepository) HydrateByIDs(ctx context.Context, ids []int64) ([]FeedItem, error) {
    if len(ids) == 0 {
        return []FeedItem{}, nil
    }
    var rows []FeedItem
    err := r.db.WithContext(ctx).
        Table("posts").
        Select("posts.id", "posts.author_id", "users.username", "posts.content", "posts.like_count", "posts.created_at").
        Joins("JOIN users ON users.id = posts.author_id").
        Where("posts.id IN ?", ids).
        Order("posts.created_at DESC, posts.id DESC").
        Scan(&rows).Error
    if err != nil {
        return nil, err
    }
    return rows, nil
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []int64, offset, limit int) ([]*model.Post, error) {
    if len(authorIDs) == 0 {
        return nil, nil
    }
    var posts []*model.Post
    err := r.db.WithContext(ctx).
        Where("author_id IN ?", authorIDs).
        Order("id").
        Offset(offset).Limit(limit).
        Find(&posts).Error
    return posts, err
}
