package model

import "time"

// Post 内容主体（id 由库自增分配，like_count 只走事务更新）
type Post struct {
    ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
    AuthorID  int64     `json:"author_id" gorm:"index:idx_post_author;not null"`
    Content   string    `json:"content" gorm:"type:text;not null"`
    LikeCount int64     `json:"like_count" gorm:"not null;default:0"`
    CreatedAt time.Time `json:"created_at" gorm:"index"`
    UpdatedAt time.Time `json:"-"`
}

func (Post) TableName() string { return "posts" }

// Score 时间线分值：创建时刻的毫秒时间戳
func (p *Post) Score() int64 { return p.CreatedAt.UnixMilli() }
