package model

import "time"

// Like 点赞关系（user, post）
type Like struct {
    ID     string `gorm:"primaryKey;type:varchar(36)"`
    UserID int64  `gorm:"index:idx_like_user;uniqueIndex:ux_like_user_post;not null"`
    PostID int64  `gorm:"index:idx_like_post;uniqueIndex:ux_like_user_post;not null"`
    // 复合唯一键，避免重复点赞
    // ux_like_user_post = (user_id, post_id)
    CreatedAt time.Time
}

func (Like) TableName() string { return "likes" }
