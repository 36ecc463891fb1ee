package model

import "time"

// User 用户（follower/following 计数为冗余值，仅由事务维护）
type User struct {
    ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
    Username       string    `json:"username" gorm:"type:varchar(64);uniqueIndex;not null"`
    Email          string    `json:"email" gorm:"type:varchar(128);uniqueIndex;not null"`
    Password       string    `json:"-" gorm:"type:varchar(128);not null"`
    FollowerCount  int64     `json:"follower_count" gorm:"not null;default:0"`
    FollowingCount int64     `json:"following_count" gorm:"not null;default:0"`
    CreatedAt      time.Time `json:"created_at"`
    UpdatedAt      time.Time `json:"-"`
}

func (User) TableName() string { return "users" }
