package service

import (
    "errors"
    "fmt"
)

var (
    ErrFollowSelf       = errors.New("cannot follow self")
    ErrAlreadyFollowing = errors.New("already following")
    ErrAlreadyLiked     = errors.New("already liked")
    ErrUserExists       = errors.New("user already exists")
)

// PartialFanoutError 帖子已落库但扇出中断；帖子本身不回滚
type PartialFanoutError struct {
    PostID int64
    Fanned int // 中断前已写入的粉丝时间线数
    Err    error
}

func (e *PartialFanoutError) Error() string {
    return fmt.Sprintf("partial fanout for post %d after %d followers: %v", e.PostID, e.Fanned, e.Err)
}

func (e *PartialFanoutError) Unwrap() error { return e.Err }
