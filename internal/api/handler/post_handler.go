package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"
    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/d60-Lab/social-feed/internal/service"
    "github.com/d60-Lab/social-feed/pkg/logger"
    "github.com/d60-Lab/social-feed/pkg/response"
)

type createPostRequest struct {
    UserID  int64  `json:"user_id" binding:"required"`
    Content string `json:"content" binding:"required,notblank,max=4096"`
}

// CreatePost 发帖并写扩散到粉丝时间线
// @Summary 发帖
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body createPostRequest true "帖子内容"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
    var req createPostRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    post, err := h.postSvc.Publish(c.Request.Context(), req.UserID, req.Content)
    if err != nil {
        var pf *service.PartialFanoutError
        if errors.As(err, &pf) {
            // 帖子已落库，扇出缺口待重建修复；仍按创建成功响应
            logger.Warn("partial fanout",
                zap.Int64("post_id", pf.PostID),
                zap.Int("fanned", pf.Fanned),
                zap.Error(pf.Err),
            )
            response.Created(c, gin.H{"post": post})
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Created(c, gin.H{"post": post})
}

// GetFeed 读取时间线（游标分页）
// @Summary 读取时间线
// @Tags 帖子
// @Produce json
// @Param user_id query int true "用户ID"
// @Param cursor query int false "上一页 next_cursor，毫秒时间戳，开区间上界"
// @Success 200 {object} response.Response{data=service.FeedPage}
// @Failure 400 {object} response.Response
// @Router /api/v1/posts/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
    userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "missing or invalid user_id")
        return
    }
    var cursor *int64
    if raw := c.Query("cursor"); raw != "" {
        v, err := strconv.ParseInt(raw, 10, 64)
        if err != nil {
            response.BadRequest(c, "invalid cursor")
            return
        }
        cursor = &v
    }
    page, err := h.postSvc.GetFeed(c.Request.Context(), userID, cursor)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, page)
}

type likeRequest struct {
    UserID int64 `json:"user_id" binding:"required"`
}

// LikePost 点赞（幂等，重复点赞返回 409）
// @Summary 点赞
// @Tags 帖子
// @Accept json
// @Produce json
// @Param id path int true "帖子ID"
// @Param request body likeRequest true "点赞人"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
    postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid post id")
        return
    }
    var req likeRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    err = h.postSvc.Like(c.Request.Context(), req.UserID, postID)
    switch {
    case err == nil:
        response.Success(c, nil)
    case errors.Is(err, service.ErrAlreadyLiked):
        response.Conflict(c, err.Error())
    case errors.Is(err, gorm.ErrRecordNotFound):
        response.NotFound(c, "post not found")
    default:
        response.InternalError(c, err)
    }
}

// RebuildTimeline 从关注边与帖子重建某用户的时间线缓存
// @Summary 重建时间线缓存
// @Tags 管理
// @Param user_id path int true "用户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/users/{user_id}/timeline/rebuild [post]
func (h *Handler) RebuildTimeline(c *gin.Context) {
    userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid user_id")
        return
    }
    n, err := h.postSvc.RebuildTimeline(c.Request.Context(), userID)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"entries": n})
}
