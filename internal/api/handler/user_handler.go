package handler

import (
    "errors"
    "strconv"

    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/social-feed/internal/service"
    "github.com/d60-Lab/social-feed/pkg/response"
)

type registerRequest struct {
    Username string `json:"username" binding:"required,min=3,max=32"`
    Email    string `json:"email" binding:"required,email"`
    Password string `json:"password" binding:"required,min=6,max=72"`
}

// Register 注册用户
// @Summary 注册用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
    var req registerRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    user, token, err := h.userSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
    if err != nil {
        if errors.Is(err, service.ErrUserExists) {
            response.Conflict(c, err.Error())
            return
        }
        response.InternalError(c, err)
        return
    }
    response.Created(c, gin.H{"user": user, "token": token})
}

type followRequest struct {
    FollowerID  int64 `json:"follower_id" binding:"required"`
    FollowingID int64 `json:"following_id" binding:"required"`
}

// Follow 建立关注（边表与双方计数同事务）
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Param request body followRequest true "关注信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/v1/users/follow [post]
func (h *Handler) Follow(c *gin.Context) {
    var req followRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BadRequest(c, err.Error())
        return
    }
    err := h.relSvc.Follow(c.Request.Context(), req.FollowerID, req.FollowingID)
    switch {
    case err == nil:
        response.Success(c, nil)
    case errors.Is(err, service.ErrFollowSelf):
        response.BadRequest(c, err.Error())
    case errors.Is(err, service.ErrAlreadyFollowing):
        response.Conflict(c, err.Error())
    default:
        response.InternalError(c, err)
    }
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param user_id path int true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/users/{user_id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
    userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
    if err != nil {
        response.BadRequest(c, "invalid user_id")
        return
    }
    page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
    pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
    list, err := h.relSvc.ListFollowers(c.Request.Context(), userID, page, pageSize)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}
