package handler

import (
    "github.com/d60-Lab/social-feed/internal/service"
)

type Handler struct {
    userSvc service.UserService
    relSvc  service.RelationshipService
    postSvc service.PostService
}

func New(userSvc service.UserService, relSvc service.RelationshipService, postSvc service.PostService) *Handler {
    return &Handler{userSvc: userSvc, relSvc: relSvc, postSvc: postSvc}
}
