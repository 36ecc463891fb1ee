package service

import (
    "context"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "golang.org/x/crypto/bcrypt"

    "github.com/d60-Lab/social-feed/internal/model"
    "github.com/d60-Lab/social-feed/internal/repository"
)

// UserService 用户注册（密码 bcrypt 落库，注册即签发 token）
type UserService interface {
    Register(ctx context.Context, username, email, password string) (*model.User, string, error)
}

type userService struct {
    userRepo  repository.UserRepository
    jwtSecret []byte
    jwtTTL    time.Duration
}

func NewUserService(userRepo repository.UserRepository, jwtSecret string, jwtTTL time.Duration) UserService {
    return &userService{userRepo: userRepo, jwtSecret: []byte(jwtSecret), jwtTTL: jwtTTL}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*model.User, string, error) {
    exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, username, email)
    if err != nil {
        return nil, "", err
    }
    if exists {
        return nil, "", ErrUserExists
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, "", err
    }
    user := &model.User{Username: username, Email: email, Password: string(hash)}
    if err := s.userRepo.Create(ctx, user); err != nil {
        return nil, "", err
    }

    token, err := s.issueToken(user)
    if err != nil {
        return nil, "", err
    }
    return user, token, nil
}

func (s *userService) issueToken(user *model.User) (string, error) {
    now := time.Now()
    claims := jwt.MapClaims{
        "sub":      strconv.FormatInt(user.ID, 10),
        "username": user.Username,
        "iat":      now.Unix(),
        "exp":      now.Add(s.jwtTTL).Unix(),
    }
    return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}
