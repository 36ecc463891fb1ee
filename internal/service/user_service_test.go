package service

import (
    "context"
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
    d := setupDeps(t)
    svc := NewUserService(d.userRepo, "test-secret", time.Hour)
    ctx := context.Background()

    user, token, err := svc.Register(ctx, "dave", "dave@example.com", "hunter22")
    require.NoError(t, err)
    require.NotZero(t, user.ID)
    require.Zero(t, user.FollowerCount)
    require.Zero(t, user.FollowingCount)

    // 密码不落明文
    require.NotEqual(t, "hunter22", user.Password)
    require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")))

    parsed, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("test-secret"), nil
    })
    require.NoError(t, err)
    claims := parsed.Claims.(jwt.MapClaims)
    require.Equal(t, "dave", claims["username"])
}

func TestRegister_Duplicate(t *testing.T) {
    d := setupDeps(t)
    svc := NewUserService(d.userRepo, "test-secret", time.Hour)
    ctx := context.Background()

    _, _, err := svc.Register(ctx, "dave", "dave@example.com", "hunter22")
    require.NoError(t, err)

    _, _, err = svc.Register(ctx, "dave", "other@example.com", "hunter22")
    require.ErrorIs(t, err, ErrUserExists)

    _, _, err = svc.Register(ctx, "other", "dave@example.com", "hunter22")
    require.ErrorIs(t, err, ErrUserExists)
}
