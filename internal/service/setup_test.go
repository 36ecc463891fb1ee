package service

import (
    "testing"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/social-feed/internal/cache"
    "github.com/d60-Lab/social-feed/internal/model"
    "github.com/d60-Lab/social-feed/internal/repository"
)

type testDeps struct {
    db       *gorm.DB
    mr       *miniredis.Miniredis
    rdb      *redis.Client
    timeline *cache.Timeline
    userRepo repository.UserRepository
    postRepo repository.PostRepository
    follows  repository.FollowRepository
}

func setupDeps(t *testing.T) *testDeps {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Follow{}, &model.Like{}))

    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })

    return &testDeps{
        db:       db,
        mr:       mr,
        rdb:      rdb,
        timeline: cache.NewTimeline(rdb),
        userRepo: repository.NewUserRepository(db),
        postRepo: repository.NewPostRepository(db),
        follows:  repository.NewFollowRepository(db),
    }
}

func (d *testDeps) newUser(t *testing.T, username string) *model.User {
    t.Helper()
    u := &model.User{Username: username, Email: username + "@example.com", Password: "p"}
    require.NoError(t, d.db.Create(u).Error)
    return u
}

func (d *testDeps) postService() PostService {
    return NewPostService(d.db, d.postRepo, d.follows, d.timeline)
}

func (d *testDeps) relationshipService() RelationshipService {
    return NewRelationshipService(d.db, d.follows)
}
