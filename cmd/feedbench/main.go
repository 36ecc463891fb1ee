package main

import (
    "context"
    "fmt"
    "math"
    "os"
    "sort"
    "strconv"
    "time"

    "github.com/d60-Lab/social-feed/config"
    "github.com/d60-Lab/social-feed/internal/cache"
    "github.com/d60-Lab/social-feed/internal/model"
    "github.com/d60-Lab/social-feed/internal/repository"
    "github.com/d60-Lab/social-feed/internal/service"
    pkgcache "github.com/d60-Lab/social-feed/pkg/cache"
    "github.com/d60-Lab/social-feed/pkg/database"
    "github.com/d60-Lab/social-feed/pkg/logger"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func mustDo(err error) { if err != nil { panic(err) } }

func pct(vs []time.Duration, p float64) time.Duration {
    if len(vs) == 0 { return 0 }
    xs := append([]time.Duration(nil), vs...)
    sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
    k := int(math.Ceil(p*float64(len(xs)))) - 1
    if k < 0 { k = 0 }
    if k >= len(xs) { k = len(xs)-1 }
    return xs[k]
}

// 同步写扩散的代价曲线：粉丝数 N 直接决定发帖延迟
func main() {
    cfg := must(config.Load())
    _ = logger.Init("warn")
    db := must(database.InitDB(cfg))
    mustDo(database.AutoMigrate(db))
    rdb := must(pkgcache.InitRedis(cfg))
    defer rdb.Close()

    N := 10000               // fans of the author
    POSTS := 50              // posts to publish
    if s := os.Getenv("N"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { N = v } }
    if s := os.Getenv("POSTS"); s != "" { if v, e := strconv.Atoi(s); e == nil && v > 0 { POSTS = v } }

    ctx := context.Background()

    // clean tables for a reproducible run (ok for local bench)
    _ = db.Exec("TRUNCATE TABLE likes, follows, posts, users RESTART IDENTITY CASCADE").Error
    _ = rdb.FlushDB(ctx).Err()

    author := model.User{Username: "author0", Email: "author0@example.com", Password: "p"}
    mustDo(db.Create(&author).Error)
    fans := make([]model.User, N)
    for i := 0; i < N; i++ {
        fans[i] = model.User{Username: fmt.Sprintf("fan%06d", i), Email: fmt.Sprintf("fan%06d@example.com", i), Password: "p"}
    }
    mustDo(db.CreateInBatches(&fans, 1000).Error)

    relSvc := service.NewRelationshipService(db, repository.NewFollowRepository(db))
    for i := 0; i < N; i++ {
        mustDo(relSvc.Follow(ctx, fans[i].ID, author.ID))
    }

    timeline := cache.NewTimeline(rdb)
    postSvc := service.NewPostService(db, repository.NewPostRepository(db), repository.NewFollowRepository(db), timeline)

    pubDurations := make([]time.Duration, 0, POSTS)
    for i := 0; i < POSTS; i++ {
        st := time.Now()
        _, err := postSvc.Publish(ctx, author.ID, fmt.Sprintf("hello %d", i))
        if err != nil { panic(err) }
        pubDurations = append(pubDurations, time.Since(st))
    }

    var pubSum time.Duration
    for _, d := range pubDurations { pubSum += d }
    fmt.Printf("N=%d POSTS=%d\n", N, POSTS)
    fmt.Printf("Publish (insert + sync fanout): avg=%v p95=%v p99=%v\n", pubSum/time.Duration(len(pubDurations)), pct(pubDurations, 0.95), pct(pubDurations, 0.99))

    // paginate one fan's timeline to the end
    st := time.Now()
    pages, items := 0, 0
    var cursor *int64
    for {
        page := must(postSvc.GetFeed(ctx, fans[0].ID, cursor))
        if len(page.Items) == 0 { break }
        pages++
        items += len(page.Items)
        cursor = page.NextCursor
    }
    fmt.Printf("Feed walk (fan0): pages=%d items=%d total=%v\n", pages, items, time.Since(st))
}
